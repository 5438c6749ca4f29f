// Package domain contains the core data types for the AI trip planner.
// This package has zero dependencies on other internal packages and is
// imported by every other internal package (repo, service, handler).
package domain

import "time"

// Pace describes how densely packed the traveller wants each day to be.
type Pace string

const (
	PaceSlow     Pace = "Slow & Relaxed"
	PaceModerate Pace = "Moderate"
	PaceFast     Pace = "Fast-Paced & Packed"
)

// Transport is the traveller's preferred way of getting around locally.
type Transport string

const (
	TransportWalking Transport = "Walking Focus"
	TransportScooter Transport = "Scooter / Bike Rental"
	TransportTaxi    Transport = "Taxis & Ride-Hailing"
	TransportPublic  Transport = "Public Transport"
)

// TripRequest is everything the planning form collects for one request.
// It is owned by the calling session for the duration of a single planning
// request and is never mutated by the pipeline.
type TripRequest struct {
	// Destination is free text, e.g. "Goa, India".
	Destination string `json:"destination"`

	// DurationDays and PartySize must both be >= 1 for a valid request.
	DurationDays int `json:"duration_days"`
	PartySize    int `json:"party_size"`

	// DailyBudget is per person per day, expressed in Currency.
	DailyBudget float64 `json:"daily_budget"`

	// Currency is the 3-letter code the budget was entered in.
	// Must be one of AllowedCurrencies.
	Currency string `json:"currency"`

	// DestCurrency is the destination's currency code. Empty means
	// "same as Currency", which skips the rate lookup entirely.
	DestCurrency string `json:"dest_currency,omitempty"`

	Vibes         []string  `json:"vibes,omitempty"`
	Accommodation []string  `json:"accommodation,omitempty"`
	Pace          Pace      `json:"pace"`
	FoodPrefs     []string  `json:"food_prefs,omitempty"`
	Transport     Transport `json:"transport"`

	// Origin is the traveller's home country or city, free text.
	Origin string `json:"origin,omitempty"`

	// ArrivalMonth is 1-12 (time.Month numbering).
	ArrivalMonth time.Month `json:"arrival_month"`

	// SpecialRequests is optional freeform text passed through to the prompt.
	SpecialRequests string `json:"special_requests,omitempty"`
}

// AllowedCurrencies is the fixed set of currency codes the form accepts.
// The exchange-rate endpoint supports far more, but the form deliberately
// offers a short list so a typo can never reach the rate API.
var AllowedCurrencies = map[string]bool{
	"INR": true, "USD": true, "EUR": true, "GBP": true, "JPY": true,
	"AUD": true, "CAD": true, "SGD": true, "THB": true, "AED": true,
	"CHF": true, "VND": true, "IDR": true, "LKR": true, "NPR": true,
}
