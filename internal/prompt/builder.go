// Package prompt builds the single natural-language prompt sent to the
// completion provider. Building is a pure function of the trip request and
// the already-converted budget: no I/O, no clock, no randomness, so the
// exact prompt for a given request is reproducible in tests.
package prompt

import (
	"fmt"
	"strings"

	"github.com/Ath-12/ai-planner-final/internal/domain"
	"github.com/Ath-12/ai-planner-final/internal/sections"
)

// The three literal heading tokens the model is instructed to emit, and the
// only place in the repo where they are defined. The splitter receives them
// via Headings() so prompt and parser can never disagree.
const (
	HeadingOverview  = "### Trip Overview"
	HeadingDailyPlan = "### Daily Itinerary"
	HeadingTips      = "### Details & Tips"
)

// Headings returns the heading tokens in display order for the splitter.
func Headings() sections.Tokens {
	return sections.Tokens{
		Overview:  HeadingOverview,
		DailyPlan: HeadingDailyPlan,
		Tips:      HeadingTips,
	}
}

// noPreference is rendered for empty list fields so the model never sees an
// ambiguous blank after a field label.
const noPreference = "no preference"

// Build assembles the full prompt for one trip request.
// budgetDest is the per-person-per-day budget already converted into
// destCurrency by the caller (see the currency package).
func Build(req domain.TripRequest, budgetDest float64, destCurrency string) string {
	var b strings.Builder

	b.WriteString("You are a super-friendly and enthusiastic travel buddy who knows all the best local secrets. ")
	b.WriteString("Your goal is to create an amazing and practical travel plan. Use a fun, encouraging tone!\n")

	b.WriteString("\n--- Traveller's Trip Details ---\n")
	fmt.Fprintf(&b, "Destination: %s\n", req.Destination)
	fmt.Fprintf(&b, "Duration: %d days\n", req.DurationDays)
	fmt.Fprintf(&b, "Number of People: %d\n", req.PartySize)
	fmt.Fprintf(&b, "Budget per Person per Day: approximately %s %s\n", formatAmount(budgetDest), destCurrency)
	fmt.Fprintf(&b, "Preferred Accommodation: %s\n", joinOrDefault(req.Accommodation))
	fmt.Fprintf(&b, "Desired Travel Vibe: %s\n", joinOrDefault(req.Vibes))
	fmt.Fprintf(&b, "Desired Pace: %s\n", req.Pace)
	fmt.Fprintf(&b, "Food Preferences: %s\n", joinOrDefault(req.FoodPrefs))
	fmt.Fprintf(&b, "Local Transport Preference: %s\n", req.Transport)
	fmt.Fprintf(&b, "Travelling From: %s\n", textOrDefault(req.Origin, "not specified"))
	fmt.Fprintf(&b, "Month of Arrival: %s\n", req.ArrivalMonth)
	fmt.Fprintf(&b, "Special Requests: %s\n", textOrDefault(req.SpecialRequests, "none"))

	b.WriteString("\n--- Itinerary Requirements ---\n")
	b.WriteString(fmt.Sprintf("1. Seasonal Guidance: Describe the typical weather in %s during %s and what it means for this trip.\n",
		req.Destination, req.ArrivalMonth))
	b.WriteString("2. Packing Advice: A short packing list tailored to the season and the planned activities.\n")
	b.WriteString(fmt.Sprintf("3. Daily Plan: A logical, fun plan for each of the %d days, matching the desired pace.\n",
		req.DurationDays))
	b.WriteString("4. Accommodation Suggestions: 1-2 specific, highly-rated places that match the stated preference, with a one-line rationale each.\n")
	b.WriteString("5. Food Recommendations: Specific local eateries (not just cuisines), 1-2 must-try dishes, and rough local prices.\n")
	b.WriteString("6. Arrival & Local Transport: How to get from the arrival point to the accommodation, plus a breakdown of the preferred local transport option with estimated daily costs.\n")
	b.WriteString("7. Local Phrases: A short glossary of 5-6 useful local phrases with pronunciation hints.\n")

	b.WriteString("\n--- Output Format ---\n")
	b.WriteString("Structure your entire response in exactly three sections, each introduced by one of these exact headers, in this order. ")
	b.WriteString("Do not use these header strings anywhere else in your response.\n")
	fmt.Fprintf(&b, "%s: a fun, exciting summary of the trip, including the accommodation suggestions.\n", HeadingOverview)
	fmt.Fprintf(&b, "%s: the detailed day-by-day plan.\n", HeadingDailyPlan)
	fmt.Fprintf(&b, "%s: seasonal guidance, packing advice, the transport breakdown, food prices, and the phrase glossary.\n", HeadingTips)

	return b.String()
}

// joinOrDefault serializes a list field as comma-joined text, or the explicit
// "no preference" placeholder when the list is empty.
func joinOrDefault(values []string) string {
	if len(values) == 0 {
		return noPreference
	}
	return strings.Join(values, ", ")
}

// textOrDefault returns s, or def when s is blank.
func textOrDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}

// formatAmount prints a budget without trailing zero noise: whole amounts as
// plain decimal integers (no locale separators), fractional ones with two
// digits.
func formatAmount(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%.2f", v)
}
