package domain

import (
	"time"

	"github.com/google/uuid"
)

// Plan is one generated, persisted itinerary. Plans are immutable once
// stored: a new form submission creates a new plan rather than updating an
// old one, so the raw text and its section split never drift apart.
type Plan struct {
	ID          uuid.UUID   `json:"id"`
	Destination string      `json:"destination"`
	Request     TripRequest `json:"request"`

	// Raw is the full completion text as returned by the provider.
	// The PDF export renders from this, not from the section split.
	Raw      string            `json:"raw"`
	Sections ItinerarySections `json:"sections"`

	// Truncated mirrors the completion result: content arrived but the
	// provider hit a length cap. Surfaced as a warning, not a failure.
	Truncated bool `json:"truncated"`

	// Rate and DestCurrency record the conversion applied to the budget
	// when the prompt was built, so a stored plan stays self-describing.
	Rate         float64 `json:"rate"`
	DestCurrency string  `json:"dest_currency"`

	CreatedAt time.Time `json:"created_at"`
}
