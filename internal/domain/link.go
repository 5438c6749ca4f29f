package domain

// LinkRecord is one booking-research result.
// Slice ordering is the relevance order returned by the search source.
type LinkRecord struct {
	Title string `json:"title"`
	URL   string `json:"url"`
	// Date is the published date as reported by the source, or "" when
	// the source gave none. Kept as a string — formats vary by site.
	Date string `json:"date,omitempty"`
}
