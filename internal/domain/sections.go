package domain

// ItinerarySections is the three-way split of a raw completion into the
// display tabs. Derived entirely from CompletionResult.Raw and recomputed
// fresh on every new completion — never mutated after construction.
//
// Each Present flag is true only when the corresponding heading token was
// actually found in the raw text. A missing heading must never be papered
// over by copying the full raw text into that slot: that duplicates content
// across tabs. Callers decide the fallback (show the raw text once).
type ItinerarySections struct {
	Overview        string `json:"overview"`
	OverviewPresent bool   `json:"overview_present"`

	DailyPlan        string `json:"daily_plan"`
	DailyPlanPresent bool   `json:"daily_plan_present"`

	Tips        string `json:"tips"`
	TipsPresent bool   `json:"tips_present"`
}

// Complete reports whether all three headings were found.
// When false the UI shows the unsplit raw text once, with a warning.
func (s ItinerarySections) Complete() bool {
	return s.OverviewPresent && s.DailyPlanPresent && s.TipsPresent
}
