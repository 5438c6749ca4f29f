// Package sections splits a raw completion into the three itinerary display
// sections by locating the literal heading tokens the prompt mandated.
//
// The splitter is a pure function over (raw, tokens): no state, no I/O.
// It is deliberately strict about absence — a heading that was not found
// leaves its section empty and flagged absent, instead of falling back to
// the full raw text. The naive fallback duplicates the whole response into
// every tab, which is exactly the defect this package exists to prevent.
package sections

import (
	"strings"

	"github.com/Ath-12/ai-planner-final/internal/domain"
)

// Tokens are the three literal heading strings, in display order.
type Tokens struct {
	Overview  string
	DailyPlan string
	Tips      string
}

// Split parses raw into the three sections delimited by tokens.
//
// The first occurrence of each token in document order wins; later
// duplicates become part of whichever section body they fall in. A token
// appearing out of order simply bounds an empty preceding body — no
// heuristic reordering is attempted. Text before the first found token is
// discarded (it is preamble the prompt told the model not to produce).
func Split(raw string, tokens Tokens) domain.ItinerarySections {
	marks := []mark{
		{token: tokens.Overview},
		{token: tokens.DailyPlan},
		{token: tokens.Tips},
	}
	for i := range marks {
		marks[i].at = strings.Index(raw, marks[i].token)
	}

	var out domain.ItinerarySections
	out.Overview, out.OverviewPresent = body(raw, marks, 0)
	out.DailyPlan, out.DailyPlanPresent = body(raw, marks, 1)
	out.Tips, out.TipsPresent = body(raw, marks, 2)
	return out
}

type mark struct {
	token string
	at    int // byte offset of the token in raw, or -1 when absent
}

// body extracts the trimmed text belonging to marks[i]: everything from the
// end of its token up to the start of the nearest other token that follows
// it, or end of input. Returns ("", false) when the token was not found.
func body(raw string, marks []mark, i int) (string, bool) {
	m := marks[i]
	if m.at < 0 {
		return "", false
	}

	start := m.at + len(m.token)
	end := len(raw)
	for j, other := range marks {
		if j == i || other.at < 0 {
			continue
		}
		if other.at >= start && other.at < end {
			end = other.at
		}
	}

	return strings.TrimSpace(raw[start:end]), true
}
