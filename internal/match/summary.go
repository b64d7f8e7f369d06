package match

import "math"

// Summary aggregates match outcomes over one import.
type Summary struct {
	Exact  int
	High   int
	Medium int
	Low    int
	None   int
	Total  int
	// MatchRate is the rounded percentage of records matched at medium
	// confidence or better.
	MatchRate int
}

// Summarize counts suggestions by tier. Pure aggregation, no state.
func Summarize(suggestions []Suggestion) Summary {
	var s Summary
	for _, suggestion := range suggestions {
		switch suggestion.Tier {
		case TierExact:
			s.Exact++
		case TierHigh:
			s.High++
		case TierMedium:
			s.Medium++
		case TierLow:
			s.Low++
		default:
			s.None++
		}
	}
	s.Total = len(suggestions)
	if s.Total > 0 {
		s.MatchRate = int(math.Round(100 * float64(s.Exact+s.High+s.Medium) / float64(s.Total)))
	}
	return s
}
