package match

import (
	"sort"
	"strings"

	"rollmatch/internal/config"
	"rollmatch/internal/enrollment"
	"rollmatch/internal/person"
	"rollmatch/internal/records"
)

// Tier buckets a suggestion's quality for reviewers.
type Tier string

const (
	TierExact  Tier = "exact"
	TierHigh   Tier = "high"
	TierMedium Tier = "medium"
	TierLow    Tier = "low"
	TierNone   Tier = "none"
)

// Candidate pairs an enrolled person with a fuzzy name score and the reasons
// the score was awarded.
type Candidate struct {
	Person  enrollment.Person
	Score   int
	Reasons []string
}

// Suggestion is the unit handed to the human reviewer for one imported
// record: an authoritative exact match, or ranked fuzzy candidates, or
// neither.
type Suggestion struct {
	Record     *records.ExternalRecord
	Exact      *enrollment.Person
	Candidates []Candidate
	Tier       Tier
}

// Options carries the tunable matcher thresholds. The zero value is not
// usable; start from DefaultOptions or OptionsFromConfig.
type Options struct {
	MinCandidateScore int
	MediumThreshold   int
	HighThreshold     int
	MaxCandidates     int
	IncludeInactive   bool
}

// DefaultOptions returns the historical threshold set.
func DefaultOptions() Options {
	return OptionsFromConfig(config.Default().Matching)
}

// OptionsFromConfig maps the config section onto matcher options.
func OptionsFromConfig(m config.Matching) Options {
	return Options{
		MinCandidateScore: m.MinCandidateScore,
		MediumThreshold:   m.MediumThreshold,
		HighThreshold:     m.HighThreshold,
		MaxCandidates:     m.MaxCandidates,
		IncludeInactive:   m.IncludeInactive,
	}
}

// Match produces the suggestion for one record against the known roster.
// An exact email match returns immediately without fuzzy scoring: the email
// is authoritative and must not be second-guessed by name heuristics.
func Match(rec *records.ExternalRecord, known []enrollment.Person, opts Options) Suggestion {
	suggestion := Suggestion{Record: rec, Tier: TierNone}

	if email := strings.ToLower(strings.TrimSpace(rec.Email)); email != "" {
		for i := range known {
			if !eligible(known[i], opts) {
				continue
			}
			if strings.ToLower(known[i].Email) == email {
				exact := known[i]
				suggestion.Exact = &exact
				suggestion.Tier = TierExact
				return suggestion
			}
		}
	}

	if person.Normalize(rec.Name) == "" {
		return suggestion
	}

	for i := range known {
		if !eligible(known[i], opts) {
			continue
		}
		result := person.Similarity(rec.Name, known[i].Name)
		if result.Score < opts.MinCandidateScore {
			continue
		}
		suggestion.Candidates = append(suggestion.Candidates, Candidate{
			Person:  known[i],
			Score:   result.Score,
			Reasons: result.Reasons,
		})
	}

	sort.SliceStable(suggestion.Candidates, func(i, j int) bool {
		return suggestion.Candidates[i].Score > suggestion.Candidates[j].Score
	})
	if len(suggestion.Candidates) > opts.MaxCandidates {
		suggestion.Candidates = suggestion.Candidates[:opts.MaxCandidates]
	}

	suggestion.Tier = tierForCandidates(suggestion.Candidates, opts)
	return suggestion
}

// MatchAll runs Match over every record, preserving input order.
func MatchAll(recs []*records.ExternalRecord, known []enrollment.Person, opts Options) []Suggestion {
	suggestions := make([]Suggestion, 0, len(recs))
	for _, rec := range recs {
		suggestions = append(suggestions, Match(rec, known, opts))
	}
	return suggestions
}

func eligible(p enrollment.Person, opts Options) bool {
	return p.Active || opts.IncludeInactive
}

func tierForCandidates(candidates []Candidate, opts Options) Tier {
	if len(candidates) == 0 {
		return TierNone
	}
	top := candidates[0].Score
	switch {
	case top >= opts.HighThreshold:
		return TierHigh
	case top >= opts.MediumThreshold:
		return TierMedium
	default:
		return TierLow
	}
}
