package match

import (
	"fmt"
	"testing"

	"rollmatch/internal/enrollment"
	"rollmatch/internal/records"
)

func roster(people ...enrollment.Person) []enrollment.Person {
	return people
}

func active(id int64, name, email string) enrollment.Person {
	return enrollment.Person{ID: id, Name: name, Email: email, Active: true}
}

func TestMatchExactEmailBypassesFuzzy(t *testing.T) {
	// Wildly dissimilar names must not shake an exact email match.
	rec := &records.ExternalRecord{Name: "Jon S.", Email: "jon@example.com"}
	known := roster(active(1, "Jonathan Smith", "JON@example.com"))

	suggestion := Match(rec, known, DefaultOptions())
	if suggestion.Tier != TierExact {
		t.Fatalf("tier = %q, want exact", suggestion.Tier)
	}
	if suggestion.Exact == nil || suggestion.Exact.ID != 1 {
		t.Fatalf("exact = %#v", suggestion.Exact)
	}
	if len(suggestion.Candidates) != 0 {
		t.Fatalf("fuzzy candidates should be skipped, got %d", len(suggestion.Candidates))
	}
}

func TestMatchFuzzyTiers(t *testing.T) {
	cases := []struct {
		name     string
		external string
		known    string
		want     Tier
	}{
		{"reversed order scores high", "John Smith", "Smith John", TierHigh},
		{"extra surname scores medium", "John Smith", "John Smith Walker", TierMedium},
		{"nickname variant scores low", "Bob Jones", "Robert Jones", TierLow},
		{"unrelated name scores none", "John Smith", "Alice Walker", TierNone},
	}
	for _, tc := range cases {
		rec := &records.ExternalRecord{Name: tc.external}
		suggestion := Match(rec, roster(active(1, tc.known, "k@x.co")), DefaultOptions())
		if suggestion.Tier != tc.want {
			t.Errorf("%s: tier = %q, want %q", tc.name, suggestion.Tier, tc.want)
		}
	}
}

func TestMatchDiscardsBelowCandidateFloor(t *testing.T) {
	rec := &records.ExternalRecord{Name: "John Smith"}
	suggestion := Match(rec, roster(active(1, "Alice Walker", "a@x.co")), DefaultOptions())
	if len(suggestion.Candidates) != 0 {
		t.Fatalf("candidates: %#v", suggestion.Candidates)
	}
	if suggestion.Tier != TierNone {
		t.Fatalf("tier = %q", suggestion.Tier)
	}
}

func TestMatchCandidatesSortedAndCapped(t *testing.T) {
	rec := &records.ExternalRecord{Name: "John Smith"}
	known := make([]enrollment.Person, 0, 7)
	for i := int64(1); i <= 7; i++ {
		known = append(known, active(i, fmt.Sprintf("John Smith %c", 'A'+i-1), fmt.Sprintf("p%d@x.co", i)))
	}
	known = append(known, active(99, "John Smith", "exact@x.co"))

	suggestion := Match(rec, known, DefaultOptions())
	if len(suggestion.Candidates) != 5 {
		t.Fatalf("candidates = %d, want 5", len(suggestion.Candidates))
	}
	if suggestion.Candidates[0].Person.ID != 99 {
		t.Fatalf("top candidate = %#v", suggestion.Candidates[0])
	}
	for i := 1; i < len(suggestion.Candidates); i++ {
		if suggestion.Candidates[i].Score > suggestion.Candidates[i-1].Score {
			t.Fatal("candidates not sorted descending")
		}
	}
}

func TestMatchTwoKnownVariants(t *testing.T) {
	rec := &records.ExternalRecord{Name: "Matthew Young"}
	known := roster(
		active(1, "Matthew James Young", "e1@x.co"),
		active(2, "Matt Young", "e2@x.co"),
	)
	suggestion := Match(rec, known, DefaultOptions())
	if len(suggestion.Candidates) != 2 {
		t.Fatalf("candidates = %d, want 2", len(suggestion.Candidates))
	}
	for _, candidate := range suggestion.Candidates {
		if candidate.Score < 50 {
			t.Fatalf("candidate %q below floor: %d", candidate.Person.Name, candidate.Score)
		}
	}
	if suggestion.Candidates[0].Person.ID != 1 {
		t.Fatalf("expected full-name variant on top, got %#v", suggestion.Candidates[0].Person)
	}
	if suggestion.Tier != TierHigh {
		t.Fatalf("tier = %q", suggestion.Tier)
	}
}

func TestMatchNoUsableNameOrEmail(t *testing.T) {
	rec := &records.ExternalRecord{Extra: map[string]string{"joinTime": "10:00"}}
	suggestion := Match(rec, roster(active(1, "Anyone", "a@x.co")), DefaultOptions())
	if suggestion.Tier != TierNone || suggestion.Exact != nil || len(suggestion.Candidates) != 0 {
		t.Fatalf("unexpected suggestion: %#v", suggestion)
	}
}

func TestMatchSkipsInactiveByDefault(t *testing.T) {
	inactive := enrollment.Person{ID: 1, Name: "John Smith", Email: "john@x.co", Active: false}
	rec := &records.ExternalRecord{Name: "John Smith", Email: "john@x.co"}

	opts := DefaultOptions()
	suggestion := Match(rec, roster(inactive), opts)
	if suggestion.Tier != TierNone {
		t.Fatalf("tier = %q, want none for inactive person", suggestion.Tier)
	}

	opts.IncludeInactive = true
	suggestion = Match(rec, roster(inactive), opts)
	if suggestion.Tier != TierExact {
		t.Fatalf("tier = %q, want exact with include_inactive", suggestion.Tier)
	}
}

func TestSummarize(t *testing.T) {
	suggestions := []Suggestion{
		{Tier: TierExact},
		{Tier: TierHigh},
		{Tier: TierMedium},
		{Tier: TierLow},
		{Tier: TierNone},
		{Tier: TierNone},
	}
	summary := Summarize(suggestions)
	if summary.Total != 6 || summary.Exact != 1 || summary.High != 1 || summary.Medium != 1 || summary.Low != 1 || summary.None != 2 {
		t.Fatalf("unexpected summary: %#v", summary)
	}
	// 3 of 6 at medium confidence or better.
	if summary.MatchRate != 50 {
		t.Fatalf("match rate = %d, want 50", summary.MatchRate)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	summary := Summarize(nil)
	if summary.Total != 0 || summary.MatchRate != 0 {
		t.Fatalf("unexpected summary: %#v", summary)
	}
}
