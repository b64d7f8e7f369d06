package assign

import (
	"testing"

	"rollmatch/internal/enrollment"
	"rollmatch/internal/match"
	"rollmatch/internal/records"
)

func personNamed(id int64, name string) enrollment.Person {
	return enrollment.Person{ID: id, Name: name, Active: true}
}

func exactSuggestion(email string, p enrollment.Person) match.Suggestion {
	return match.Suggestion{
		Record: &records.ExternalRecord{Name: p.Name, Email: email},
		Exact:  &p,
		Tier:   match.TierExact,
	}
}

func fuzzySuggestion(name string, tier match.Tier, candidates ...match.Candidate) match.Suggestion {
	return match.Suggestion{
		Record:     &records.ExternalRecord{Name: name},
		Candidates: candidates,
		Tier:       tier,
	}
}

func TestSeedAssignsExactAndHighConfidence(t *testing.T) {
	alice := personNamed(1, "Alice Walker")
	bob := personNamed(2, "Bob Jones")
	carol := personNamed(3, "Carol Young")

	suggestions := []match.Suggestion{
		exactSuggestion("alice@x.co", alice),
		fuzzySuggestion("Robert Jones", match.TierHigh, match.Candidate{Person: bob, Score: 90}),
		fuzzySuggestion("C. Young", match.TierMedium, match.Candidate{Person: carol, Score: 72}),
	}
	r := NewResolver(suggestions, []enrollment.Person{alice, bob, carol})
	r.Seed()

	resolved, unresolved := r.Finalize()
	if len(resolved) != 2 {
		t.Fatalf("resolved = %d, want 2", len(resolved))
	}
	if resolved[0].PersonID != alice.ID || resolved[1].PersonID != bob.ID {
		t.Fatalf("unexpected resolutions: %#v", resolved)
	}
	// Medium confidence is left for the reviewer.
	if len(unresolved) != 1 || unresolved[0] != suggestions[2].Record.Key() {
		t.Fatalf("unresolved = %v", unresolved)
	}
}

func TestSeedIsIdempotent(t *testing.T) {
	alice := personNamed(1, "Alice Walker")
	suggestions := []match.Suggestion{exactSuggestion("alice@x.co", alice)}
	r := NewResolver(suggestions, []enrollment.Person{alice})

	r.Seed()
	r.Seed()

	resolved, _ := r.Finalize()
	if len(resolved) != 1 || resolved[0].PersonID != alice.ID {
		t.Fatalf("reseeding changed the mapping: %#v", resolved)
	}
	if r.assignment.Len() != 1 {
		t.Fatalf("assignment len = %d", r.assignment.Len())
	}
}

func TestSelectStealsFromPriorHolder(t *testing.T) {
	alice := personNamed(1, "Alice Walker")
	s1 := fuzzySuggestion("A Walker", match.TierMedium)
	s2 := fuzzySuggestion("Alice W", match.TierMedium)
	r := NewResolver([]match.Suggestion{s1, s2}, []enrollment.Person{alice})

	k1 := s1.Record.Key()
	k2 := s2.Record.Key()

	r.Select(k1, alice.ID)
	r.Select(k2, alice.ID)

	if _, ok := r.Assigned(k1); ok {
		t.Fatal("first record should have lost the person")
	}
	if id, ok := r.Assigned(k2); !ok || id != alice.ID {
		t.Fatalf("second record assignment = %d, %v", id, ok)
	}

	resolved, unresolved := r.Finalize()
	if len(resolved) != 1 || resolved[0].Record != s2.Record {
		t.Fatalf("resolved = %#v", resolved)
	}
	if len(unresolved) != 1 || unresolved[0] != k1 {
		t.Fatalf("unresolved = %v", unresolved)
	}
}

func TestSelectUnassignedClears(t *testing.T) {
	alice := personNamed(1, "Alice Walker")
	s := exactSuggestion("alice@x.co", alice)
	r := NewResolver([]match.Suggestion{s}, []enrollment.Person{alice})
	r.Seed()

	r.Select(s.Record.Key(), Unassigned)

	if _, ok := r.Assigned(s.Record.Key()); ok {
		t.Fatal("assignment should be cleared")
	}
	if _, claimed := r.assignment.KeyFor(alice.ID); claimed {
		t.Fatal("person should be released")
	}
}

func TestSelectUnknownKeyIgnored(t *testing.T) {
	alice := personNamed(1, "Alice Walker")
	r := NewResolver(nil, []enrollment.Person{alice})
	r.Select("not-a-key", alice.ID)
	if r.assignment.Len() != 0 {
		t.Fatalf("assignment len = %d", r.assignment.Len())
	}
}

func TestBijectionHoldsUnderManySelections(t *testing.T) {
	people := make([]enrollment.Person, 0, 4)
	suggestions := make([]match.Suggestion, 0, 4)
	for i := int64(1); i <= 4; i++ {
		p := personNamed(i, "Person")
		people = append(people, p)
		suggestions = append(suggestions, match.Suggestion{
			Record: &records.ExternalRecord{ExternalID: "x", Name: "Person", Email: ""},
			Tier:   match.TierNone,
		})
	}
	// Distinct keys are derived from distinct emails.
	for i, s := range suggestions {
		s.Record.Email = []string{"a@x.co", "b@x.co", "c@x.co", "d@x.co"}[i]
	}
	r := NewResolver(suggestions, people)

	keys := make([]string, len(suggestions))
	for i, s := range suggestions {
		keys[i] = s.Record.Key()
	}

	moves := []struct {
		key string
		id  int64
	}{
		{keys[0], 1}, {keys[1], 2}, {keys[2], 1}, {keys[0], 2},
		{keys[3], 3}, {keys[1], 3}, {keys[2], 4},
	}
	for _, m := range moves {
		r.Select(m.key, m.id)

		seen := make(map[int64]string)
		for _, k := range keys {
			id, ok := r.Assigned(k)
			if !ok {
				continue
			}
			if prior, dup := seen[id]; dup {
				t.Fatalf("person %d held by both %q and %q", id, prior, k)
			}
			seen[id] = k
		}
	}
}

func TestAvailablePeopleExcludesClaimed(t *testing.T) {
	alice := personNamed(1, "Alice Walker")
	bob := personNamed(2, "Bob Jones")
	s := exactSuggestion("alice@x.co", alice)
	r := NewResolver([]match.Suggestion{s}, []enrollment.Person{alice, bob})
	r.Seed()

	available := r.AvailablePeople()
	if len(available) != 1 || available[0].ID != bob.ID {
		t.Fatalf("available = %#v", available)
	}
}

func TestNewResolverCollapsesDuplicateKeys(t *testing.T) {
	alice := personNamed(1, "Alice Walker")
	first := exactSuggestion("alice@x.co", alice)
	second := exactSuggestion("ALICE@x.co", alice)

	r := NewResolver([]match.Suggestion{first, second}, []enrollment.Person{alice})
	if len(r.order) != 1 {
		t.Fatalf("order = %v, want one collapsed entry", r.order)
	}
	r.Seed()
	resolved, unresolved := r.Finalize()
	if len(resolved) != 1 || len(unresolved) != 0 {
		t.Fatalf("resolved = %d, unresolved = %d", len(resolved), len(unresolved))
	}
	if resolved[0].Record != first.Record {
		t.Fatal("expected the first-seen record to win")
	}
}
