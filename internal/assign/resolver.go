package assign

import (
	"rollmatch/internal/enrollment"
	"rollmatch/internal/match"
	"rollmatch/internal/records"
)

// Unassigned is the sentinel person ID that clears a record's assignment.
const Unassigned int64 = 0

// Selection is one explicit reviewer override. Overrides carry meaning in
// sequence: applying them in a different order can hand a contested person to
// a different record, so callers must preserve the order the reviewer gave.
type Selection struct {
	Key      string
	PersonID int64
}

// Resolution is one finalized pairing ready for persistence.
type Resolution struct {
	PersonID int64
	Record   *records.ExternalRecord
}

// Resolver turns per-record match suggestions into a conflict-free one-to-one
// mapping, incorporating human overrides. Each import run gets its own
// Resolver; it is not safe for concurrent use.
type Resolver struct {
	assignment  *Assignment
	suggestions map[string]match.Suggestion
	order       []string
	people      []enrollment.Person
}

// NewResolver indexes suggestions by dedup key, collapsing records that share
// one so the same physical person never appears twice in the assignment's
// domain. people is the full roster used to drive reviewer-facing pickers.
func NewResolver(suggestions []match.Suggestion, people []enrollment.Person) *Resolver {
	r := &Resolver{
		assignment:  newAssignment(),
		suggestions: make(map[string]match.Suggestion, len(suggestions)),
		people:      append([]enrollment.Person(nil), people...),
	}
	for _, suggestion := range suggestions {
		key := suggestion.Record.Key()
		if _, seen := r.suggestions[key]; seen {
			continue
		}
		r.suggestions[key] = suggestion
		r.order = append(r.order, key)
	}
	return r
}

// Seed auto-assigns every exact match and, failing that, the top candidate of
// every high-confidence suggestion. Runs before human review and is
// idempotent: reseeding from the same suggestions yields the same mapping.
func (r *Resolver) Seed() {
	for _, key := range r.order {
		suggestion := r.suggestions[key]
		switch {
		case suggestion.Exact != nil:
			r.assignment.set(key, suggestion.Exact.ID)
		case suggestion.Tier == match.TierHigh && len(suggestion.Candidates) > 0:
			r.assignment.set(key, suggestion.Candidates[0].Person.ID)
		}
	}
}

// Select assigns personID to the record identified by key. If the person is
// already claimed by another record, that claim is removed first; an
// assignment conflict is resolved, never raised. Passing Unassigned clears
// the record's assignment. Unknown keys are ignored.
func (r *Resolver) Select(key string, personID int64) {
	if _, ok := r.suggestions[key]; !ok {
		return
	}
	if personID == Unassigned {
		r.assignment.clear(key)
		return
	}
	r.assignment.set(key, personID)
}

// Assigned returns the person currently assigned to key.
func (r *Resolver) Assigned(key string) (int64, bool) {
	return r.assignment.PersonFor(key)
}

// AvailablePeople lists the roster minus everyone currently claimed, for
// pickers that should not offer an already-assigned person. An explicit
// Select can still steal; exposing that override is the UI's call.
func (r *Resolver) AvailablePeople() []enrollment.Person {
	available := make([]enrollment.Person, 0, len(r.people))
	for _, p := range r.people {
		if _, claimed := r.assignment.KeyFor(p.ID); claimed {
			continue
		}
		available = append(available, p)
	}
	return available
}

// Finalize returns the completed mapping in suggestion order plus the keys of
// records that remain unresolved.
func (r *Resolver) Finalize() (resolved []Resolution, unresolved []string) {
	for _, key := range r.order {
		personID, ok := r.assignment.PersonFor(key)
		if !ok {
			unresolved = append(unresolved, key)
			continue
		}
		suggestion := r.suggestions[key]
		resolved = append(resolved, Resolution{PersonID: personID, Record: suggestion.Record})
	}
	return resolved, unresolved
}
