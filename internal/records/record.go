package records

import (
	"strings"

	"github.com/google/uuid"

	"rollmatch/internal/person"
)

// ExternalRecord is one person-row parsed from an uploaded file: an
// attendance participant or a roster entrant. Email may be absent; Extra
// carries unrecognized columns verbatim.
type ExternalRecord struct {
	Name       string
	Email      string
	Phone      string
	ExternalID string
	Cohort     string
	Flag       bool
	Extra      map[string]string

	key string
}

// Key returns the record's dedup key: the lowercased email when present,
// else a key derived from the normalized name, else a random fallback frozen
// at build time. Two records with the same key describe the same physical
// person within one import.
func (r *ExternalRecord) Key() string {
	if r.key == "" {
		r.key = computeKey(r.Name, r.Email)
	}
	return r.key
}

func computeKey(name, email string) string {
	if email = strings.ToLower(strings.TrimSpace(email)); email != "" {
		return email
	}
	if normalized := person.Normalize(name); normalized != "" {
		return "name:" + normalized
	}
	return "row:" + uuid.NewString()
}
