package records

import (
	"fmt"
	"regexp"
	"strings"

	"rollmatch/internal/ingest"
	"rollmatch/internal/person"
)

// emailShape is the minimal local@domain.tld check. Anything fancier rejects
// real addresses people actually type into spreadsheets.
var emailShape = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// ValidEmail reports whether value has the local@domain.tld shape.
func ValidEmail(value string) bool {
	return emailShape.MatchString(strings.TrimSpace(value))
}

// BuildOptions controls row validation strictness.
type BuildOptions struct {
	// RequireEmail drops rows lacking a valid email instead of keeping them
	// for fuzzy matching. Roster imports set this; attendance imports do
	// not, since participants often sign in under name only.
	RequireEmail bool
}

// BuildResult carries the typed records plus everything the caller should
// surface to the user: advisory warnings, hard per-row errors, and the tally
// of rows dropped for being unusable.
type BuildResult struct {
	Records   []*ExternalRecord
	Warnings  []string
	RowErrors []error
	Dropped   int
}

// Build converts every row of table into an ExternalRecord using the field
// mapping. Rows identifying no person are dropped and tallied; malformed
// emails are collected as per-row errors. Warnings and errors are returned
// as data, never raised.
func Build(table *ingest.Table, mapping ingest.FieldMapping, opts BuildOptions) BuildResult {
	var result BuildResult

	for i, row := range table.Rows {
		line := i + 2 // 1-based, after the header line

		name := resolveName(row, mapping)
		email := mapping.Value(row, ingest.FieldEmail)

		if email != "" && !ValidEmail(email) {
			result.RowErrors = append(result.RowErrors, fmt.Errorf("row %d: invalid email %q", line, email))
			continue
		}
		if name == "" && email == "" {
			result.Dropped++
			continue
		}
		if opts.RequireEmail && email == "" {
			result.Dropped++
			continue
		}

		record := &ExternalRecord{
			Name:       name,
			Email:      strings.ToLower(email),
			Phone:      mapping.Value(row, ingest.FieldPhone),
			ExternalID: mapping.Value(row, ingest.FieldExternalID),
			Cohort:     mapping.Value(row, ingest.FieldCohort),
			Flag:       ingest.ParseBool(mapping.Value(row, ingest.FieldFlag)),
			Extra:      mapping.Extras(row),
		}
		record.Key()
		result.Records = append(result.Records, record)
	}

	if result.Dropped > 0 {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("%d row(s) dropped: no resolvable name or email", result.Dropped))
	}
	result.Warnings = append(result.Warnings, duplicateWarnings(result.Records)...)
	return result
}

// resolveName applies the name fallback chain: full name verbatim, then
// first+middle+last, then first alone, then last alone.
func resolveName(row ingest.RawRow, mapping ingest.FieldMapping) string {
	if full := mapping.Value(row, ingest.FieldFullName); full != "" {
		return full
	}

	first := mapping.Value(row, ingest.FieldFirstName)
	last := mapping.Value(row, ingest.FieldLastName)
	middle := mapping.Value(row, ingest.FieldMiddleName)

	switch {
	case first != "" && last != "":
		if middle == "" {
			return first + " " + last
		}
		return first + " " + formatMiddle(middle) + " " + last
	case first != "":
		return first
	case last != "":
		return last
	default:
		return ""
	}
}

// formatMiddle renders short middle values as an initial with a trailing
// period and spells longer ones out in full.
func formatMiddle(middle string) string {
	if len([]rune(middle)) <= 2 {
		return string([]rune(middle)[0:1]) + "."
	}
	return middle
}

// duplicateWarnings reports repeated emails (case-insensitive) and repeated
// normalized names, one warning per value. Duplicates stay in the record
// list; removal is the assignment layer's job.
func duplicateWarnings(recs []*ExternalRecord) []string {
	emailCounts := make(map[string]int)
	emailSeen := make(map[string]string)
	nameCounts := make(map[string]int)
	nameSeen := make(map[string]string)
	var emailOrder, nameOrder []string

	for _, rec := range recs {
		if rec.Email != "" {
			key := strings.ToLower(rec.Email)
			if emailCounts[key] == 0 {
				emailOrder = append(emailOrder, key)
				emailSeen[key] = rec.Email
			}
			emailCounts[key]++
		}
		if normalized := person.Normalize(rec.Name); normalized != "" {
			if nameCounts[normalized] == 0 {
				nameOrder = append(nameOrder, normalized)
				nameSeen[normalized] = rec.Name
			}
			nameCounts[normalized]++
		}
	}

	var warnings []string
	for _, key := range emailOrder {
		if count := emailCounts[key]; count > 1 {
			warnings = append(warnings, fmt.Sprintf("duplicate email %s appears %d times", emailSeen[key], count))
		}
	}
	for _, key := range nameOrder {
		if count := nameCounts[key]; count > 1 {
			warnings = append(warnings, fmt.Sprintf("duplicate name %s appears %d times", nameSeen[key], count))
		}
	}
	return warnings
}
