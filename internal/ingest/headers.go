package ingest

import "strings"

// Field identifies the semantic meaning of a column. Headers that match no
// catalog rule keep their own name as the field, marking them as passthrough.
type Field string

const (
	FieldFullName   Field = "full_name"
	FieldFirstName  Field = "first_name"
	FieldLastName   Field = "last_name"
	FieldMiddleName Field = "middle_name"
	FieldEmail      Field = "email"
	FieldPhone      Field = "phone"
	FieldExternalID Field = "external_id"
	FieldCohort     Field = "grade_or_cohort"
	FieldFlag       Field = "boolean_flag"
)

var semanticFields = map[Field]struct{}{
	FieldFullName:   {},
	FieldFirstName:  {},
	FieldLastName:   {},
	FieldMiddleName: {},
	FieldEmail:      {},
	FieldPhone:      {},
	FieldExternalID: {},
	FieldCohort:     {},
	FieldFlag:       {},
}

// Semantic reports whether f is one of the recognized field tags rather than
// a passthrough column name.
func (f Field) Semantic() bool {
	_, ok := semanticFields[f]
	return ok
}

type headerRule struct {
	pattern  string
	field    Field
	priority int
}

// exactMatchPriority is the rule priority at or above which an exact header
// match is accepted without consulting the rest of the catalog.
const exactMatchPriority = 8

// headerCatalog is the single source of truth for header recognition, shared
// by attendance and roster imports. Order matters: containment ties at equal
// priority keep the rule found first.
var headerCatalog = []headerRule{
	{"legal full name", FieldFullName, 10},
	{"full name", FieldFullName, 9},
	{"participant name", FieldFullName, 8},
	{"student name", FieldFullName, 8},
	{"display name", FieldFullName, 7},

	{"first name", FieldFirstName, 9},
	{"firstname", FieldFirstName, 8},
	{"given name", FieldFirstName, 8},
	{"preferred first", FieldFirstName, 7},

	{"last name", FieldLastName, 9},
	{"lastname", FieldLastName, 8},
	{"surname", FieldLastName, 8},
	{"family name", FieldLastName, 8},

	{"middle name", FieldMiddleName, 9},
	{"middle initial", FieldMiddleName, 8},

	{"email address", FieldEmail, 10},
	{"e-mail", FieldEmail, 9},
	{"email", FieldEmail, 8},

	{"phone number", FieldPhone, 9},
	{"mobile", FieldPhone, 8},
	{"phone", FieldPhone, 8},

	{"student id", FieldExternalID, 9},
	{"participant id", FieldExternalID, 9},
	{"member id", FieldExternalID, 8},
	{"user id", FieldExternalID, 8},

	{"grade level", FieldCohort, 9},
	{"grade", FieldCohort, 8},
	{"cohort", FieldCohort, 8},
	{"class year", FieldCohort, 8},

	{"signed up", FieldFlag, 8},
	{"registered", FieldFlag, 8},
	{"rsvp", FieldFlag, 8},
	{"opted in", FieldFlag, 7},

	// Single-token fallbacks. These only win when nothing stronger matches.
	{"name", FieldFullName, 1},
	{"first", FieldFirstName, 2},
	{"last", FieldLastName, 2},
	{"middle", FieldMiddleName, 2},
	{"mail", FieldEmail, 1},
	{"cell", FieldPhone, 2},
	{"id", FieldExternalID, 1},
	{"year", FieldCohort, 1},
}

// organizationalWords disqualify a header from mapping to full_name: a
// "Church Name" or "Company Name" column is not a person.
var organizationalWords = []string{"church", "organization", "company", "institution"}

// FieldMapping resolves each raw header of one file to its semantic field.
// It is built once per file and read-only afterwards.
type FieldMapping struct {
	headers []string
	fields  map[string]Field
}

// MapHeaders classifies every raw header against the catalog. The result
// depends only on the header set, not on row contents or header order.
func MapHeaders(headers []string) FieldMapping {
	mapping := FieldMapping{
		headers: append([]string(nil), headers...),
		fields:  make(map[string]Field, len(headers)),
	}
	for _, header := range headers {
		mapping.fields[header] = classifyHeader(header)
	}
	return mapping
}

func classifyHeader(header string) Field {
	normalized := strings.ToLower(strings.TrimSpace(header))
	if normalized == "" {
		return Field(header)
	}

	var best *headerRule
	for i := range headerCatalog {
		rule := &headerCatalog[i]
		if rule.field == FieldFullName && containsOrganizationalWord(normalized) {
			continue
		}
		if rule.priority >= exactMatchPriority && normalized == rule.pattern {
			return rule.field
		}
		if strings.Contains(normalized, rule.pattern) {
			if best == nil || rule.priority > best.priority {
				best = rule
			}
		}
	}
	if best != nil {
		return best.field
	}
	return Field(header)
}

func containsOrganizationalWord(normalized string) bool {
	for _, word := range organizationalWords {
		if strings.Contains(normalized, word) {
			return true
		}
	}
	return false
}

// FieldFor returns the semantic field assigned to a raw header.
func (m FieldMapping) FieldFor(header string) Field {
	if field, ok := m.fields[header]; ok {
		return field
	}
	return Field(header)
}

// Value returns the first non-empty cell of row whose header resolved to
// field, scanning columns in file order.
func (m FieldMapping) Value(row RawRow, field Field) string {
	for _, header := range m.headers {
		if m.fields[header] != field {
			continue
		}
		if value := strings.TrimSpace(row[header]); value != "" {
			return value
		}
	}
	return ""
}

// Extras collects the passthrough cells of row: every column whose header
// matched no catalog rule, preserved verbatim.
func (m FieldMapping) Extras(row RawRow) map[string]string {
	extras := make(map[string]string)
	for _, header := range m.headers {
		if m.fields[header].Semantic() {
			continue
		}
		if value, ok := row[header]; ok && strings.TrimSpace(value) != "" {
			extras[header] = value
		}
	}
	return extras
}
