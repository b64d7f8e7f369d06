package ingest

import (
	"sort"
	"testing"
)

func TestMapHeadersRecognizesCommonColumns(t *testing.T) {
	cases := []struct {
		header string
		want   Field
	}{
		{"Legal Full Name", FieldFullName},
		{"Full Name", FieldFullName},
		{"Name", FieldFullName},
		{"First Name", FieldFirstName},
		{"first name", FieldFirstName},
		{"Surname", FieldLastName},
		{"Last Name", FieldLastName},
		{"Middle Initial", FieldMiddleName},
		{"Email Address", FieldEmail},
		{"Student Email", FieldEmail},
		{"E-mail", FieldEmail},
		{"Phone Number", FieldPhone},
		{"Mobile", FieldPhone},
		{"Student ID", FieldExternalID},
		{"Participant ID", FieldExternalID},
		{"Grade Level", FieldCohort},
		{"Cohort", FieldCohort},
		{"Signed Up For Class", FieldFlag},
		{"RSVP", FieldFlag},
	}
	for _, tc := range cases {
		mapping := MapHeaders([]string{tc.header})
		if got := mapping.FieldFor(tc.header); got != tc.want {
			t.Errorf("header %q: got %q, want %q", tc.header, got, tc.want)
		}
	}
}

func TestMapHeadersOrderIndependent(t *testing.T) {
	headers := []string{"Student Email", "Last Name", "First Name"}
	want := map[string]Field{
		"Student Email": FieldEmail,
		"Last Name":     FieldLastName,
		"First Name":    FieldFirstName,
	}

	permuted := append([]string(nil), headers...)
	sort.Sort(sort.Reverse(sort.StringSlice(permuted)))

	for _, order := range [][]string{headers, permuted} {
		mapping := MapHeaders(order)
		for header, field := range want {
			if got := mapping.FieldFor(header); got != field {
				t.Errorf("order %v header %q: got %q, want %q", order, header, got, field)
			}
		}
	}
}

func TestMapHeadersExcludesOrganizationalNames(t *testing.T) {
	for _, header := range []string{"Church Name", "Organization Name", "Company Name", "Institution Name"} {
		mapping := MapHeaders([]string{header})
		if got := mapping.FieldFor(header); got == FieldFullName {
			t.Errorf("header %q mapped to full_name", header)
		}
	}
}

func TestMapHeadersPassthroughKeepsHeader(t *testing.T) {
	mapping := MapHeaders([]string{"joinTime", "leaveTime", "duration"})
	for _, header := range []string{"joinTime", "leaveTime", "duration"} {
		field := mapping.FieldFor(header)
		if field.Semantic() {
			t.Errorf("header %q unexpectedly semantic: %q", header, field)
		}
		if string(field) != header {
			t.Errorf("header %q: got %q, want itself", header, field)
		}
	}
}

func TestFieldMappingValuePicksFirstNonEmpty(t *testing.T) {
	mapping := MapHeaders([]string{"Email", "Email Address"})
	row := RawRow{"Email": "", "Email Address": "a@b.co"}
	if got := mapping.Value(row, FieldEmail); got != "a@b.co" {
		t.Fatalf("got %q", got)
	}
}

func TestFieldMappingExtras(t *testing.T) {
	mapping := MapHeaders([]string{"Full Name", "joinTime"})
	row := RawRow{"Full Name": "Ada Lovelace", "joinTime": "10:02"}
	extras := mapping.Extras(row)
	if len(extras) != 1 || extras["joinTime"] != "10:02" {
		t.Fatalf("unexpected extras: %#v", extras)
	}
}

func TestParseBool(t *testing.T) {
	for _, value := range []string{"yes", "Yes", "TRUE", "1", "y", "Y "} {
		if !ParseBool(value) {
			t.Errorf("ParseBool(%q) = false", value)
		}
	}
	for _, value := range []string{"", "no", "0", "maybe", "false"} {
		if ParseBool(value) {
			t.Errorf("ParseBool(%q) = true", value)
		}
	}
}
