package records

import (
	"strings"
	"testing"

	"rollmatch/internal/ingest"
)

func buildFrom(t *testing.T, csv string, opts BuildOptions) BuildResult {
	t.Helper()
	table, err := ingest.Read(strings.NewReader(csv), ',')
	if err != nil {
		t.Fatalf("ingest.Read: %v", err)
	}
	return Build(table, ingest.MapHeaders(table.Headers), opts)
}

func TestBuildFullNameVerbatim(t *testing.T) {
	result := buildFrom(t, "Full Name,Email\nAda Lovelace,ada@example.com\n", BuildOptions{})
	if len(result.Records) != 1 {
		t.Fatalf("records: %d", len(result.Records))
	}
	if result.Records[0].Name != "Ada Lovelace" {
		t.Fatalf("name: %q", result.Records[0].Name)
	}
	if result.Records[0].Email != "ada@example.com" {
		t.Fatalf("email: %q", result.Records[0].Email)
	}
}

func TestBuildNameFallbackChain(t *testing.T) {
	cases := []struct {
		name string
		csv  string
		want string
	}{
		{"first middle last short", "First Name,Middle Name,Last Name,Email\nAda,M,Lovelace,a@b.co\n", "Ada M. Lovelace"},
		{"first middle last long", "First Name,Middle Name,Last Name,Email\nAda,Marie,Lovelace,a@b.co\n", "Ada Marie Lovelace"},
		{"first last", "First Name,Last Name,Email\nAda,Lovelace,a@b.co\n", "Ada Lovelace"},
		{"first only", "First Name,Email\nAda,a@b.co\n", "Ada"},
		{"last only", "Last Name,Email\nLovelace,a@b.co\n", "Lovelace"},
	}
	for _, tc := range cases {
		result := buildFrom(t, tc.csv, BuildOptions{})
		if len(result.Records) != 1 {
			t.Fatalf("%s: records %d", tc.name, len(result.Records))
		}
		if got := result.Records[0].Name; got != tc.want {
			t.Errorf("%s: name %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestBuildDropsRowWithoutNameOrEmail(t *testing.T) {
	result := buildFrom(t, "Full Name,Email\nBob Jones,bob@x.com\n,\n", BuildOptions{})
	if len(result.Records) != 1 {
		t.Fatalf("records: %d", len(result.Records))
	}
	if result.Dropped != 1 {
		t.Fatalf("dropped: %d, want 1", result.Dropped)
	}
	if len(result.RowErrors) != 0 {
		t.Fatalf("row errors: %v", result.RowErrors)
	}
}

func TestBuildInvalidEmailIsRowError(t *testing.T) {
	result := buildFrom(t, "Full Name,Email\nAda Lovelace,not-an-email\n", BuildOptions{})
	if len(result.RowErrors) != 1 {
		t.Fatalf("row errors: %v", result.RowErrors)
	}
	if len(result.Records) != 0 {
		t.Fatalf("records: %d", len(result.Records))
	}
	if !strings.Contains(result.RowErrors[0].Error(), "not-an-email") {
		t.Fatalf("error should name the value: %v", result.RowErrors[0])
	}
}

func TestBuildKeepsNameOnlyRowsForMatching(t *testing.T) {
	result := buildFrom(t, "Full Name,Email\nMatthew Young,\n", BuildOptions{})
	if len(result.Records) != 1 {
		t.Fatalf("records: %d", len(result.Records))
	}
	if result.Records[0].Key() != "name:matthew young" {
		t.Fatalf("key: %q", result.Records[0].Key())
	}
}

func TestBuildRequireEmailDropsNameOnlyRows(t *testing.T) {
	result := buildFrom(t, "Full Name,Email\nMatthew Young,\n", BuildOptions{RequireEmail: true})
	if len(result.Records) != 0 {
		t.Fatalf("records: %d", len(result.Records))
	}
	if result.Dropped != 1 {
		t.Fatalf("dropped: %d", result.Dropped)
	}
}

func TestBuildDuplicateEmailWarning(t *testing.T) {
	csv := "Full Name,Email\nAlice A,alice@x.com\nAlice B,ALICE@X.COM\n"
	result := buildFrom(t, csv, BuildOptions{})
	if len(result.Records) != 2 {
		t.Fatalf("duplicates must be kept, got %d records", len(result.Records))
	}
	var hits int
	for _, warning := range result.Warnings {
		if strings.Contains(warning, "alice@x.com") && strings.Contains(warning, "2") {
			hits++
		}
	}
	if hits != 1 {
		t.Fatalf("expected exactly one duplicate warning, warnings: %v", result.Warnings)
	}
}

func TestBuildDuplicateNameWarning(t *testing.T) {
	csv := "Full Name,Email\nBob Jones,bob1@x.com\nbob jones,bob2@x.com\n"
	result := buildFrom(t, csv, BuildOptions{})
	var found bool
	for _, warning := range result.Warnings {
		if strings.Contains(warning, "duplicate name") {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected duplicate name warning, warnings: %v", result.Warnings)
	}
}

func TestRecordKeyPrefersEmail(t *testing.T) {
	rec := &ExternalRecord{Name: "Bob Jones", Email: "Bob@X.com"}
	if got := rec.Key(); got != "bob@x.com" {
		t.Fatalf("key: %q", got)
	}
}

func TestRecordKeyRandomFallbackIsStable(t *testing.T) {
	rec := &ExternalRecord{}
	first := rec.Key()
	if !strings.HasPrefix(first, "row:") {
		t.Fatalf("key: %q", first)
	}
	if rec.Key() != first {
		t.Fatal("fallback key must be frozen after first use")
	}
}

func TestValidEmail(t *testing.T) {
	valid := []string{"a@b.co", "first.last@sub.example.com", "x+tag@y.org"}
	invalid := []string{"", "plain", "a@b", "a b@c.co", "@x.co", "a@.co "}
	for _, email := range valid {
		if !ValidEmail(email) {
			t.Errorf("ValidEmail(%q) = false", email)
		}
	}
	for _, email := range invalid {
		if ValidEmail(email) {
			t.Errorf("ValidEmail(%q) = true", email)
		}
	}
}
