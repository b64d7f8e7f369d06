// Package testsupport provides shared helpers for package tests: temp-backed
// configs, store lifecycle management, and roster seeding.
package testsupport

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"rollmatch/internal/config"
	"rollmatch/internal/enrollment"
)

// NewConfig produces a config seeded with unique temp directories per test.
func NewConfig(t testing.TB) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.DataDir = filepath.Join(base, "data")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	return &cfg
}

// MustOpenStore opens an enrollment.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *enrollment.Store {
	t.Helper()

	store, err := enrollment.Open(cfg)
	if err != nil {
		t.Fatalf("enrollment.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// AddPerson enrolls a person for tests using the provided store.
func AddPerson(t testing.TB, store *enrollment.Store, name, email string) *enrollment.Person {
	t.Helper()

	person, err := store.AddPerson(context.Background(), name, email)
	if err != nil {
		t.Fatalf("store.AddPerson: %v", err)
	}
	return person
}

// WriteCSV writes content to a temp file and returns its path.
func WriteCSV(t testing.TB, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "import.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	return path
}
