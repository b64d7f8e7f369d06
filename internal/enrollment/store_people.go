package enrollment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"rollmatch/internal/records"
)

// AddPerson inserts an enrolled person. Email is lowercased and must be
// unique; a valid shape is required since email is the primary identity key.
func (s *Store) AddPerson(ctx context.Context, name, email string) (*Person, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	if name == "" {
		return nil, errors.New("person name is required")
	}
	if !records.ValidEmail(email) {
		return nil, fmt.Errorf("invalid email %q", email)
	}

	now := time.Now().UTC().Format(time.RFC3339Nano)
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO people (name, email, active, created_at, updated_at) VALUES (?, ?, 1, ?, ?)`,
		name, email, now, now,
	)
	if err != nil {
		return nil, fmt.Errorf("insert person: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetPerson(ctx, id)
}

// GetPerson fetches a person by ID.
func (s *Store) GetPerson(ctx context.Context, id int64) (*Person, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, email, active, created_at, updated_at FROM people WHERE id = ?`, id)
	person, err := scanPerson(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("person %d: %w", id, ErrNotFound)
	}
	return person, err
}

// FindByEmail fetches a person by email, case-insensitively. Returns nil
// without error when no person has the address.
func (s *Store) FindByEmail(ctx context.Context, email string) (*Person, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, email, active, created_at, updated_at FROM people WHERE email = ?`,
		strings.ToLower(strings.TrimSpace(email)))
	person, err := scanPerson(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return person, err
}

// ListPeople returns enrolled people ordered by name. When includeInactive is
// false, deactivated people are omitted.
func (s *Store) ListPeople(ctx context.Context, includeInactive bool) ([]Person, error) {
	query := `SELECT id, name, email, active, created_at, updated_at FROM people`
	if !includeInactive {
		query += ` WHERE active = 1`
	}
	query += ` ORDER BY name COLLATE NOCASE, id`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list people: %w", err)
	}
	defer rows.Close()

	var people []Person
	for rows.Next() {
		person, err := scanPerson(rows)
		if err != nil {
			return nil, err
		}
		people = append(people, *person)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate people: %w", err)
	}
	return people, nil
}

// SetActive toggles a person's eligibility for matching and assignment.
func (s *Store) SetActive(ctx context.Context, id int64, active bool) error {
	now := time.Now().UTC().Format(time.RFC3339Nano)
	res, err := s.db.ExecContext(ctx,
		`UPDATE people SET active = ?, updated_at = ? WHERE id = ?`,
		boolToInt(active), now, id)
	if err != nil {
		return fmt.Errorf("set active: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("person %d: %w", id, ErrNotFound)
	}
	return nil
}

// ImportRoster bulk-inserts roster records, skipping rows whose email is
// already enrolled. Returns how many were added and how many skipped.
func (s *Store) ImportRoster(ctx context.Context, recs []*records.ExternalRecord) (added, skipped int, err error) {
	for _, rec := range recs {
		if rec.Email == "" || rec.Name == "" {
			skipped++
			continue
		}
		existing, findErr := s.FindByEmail(ctx, rec.Email)
		if findErr != nil {
			return added, skipped, findErr
		}
		if existing != nil {
			skipped++
			continue
		}
		if _, addErr := s.AddPerson(ctx, rec.Name, rec.Email); addErr != nil {
			return added, skipped, addErr
		}
		added++
	}
	return added, skipped, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPerson(row rowScanner) (*Person, error) {
	var (
		person    Person
		active    int
		createdAt string
		updatedAt string
	)
	if err := row.Scan(&person.ID, &person.Name, &person.Email, &active, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan person: %w", err)
	}
	person.Active = active != 0
	person.CreatedAt = parseTimestamp(createdAt)
	person.UpdatedAt = parseTimestamp(updatedAt)
	return &person, nil
}

func parseTimestamp(value string) time.Time {
	ts, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}
	}
	return ts
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
