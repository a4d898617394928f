// Package profile implements C12: a SQLite-backed store of per-spec
// profiles (named server/auth-scheme presets) and their bearer tokens,
// adapted from the teacher's history/sqlite.Store for a much narrower
// two-table contract.
package profile

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	_ "modernc.org/sqlite"

	"github.com/AndrewBarba/specli/internal/request"
)

// Store implements request.ProfileLookup against a SQLite database, plus
// the write-side operations the `login`/`logout` built-ins need.
type Store struct {
	mu sync.RWMutex
	db *sql.DB
}

// Open opens (creating if necessary) the profile store at path. Passing
// ":memory:" creates a private in-memory store, useful for tests.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("profile: open: %w", err)
	}
	s := &Store{db: db}
	if err := s.initialize(); err != nil {
		db.Close()
		return nil, fmt.Errorf("profile: initialize: %w", err)
	}
	return s, nil
}

func (s *Store) initialize() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS profiles (
			spec_id     TEXT NOT NULL,
			name        TEXT NOT NULL,
			server      TEXT,
			auth_scheme TEXT,
			PRIMARY KEY (spec_id, name)
		);

		CREATE TABLE IF NOT EXISTS tokens (
			spec_id      TEXT NOT NULL,
			profile_name TEXT NOT NULL,
			token        TEXT NOT NULL,
			PRIMARY KEY (spec_id, profile_name)
		);
	`)
	return err
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveProfile upserts a profile for specID.
func (s *Store) SaveProfile(ctx context.Context, specID string, p request.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO profiles (spec_id, name, server, auth_scheme) VALUES (?, ?, ?, ?)
		ON CONFLICT(spec_id, name) DO UPDATE SET server = excluded.server, auth_scheme = excluded.auth_scheme
	`, specID, p.Name, p.Server, p.AuthScheme)
	if err != nil {
		return fmt.Errorf("profile: save: %w", err)
	}
	return nil
}

// SaveToken upserts the bearer token for (specID, profileName), used by the
// `login` built-in.
func (s *Store) SaveToken(ctx context.Context, specID, profileName, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO tokens (spec_id, profile_name, token) VALUES (?, ?, ?)
		ON CONFLICT(spec_id, profile_name) DO UPDATE SET token = excluded.token
	`, specID, profileName, token)
	if err != nil {
		return fmt.Errorf("profile: save token: %w", err)
	}
	return nil
}

// DeleteToken removes a stored token, used by the `logout` built-in. It is
// not an error to delete a token that was never stored.
func (s *Store) DeleteToken(ctx context.Context, specID, profileName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.ExecContext(ctx, `DELETE FROM tokens WHERE spec_id = ? AND profile_name = ?`, specID, profileName)
	if err != nil {
		return fmt.Errorf("profile: delete token: %w", err)
	}
	return nil
}

// GetProfile implements request.ProfileLookup.
func (s *Store) GetProfile(name string) (*request.Profile, error) {
	return s.GetProfileForSpec(context.Background(), "", name)
}

// GetProfileForSpec reads a named profile scoped to specID. Used directly
// by the CLI layer, which always knows the active spec; GetProfile exists
// only to satisfy request.ProfileLookup for single-spec callers.
func (s *Store) GetProfileForSpec(ctx context.Context, specID, name string) (*request.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `
		SELECT server, auth_scheme FROM profiles WHERE spec_id = ? AND name = ?
	`, specID, name)

	var p request.Profile
	p.Name = name
	var server, authScheme sql.NullString
	if err := row.Scan(&server, &authScheme); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("profile: get: %w", err)
	}
	p.Server = server.String
	p.AuthScheme = authScheme.String
	return &p, nil
}

// ReadProfiles implements request.ProfileLookup's read_profiles() operation.
func (s *Store) ReadProfiles(specID string) ([]request.Profile, *request.Profile, error) {
	return s.ReadProfilesForSpec(context.Background(), specID)
}

// ReadProfilesForSpec lists every stored profile for specID, plus the
// default profile (the empty-named one), if one has been saved. Used
// directly by the CLI layer, which always knows the active spec;
// ReadProfiles exists only to satisfy request.ProfileLookup.
func (s *Store) ReadProfilesForSpec(ctx context.Context, specID string) ([]request.Profile, *request.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT name, server, auth_scheme FROM profiles WHERE spec_id = ? ORDER BY name
	`, specID)
	if err != nil {
		return nil, nil, fmt.Errorf("profile: read profiles: %w", err)
	}
	defer rows.Close()

	var profiles []request.Profile
	var def *request.Profile
	for rows.Next() {
		var p request.Profile
		var server, authScheme sql.NullString
		if err := rows.Scan(&p.Name, &server, &authScheme); err != nil {
			return nil, nil, fmt.Errorf("profile: read profiles: %w", err)
		}
		p.Server = server.String
		p.AuthScheme = authScheme.String
		profiles = append(profiles, p)
		if p.Name == "" {
			found := p
			def = &found
		}
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("profile: read profiles: %w", err)
	}
	return profiles, def, nil
}

// GetToken implements request.ProfileLookup.
func (s *Store) GetToken(specID, profileName string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(context.Background(), `
		SELECT token FROM tokens WHERE spec_id = ? AND profile_name = ?
	`, specID, profileName)

	var token string
	if err := row.Scan(&token); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("profile: get token: %w", err)
	}
	return token, nil
}

var _ request.ProfileLookup = (*Store)(nil)
