// Package credentials finds the bearer token used against the vendor API:
// a saved token file first, then the session cookie in the browser's
// cookie store.
package credentials

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/okian/swingsheet/internal/adapters/history"
	"github.com/okian/swingsheet/pkg/logger"

	_ "modernc.org/sqlite" // registers the "sqlite" driver
)

const (
	defaultTokenFile  = "trackman_token.txt"
	defaultDomain     = "trackmangolf.com"
	sessionCookieName = "appsession"

	cookieQuery = `SELECT name, value, encrypted_value FROM cookies WHERE host_key LIKE ?`

	tokenFilePerm = 0o600
	tokenDirPerm  = 0o755
)

// Option applies a configuration option to the Store.
type Option func(*Store)

// WithLogger sets the logger.
func WithLogger(l logger.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.log = l
		}
	}
}

// WithTokenFile sets where the token is saved.
func WithTokenFile(path string) Option {
	return func(s *Store) {
		if path = strings.TrimSpace(path); path != "" {
			s.tokenFile = path
		}
	}
}

// WithCookieStore sets the browser cookie database to fall back to.
func WithCookieStore(path string) Option {
	return func(s *Store) {
		s.cookies = strings.TrimSpace(path)
	}
}

// WithDomain sets the cookie host filter.
func WithDomain(domain string) Option {
	return func(s *Store) {
		if domain = strings.TrimSpace(domain); domain != "" {
			s.domain = domain
		}
	}
}

// Store resolves and persists the bearer token.
type Store struct {
	log       logger.Logger
	tokenFile string
	cookies   string
	domain    string
}

// NewStore creates a new Store with configuration options.
func NewStore(opts ...Option) *Store {
	s := &Store{
		log:       logger.Nop(),
		tokenFile: defaultTokenFile,
		domain:    defaultDomain,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Token returns the saved token, or extracts one from the cookie store and
// saves it for the next run.
func (s *Store) Token(ctx context.Context) (string, error) {
	token, err := s.Load()
	if err == nil {
		return token, nil
	}
	if !errors.Is(err, ErrAuthenticationMissing) {
		return "", err
	}

	if s.cookies == "" {
		return "", ErrAuthenticationMissing
	}
	token, err = s.FromCookies(ctx)
	if err != nil {
		return "", err
	}
	if err := s.Save(token); err != nil {
		s.log.Warn(ctx, "could not save token", logger.String("path", s.tokenFile), logger.Error(err))
	}
	return token, nil
}

// Load reads the saved token file.
func (s *Store) Load() (string, error) {
	data, err := os.ReadFile(s.tokenFile)
	if errors.Is(err, fs.ErrNotExist) {
		return "", ErrAuthenticationMissing
	}
	if err != nil {
		return "", fmt.Errorf("read token file: %w", err)
	}
	token := strings.TrimSpace(string(data))
	if token == "" {
		return "", ErrAuthenticationMissing
	}
	return token, nil
}

// Save writes token to the token file, replacing any previous one.
func (s *Store) Save(token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return ErrAuthenticationMissing
	}
	if dir := filepath.Dir(s.tokenFile); dir != "." {
		if err := os.MkdirAll(dir, tokenDirPerm); err != nil {
			return fmt.Errorf("create token directory: %w", err)
		}
	}
	if err := os.WriteFile(s.tokenFile, []byte(token), tokenFilePerm); err != nil {
		return fmt.Errorf("write token file: %w", err)
	}
	return nil
}

// FromCookies reads the session cookie from a private copy of the cookie
// store. A cookie whose plain value is empty falls back to its stored
// encrypted bytes read as text.
func (s *Store) FromCookies(ctx context.Context) (string, error) {
	snap, err := history.TakeSnapshot(s.cookies, "", s.log)
	if err != nil {
		return "", err
	}
	defer snap.Release()

	db, err := sql.Open("sqlite", snap.Path())
	if err != nil {
		return "", fmt.Errorf("%w: %w", history.ErrStoreUnavailable, err)
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, cookieQuery, "%"+s.domain+"%")
	if err != nil {
		return "", fmt.Errorf("%w: %w", history.ErrStoreUnavailable, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			name, value sql.NullString
			encrypted   []byte
		)
		if err := rows.Scan(&name, &value, &encrypted); err != nil {
			continue
		}
		if name.String != sessionCookieName {
			continue
		}
		if v := strings.TrimSpace(value.String); v != "" {
			return v, nil
		}
		if v := strings.TrimSpace(string(encrypted)); v != "" {
			return v, nil
		}
	}
	if err := rows.Err(); err != nil {
		return "", fmt.Errorf("%w: %w", history.ErrStoreUnavailable, err)
	}
	return "", ErrAuthenticationMissing
}
