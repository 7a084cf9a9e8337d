// Package token stores the optional GitHub bearer token.
package token

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/naveenspark/gitone/internal/kv"
)

// Key is the record the token is saved under.
const Key = "github_token"

// ErrEmpty is returned when saving a blank token.
var ErrEmpty = errors.New("token is empty")

// Source says where the active token came from.
type Source string

const (
	SourceNone   Source = "none"
	SourceEnv    Source = "env"
	SourceStored Source = "stored"
)

// Store reads and writes the token record. Environment variables, when set,
// take precedence over the stored value.
type Store struct {
	kv     kv.Store
	getenv func(string) string
}

// New returns a Store over s reading the process environment.
func New(s kv.Store) *Store {
	return &Store{kv: s, getenv: os.Getenv}
}

// EnvVars lists the variables consulted, highest precedence first.
var EnvVars = []string{"GITONE_TOKEN", "GITHUB_TOKEN"}

// Resolve returns the token to use: env var > stored record > empty.
func (s *Store) Resolve(ctx context.Context) (string, Source) {
	for _, name := range EnvVars {
		if tok := strings.TrimSpace(s.getenv(name)); tok != "" {
			return tok, SourceEnv
		}
	}
	tok, err := s.Stored(ctx)
	if err != nil || tok == "" {
		return "", SourceNone
	}
	return tok, SourceStored
}

// Stored returns the saved token, or "" when there is none.
func (s *Store) Stored(ctx context.Context) (string, error) {
	tok, err := s.kv.Get(ctx, Key)
	if errors.Is(err, kv.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("token.Stored: %w", err)
	}
	return strings.TrimSpace(tok), nil
}

// Save trims and stores tok.
func (s *Store) Save(ctx context.Context, tok string) error {
	tok = strings.TrimSpace(tok)
	if tok == "" {
		return fmt.Errorf("token.Save: %w", ErrEmpty)
	}
	if err := s.kv.Put(ctx, Key, tok); err != nil {
		return fmt.Errorf("token.Save: %w", err)
	}
	return nil
}

// Clear removes the stored token. Environment variables are untouched.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.kv.Remove(ctx, Key); err != nil {
		return fmt.Errorf("token.Clear: %w", err)
	}
	return nil
}

// Mask hides all but the last four characters of tok.
func Mask(tok string) string {
	r := []rune(tok)
	if len(r) <= 4 {
		return strings.Repeat("•", len(r))
	}
	return strings.Repeat("•", len(r)-4) + string(r[len(r)-4:])
}
