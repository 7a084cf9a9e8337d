// Package cache keeps the last fetched snapshot per username with a TTL.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/naveenspark/gitone/internal/kv"
	"github.com/naveenspark/gitone/pkg/domain"
)

const (
	// KeyPrefix namespaces snapshot records in the store.
	KeyPrefix = "gh_cache:"

	// DefaultTTL is how long a snapshot is served without refetching.
	DefaultTTL = 5 * time.Minute
)

// Store is the snapshot cache. Expiry is checked on read; nothing sweeps.
type Store struct {
	kv     kv.Store
	ttl    time.Duration
	now    func() time.Time
	logger *log.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithTTL overrides DefaultTTL. Non-positive values are ignored.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// New builds a cache over store.
func New(store kv.Store, logger *log.Logger, opts ...Option) *Store {
	if logger == nil {
		logger = log.Default()
	}
	s := &Store{kv: store, ttl: DefaultTTL, now: time.Now, logger: logger}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Key returns the storage key for username.
func Key(username string) string {
	return KeyPrefix + strings.ToLower(username)
}

// Get returns the snapshot for username while it is younger than the TTL.
// Absent, expired and unreadable records are all misses.
func (s *Store) Get(ctx context.Context, username string) (*domain.Snapshot, bool) {
	snap, ok := s.read(ctx, username)
	if !ok {
		return nil, false
	}
	if s.now().Sub(snap.FetchedAt) >= s.ttl {
		return nil, false
	}
	return snap, true
}

// Put stores profile and repos for username, stamped with the current time.
func (s *Store) Put(ctx context.Context, username string, profile domain.Profile, repos []domain.Repository) error {
	snap := domain.Snapshot{
		Username:     strings.ToLower(username),
		FetchedAt:    s.now(),
		Profile:      profile,
		Repositories: repos,
	}
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("cache.Put: %w", err)
	}
	if err := s.kv.Put(ctx, Key(username), string(data)); err != nil {
		return fmt.Errorf("cache.Put: %w", err)
	}
	return nil
}

// LastKnown returns the cached repositories for username regardless of age,
// or an empty list.
func (s *Store) LastKnown(ctx context.Context, username string) []domain.Repository {
	snap, ok := s.read(ctx, username)
	if !ok || snap.Repositories == nil {
		return []domain.Repository{}
	}
	return snap.Repositories
}

// Evict drops the record for username.
func (s *Store) Evict(ctx context.Context, username string) error {
	if err := s.kv.Remove(ctx, Key(username)); err != nil {
		return fmt.Errorf("cache.Evict: %w", err)
	}
	return nil
}

func (s *Store) read(ctx context.Context, username string) (*domain.Snapshot, bool) {
	raw, err := s.kv.Get(ctx, Key(username))
	if err != nil {
		if !errors.Is(err, kv.ErrNotFound) {
			s.logger.Warn("cache read failed", "user", username, "err", err)
		}
		return nil, false
	}
	var snap domain.Snapshot
	if err := json.Unmarshal([]byte(raw), &snap); err != nil {
		s.logger.Warn("discarding corrupt cache record", "user", username, "err", err)
		return nil, false
	}
	return &snap, true
}
