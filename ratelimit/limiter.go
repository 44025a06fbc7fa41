// Package ratelimit provides per-identity, per-action sliding-window
// admission control for the API.
package ratelimit

import (
	"sync"
	"time"
)

// Action names used as keyspace prefixes. Distinct actions are limited
// independently of each other.
const (
	ActionChatMessage  = "chat_message"
	ActionContact      = "contact"
	ActionPlanGenerate = "plan_generate"
)

// Config is the window definition for one action.
type Config struct {
	Window    time.Duration
	MaxEvents int
}

// Store is the keyed window store behind the limiter. The limiter holds
// its own lock across the check-then-append sequence, so implementations
// only need to be safe for use under that single caller.
type Store interface {
	Get(key string) []time.Time
	Set(key string, events []time.Time, ttl time.Duration)
	Sweep(now time.Time)
}

// Limiter admits or rejects events per (identity, action) key. All state
// lives in the injected Store; the default MemoryStore bounds memory by
// active keys x window length via TTL eviction.
type Limiter struct {
	mu        sync.Mutex
	store     Store
	actions   map[string]Config
	keyTTL    time.Duration
	lastSweep time.Time
}

const sweepInterval = time.Minute

// New builds a limiter over the given store and per-action configs.
// keyTTL controls how long an idle key survives before eviction; it is
// clamped to at least the longest configured window.
func New(store Store, actions map[string]Config, keyTTL time.Duration) *Limiter {
	for _, cfg := range actions {
		if cfg.Window > keyTTL {
			keyTTL = cfg.Window
		}
	}
	return &Limiter{
		store:   store,
		actions: actions,
		keyTTL:  keyTTL,
	}
}

// Admit checks the sliding window for (identity, action) at time now.
// It prunes events older than the window, rejects without recording when
// the pruned count has reached the action's maximum, and otherwise
// records now and accepts. On rejection retryAfter is the time until the
// earliest recorded event leaves the window.
//
// Unknown actions are admitted unconditionally.
func (l *Limiter) Admit(identity, action string, now time.Time) (ok bool, retryAfter time.Duration) {
	cfg, found := l.actions[action]
	if !found || cfg.MaxEvents <= 0 {
		return true, 0
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if now.Sub(l.lastSweep) >= sweepInterval {
		l.store.Sweep(now)
		l.lastSweep = now
	}

	key := action + ":" + identity
	cutoff := now.Add(-cfg.Window)

	events := l.store.Get(key)
	kept := events[:0]
	for _, ts := range events {
		if ts.After(cutoff) {
			kept = append(kept, ts)
		}
	}

	if len(kept) >= cfg.MaxEvents {
		// Reject, but keep the pruned window so memory stays bounded
		// by the window length rather than lifetime traffic.
		l.store.Set(key, kept, l.keyTTL)
		return false, kept[0].Add(cfg.Window).Sub(now)
	}

	kept = append(kept, now)
	l.store.Set(key, kept, l.keyTTL)
	return true, 0
}

type memoryEntry struct {
	events    []time.Time
	expiresAt time.Time
}

// MemoryStore is the default process-local window store.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]memoryEntry)}
}

func (s *MemoryStore) Get(key string) []time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[key]
	if !ok {
		return nil
	}
	out := make([]time.Time, len(entry.events))
	copy(out, entry.events)
	return out
}

func (s *MemoryStore) Set(key string, events []time.Time, ttl time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(events) == 0 {
		delete(s.entries, key)
		return
	}
	stored := make([]time.Time, len(events))
	copy(stored, events)
	s.entries[key] = memoryEntry{
		events:    stored,
		expiresAt: events[len(events)-1].Add(ttl),
	}
}

func (s *MemoryStore) Sweep(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key, entry := range s.entries {
		if now.After(entry.expiresAt) {
			delete(s.entries, key)
		}
	}
}
