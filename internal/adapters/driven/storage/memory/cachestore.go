// Package memory provides in-memory implementations of the driven storage
// ports, useful for tests and for running without a data directory.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/lexhelvetia/lexsearch/internal/core/domain"
	"github.com/lexhelvetia/lexsearch/internal/core/ports/driven"
)

// Ensure CacheStore implements the interface.
var _ driven.CacheStore = (*CacheStore)(nil)

// CacheStore is an in-memory implementation of driven.CacheStore.
type CacheStore struct {
	mu      sync.Mutex
	entries map[string]*domain.CacheEntry
}

// NewCacheStore creates a new in-memory cache store.
func NewCacheStore() *CacheStore {
	return &CacheStore{
		entries: make(map[string]*domain.CacheEntry),
	}
}

// Get returns the cached value for key, deleting the entry when expired.
func (s *CacheStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[key]
	if !ok {
		return nil, false, nil
	}
	now := time.Now()
	if entry.Expired(now) {
		delete(s.entries, key)
		return nil, false, nil
	}
	entry.HitCount++
	entry.LastAccessedAt = now
	return entry.Value, true, nil
}

// Set stores value under key, preserving any existing hit count.
func (s *CacheStore) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	if existing, ok := s.entries[key]; ok {
		existing.Value = value
		existing.ExpiresAt = now.Add(ttl)
		return nil
	}
	s.entries[key] = &domain.CacheEntry{
		Key:       key,
		Value:     value,
		ExpiresAt: now.Add(ttl),
		CreatedAt: now,
	}
	return nil
}

// Delete removes the entry for key.
func (s *CacheStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
	return nil
}

// Sweep removes all expired entries.
func (s *CacheStore) Sweep(_ context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	swept := 0
	for key, entry := range s.entries {
		if entry.Expired(now) {
			delete(s.entries, key)
			swept++
		}
	}
	return swept, nil
}

// Stats reports entry counts and the topN most-read live entries.
func (s *CacheStore) Stats(_ context.Context, topN int) (domain.CacheStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	var stats domain.CacheStats
	var live []domain.CacheEntry
	for _, entry := range s.entries {
		if entry.Expired(now) {
			stats.Expired++
			continue
		}
		stats.Entries++
		live = append(live, *entry)
	}

	sort.Slice(live, func(i, j int) bool {
		if live[i].HitCount != live[j].HitCount {
			return live[i].HitCount > live[j].HitCount
		}
		return live[i].Key < live[j].Key
	})
	if topN > 0 && topN < len(live) {
		live = live[:topN]
	}
	if topN > 0 {
		stats.MostAccessed = live
	}
	return stats, nil
}
