package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/lexhelvetia/lexsearch/internal/core/domain"
	"github.com/lexhelvetia/lexsearch/internal/core/ports/driven"
	"github.com/lexhelvetia/lexsearch/internal/core/ports/driving"
	"github.com/lexhelvetia/lexsearch/internal/logger"
)

// Ensure RetrievalService implements the interface.
var _ driving.RetrievalService = (*RetrievalService)(nil)

// DefaultSearchTTL bounds cached search listings. Rankings move as
// sources index new decisions, so listings go stale quickly.
const DefaultSearchTTL = time.Hour

// DefaultDecisionTTL bounds cached by-identifier lookups. A published
// decision rarely changes after the fact.
const DefaultDecisionTTL = 24 * time.Hour

// RetrievalConfig tunes the retrieval service.
type RetrievalConfig struct {
	// SearchTTL is the cache TTL for search listings. Zero means
	// DefaultSearchTTL.
	SearchTTL time.Duration

	// DecisionTTL is the cache TTL for by-identifier lookups. Zero
	// means DefaultDecisionTTL.
	DecisionTTL time.Duration
}

// RetrievalService runs every lookup through the same path: check the
// cache, on miss fetch from the external source, persist the records,
// cache the result, return it. Only successful fetches are cached, and a
// storage or cache failure after a successful fetch is logged but never
// hides the fetched data from the caller.
type RetrievalService struct {
	federal    driven.DecisionSearcher
	cantonal   driven.DecisionSearcher
	commentary driven.CommentarySearcher

	cache           driven.CacheStore
	decisionStore   driven.DecisionStore
	commentaryStore driven.CommentaryStore
	queryLog        driven.QueryLog

	searchTTL   time.Duration
	decisionTTL time.Duration
}

// NewRetrievalService creates a new retrieval service. The query log is
// optional and may be nil.
func NewRetrievalService(
	federal driven.DecisionSearcher,
	cantonal driven.DecisionSearcher,
	commentary driven.CommentarySearcher,
	cache driven.CacheStore,
	decisionStore driven.DecisionStore,
	commentaryStore driven.CommentaryStore,
	queryLog driven.QueryLog,
	cfg RetrievalConfig,
) *RetrievalService {
	if cfg.SearchTTL <= 0 {
		cfg.SearchTTL = DefaultSearchTTL
	}
	if cfg.DecisionTTL <= 0 {
		cfg.DecisionTTL = DefaultDecisionTTL
	}
	return &RetrievalService{
		federal:         federal,
		cantonal:        cantonal,
		commentary:      commentary,
		cache:           cache,
		decisionStore:   decisionStore,
		commentaryStore: commentaryStore,
		queryLog:        queryLog,
		searchTTL:       cfg.SearchTTL,
		decisionTTL:     cfg.DecisionTTL,
	}
}

// cachedSearch is the serialised form of a decision search result.
type cachedSearch struct {
	Decisions []domain.Decision `json:"decisions"`
	Total     int               `json:"total"`
}

// cachedCommentary is the serialised form of a commentary search result.
type cachedCommentary struct {
	Entries []domain.Commentary `json:"entries"`
	Total   int                 `json:"total"`
}

// SearchFederal queries the federal court search source.
func (s *RetrievalService) SearchFederal(ctx context.Context, filters domain.SearchFilters) (*domain.SearchResult, error) {
	return s.searchDecisions(ctx, s.federal, "search_federal_decisions", filters)
}

// SearchCantonal queries the cantonal decision aggregator.
func (s *RetrievalService) SearchCantonal(ctx context.Context, filters domain.SearchFilters) (*domain.SearchResult, error) {
	return s.searchDecisions(ctx, s.cantonal, "search_cantonal_decisions", filters)
}

func (s *RetrievalService) searchDecisions(
	ctx context.Context, searcher driven.DecisionSearcher, tool string, filters domain.SearchFilters,
) (*domain.SearchResult, error) {
	if strings.TrimSpace(filters.Query) == "" {
		return nil, fmt.Errorf("%w: search query is empty", domain.ErrInvalidInput)
	}

	key := searchCacheKey(searcher.Name(), filters)

	if value, ok := s.cacheGet(ctx, key); ok {
		var cached cachedSearch
		if err := json.Unmarshal(value, &cached); err == nil {
			logger.Debug("%s: cache hit for %q", searcher.Name(), filters.Query)
			s.log(ctx, tool, filters, len(cached.Decisions), true)
			return &domain.SearchResult{
				Decisions: cached.Decisions,
				Total:     cached.Total,
				FromCache: true,
			}, nil
		}
		// Undecodable entries are dropped so the next lookup refetches.
		s.cacheDelete(ctx, key)
	}

	decisions, total, err := searcher.Search(ctx, filters)
	if err != nil {
		return nil, err
	}

	for _, dec := range decisions {
		if err := s.decisionStore.UpsertDecision(ctx, dec); err != nil {
			logger.Error("%s: persisting decision %s: %v", searcher.Name(), dec.ExternalID, err)
		}
	}
	s.cacheSet(ctx, key, cachedSearch{Decisions: decisions, Total: total}, s.searchTTL)
	s.log(ctx, tool, filters, len(decisions), false)

	return &domain.SearchResult{Decisions: decisions, Total: total}, nil
}

// SearchCommentary queries the commentary search source.
func (s *RetrievalService) SearchCommentary(ctx context.Context, filters domain.SearchFilters) (*domain.CommentaryResult, error) {
	if strings.TrimSpace(filters.Query) == "" {
		return nil, fmt.Errorf("%w: search query is empty", domain.ErrInvalidInput)
	}

	key := searchCacheKey(s.commentary.Name(), filters)

	if value, ok := s.cacheGet(ctx, key); ok {
		var cached cachedCommentary
		if err := json.Unmarshal(value, &cached); err == nil {
			logger.Debug("%s: cache hit for %q", s.commentary.Name(), filters.Query)
			s.log(ctx, "search_commentary", filters, len(cached.Entries), true)
			return &domain.CommentaryResult{
				Entries:   cached.Entries,
				Total:     cached.Total,
				FromCache: true,
			}, nil
		}
		s.cacheDelete(ctx, key)
	}

	entries, total, err := s.commentary.Search(ctx, filters)
	if err != nil {
		return nil, err
	}

	for _, entry := range entries {
		if err := s.commentaryStore.UpsertCommentary(ctx, entry); err != nil {
			logger.Error("%s: persisting commentary %s: %v", s.commentary.Name(), entry.ExternalID, err)
		}
	}
	s.cacheSet(ctx, key, cachedCommentary{Entries: entries, Total: total}, s.searchTTL)
	s.log(ctx, "search_commentary", filters, len(entries), false)

	return &domain.CommentaryResult{Entries: entries, Total: total}, nil
}

// GetDecision fetches one decision by external identifier, trying the
// federal source first and the cantonal aggregator second. A record
// neither source knows is reported as not found, never as an error.
func (s *RetrievalService) GetDecision(ctx context.Context, externalID string) (*domain.Decision, bool, error) {
	externalID = strings.TrimSpace(externalID)
	if externalID == "" {
		return nil, false, fmt.Errorf("%w: decision id is empty", domain.ErrInvalidInput)
	}

	key := "decision:" + externalID

	if value, ok := s.cacheGet(ctx, key); ok {
		var dec domain.Decision
		if err := json.Unmarshal(value, &dec); err == nil {
			s.log(ctx, "get_decision", domain.SearchFilters{Query: externalID}, 1, true)
			return &dec, true, nil
		}
		s.cacheDelete(ctx, key)
	}

	var lastErr error
	for _, searcher := range []driven.DecisionSearcher{s.federal, s.cantonal} {
		dec, found, err := searcher.GetByID(ctx, externalID)
		if err != nil {
			lastErr = err
			continue
		}
		if !found {
			continue
		}

		if err := s.decisionStore.UpsertDecision(ctx, *dec); err != nil {
			logger.Error("%s: persisting decision %s: %v", searcher.Name(), externalID, err)
		}
		s.cacheSet(ctx, key, dec, s.decisionTTL)
		s.log(ctx, "get_decision", domain.SearchFilters{Query: externalID}, 1, false)
		return dec, true, nil
	}

	if lastErr != nil {
		return nil, false, lastErr
	}
	s.log(ctx, "get_decision", domain.SearchFilters{Query: externalID}, 0, false)
	return nil, false, nil
}

// CacheStats reports cache diagnostics.
func (s *RetrievalService) CacheStats(ctx context.Context, topN int) (domain.CacheStats, error) {
	return s.cache.Stats(ctx, topN)
}

// StartSweeper runs a background loop removing expired cache entries
// that are never read again. It returns when ctx is cancelled.
func (s *RetrievalService) StartSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				n, err := s.cache.Sweep(ctx)
				if err != nil {
					logger.Warn("cache sweep: %v", err)
					continue
				}
				if n > 0 {
					logger.Debug("cache sweep removed %d entries", n)
				}
			}
		}
	}()
}

// cacheGet reads the cache, downgrading failures to misses. The cache is
// an optimisation; a broken cache must not break lookups.
func (s *RetrievalService) cacheGet(ctx context.Context, key string) ([]byte, bool) {
	value, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		logger.Warn("cache read %s: %v", key, err)
		return nil, false
	}
	return value, ok
}

func (s *RetrievalService) cacheSet(ctx context.Context, key string, payload any, ttl time.Duration) {
	data, err := json.Marshal(payload)
	if err != nil {
		logger.Error("cache encode %s: %v", key, err)
		return
	}
	if err := s.cache.Set(ctx, key, data, ttl); err != nil {
		logger.Error("cache write %s: %v", key, err)
	}
}

func (s *RetrievalService) cacheDelete(ctx context.Context, key string) {
	if err := s.cache.Delete(ctx, key); err != nil {
		logger.Warn("cache delete %s: %v", key, err)
	}
}

func (s *RetrievalService) log(ctx context.Context, tool string, filters domain.SearchFilters, count int, fromCache bool) {
	if s.queryLog == nil {
		return
	}
	err := s.queryLog.Record(ctx, domain.QueryLogEntry{
		Tool:        tool,
		Query:       filters.Query,
		Language:    filters.Language,
		ResultCount: count,
		FromCache:   fromCache,
	})
	if err != nil {
		logger.Warn("query log: %v", err)
	}
}

// searchCacheKey derives a deterministic key from the normalised filter
// set. Two requests that differ only in whitespace or query casing share
// an entry.
func searchCacheKey(source string, f domain.SearchFilters) string {
	parts := []string{
		"search", source,
		strings.ToLower(strings.TrimSpace(f.Query)),
		strings.ToLower(f.Language),
		strings.ToUpper(f.Canton),
		formatKeyDate(f.FromDate),
		formatKeyDate(f.ToDate),
		strings.ToLower(strings.TrimSpace(f.LegalArea)),
		fmt.Sprintf("%d", f.EffectiveLimit()),
	}
	return strings.Join(parts, "|")
}

func formatKeyDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}
