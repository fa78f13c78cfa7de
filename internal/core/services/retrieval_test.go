package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexhelvetia/lexsearch/internal/adapters/driven/storage/memory"
	"github.com/lexhelvetia/lexsearch/internal/core/domain"
)

// --- Mock implementations ---

// mockDecisionSearcher implements driven.DecisionSearcher for testing.
type mockDecisionSearcher struct {
	name        string
	decisions   []domain.Decision
	total       int
	searchErr   error
	byID        map[string]domain.Decision
	getErr      error
	searchCalls int
	getCalls    int
}

func (m *mockDecisionSearcher) Search(_ context.Context, _ domain.SearchFilters) ([]domain.Decision, int, error) {
	m.searchCalls++
	if m.searchErr != nil {
		return nil, 0, m.searchErr
	}
	return m.decisions, m.total, nil
}

func (m *mockDecisionSearcher) GetByID(_ context.Context, id string) (*domain.Decision, bool, error) {
	m.getCalls++
	if m.getErr != nil {
		return nil, false, m.getErr
	}
	dec, ok := m.byID[id]
	if !ok {
		return nil, false, nil
	}
	return &dec, true, nil
}

func (m *mockDecisionSearcher) Name() string { return m.name }

// mockCommentarySearcher implements driven.CommentarySearcher for testing.
type mockCommentarySearcher struct {
	entries     []domain.Commentary
	total       int
	searchErr   error
	searchCalls int
}

func (m *mockCommentarySearcher) Search(_ context.Context, _ domain.SearchFilters) ([]domain.Commentary, int, error) {
	m.searchCalls++
	if m.searchErr != nil {
		return nil, 0, m.searchErr
	}
	return m.entries, m.total, nil
}

func (m *mockCommentarySearcher) Name() string { return "legalis" }

// failingCache wraps the memory cache but rejects writes.
type failingCache struct {
	*memory.CacheStore
}

func (f *failingCache) Set(_ context.Context, _ string, _ []byte, _ time.Duration) error {
	return errors.New("disk full")
}

type fixture struct {
	svc        *RetrievalService
	federal    *mockDecisionSearcher
	cantonal   *mockDecisionSearcher
	commentary *mockCommentarySearcher
	decisions  *memory.DecisionStore
	queryLog   *memory.QueryLog
}

func newFixture() *fixture {
	f := &fixture{
		federal:    &mockDecisionSearcher{name: "bger"},
		cantonal:   &mockDecisionSearcher{name: "entscheidsuche"},
		commentary: &mockCommentarySearcher{},
		decisions:  memory.NewDecisionStore(),
		queryLog:   memory.NewQueryLog(),
	}
	f.svc = NewRetrievalService(
		f.federal, f.cantonal, f.commentary,
		memory.NewCacheStore(), f.decisions, memory.NewCommentaryStore(), f.queryLog,
		RetrievalConfig{},
	)
	return f
}

func TestSearchFederal_EmptyQuery(t *testing.T) {
	f := newFixture()

	_, err := f.svc.SearchFederal(context.Background(), domain.SearchFilters{Query: "   "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Zero(t, f.federal.searchCalls)
}

func TestSearchFederal_MissThenHit(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.federal.decisions = []domain.Decision{{ExternalID: "147-IV-73", Title: "BGE 147 IV 73"}}
	f.federal.total = 12

	first, err := f.svc.SearchFederal(ctx, domain.SearchFilters{Query: "Strafzumessung"})
	require.NoError(t, err)
	assert.False(t, first.FromCache)
	assert.Equal(t, 12, first.Total)
	require.Len(t, first.Decisions, 1)

	second, err := f.svc.SearchFederal(ctx, domain.SearchFilters{Query: "Strafzumessung"})
	require.NoError(t, err)
	assert.True(t, second.FromCache)
	assert.Equal(t, first.Decisions, second.Decisions)
	assert.Equal(t, 1, f.federal.searchCalls, "second lookup must not reach the source")
}

func TestSearchFederal_PersistsResults(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.federal.decisions = []domain.Decision{{ExternalID: "147-IV-73", Title: "BGE 147 IV 73"}}

	_, err := f.svc.SearchFederal(ctx, domain.SearchFilters{Query: "q"})
	require.NoError(t, err)

	stored, err := f.decisions.GetDecision(ctx, "147-IV-73")
	require.NoError(t, err)
	assert.Equal(t, "BGE 147 IV 73", stored.Title)
}

func TestSearchFederal_FailureIsNotCached(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.federal.searchErr = errors.New("upstream down")

	_, err := f.svc.SearchFederal(ctx, domain.SearchFilters{Query: "q"})
	require.Error(t, err)

	// Source recovers; the next lookup must reach it, not a cached error.
	f.federal.searchErr = nil
	f.federal.decisions = []domain.Decision{{ExternalID: "x", Title: "t"}}

	result, err := f.svc.SearchFederal(ctx, domain.SearchFilters{Query: "q"})
	require.NoError(t, err)
	assert.False(t, result.FromCache)
	assert.Equal(t, 2, f.federal.searchCalls)
}

func TestSearchFederal_CacheWriteFailureStillReturnsData(t *testing.T) {
	f := newFixture()
	f.federal.decisions = []domain.Decision{{ExternalID: "x", Title: "t"}}
	f.svc = NewRetrievalService(
		f.federal, f.cantonal, f.commentary,
		&failingCache{memory.NewCacheStore()}, f.decisions, memory.NewCommentaryStore(), f.queryLog,
		RetrievalConfig{},
	)

	result, err := f.svc.SearchFederal(context.Background(), domain.SearchFilters{Query: "q"})
	require.NoError(t, err)
	require.Len(t, result.Decisions, 1)
}

func TestSearchFederal_CacheKeyNormalisation(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.federal.decisions = []domain.Decision{{ExternalID: "x"}}

	_, err := f.svc.SearchFederal(ctx, domain.SearchFilters{Query: "Werkvertrag"})
	require.NoError(t, err)

	// Same lookup modulo whitespace and casing shares the entry.
	second, err := f.svc.SearchFederal(ctx, domain.SearchFilters{Query: "  werkvertrag "})
	require.NoError(t, err)
	assert.True(t, second.FromCache)

	// A different language filter is a different lookup.
	third, err := f.svc.SearchFederal(ctx, domain.SearchFilters{Query: "Werkvertrag", Language: "fr"})
	require.NoError(t, err)
	assert.False(t, third.FromCache)
}

func TestSearchCantonal_UsesCantonalSource(t *testing.T) {
	f := newFixture()
	f.cantonal.decisions = []domain.Decision{{ExternalID: "ZH-1", Canton: "ZH"}}

	result, err := f.svc.SearchCantonal(context.Background(), domain.SearchFilters{Query: "q", Canton: "ZH"})
	require.NoError(t, err)
	require.Len(t, result.Decisions, 1)
	assert.Equal(t, 1, f.cantonal.searchCalls)
	assert.Zero(t, f.federal.searchCalls)
}

func TestSearchCommentary_MissThenHit(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.commentary.entries = []domain.Commentary{{ExternalID: "c-1", Authors: "Gauch/Schluep"}}
	f.commentary.total = 1

	first, err := f.svc.SearchCommentary(ctx, domain.SearchFilters{Query: "Werkvertrag"})
	require.NoError(t, err)
	assert.False(t, first.FromCache)

	second, err := f.svc.SearchCommentary(ctx, domain.SearchFilters{Query: "Werkvertrag"})
	require.NoError(t, err)
	assert.True(t, second.FromCache)
	assert.Equal(t, 1, f.commentary.searchCalls)
}

func TestGetDecision_FederalFirst(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.federal.byID = map[string]domain.Decision{
		"147-IV-73": {ExternalID: "147-IV-73", Title: "BGE 147 IV 73"},
	}

	dec, found, err := f.svc.GetDecision(ctx, "147-IV-73")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "BGE 147 IV 73", dec.Title)
	assert.Zero(t, f.cantonal.getCalls, "cantonal source is only tried after a federal miss")

	// Second lookup is served from cache.
	_, found, err = f.svc.GetDecision(ctx, "147-IV-73")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 1, f.federal.getCalls)
}

func TestGetDecision_FallsBackToCantonal(t *testing.T) {
	f := newFixture()
	f.cantonal.byID = map[string]domain.Decision{
		"ZH-2021-17": {ExternalID: "ZH-2021-17", Canton: "ZH"},
	}

	dec, found, err := f.svc.GetDecision(context.Background(), "ZH-2021-17")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "ZH", dec.Canton)
}

func TestGetDecision_MissingIsNotAnError(t *testing.T) {
	f := newFixture()

	dec, found, err := f.svc.GetDecision(context.Background(), "does-not-exist")
	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, dec)
}

func TestGetDecision_BothSourcesFailing(t *testing.T) {
	f := newFixture()
	f.federal.getErr = errors.New("bger down")
	f.cantonal.getErr = errors.New("aggregator down")

	_, found, err := f.svc.GetDecision(context.Background(), "147-IV-73")
	assert.Error(t, err)
	assert.False(t, found)
}

func TestGetDecision_EmptyID(t *testing.T) {
	f := newFixture()

	_, _, err := f.svc.GetDecision(context.Background(), "  ")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestQueryLog_RecordsLookups(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.federal.decisions = []domain.Decision{{ExternalID: "x"}}

	_, err := f.svc.SearchFederal(ctx, domain.SearchFilters{Query: "Werkvertrag", Language: "de"})
	require.NoError(t, err)
	_, err = f.svc.SearchFederal(ctx, domain.SearchFilters{Query: "Werkvertrag", Language: "de"})
	require.NoError(t, err)

	entries, err := f.queryLog.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.True(t, entries[0].FromCache, "newest entry is the cache hit")
	assert.False(t, entries[1].FromCache)
	assert.Equal(t, "search_federal_decisions", entries[0].Tool)
}

func TestCacheStats_Delegates(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.federal.decisions = []domain.Decision{{ExternalID: "x"}}

	_, err := f.svc.SearchFederal(ctx, domain.SearchFilters{Query: "q"})
	require.NoError(t, err)

	stats, err := f.svc.CacheStats(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.Entries)
}
