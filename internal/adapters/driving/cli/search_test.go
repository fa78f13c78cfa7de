package cli

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexhelvetia/lexsearch/internal/core/domain"
)

// stubRetrieval implements driving.RetrievalService for command tests.
type stubRetrieval struct {
	searchResult     *domain.SearchResult
	commentaryResult *domain.CommentaryResult
	decision         *domain.Decision
	found            bool
	stats            domain.CacheStats
	err              error
}

func (s *stubRetrieval) SearchFederal(_ context.Context, _ domain.SearchFilters) (*domain.SearchResult, error) {
	return s.searchResult, s.err
}

func (s *stubRetrieval) SearchCantonal(_ context.Context, _ domain.SearchFilters) (*domain.SearchResult, error) {
	return s.searchResult, s.err
}

func (s *stubRetrieval) SearchCommentary(_ context.Context, _ domain.SearchFilters) (*domain.CommentaryResult, error) {
	return s.commentaryResult, s.err
}

func (s *stubRetrieval) GetDecision(_ context.Context, _ string) (*domain.Decision, bool, error) {
	return s.decision, s.found, s.err
}

func (s *stubRetrieval) CacheStats(_ context.Context, _ int) (domain.CacheStats, error) {
	return s.stats, s.err
}

// withStubRetrieval installs a stub so commands skip the real wiring.
func withStubRetrieval(t *testing.T, stub *stubRetrieval) {
	t.Helper()
	old := retrievalService
	retrievalService = stub
	t.Cleanup(func() { retrievalService = old })
}

func TestSearchFederalCmd_PrintsResults(t *testing.T) {
	withStubRetrieval(t, &stubRetrieval{
		searchResult: &domain.SearchResult{
			Decisions: []domain.Decision{{
				ExternalID: "147-IV-73",
				Title:      "BGE 147 IV 73",
				Date:       time.Date(2021, 3, 15, 0, 0, 0, 0, time.UTC),
			}},
			Total:     3,
			FromCache: true,
		},
	})

	output, err := execute(t, "search", "federal", "Strafzumessung")

	require.NoError(t, err)
	assert.Contains(t, output, "BGE 147 IV 73")
	assert.Contains(t, output, "cached")
	assert.Contains(t, output, "id: 147-IV-73")
}

func TestSearchFederalCmd_NoResults(t *testing.T) {
	withStubRetrieval(t, &stubRetrieval{searchResult: &domain.SearchResult{}})

	output, err := execute(t, "search", "federal", "nichts")

	require.NoError(t, err)
	assert.Contains(t, output, "No results found.")
}

func TestSearchCommentaryCmd_PrintsResults(t *testing.T) {
	withStubRetrieval(t, &stubRetrieval{
		commentaryResult: &domain.CommentaryResult{
			Entries: []domain.Commentary{{
				ExternalID: "c-1",
				Authors:    "Gauch/Schluep",
				Title:      "Schweizerisches Obligationenrecht AT",
				Statute:    "OR",
				Year:       2020,
			}},
			Total: 1,
		},
	})

	output, err := execute(t, "search", "commentary", "Werkvertrag")

	require.NoError(t, err)
	assert.Contains(t, output, "Gauch/Schluep")
	assert.Contains(t, output, "statute: OR")
}

func TestDecisionCmd_Found(t *testing.T) {
	withStubRetrieval(t, &stubRetrieval{
		decision: &domain.Decision{
			ExternalID: "147-IV-73",
			Title:      "BGE 147 IV 73",
			Language:   "de",
			Summary:    "Regeste",
		},
		found: true,
	})

	output, err := execute(t, "decision", "147-IV-73")

	require.NoError(t, err)
	assert.Contains(t, output, "BGE 147 IV 73")
	assert.Contains(t, output, "language: de")
	assert.Contains(t, output, "Regeste")
}

func TestDecisionCmd_NotFound(t *testing.T) {
	withStubRetrieval(t, &stubRetrieval{})

	output, err := execute(t, "decision", "nope")

	require.NoError(t, err)
	assert.Contains(t, output, "No decision found")
}

func TestCacheStatsCmd(t *testing.T) {
	withStubRetrieval(t, &stubRetrieval{
		stats: domain.CacheStats{Entries: 4, Expired: 2},
	})

	output, err := execute(t, "cache", "stats")

	require.NoError(t, err)
	assert.Contains(t, output, "live entries:    4")
	assert.Contains(t, output, "expired entries: 2")
}

func TestSearchCmd_FlagDefaults(t *testing.T) {
	flag := searchCmd.PersistentFlags().Lookup("limit")
	require.NotNil(t, flag)
	assert.Equal(t, "n", flag.Shorthand)
	assert.Equal(t, "10", flag.DefValue)
}

func TestVersionCmd(t *testing.T) {
	output, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, output, "lexsearch version")
}
