package mcp

import (
	"context"

	"github.com/lexhelvetia/lexsearch/internal/core/domain"
	"github.com/lexhelvetia/lexsearch/internal/core/services"
)

// mockRetrievalService is a mock implementation of driving.RetrievalService.
type mockRetrievalService struct {
	searchResult     *domain.SearchResult
	commentaryResult *domain.CommentaryResult
	decision         *domain.Decision
	found            bool
	stats            domain.CacheStats
	err              error

	lastFilters domain.SearchFilters
}

func (m *mockRetrievalService) SearchFederal(_ context.Context, filters domain.SearchFilters) (*domain.SearchResult, error) {
	m.lastFilters = filters
	return m.searchResult, m.err
}

func (m *mockRetrievalService) SearchCantonal(_ context.Context, filters domain.SearchFilters) (*domain.SearchResult, error) {
	m.lastFilters = filters
	return m.searchResult, m.err
}

func (m *mockRetrievalService) SearchCommentary(_ context.Context, filters domain.SearchFilters) (*domain.CommentaryResult, error) {
	m.lastFilters = filters
	return m.commentaryResult, m.err
}

func (m *mockRetrievalService) GetDecision(_ context.Context, _ string) (*domain.Decision, bool, error) {
	return m.decision, m.found, m.err
}

func (m *mockRetrievalService) CacheStats(_ context.Context, _ int) (domain.CacheStats, error) {
	return m.stats, m.err
}

// newTestPorts wires a real citation service (it is pure) with a mocked
// retrieval service.
func newTestPorts(retrieval *mockRetrievalService) *Ports {
	return &Ports{
		Citation:  services.NewCitationService(),
		Retrieval: retrieval,
	}
}
