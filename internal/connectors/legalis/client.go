// Package legalis implements the legal commentary (doctrine) search
// connector.
package legalis

import (
	"context"

	"github.com/lexhelvetia/lexsearch/internal/connectors"
	"github.com/lexhelvetia/lexsearch/internal/core/domain"
	"github.com/lexhelvetia/lexsearch/internal/core/ports/driven"
)

// SourceName identifies this connector in records and errors.
const SourceName = "legalis"

// DefaultBaseURL is the commentary search endpoint.
const DefaultBaseURL = "https://api.legalis.ch/v2"

// Config configures the connector.
type Config struct {
	BaseURL           string
	RequestsPerMinute int
}

// Searcher queries the commentary search API.
type Searcher struct {
	baseURL string
	client  *connectors.Client
}

var _ driven.CommentarySearcher = (*Searcher)(nil)

// New creates a commentary searcher.
func New(cfg Config) *Searcher {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Searcher{
		baseURL: baseURL,
		client:  connectors.NewClient(SourceName, cfg.RequestsPerMinute),
	}
}

// Name implements driven.CommentarySearcher.
func (s *Searcher) Name() string { return SourceName }

type entryDTO struct {
	ID       string `json:"id"`
	Authors  string `json:"authors"`
	Title    string `json:"title"`
	Abstract string `json:"abstract"`
	Statute  string `json:"statute,omitempty"`
	Year     int    `json:"year"`
	Language string `json:"language"`
	URL      string `json:"url"`
}

type searchResponse struct {
	Total   int        `json:"total"`
	Entries []entryDTO `json:"entries"`
}

type searchRequest struct {
	Query    string `json:"query"`
	Language string `json:"language,omitempty"`
	Limit    int    `json:"limit"`
}

// Search implements driven.CommentarySearcher.
func (s *Searcher) Search(ctx context.Context, filters domain.SearchFilters) ([]domain.Commentary, int, error) {
	req := searchRequest{
		Query:    filters.Query,
		Language: filters.Language,
		Limit:    filters.EffectiveLimit(),
	}

	var resp searchResponse
	if err := s.client.PostJSON(ctx, s.baseURL+"/commentaries/search", req, &resp); err != nil {
		return nil, 0, err
	}

	entries := make([]domain.Commentary, 0, len(resp.Entries))
	for _, dto := range resp.Entries {
		entries = append(entries, domain.Commentary{
			ExternalID: dto.ID,
			Source:     SourceName,
			Authors:    dto.Authors,
			Title:      dto.Title,
			Summary:    dto.Abstract,
			Statute:    dto.Statute,
			Year:       dto.Year,
			Language:   dto.Language,
			URL:        dto.URL,
		})
	}
	return entries, resp.Total, nil
}
