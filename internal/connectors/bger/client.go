// Package bger implements the federal court decision search connector.
package bger

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/lexhelvetia/lexsearch/internal/connectors"
	"github.com/lexhelvetia/lexsearch/internal/core/domain"
	"github.com/lexhelvetia/lexsearch/internal/core/ports/driven"
)

// SourceName identifies this connector in records and errors.
const SourceName = "bger"

// DefaultBaseURL is the federal court search endpoint.
const DefaultBaseURL = "https://search.bger.ch/api/v1"

// Config configures the connector.
type Config struct {
	// BaseURL overrides the API endpoint. Empty means DefaultBaseURL.
	BaseURL string

	// RequestsPerMinute is the rate budget. Zero means the connectors
	// default.
	RequestsPerMinute int
}

// Searcher queries the federal court search API.
type Searcher struct {
	baseURL string
	client  *connectors.Client
}

var _ driven.DecisionSearcher = (*Searcher)(nil)

// New creates a federal court searcher.
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

// Name implements driven.DecisionSearcher.
func (s *Searcher) Name() string { return SourceName }

// decisionDTO is the API's record shape.
type decisionDTO struct {
	ID         string   `json:"id"`
	Title      string   `json:"title"`
	Regeste    string   `json:"regeste"`
	Date       string   `json:"date"`
	Language   string   `json:"language"`
	LegalAreas []string `json:"legal_areas"`
	URL        string   `json:"url"`
	FullText   string   `json:"full_text,omitempty"`
}

type searchResponse struct {
	Total   int           `json:"total"`
	Results []decisionDTO `json:"results"`
}

type searchRequest struct {
	Query     string `json:"query"`
	Language  string `json:"language,omitempty"`
	LegalArea string `json:"legal_area,omitempty"`
	FromDate  string `json:"from_date,omitempty"`
	ToDate    string `json:"to_date,omitempty"`
	Limit     int    `json:"limit"`
}

// Search implements driven.DecisionSearcher.
func (s *Searcher) Search(ctx context.Context, filters domain.SearchFilters) ([]domain.Decision, int, error) {
	req := searchRequest{
		Query:     filters.Query,
		Language:  filters.Language,
		LegalArea: filters.LegalArea,
		Limit:     filters.EffectiveLimit(),
	}
	if !filters.FromDate.IsZero() {
		req.FromDate = filters.FromDate.Format("2006-01-02")
	}
	if !filters.ToDate.IsZero() {
		req.ToDate = filters.ToDate.Format("2006-01-02")
	}

	var resp searchResponse
	if err := s.client.PostJSON(ctx, s.baseURL+"/search", req, &resp); err != nil {
		return nil, 0, err
	}

	decisions := make([]domain.Decision, 0, len(resp.Results))
	for _, dto := range resp.Results {
		decisions = append(decisions, toDecision(dto))
	}
	return decisions, resp.Total, nil
}

// GetByID implements driven.DecisionSearcher. A missing record is an
// expected outcome and reported as found=false, not an error.
func (s *Searcher) GetByID(ctx context.Context, externalID string) (*domain.Decision, bool, error) {
	var dto decisionDTO
	endpoint := fmt.Sprintf("%s/decisions/%s", s.baseURL, url.PathEscape(externalID))
	if err := s.client.GetJSON(ctx, endpoint, &dto); err != nil {
		if connectors.IsNotFound(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	dec := toDecision(dto)
	return &dec, true, nil
}

func toDecision(dto decisionDTO) domain.Decision {
	date, _ := time.Parse("2006-01-02", dto.Date)
	return domain.Decision{
		ExternalID: dto.ID,
		Source:     SourceName,
		Title:      dto.Title,
		Summary:    dto.Regeste,
		Date:       date,
		Language:   dto.Language,
		LegalAreas: dto.LegalAreas,
		URL:        dto.URL,
		FullText:   dto.FullText,
	}
}
