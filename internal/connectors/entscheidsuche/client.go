// Package entscheidsuche implements the cantonal decision aggregator
// connector. The aggregator indexes decisions of all cantonal courts and
// exposes a single search endpoint over them.
package entscheidsuche

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
const SourceName = "entscheidsuche"

// DefaultBaseURL is the aggregator's API endpoint.
const DefaultBaseURL = "https://entscheidsuche.ch/api"

// Config configures the connector.
type Config struct {
	BaseURL           string
	RequestsPerMinute int
}

// Searcher queries the cantonal decision aggregator.
type Searcher struct {
	baseURL string
	client  *connectors.Client
}

var _ driven.DecisionSearcher = (*Searcher)(nil)

// New creates a cantonal searcher.
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

type hitDTO struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Abstract string   `json:"abstract"`
	Date     string   `json:"date"`
	Language string   `json:"language"`
	Canton   string   `json:"canton"`
	Areas    []string `json:"areas"`
	URL      string   `json:"url"`
	Text     string   `json:"text,omitempty"`
}

type searchResponse struct {
	Total int      `json:"total"`
	Hits  []hitDTO `json:"hits"`
}

type searchRequest struct {
	Query    string `json:"query"`
	Canton   string `json:"canton,omitempty"`
	Language string `json:"language,omitempty"`
	Area     string `json:"area,omitempty"`
	FromDate string `json:"from,omitempty"`
	ToDate   string `json:"to,omitempty"`
	Size     int    `json:"size"`
}

// Search implements driven.DecisionSearcher.
func (s *Searcher) Search(ctx context.Context, filters domain.SearchFilters) ([]domain.Decision, int, error) {
	req := searchRequest{
		Query:    filters.Query,
		Canton:   filters.Canton,
		Language: filters.Language,
		Area:     filters.LegalArea,
		Size:     filters.EffectiveLimit(),
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

	decisions := make([]domain.Decision, 0, len(resp.Hits))
	for _, dto := range resp.Hits {
		decisions = append(decisions, toDecision(dto))
	}
	return decisions, resp.Total, nil
}

// GetByID implements driven.DecisionSearcher.
func (s *Searcher) GetByID(ctx context.Context, externalID string) (*domain.Decision, bool, error) {
	var dto hitDTO
	endpoint := fmt.Sprintf("%s/docs/%s", s.baseURL, url.PathEscape(externalID))
	if err := s.client.GetJSON(ctx, endpoint, &dto); err != nil {
		if connectors.IsNotFound(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	dec := toDecision(dto)
	return &dec, true, nil
}

func toDecision(dto hitDTO) domain.Decision {
	date, _ := time.Parse("2006-01-02", dto.Date)
	return domain.Decision{
		ExternalID: dto.ID,
		Source:     SourceName,
		Title:      dto.Title,
		Summary:    dto.Abstract,
		Date:       date,
		Language:   dto.Language,
		Canton:     dto.Canton,
		LegalAreas: dto.Areas,
		URL:        dto.URL,
		FullText:   dto.Text,
	}
}
