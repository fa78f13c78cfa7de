package mcp

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/lexhelvetia/lexsearch/internal/citation"
	"github.com/lexhelvetia/lexsearch/internal/core/domain"
)

// dateFormat is the wire format for date filters.
const dateFormat = "2006-01-02"

// SearchDecisionsInput is the input schema for the decision search tools.
type SearchDecisionsInput struct {
	Query     string `json:"query" jsonschema:"free-text search query"`
	Language  string `json:"language,omitempty" jsonschema:"restrict results to one publication language (de, fr or it)"`
	Canton    string `json:"canton,omitempty" jsonschema:"two-letter canton code, cantonal search only"`
	FromDate  string `json:"from_date,omitempty" jsonschema:"earliest decision date, YYYY-MM-DD"`
	ToDate    string `json:"to_date,omitempty" jsonschema:"latest decision date, YYYY-MM-DD"`
	LegalArea string `json:"legal_area,omitempty" jsonschema:"restrict results to one legal area"`
	Limit     int    `json:"limit,omitempty" jsonschema:"maximum number of results (default 10, capped at 50)"`
}

// DecisionOutput is one decision record in a tool response.
type DecisionOutput struct {
	ID         string   `json:"id"`
	Source     string   `json:"source"`
	Title      string   `json:"title"`
	Summary    string   `json:"summary,omitempty"`
	Date       string   `json:"date,omitempty"`
	Language   string   `json:"language,omitempty"`
	Canton     string   `json:"canton,omitempty"`
	LegalAreas []string `json:"legal_areas,omitempty"`
	URL        string   `json:"url,omitempty"`
	FullText   string   `json:"full_text,omitempty"`
}

// SearchDecisionsOutput is the output schema for the decision search tools.
type SearchDecisionsOutput struct {
	Results   []DecisionOutput `json:"results"`
	Total     int              `json:"total"`
	FromCache bool             `json:"from_cache"`
}

// SearchCommentaryOutput is the output schema for the commentary search tool.
type SearchCommentaryOutput struct {
	Results   []CommentaryOutput `json:"results"`
	Total     int                `json:"total"`
	FromCache bool               `json:"from_cache"`
}

// CommentaryOutput is one commentary record in a tool response.
type CommentaryOutput struct {
	ID       string `json:"id"`
	Source   string `json:"source"`
	Authors  string `json:"authors"`
	Title    string `json:"title"`
	Summary  string `json:"summary,omitempty"`
	Statute  string `json:"statute,omitempty"`
	Year     int    `json:"year,omitempty"`
	Language string `json:"language,omitempty"`
	URL      string `json:"url,omitempty"`
}

// GetDecisionInput is the input schema for the decision lookup tool.
type GetDecisionInput struct {
	ID string `json:"id" jsonschema:"the decision's external identifier"`
}

// GetDecisionOutput is the output schema for the decision lookup tool.
type GetDecisionOutput struct {
	Found    bool            `json:"found"`
	Decision *DecisionOutput `json:"decision,omitempty"`
}

// CitationInput is the input schema for the citation text tools.
type CitationInput struct {
	Citation string `json:"citation" jsonschema:"the citation text to analyse"`
}

// ComponentsOutput is the JSON rendering of parsed citation components.
// Only the fields of the citation's kind are populated.
type ComponentsOutput struct {
	Volume        int    `json:"volume,omitempty"`
	Chamber       string `json:"chamber,omitempty"`
	Page          int    `json:"page,omitempty"`
	Consideration string `json:"consideration,omitempty"`

	Code          string `json:"code,omitempty"`
	Article       int    `json:"article,omitempty"`
	ArticleSuffix string `json:"article_suffix,omitempty"`
	Paragraph     *int   `json:"paragraph,omitempty"`
	Letter        string `json:"letter,omitempty"`
	Number        *int   `json:"number,omitempty"`

	Court  string `json:"court,omitempty"`
	Canton string `json:"canton,omitempty"`
	Docket string `json:"docket,omitempty"`

	Authors string `json:"authors,omitempty"`
	Title   string `json:"title,omitempty"`
	Year    int    `json:"year,omitempty"`
}

// ValidateCitationOutput is the output schema for the validation tool.
type ValidateCitationOutput struct {
	Valid      bool              `json:"valid"`
	Kind       string            `json:"kind"`
	Language   string            `json:"language"`
	Normalized string            `json:"normalized,omitempty"`
	Components *ComponentsOutput `json:"components,omitempty"`
	Errors     []string          `json:"errors,omitempty"`
	Warnings   []string          `json:"warnings,omitempty"`
}

// ParseCitationsInput is the input schema for the extraction tool.
type ParseCitationsInput struct {
	Text string `json:"text" jsonschema:"running text to extract citations from"`
}

// ParsedCitationOutput is one extracted citation.
type ParsedCitationOutput struct {
	Text        string            `json:"text"`
	Kind        string            `json:"kind"`
	Language    string            `json:"language"`
	Valid       bool              `json:"valid"`
	Components  *ComponentsOutput `json:"components,omitempty"`
	Suggestions []string          `json:"suggestions,omitempty"`
}

// ParseCitationsOutput is the output schema for the extraction tool.
type ParseCitationsOutput struct {
	Citations []ParsedCitationOutput `json:"citations"`
	Count     int                    `json:"count"`
}

// FormatCitationInput is the input schema for the formatting tool.
type FormatCitationInput struct {
	Citation string `json:"citation" jsonschema:"the citation to reformat"`
	Language string `json:"language" jsonschema:"target language (de, fr, it or en)"`
}

// FormatCitationOutput is the output schema for the formatting tool.
type FormatCitationOutput struct {
	Citation      string `json:"citation"`
	FullReference string `json:"full_reference,omitempty"`
}

// TranslateCitationOutput is the output schema for the translation tool.
type TranslateCitationOutput struct {
	Translations map[string]string `json:"translations"`
}

// CacheStatsInput is the input schema for the cache diagnostics tool.
type CacheStatsInput struct {
	TopN int `json:"top_n,omitempty" jsonschema:"how many most-accessed entries to list (default 5)"`
}

// CacheEntryOutput is one cache entry in the diagnostics response.
type CacheEntryOutput struct {
	Key       string `json:"key"`
	HitCount  int64  `json:"hit_count"`
	ExpiresAt string `json:"expires_at"`
}

// CacheStatsOutput is the output schema for the cache diagnostics tool.
type CacheStatsOutput struct {
	Entries      int64              `json:"entries"`
	Expired      int64              `json:"expired"`
	MostAccessed []CacheEntryOutput `json:"most_accessed,omitempty"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search_federal_decisions",
		Description: "Search published decisions of the Swiss Federal Supreme Court",
	}, s.handleSearchFederal)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search_cantonal_decisions",
		Description: "Search decisions of Swiss cantonal courts",
	}, s.handleSearchCantonal)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search_commentary",
		Description: "Search Swiss legal commentary and doctrine",
	}, s.handleSearchCommentary)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_decision",
		Description: "Fetch one decision by its external identifier",
	}, s.handleGetDecision)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "validate_citation",
		Description: "Validate a Swiss legal citation and return its normalized form",
	}, s.handleValidateCitation)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "parse_citations",
		Description: "Extract all legal citations from running text",
	}, s.handleParseCitations)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "format_citation",
		Description: "Render a citation in a target language (de, fr, it, en)",
	}, s.handleFormatCitation)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "translate_citation",
		Description: "Render a citation in all four supported languages",
	}, s.handleTranslateCitation)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "cache_stats",
		Description: "Report cache diagnostics for the retrieval layer",
	}, s.handleCacheStats)
}

func (s *Server) handleSearchFederal(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchDecisionsInput,
) (*mcp.CallToolResult, SearchDecisionsOutput, error) {
	filters, err := toFilters(input)
	if err != nil {
		return nil, SearchDecisionsOutput{}, err
	}

	result, err := s.ports.Retrieval.SearchFederal(ctx, filters)
	if err != nil {
		return nil, SearchDecisionsOutput{}, err
	}
	return nil, toSearchOutput(result), nil
}

func (s *Server) handleSearchCantonal(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchDecisionsInput,
) (*mcp.CallToolResult, SearchDecisionsOutput, error) {
	filters, err := toFilters(input)
	if err != nil {
		return nil, SearchDecisionsOutput{}, err
	}

	result, err := s.ports.Retrieval.SearchCantonal(ctx, filters)
	if err != nil {
		return nil, SearchDecisionsOutput{}, err
	}
	return nil, toSearchOutput(result), nil
}

func (s *Server) handleSearchCommentary(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchDecisionsInput,
) (*mcp.CallToolResult, SearchCommentaryOutput, error) {
	filters, err := toFilters(input)
	if err != nil {
		return nil, SearchCommentaryOutput{}, err
	}

	result, err := s.ports.Retrieval.SearchCommentary(ctx, filters)
	if err != nil {
		return nil, SearchCommentaryOutput{}, err
	}

	output := SearchCommentaryOutput{
		Results:   make([]CommentaryOutput, len(result.Entries)),
		Total:     result.Total,
		FromCache: result.FromCache,
	}
	for i, entry := range result.Entries {
		output.Results[i] = CommentaryOutput{
			ID:       entry.ExternalID,
			Source:   entry.Source,
			Authors:  entry.Authors,
			Title:    entry.Title,
			Summary:  entry.Summary,
			Statute:  entry.Statute,
			Year:     entry.Year,
			Language: entry.Language,
			URL:      entry.URL,
		}
	}
	return nil, output, nil
}

func (s *Server) handleGetDecision(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input GetDecisionInput,
) (*mcp.CallToolResult, GetDecisionOutput, error) {
	dec, found, err := s.ports.Retrieval.GetDecision(ctx, input.ID)
	if err != nil {
		return nil, GetDecisionOutput{}, err
	}
	if !found {
		return nil, GetDecisionOutput{Found: false}, nil
	}

	out := toDecisionOutput(*dec)
	return nil, GetDecisionOutput{Found: true, Decision: &out}, nil
}

func (s *Server) handleValidateCitation(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input CitationInput,
) (*mcp.CallToolResult, ValidateCitationOutput, error) {
	result := s.ports.Citation.Validate(input.Citation)

	return nil, ValidateCitationOutput{
		Valid:      result.Valid,
		Kind:       string(result.Kind),
		Language:   string(result.Language),
		Normalized: result.Normalized,
		Components: toComponentsOutput(result.Components),
		Errors:     result.Errors,
		Warnings:   result.Warnings,
	}, nil
}

func (s *Server) handleParseCitations(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input ParseCitationsInput,
) (*mcp.CallToolResult, ParseCitationsOutput, error) {
	parsed := s.ports.Citation.ParseMultiple(input.Text)

	output := ParseCitationsOutput{
		Citations: make([]ParsedCitationOutput, len(parsed)),
		Count:     len(parsed),
	}
	for i, p := range parsed {
		output.Citations[i] = ParsedCitationOutput{
			Text:        p.Raw,
			Kind:        string(p.Kind),
			Language:    string(p.Language),
			Valid:       p.Valid,
			Components:  toComponentsOutput(p.Components),
			Suggestions: p.Suggestions,
		}
	}
	return nil, output, nil
}

func (s *Server) handleFormatCitation(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input FormatCitationInput,
) (*mcp.CallToolResult, FormatCitationOutput, error) {
	lang := citation.Language(strings.ToLower(strings.TrimSpace(input.Language)))
	if !lang.Valid() {
		return nil, FormatCitationOutput{}, fmt.Errorf("unsupported language %q", input.Language)
	}

	components, err := s.resolveComponents(input.Citation)
	if err != nil {
		return nil, FormatCitationOutput{}, err
	}

	formatted, err := s.ports.Citation.Format(components, lang)
	if err != nil {
		return nil, FormatCitationOutput{}, err
	}
	return nil, FormatCitationOutput{
		Citation:      formatted.Citation,
		FullReference: formatted.FullReference,
	}, nil
}

func (s *Server) handleTranslateCitation(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input CitationInput,
) (*mcp.CallToolResult, TranslateCitationOutput, error) {
	components, err := s.resolveComponents(input.Citation)
	if err != nil {
		return nil, TranslateCitationOutput{}, err
	}

	translations := s.ports.Citation.Translate(components)
	output := TranslateCitationOutput{Translations: make(map[string]string, len(translations))}
	for lang, text := range translations {
		output.Translations[string(lang)] = text
	}
	return nil, output, nil
}

func (s *Server) handleCacheStats(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input CacheStatsInput,
) (*mcp.CallToolResult, CacheStatsOutput, error) {
	topN := input.TopN
	if topN <= 0 {
		topN = 5
	}

	stats, err := s.ports.Retrieval.CacheStats(ctx, topN)
	if err != nil {
		return nil, CacheStatsOutput{}, err
	}

	output := CacheStatsOutput{
		Entries: stats.Entries,
		Expired: stats.Expired,
	}
	for _, entry := range stats.MostAccessed {
		output.MostAccessed = append(output.MostAccessed, CacheEntryOutput{
			Key:       entry.Key,
			HitCount:  entry.HitCount,
			ExpiresAt: entry.ExpiresAt.Format(time.RFC3339),
		})
	}
	return nil, output, nil
}

// resolveComponents parses a citation string into components, surfacing
// the validator's first diagnostic when the input is unusable.
func (s *Server) resolveComponents(text string) (citation.Components, error) {
	parsed := s.ports.Citation.Parse(text)
	if parsed.Kind == citation.KindUnknown || parsed.Components == nil {
		return nil, fmt.Errorf("unrecognised citation %q", text)
	}
	if _, ok := parsed.Components.(citation.Unknown); ok {
		if len(parsed.Suggestions) > 0 {
			return nil, fmt.Errorf("unrecognised citation %q: %s", text, parsed.Suggestions[0])
		}
		return nil, fmt.Errorf("unrecognised citation %q", text)
	}
	return parsed.Components, nil
}

func toFilters(input SearchDecisionsInput) (domain.SearchFilters, error) {
	filters := domain.SearchFilters{
		Query:     input.Query,
		Language:  strings.ToLower(input.Language),
		Canton:    strings.ToUpper(input.Canton),
		LegalArea: input.LegalArea,
		Limit:     input.Limit,
	}

	var err error
	if filters.FromDate, err = parseDateFilter(input.FromDate); err != nil {
		return domain.SearchFilters{}, fmt.Errorf("from_date: %w", err)
	}
	if filters.ToDate, err = parseDateFilter(input.ToDate); err != nil {
		return domain.SearchFilters{}, fmt.Errorf("to_date: %w", err)
	}
	return filters, nil
}

func parseDateFilter(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(dateFormat, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("expected YYYY-MM-DD, got %q", value)
	}
	return t, nil
}

func toSearchOutput(result *domain.SearchResult) SearchDecisionsOutput {
	output := SearchDecisionsOutput{
		Results:   make([]DecisionOutput, len(result.Decisions)),
		Total:     result.Total,
		FromCache: result.FromCache,
	}
	for i, dec := range result.Decisions {
		output.Results[i] = toDecisionOutput(dec)
	}
	return output
}

func toDecisionOutput(dec domain.Decision) DecisionOutput {
	out := DecisionOutput{
		ID:         dec.ExternalID,
		Source:     dec.Source,
		Title:      dec.Title,
		Summary:    dec.Summary,
		Language:   dec.Language,
		Canton:     dec.Canton,
		LegalAreas: dec.LegalAreas,
		URL:        dec.URL,
		FullText:   dec.FullText,
	}
	if !dec.Date.IsZero() {
		out.Date = dec.Date.Format(dateFormat)
	}
	return out
}

func toComponentsOutput(c citation.Components) *ComponentsOutput {
	switch v := c.(type) {
	case citation.CourtDecision:
		return &ComponentsOutput{
			Volume:        v.Volume,
			Chamber:       string(v.Chamber),
			Page:          v.Page,
			Consideration: v.Consideration,
		}
	case citation.Statute:
		return &ComponentsOutput{
			Code:          v.Code,
			Article:       v.Article,
			ArticleSuffix: v.ArticleSuffix,
			Paragraph:     v.Paragraph,
			Letter:        v.Letter,
			Number:        v.Number,
		}
	case citation.CantonalDecision:
		return &ComponentsOutput{
			Court:  v.Court,
			Canton: v.Canton,
			Docket: v.Docket,
		}
	case citation.Doctrine:
		return &ComponentsOutput{
			Authors: v.Authors,
			Title:   v.Title,
			Year:    v.Year,
			Page:    v.Page,
		}
	default:
		return nil
	}
}
