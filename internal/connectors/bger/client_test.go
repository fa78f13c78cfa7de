package bger

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexhelvetia/lexsearch/internal/connectors"
	"github.com/lexhelvetia/lexsearch/internal/core/domain"
)

func newTestSearcher(t *testing.T, handler http.HandlerFunc) *Searcher {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(Config{BaseURL: srv.URL, RequestsPerMinute: 6000})
}

func TestSearch_MapsRecords(t *testing.T) {
	s := newTestSearcher(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/search", r.URL.Path)

		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "Werkvertrag", req["query"])
		assert.Equal(t, float64(10), req["limit"])

		json.NewEncoder(w).Encode(map[string]any{
			"total": 42,
			"results": []map[string]any{{
				"id":          "147-IV-73",
				"title":       "BGE 147 IV 73",
				"regeste":     "Werkvertrag; Haftung des Unternehmers.",
				"date":        "2021-03-11",
				"language":    "de",
				"legal_areas": []string{"Obligationenrecht"},
				"url":         "https://search.bger.ch/147-IV-73",
			}},
		})
	})

	decisions, total, err := s.Search(context.Background(), domain.SearchFilters{Query: "Werkvertrag"})

	require.NoError(t, err)
	assert.Equal(t, 42, total)
	require.Len(t, decisions, 1)
	assert.Equal(t, "147-IV-73", decisions[0].ExternalID)
	assert.Equal(t, SourceName, decisions[0].Source)
	assert.Equal(t, "de", decisions[0].Language)
	assert.Equal(t, 2021, decisions[0].Date.Year())
	assert.Equal(t, []string{"Obligationenrecht"}, decisions[0].LegalAreas)
}

func TestSearch_LimitClamped(t *testing.T) {
	s := newTestSearcher(t, func(w http.ResponseWriter, r *http.Request) {
		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, float64(domain.MaxSearchLimit), req["limit"])
		json.NewEncoder(w).Encode(searchResponse{})
	})

	_, _, err := s.Search(context.Background(), domain.SearchFilters{Query: "q", Limit: 999})
	require.NoError(t, err)
}

// Transient server failures are retried; the caller sees only the final
// success.
func TestSearch_RetriesServerError(t *testing.T) {
	var calls atomic.Int32
	s := newTestSearcher(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		json.NewEncoder(w).Encode(searchResponse{Total: 1})
	})

	_, total, err := s.Search(context.Background(), domain.SearchFilters{Query: "q"})

	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, int32(3), calls.Load())
}

// Client errors are permanent: no retry, classified error surfaces.
func TestSearch_ClientErrorNotRetried(t *testing.T) {
	var calls atomic.Int32
	s := newTestSearcher(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, _, err := s.Search(context.Background(), domain.SearchFilters{Query: "q"})

	require.Error(t, err)
	assert.True(t, connectors.IsAuthentication(err))
	assert.Equal(t, int32(1), calls.Load())
}

func TestGetByID_Found(t *testing.T) {
	s := newTestSearcher(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/decisions/147-IV-73", r.URL.Path)
		json.NewEncoder(w).Encode(decisionDTO{
			ID:        "147-IV-73",
			Title:     "BGE 147 IV 73",
			Date:      "2021-03-11",
			Language:  "de",
			FullText:  "Sachverhalt: ...",
		})
	})

	dec, found, err := s.GetByID(context.Background(), "147-IV-73")

	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "Sachverhalt: ...", dec.FullText)
}

// Absence of a record is an expected outcome, not an error.
func TestGetByID_NotFound(t *testing.T) {
	s := newTestSearcher(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	dec, found, err := s.GetByID(context.Background(), "missing")

	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, dec)
}
