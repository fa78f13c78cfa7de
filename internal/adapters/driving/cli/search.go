package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/lexhelvetia/lexsearch/internal/core/domain"
)

var (
	searchLimit    int
	searchLanguage string
	searchCanton   string
	searchFrom     string
	searchTo       string
	searchArea     string
	searchJSON     bool
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search external legal-data sources",
	Long: `Search Swiss legal-data sources. Results are cached and the sources
are rate limited, so repeated queries are served locally.`,
}

var searchFederalCmd = &cobra.Command{
	Use:   "federal [query]",
	Short: "Search Federal Supreme Court decisions",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDecisionSearch(cmd, args[0], func() (*domain.SearchResult, error) {
			filters, err := buildFilters(args[0])
			if err != nil {
				return nil, err
			}
			return retrievalService.SearchFederal(cmd.Context(), filters)
		})
	},
}

var searchCantonalCmd = &cobra.Command{
	Use:   "cantonal [query]",
	Short: "Search cantonal court decisions",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDecisionSearch(cmd, args[0], func() (*domain.SearchResult, error) {
			filters, err := buildFilters(args[0])
			if err != nil {
				return nil, err
			}
			return retrievalService.SearchCantonal(cmd.Context(), filters)
		})
	},
}

var searchCommentaryCmd = &cobra.Command{
	Use:   "commentary [query]",
	Short: "Search legal commentary",
	Args:  cobra.ExactArgs(1),
	RunE:  runCommentarySearch,
}

func init() {
	searchCmd.PersistentFlags().IntVarP(&searchLimit, "limit", "n", 10, "maximum number of results")
	searchCmd.PersistentFlags().StringVarP(&searchLanguage, "lang", "l", "", "restrict to one language (de, fr, it)")
	searchCmd.PersistentFlags().StringVar(&searchFrom, "from", "", "earliest decision date (YYYY-MM-DD)")
	searchCmd.PersistentFlags().StringVar(&searchTo, "to", "", "latest decision date (YYYY-MM-DD)")
	searchCmd.PersistentFlags().StringVar(&searchArea, "area", "", "restrict to one legal area")
	searchCmd.PersistentFlags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	searchCantonalCmd.Flags().StringVar(&searchCanton, "canton", "", "two-letter canton code")
	searchCmd.AddCommand(searchFederalCmd, searchCantonalCmd, searchCommentaryCmd)
	rootCmd.AddCommand(searchCmd)
}

func buildFilters(query string) (domain.SearchFilters, error) {
	filters := domain.SearchFilters{
		Query:     query,
		Language:  searchLanguage,
		Canton:    searchCanton,
		LegalArea: searchArea,
		Limit:     searchLimit,
	}

	var err error
	if searchFrom != "" {
		if filters.FromDate, err = time.Parse("2006-01-02", searchFrom); err != nil {
			return domain.SearchFilters{}, fmt.Errorf("--from: expected YYYY-MM-DD, got %q", searchFrom)
		}
	}
	if searchTo != "" {
		if filters.ToDate, err = time.Parse("2006-01-02", searchTo); err != nil {
			return domain.SearchFilters{}, fmt.Errorf("--to: expected YYYY-MM-DD, got %q", searchTo)
		}
	}
	return filters, nil
}

func runDecisionSearch(cmd *cobra.Command, query string, search func() (*domain.SearchResult, error)) error {
	if err := initRetrieval(); err != nil {
		return err
	}

	result, err := search()
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		return printJSON(cmd, result)
	}

	if len(result.Decisions) == 0 {
		cmd.Println("No results found.")
		return nil
	}

	origin := "live"
	if result.FromCache {
		origin = "cached"
	}
	cmd.Printf("%d of %d results (%s) for %q\n\n", len(result.Decisions), result.Total, origin, query)
	for i, dec := range result.Decisions {
		cmd.Printf("[%d] %s\n", i+1, dec.Title)
		if !dec.Date.IsZero() {
			cmd.Printf("    %s", dec.Date.Format("2006-01-02"))
			if dec.Canton != "" {
				cmd.Printf("  %s", dec.Canton)
			}
			cmd.Println()
		}
		if dec.Summary != "" {
			cmd.Printf("    %s\n", truncate(dec.Summary, 120))
		}
		cmd.Printf("    id: %s\n\n", dec.ExternalID)
	}
	return nil
}

func runCommentarySearch(cmd *cobra.Command, args []string) error {
	if err := initRetrieval(); err != nil {
		return err
	}

	filters, err := buildFilters(args[0])
	if err != nil {
		return err
	}

	result, err := retrievalService.SearchCommentary(cmd.Context(), filters)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		return printJSON(cmd, result)
	}

	if len(result.Entries) == 0 {
		cmd.Println("No results found.")
		return nil
	}
	for i, entry := range result.Entries {
		cmd.Printf("[%d] %s, %s", i+1, entry.Authors, entry.Title)
		if entry.Year > 0 {
			cmd.Printf(" (%d)", entry.Year)
		}
		cmd.Println()
		if entry.Statute != "" {
			cmd.Printf("    statute: %s\n", entry.Statute)
		}
		cmd.Printf("    id: %s\n\n", entry.ExternalID)
	}
	return nil
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}
