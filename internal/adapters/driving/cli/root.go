// Package cli implements the lexsearch command-line interface. Commands
// are thin shells over the driving ports; all citation and retrieval
// logic lives in the core services.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lexhelvetia/lexsearch/internal/adapters/driven/config/file"
	"github.com/lexhelvetia/lexsearch/internal/adapters/driven/storage/sqlite"
	"github.com/lexhelvetia/lexsearch/internal/connectors/bger"
	"github.com/lexhelvetia/lexsearch/internal/connectors/entscheidsuche"
	"github.com/lexhelvetia/lexsearch/internal/connectors/legalis"
	"github.com/lexhelvetia/lexsearch/internal/core/ports/driving"
	"github.com/lexhelvetia/lexsearch/internal/core/services"
	"github.com/lexhelvetia/lexsearch/internal/logger"
)

var version = "dev"

var (
	verbose   bool
	configDir string
)

// Package-level services shared by the commands. The citation service is
// pure and always available; the retrieval service is wired lazily by
// initRetrieval because it opens the database.
var (
	citationService  driving.CitationService = services.NewCitationService()
	retrievalService driving.RetrievalService
	store            *sqlite.Store
	settings         file.Settings
)

var rootCmd = &cobra.Command{
	Use:   "lexsearch",
	Short: "Swiss legal citation and case-law search",
	Long: `lexsearch validates, formats and translates Swiss legal citations and
searches federal decisions, cantonal decisions and legal commentary
through cached, rate-limited source clients.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configDir, "config", "", "config directory (default ~/.lexsearch)")
}

// Execute runs the root command.
func Execute(v string) error {
	if v != "" {
		version = v
	}
	defer closeStore()
	return rootCmd.Execute()
}

// initRetrieval wires the retrieval service: settings, SQLite stores and
// the three source clients. Idempotent; commands that only touch the
// citation engine never call it.
func initRetrieval() error {
	if retrievalService != nil {
		return nil
	}

	settingsStore, err := file.NewSettingsStore(configDir)
	if err != nil {
		return fmt.Errorf("opening config: %w", err)
	}
	settings, err = settingsStore.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	store, err = sqlite.NewStore(settings.DataDir)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}

	federal := bger.New(bger.Config{
		BaseURL:           settings.Sources["bger"].BaseURL,
		RequestsPerMinute: settings.Sources["bger"].RequestsPerMinute,
	})
	cantonal := entscheidsuche.New(entscheidsuche.Config{
		BaseURL:           settings.Sources["entscheidsuche"].BaseURL,
		RequestsPerMinute: settings.Sources["entscheidsuche"].RequestsPerMinute,
	})
	commentary := legalis.New(legalis.Config{
		BaseURL:           settings.Sources["legalis"].BaseURL,
		RequestsPerMinute: settings.Sources["legalis"].RequestsPerMinute,
	})

	retrievalService = services.NewRetrievalService(
		federal, cantonal, commentary,
		store.CacheStore(), store.DecisionStore(), store.CommentaryStore(), store.QueryLog(),
		services.RetrievalConfig{
			SearchTTL:   settings.Cache.SearchTTL.Duration(),
			DecisionTTL: settings.Cache.DecisionTTL.Duration(),
		},
	)
	return nil
}

func closeStore() {
	if store != nil {
		if err := store.Close(); err != nil {
			logger.Warn("closing store: %v", err)
		}
	}
}
