package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var decisionJSON bool

var decisionCmd = &cobra.Command{
	Use:   "decision [id]",
	Short: "Fetch one decision by its external identifier",
	Args:  cobra.ExactArgs(1),
	RunE:  runDecision,
}

func init() {
	decisionCmd.Flags().BoolVar(&decisionJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(decisionCmd)
}

func runDecision(cmd *cobra.Command, args []string) error {
	if err := initRetrieval(); err != nil {
		return err
	}

	dec, found, err := retrievalService.GetDecision(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("fetching decision: %w", err)
	}
	if !found {
		cmd.Printf("No decision found for %q.\n", args[0])
		return nil
	}

	if decisionJSON {
		return printJSON(cmd, dec)
	}

	cmd.Println(dec.Title)
	if !dec.Date.IsZero() {
		cmd.Printf("date: %s\n", dec.Date.Format("2006-01-02"))
	}
	if dec.Language != "" {
		cmd.Printf("language: %s\n", dec.Language)
	}
	if dec.Canton != "" {
		cmd.Printf("canton: %s\n", dec.Canton)
	}
	if dec.URL != "" {
		cmd.Printf("url: %s\n", dec.URL)
	}
	if dec.Summary != "" {
		cmd.Printf("\n%s\n", dec.Summary)
	}
	if dec.FullText != "" {
		cmd.Printf("\n%s\n", dec.FullText)
	}
	return nil
}
