package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lexhelvetia/lexsearch/internal/citation"
)

var (
	citeFormatLang string
	citeJSON       bool
)

var citeCmd = &cobra.Command{
	Use:   "cite",
	Short: "Citation tools",
	Long:  `Validate, format, translate and extract Swiss legal citations.`,
}

var citeValidateCmd = &cobra.Command{
	Use:   "validate [citation]",
	Short: "Validate a citation and print its normalized form",
	Args:  cobra.ExactArgs(1),
	RunE:  runCiteValidate,
}

var citeFormatCmd = &cobra.Command{
	Use:   "format [citation]",
	Short: "Render a citation in a target language",
	Args:  cobra.ExactArgs(1),
	RunE:  runCiteFormat,
}

var citeTranslateCmd = &cobra.Command{
	Use:   "translate [citation]",
	Short: "Render a citation in all four languages",
	Args:  cobra.ExactArgs(1),
	RunE:  runCiteTranslate,
}

var citeParseCmd = &cobra.Command{
	Use:   "parse [text]",
	Short: "Extract all citations from running text",
	Args:  cobra.ExactArgs(1),
	RunE:  runCiteParse,
}

func init() {
	citeFormatCmd.Flags().StringVarP(&citeFormatLang, "lang", "l", "de", "target language (de, fr, it, en)")
	citeCmd.PersistentFlags().BoolVar(&citeJSON, "json", false, "output as JSON")
	citeCmd.AddCommand(citeValidateCmd, citeFormatCmd, citeTranslateCmd, citeParseCmd)
	rootCmd.AddCommand(citeCmd)
}

func runCiteValidate(cmd *cobra.Command, args []string) error {
	result := citationService.Validate(args[0])

	if citeJSON {
		return printJSON(cmd, result)
	}

	if result.Valid {
		cmd.Printf("valid %s (%s)\n", result.Kind, result.Language)
		cmd.Printf("normalized: %s\n", result.Normalized)
		for _, w := range result.Warnings {
			cmd.Printf("warning: %s\n", w)
		}
		return nil
	}

	cmd.Printf("invalid %s (%s)\n", result.Kind, result.Language)
	for _, e := range result.Errors {
		cmd.Printf("error: %s\n", e)
	}
	return nil
}

func runCiteFormat(cmd *cobra.Command, args []string) error {
	lang := citation.Language(strings.ToLower(citeFormatLang))
	if !lang.Valid() {
		return fmt.Errorf("unsupported language %q", citeFormatLang)
	}

	parsed := citationService.Parse(args[0])
	if parsed.Kind == citation.KindUnknown {
		return fmt.Errorf("unrecognised citation %q", args[0])
	}

	formatted, err := citationService.Format(parsed.Components, lang)
	if err != nil {
		return err
	}

	if citeJSON {
		return printJSON(cmd, formatted)
	}
	cmd.Println(formatted.Citation)
	if formatted.FullReference != "" {
		cmd.Println(formatted.FullReference)
	}
	return nil
}

func runCiteTranslate(cmd *cobra.Command, args []string) error {
	parsed := citationService.Parse(args[0])
	if parsed.Kind == citation.KindUnknown {
		return fmt.Errorf("unrecognised citation %q", args[0])
	}

	translations := citationService.Translate(parsed.Components)

	if citeJSON {
		return printJSON(cmd, translations)
	}
	for _, lang := range citation.Languages {
		if text, ok := translations[lang]; ok {
			cmd.Printf("%s: %s\n", lang, text)
		}
	}
	return nil
}

func runCiteParse(cmd *cobra.Command, args []string) error {
	parsed := citationService.ParseMultiple(args[0])

	if citeJSON {
		return printJSON(cmd, parsed)
	}

	if len(parsed) == 0 {
		cmd.Println("No citations found.")
		return nil
	}
	for _, p := range parsed {
		status := "valid"
		if !p.Valid {
			status = "invalid"
		}
		cmd.Printf("%-8s %-18s %s\n", status, p.Kind, p.Raw)
	}
	return nil
}

func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding output: %w", err)
	}
	cmd.Println(string(data))
	return nil
}
