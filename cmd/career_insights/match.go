package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/career-insights/internal/catalog"
)

var matchCmd = &cobra.Command{
	Use:   "match <query>",
	Short: "Resolve a free-text field of study query",
	Long: `Searches the CIP code universe and the broad fields of study for a
free-text query, a keyword, or a CIP code prefix, and prints the best matches
with their broad field.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runMatch,
}

var (
	matchLimit int
	matchJSON  bool
)

func init() {
	matchCmd.Flags().IntVarP(&matchLimit, "limit", "l", catalog.MaxMatches, "Maximum number of matches to print")
	matchCmd.Flags().BoolVar(&matchJSON, "json", false, "Print matches as JSON")

	rootCmd.AddCommand(matchCmd)
}

func runMatch(_ *cobra.Command, args []string) error {
	query := strings.Join(args, " ")

	matches := catalog.MatchFields(query)
	if matchLimit > 0 && len(matches) > matchLimit {
		matches = matches[:matchLimit]
	}

	if matchJSON {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(matches)
	}

	if len(matches) == 0 {
		fmt.Printf("No fields of study match %q\n", query)
		return nil
	}

	fmt.Printf("Matches for %q:\n", query)
	for i, m := range matches {
		fmt.Printf("%2d. %-52s [%s, score %.2f]\n", i+1, m.DisplayName, m.MatchType, m.Score)
		if m.Subfield != "" {
			fmt.Printf("      broad field: %s, subfield: %s\n", m.BroadField, m.Subfield)
		} else {
			fmt.Printf("      broad field: %s\n", m.BroadField)
		}
	}
	return nil
}
