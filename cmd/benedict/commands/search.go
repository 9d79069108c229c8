// ABOUTME: CLI command to search the recipe corpus
// ABOUTME: Ranked full-text search with optional exclude terms
package commands

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/joho/godotenv"
)

var (
	searchLimit   int
	searchExclude []string
)

// NewSearchCmd creates search command
func NewSearchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search recipes",
		Long: `Search the recipe corpus by free text.

Titles and ingredient names are indexed; each exclude term becomes an
independent negation clause.

Examples:
  benedict search "карбонара"
  benedict search --exclude сыр "что приготовить из картофеля"
  benedict search --limit 10 --format json "суп"`,
		Args: cobra.ExactArgs(1),
		RunE: runSearch,
	}

	cmd.Flags().IntVar(&searchLimit, "limit", 5, "Maximum results to return")
	cmd.Flags().StringSliceVar(&searchExclude, "exclude", []string{}, "Terms to exclude (comma-separated)")

	return cmd
}

func runSearch(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	if err := validatePositiveInt(searchLimit, "limit"); err != nil {
		return err
	}

	s, err := openStores()
	if err != nil {
		return fmt.Errorf("initializing storage: %w", err)
	}
	defer s.Close()

	titles, err := s.storage.Recipes().SearchByText(args[0], searchExclude, searchLimit)
	if err != nil {
		return fmt.Errorf("searching recipes: %w", err)
	}

	if len(titles) == 0 {
		if !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "No recipes found for query: %s\n", args[0])
		}
		return nil
	}

	if outputFormat == "json" {
		jsonData, err := json.MarshalIndent(titles, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "RANK\tTITLE\n")
	fmt.Fprintf(w, "----\t-----\n")
	for i, title := range titles {
		fmt.Fprintf(w, "%d\t%s\n", i+1, truncate(title, 60))
	}
	return w.Flush()
}
