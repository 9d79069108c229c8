// ABOUTME: CLI command to import a recipe corpus from a JSON file
// ABOUTME: Upserts each recipe and refreshes its search index entry
package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/harper/benedict-skill/internal/models"
	"github.com/joho/godotenv"
)

// NewImportCmd creates import command
func NewImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import recipes from a JSON file",
		Long: `Import recipes from a JSON file into the corpus.

The file must contain a JSON array of recipes with title, ingredients,
portions, steps and optional nutrients and time fields. Existing
recipes with the same title are replaced.

Examples:
  benedict import recipes.json`,
		Args: cobra.ExactArgs(1),
		RunE: runImport,
	}

	return cmd
}

func runImport(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading file: %w", err)
	}

	var recipes []models.Recipe
	if err := json.Unmarshal(data, &recipes); err != nil {
		return fmt.Errorf("parsing recipes: %w", err)
	}
	if len(recipes) == 0 {
		return fmt.Errorf("no recipes found in %s", args[0])
	}

	s, err := openStores()
	if err != nil {
		return fmt.Errorf("initializing storage: %w", err)
	}
	defer s.Close()

	imported := 0
	for i := range recipes {
		if err := s.storage.Recipes().Upsert(&recipes[i]); err != nil {
			return fmt.Errorf("importing %q: %w", recipes[i].Title, err)
		}
		if verbose {
			fmt.Fprintf(cmd.ErrOrStderr(), "Imported: %s\n", recipes[i].Title)
		}
		imported++
	}

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "Imported %d recipes\n", imported)
	}
	return nil
}
