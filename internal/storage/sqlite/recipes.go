// ABOUTME: Recipe storage and FTS5 full-text search operations
// ABOUTME: Query tokens are expanded with stem prefixes for inflection recall
package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/harper/benedict-skill/internal/models"
	"github.com/harper/benedict-skill/internal/morph"
)

// RecipeStore handles recipe persistence and ranked text search
type RecipeStore struct {
	db    *DB
	morph morph.Analyzer
}

// NewRecipeStore creates a new RecipeStore. The analyzer is used to
// widen search tokens with stem-prefix matches; nil disables widening.
func NewRecipeStore(db *DB, an morph.Analyzer) *RecipeStore {
	return &RecipeStore{db: db, morph: an}
}

// Upsert inserts or replaces a recipe and refreshes its search entry
func (s *RecipeStore) Upsert(recipe *models.Recipe) error {
	if err := recipe.Validate(); err != nil {
		return err
	}

	ingredientsJSON, err := json.Marshal(recipe.Ingredients)
	if err != nil {
		return err
	}
	stepsJSON, err := json.Marshal(recipe.Steps)
	if err != nil {
		return err
	}
	nutrientsJSON, err := json.Marshal(recipe.Nutrients)
	if err != nil {
		return err
	}

	_, err = s.db.Exec(`
		INSERT INTO recipes (title, portions, time, ingredients, steps, nutrients)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(title) DO UPDATE SET
			portions = excluded.portions,
			time = excluded.time,
			ingredients = excluded.ingredients,
			steps = excluded.steps,
			nutrients = excluded.nutrients
	`, recipe.Title, recipe.Portions, recipe.Time,
		string(ingredientsJSON), string(stepsJSON), string(nutrientsJSON))
	if err != nil {
		return fmt.Errorf("failed to upsert recipe: %w", err)
	}

	// Refresh the FTS entry (delete + insert keeps it a plain table)
	if _, err := s.db.Exec(`DELETE FROM recipe_search WHERE title = ?`, recipe.Title); err != nil {
		return fmt.Errorf("failed to clear search entry: %w", err)
	}
	if _, err := s.db.Exec(`INSERT INTO recipe_search (title, body) VALUES (?, ?)`,
		recipe.Title, strings.ToLower(recipe.SearchText())); err != nil {
		return fmt.Errorf("failed to index recipe: %w", err)
	}
	return nil
}

// GetByTitle returns the recipe, or nil when the title is unknown
func (s *RecipeStore) GetByTitle(title string) (*models.Recipe, error) {
	var (
		portions                        int
		timeStr                         sql.NullString
		ingredientsJSON, stepsJSON, nutrientsJSON sql.NullString
	)

	err := s.db.QueryRow(`
		SELECT portions, time, ingredients, steps, nutrients
		FROM recipes
		WHERE title = ?
	`, title).Scan(&portions, &timeStr, &ingredientsJSON, &stepsJSON, &nutrientsJSON)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	recipe := &models.Recipe{
		Title:    title,
		Portions: portions,
		Time:     timeStr.String,
	}
	if ingredientsJSON.Valid && ingredientsJSON.String != "" {
		if err := json.Unmarshal([]byte(ingredientsJSON.String), &recipe.Ingredients); err != nil {
			return nil, fmt.Errorf("corrupt ingredients for %q: %w", title, err)
		}
	}
	if stepsJSON.Valid && stepsJSON.String != "" {
		if err := json.Unmarshal([]byte(stepsJSON.String), &recipe.Steps); err != nil {
			return nil, fmt.Errorf("corrupt steps for %q: %w", title, err)
		}
	}
	if nutrientsJSON.Valid && nutrientsJSON.String != "" {
		if err := json.Unmarshal([]byte(nutrientsJSON.String), &recipe.Nutrients); err != nil {
			return nil, fmt.Errorf("corrupt nutrients for %q: %w", title, err)
		}
	}
	return recipe, nil
}

// Count returns the number of recipes in the corpus
func (s *RecipeStore) Count() (int, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM recipes`).Scan(&n)
	return n, err
}

// SearchByText runs ranked full-text search. Each exclude term is ANDed
// in as its own NOT clause. A query with no usable tokens returns no
// results rather than an error.
func (s *RecipeStore) SearchByText(query string, exclude []string, limit int) ([]string, error) {
	match := s.buildMatch(query, exclude)
	if match == "" {
		return nil, nil
	}

	rows, err := s.db.Query(`
		SELECT title FROM recipe_search
		WHERE recipe_search MATCH ?
		ORDER BY bm25(recipe_search)
		LIMIT ?
	`, match, limit)
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var titles []string
	for rows.Next() {
		var title string
		if err := rows.Scan(&title); err != nil {
			return nil, err
		}
		titles = append(titles, title)
	}
	return titles, rows.Err()
}

// buildMatch composes the FTS5 MATCH expression. Include tokens are
// ANDed; each token also matches on its stem prefix so inflected forms
// of the indexed words are found.
func (s *RecipeStore) buildMatch(query string, exclude []string) string {
	includes := morph.Tokenize(query)
	if len(includes) == 0 {
		return ""
	}

	parts := make([]string, 0, len(includes))
	for _, tok := range includes {
		parts = append(parts, s.tokenExpr(tok))
	}
	match := strings.Join(parts, " AND ")

	for _, ex := range exclude {
		for _, tok := range morph.Tokenize(ex) {
			match += " NOT " + s.tokenExpr(tok)
		}
	}
	return match
}

func (s *RecipeStore) tokenExpr(tok string) string {
	quoted := `"` + strings.ReplaceAll(tok, `"`, "") + `"`
	if s.morph == nil {
		return quoted
	}
	stem := s.morph.Normalize(tok)
	if stem == tok || stem == "" {
		return quoted
	}
	return `(` + quoted + ` OR "` + stem + `"*)`
}
