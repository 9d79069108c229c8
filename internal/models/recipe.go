// ABOUTME: Recipe is the read-only corpus entity for the Benedict skill
// ABOUTME: Holds ingredients, steps, portions, nutrients and cooking time
package models

import (
	"errors"
	"strings"
)

// Recipe represents one recipe from the corpus. Title is the unique key.
type Recipe struct {
	Title       string       `json:"title"`
	Ingredients []Ingredient `json:"ingredients"`
	Portions    int          `json:"portions"`
	Steps       []string     `json:"steps"`
	Nutrients   []Nutrient   `json:"nutrients,omitempty"`
	Time        string       `json:"time,omitempty"`
}

// Ingredient is one entry of a recipe's ingredient list
type Ingredient struct {
	Name   string `json:"name"`
	Amount string `json:"amount"`
}

// Nutrient is one entry of a recipe's nutritional value table
type Nutrient struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
	Unit   string  `json:"unit"`
}

// Validate checks that a recipe can be stored and walked through
func (r *Recipe) Validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return errors.New("recipe title cannot be empty")
	}
	if len(r.Steps) == 0 {
		return errors.New("recipe must have at least one step")
	}
	return nil
}

// NutrientByName returns the nutrient whose name matches (case-insensitive),
// or nil when the recipe carries no such entry.
func (r *Recipe) NutrientByName(name string) *Nutrient {
	for i := range r.Nutrients {
		if strings.EqualFold(r.Nutrients[i].Name, name) {
			return &r.Nutrients[i]
		}
	}
	return nil
}

// SearchText returns the text indexed for full-text search: the title
// plus all ingredient names.
func (r *Recipe) SearchText() string {
	parts := make([]string, 0, len(r.Ingredients)+1)
	parts = append(parts, r.Title)
	for _, ing := range r.Ingredients {
		parts = append(parts, ing.Name)
	}
	return strings.Join(parts, " ")
}
