// ABOUTME: Lemmatizer port consumed by the dialog core
// ABOUTME: Normalization, case inflection and numeral agreement for Russian
package morph

import (
	"strings"
	"unicode"
)

// Case identifies a target grammatical case for Inflect
type Case int

const (
	CaseNominative Case = iota
	CaseGenitive
	CaseDative
	CaseAccusative
	CaseInstrumental
	CasePrepositional
)

// Analyzer is the morphological collaborator contract. The dialog core
// only depends on this interface; hosts may substitute a real
// dictionary-backed analyzer.
type Analyzer interface {
	// Normalize returns the dictionary (normal) form of a single word.
	Normalize(word string) string
	// Inflect rewrites a phrase into the target grammatical case.
	Inflect(phrase string, c Case) string
	// AgreeWithNumber returns the form of word agreeing with count n,
	// e.g. 1 рецепт, 2 рецепта, 5 рецептов.
	AgreeWithNumber(word string, n int) string
}

// Tokenize splits raw text into lowercase word tokens. Tokenization is a
// caller-side concern for the dialog core; CLI and MCP surfaces use this.
func Tokenize(raw string) []string {
	lowered := strings.ToLower(strings.ReplaceAll(raw, "ё", "е"))
	return strings.FieldsFunc(lowered, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
