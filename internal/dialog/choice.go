// ABOUTME: ClosestChoiceResolver maps free-form utterances to candidates
// ABOUTME: Normalized word overlap score with a small penalty for misses
package dialog

import (
	"github.com/harper/benedict-skill/internal/morph"
)

// missPenalty is subtracted per candidate lemma absent from the input
const missPenalty = 0.1

// ChoiceResolver scores an utterance against a short candidate list
// using lemma overlap. Used for numbered/named selection out of a page
// of recipe titles when no explicit ordinal is given.
type ChoiceResolver struct {
	morph morph.Analyzer
}

// NewChoiceResolver creates a resolver backed by the given analyzer
func NewChoiceResolver(an morph.Analyzer) *ChoiceResolver {
	return &ChoiceResolver{morph: an}
}

// Resolve returns the best-scoring candidate, or false when the maximum
// score is not positive. Ties keep the earliest candidate.
func (r *ChoiceResolver) Resolve(tokens []string, candidates []string) (string, bool) {
	input := make(map[string]struct{}, len(tokens))
	for _, tok := range tokens {
		input[r.morph.Normalize(tok)] = struct{}{}
	}

	best := ""
	bestScore := 0.0
	found := false
	for _, candidate := range candidates {
		score := r.score(input, candidate)
		if !found || score > bestScore {
			best, bestScore, found = candidate, score, true
		}
	}

	if !found || bestScore <= 0 {
		return "", false
	}
	return best, true
}

func (r *ChoiceResolver) score(input map[string]struct{}, candidate string) float64 {
	var hits, misses int
	for _, word := range morph.Tokenize(candidate) {
		if _, ok := input[r.morph.Normalize(word)]; ok {
			hits++
		} else {
			misses++
		}
	}
	return float64(hits) - missPenalty*float64(misses)
}
