// ABOUTME: Rule table evaluation against a token list
// ABOUTME: Presence tests only, first satisfied entry wins, no scoring
package dialog

// Match evaluates the table in declaration order and returns the first
// intent whose rule is satisfied by the tokens. Duplicate tokens are
// idempotent and token order is irrelevant; case folding is the
// caller's responsibility.
func Match(tokens []string, table *RuleTable) (Intent, bool) {
	present := tokenSet(tokens)

	for _, entry := range table.entries {
		if !allPresent(entry.Rule.Necessary, present) {
			continue
		}
		if !anyAlternative(entry.Rule.OneOf, present) {
			continue
		}
		return entry.Intent, true
	}
	return IntentNone, false
}

func tokenSet(tokens []string) map[string]struct{} {
	set := make(map[string]struct{}, len(tokens))
	for _, tok := range tokens {
		set[tok] = struct{}{}
	}
	return set
}

func allPresent(required []string, present map[string]struct{}) bool {
	for _, tok := range required {
		if _, ok := present[tok]; !ok {
			return false
		}
	}
	return true
}

// anyAlternative is vacuously true for an empty list; otherwise at least
// one alternative must have all its tokens present
func anyAlternative(alts []Alternative, present map[string]struct{}) bool {
	if len(alts) == 0 {
		return true
	}
	for _, alt := range alts {
		if allPresent(alt.tokens, present) {
			return true
		}
	}
	return false
}
