// ABOUTME: Intent enum, trigger rules and the per-state rule tables
// ABOUTME: Tables are ordered; the first satisfied entry wins
package dialog

// Intent identifies the purpose of an utterance within a dialog state
type Intent int

const (
	IntentNone Intent = iota
	IntentRecipeCount
	IntentHelp
	IntentSearchByName
	IntentSearchByIngredients
	IntentRepeat
	IntentStop
	IntentNextPage
	IntentPrevPage
	IntentStartCooking
	IntentIngredients
	IntentNutrition
	IntentCookTime
	IntentPortions
	IntentNextStep
	IntentPrevStep
)

// Alternative is one entry of a rule's one_of list: either a single
// literal token or a group whose members must all be present.
type Alternative struct {
	tokens []string
}

// Lit builds a single-token alternative
func Lit(token string) Alternative {
	return Alternative{tokens: []string{token}}
}

// Group builds an alternative requiring all given tokens
func Group(tokens ...string) Alternative {
	return Alternative{tokens: tokens}
}

// Rule describes one intent's trigger condition. Necessary tokens must
// all be present; at least one alternative of OneOf must be satisfied.
// Empty lists impose no constraint.
type Rule struct {
	Necessary []string
	OneOf     []Alternative
}

// RuleEntry binds an intent to its rule within a table
type RuleEntry struct {
	Intent Intent
	Rule   Rule
}

// RuleTable is an ordered intent-to-rule mapping scoped to one dialog
// state. Iteration order is fixed at construction and decides precedence.
type RuleTable struct {
	entries []RuleEntry
}

// NewRuleTable builds a table preserving declaration order
func NewRuleTable(entries ...RuleEntry) *RuleTable {
	return &RuleTable{entries: entries}
}

// Entries returns the table's entries in declaration order
func (t *RuleTable) Entries() []RuleEntry {
	return t.entries
}

// Shared rule definitions. Token lists follow the command vocabulary of
// the skill; 'еще раз' must resolve to Repeat before a bare 'еще' can
// page forward, so Repeat is declared ahead of NextPage in the list table.
var (
	ruleRecipeCount = Rule{
		Necessary: []string{"рецептов"},
		OneOf: []Alternative{
			Lit("сколько"), Group("как", "много"), Lit("количество"), Lit("число"),
		},
	}
	ruleHelp = Rule{
		OneOf: []Alternative{
			Group("что", "умеешь"), Group("что", "можешь"), Group("что", "знаешь"),
			Group("что", "подскажешь"), Group("что", "могу", "узнать"), Lit("помощь"),
		},
	}
	ruleSearchByName = Rule{
		OneOf: []Alternative{
			Group("как", "приготовить"), Group("как", "готовить"),
			Group("подскажи", "рецепт"), Group("скажи", "рецепт"),
			Group("поищи", "рецепт"), Group("найди", "рецепт"),
		},
	}
	ruleSearchByIngredients = Rule{
		Necessary: []string{"из"},
		OneOf: []Alternative{
			Group("что", "приготовить"), Group("что", "сделать"), Lit("рецепт"),
		},
	}
	ruleRepeat = Rule{
		OneOf: []Alternative{
			Lit("повтори"), Group("еще", "раз"), Group("не", "понял"),
			Group("не", "поняла"), Lit("помедленнее"),
		},
	}
	ruleStop = Rule{
		OneOf: []Alternative{
			Lit("хватит"), Lit("стоп"), Group("до", "свидания"), Lit("отмена"),
		},
	}
	ruleNextPage = Rule{
		OneOf: []Alternative{
			Lit("дальше"), Lit("еще"), Lit("следующие"), Lit("вперед"),
		},
	}
	rulePrevPage = Rule{
		OneOf: []Alternative{
			Lit("назад"), Lit("предыдущие"),
		},
	}
	ruleStartCooking = Rule{
		OneOf: []Alternative{
			Lit("дальше"), Lit("давай"), Lit("начинай"), Lit("поехали"),
			Lit("готовим"), Lit("начнем"), Lit("да"),
		},
	}
	ruleIngredients = Rule{
		OneOf: []Alternative{
			Lit("ингредиенты"), Lit("состав"), Group("что", "нужно"),
			Group("что", "понадобится"),
		},
	}
	ruleNutrition = Rule{
		OneOf: []Alternative{
			Lit("калории"), Lit("калорий"), Lit("калорийность"),
			Lit("белки"), Lit("белков"), Lit("жиры"), Lit("жиров"),
			Lit("углеводы"), Lit("углеводов"), Group("пищевая", "ценность"),
		},
	}
	ruleCookTime = Rule{
		OneOf: []Alternative{
			Group("сколько", "времени"), Group("сколько", "готовить"),
			Group("долго", "готовить"), Group("время", "приготовления"),
		},
	}
	rulePortions = Rule{
		OneOf: []Alternative{
			Group("сколько", "порций"), Lit("порции"), Lit("порций"),
		},
	}
	ruleNextStep = Rule{
		OneOf: []Alternative{
			Lit("дальше"), Lit("потом"), Group("следующий", "шаг"),
			Lit("готово"), Lit("сделал"), Lit("сделала"),
		},
	}
	rulePrevStep = Rule{
		OneOf: []Alternative{
			Lit("назад"), Group("предыдущий", "шаг"), Lit("вернись"),
		},
	}
)

// mainTable drives the Start and Finished states
var mainTable = NewRuleTable(
	RuleEntry{IntentRecipeCount, ruleRecipeCount},
	RuleEntry{IntentHelp, ruleHelp},
	RuleEntry{IntentSearchByName, ruleSearchByName},
	RuleEntry{IntentSearchByIngredients, ruleSearchByIngredients},
	RuleEntry{IntentRepeat, ruleRepeat},
	RuleEntry{IntentStop, ruleStop},
)

// listTable drives the RecipeList state
var listTable = NewRuleTable(
	RuleEntry{IntentHelp, ruleHelp},
	RuleEntry{IntentRepeat, ruleRepeat},
	RuleEntry{IntentNextPage, ruleNextPage},
	RuleEntry{IntentPrevPage, rulePrevPage},
	RuleEntry{IntentStop, ruleStop},
	RuleEntry{IntentSearchByName, ruleSearchByName},
	RuleEntry{IntentSearchByIngredients, ruleSearchByIngredients},
)

// selectedTable drives the RecipeSelected state
var selectedTable = NewRuleTable(
	RuleEntry{IntentIngredients, ruleIngredients},
	RuleEntry{IntentNutrition, ruleNutrition},
	RuleEntry{IntentCookTime, ruleCookTime},
	RuleEntry{IntentPortions, rulePortions},
	RuleEntry{IntentHelp, ruleHelp},
	RuleEntry{IntentRepeat, ruleRepeat},
	RuleEntry{IntentStop, ruleStop},
	RuleEntry{IntentSearchByName, ruleSearchByName},
	RuleEntry{IntentSearchByIngredients, ruleSearchByIngredients},
	RuleEntry{IntentStartCooking, ruleStartCooking},
)

// stepTable drives the RecipeStep state
var stepTable = NewRuleTable(
	RuleEntry{IntentRepeat, ruleRepeat},
	RuleEntry{IntentPrevStep, rulePrevStep},
	RuleEntry{IntentNutrition, ruleNutrition},
	RuleEntry{IntentCookTime, ruleCookTime},
	RuleEntry{IntentIngredients, ruleIngredients},
	RuleEntry{IntentPortions, rulePortions},
	RuleEntry{IntentHelp, ruleHelp},
	RuleEntry{IntentStop, ruleStop},
	RuleEntry{IntentNextStep, ruleNextStep},
)
