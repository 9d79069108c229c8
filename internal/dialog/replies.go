// ABOUTME: Reply text composition for the Benedict skill
// ABOUTME: Canonical Russian phrases plus number-agreed dynamic replies
package dialog

import (
	"fmt"
	"strings"

	"github.com/harper/benedict-skill/internal/models"
	"github.com/harper/benedict-skill/internal/morph"
)

const (
	replyGreeting = "Здравствуйте! Чем я могу Вам помочь?"
	replyUnknown  = "Извините, я вас не совсем понял. Не могли бы переформулировать."
	replyNotFound = "К сожалению, я не знаю такого рецепта."
	replyDone     = "Готово! Приятного аппетита!"
	replyHelp     = "Я могу подобрать рецепт по ингредиентам и продиктовать пошаговые " +
		"инструкции по приготовлению. Просто спросите \"Что приготовить из кабачков?\" " +
		"или \"Как приготовить карбонару?\"."
	replyStopAck      = "Хорошо, остановились. Чем я еще могу Вам помочь?"
	replyAnythingElse = "Чем я еще могу Вам помочь?"
	replyChooseHint   = "Назовите номер рецепта или его название."
	replyStartHint    = "Скажите \"дальше\", когда будете готовы начать готовить."
	replyStepHint     = "Скажите \"дальше\" для следующего шага или \"назад\", чтобы вернуться."
)

func composeCount(n int, an morph.Analyzer) string {
	return fmt.Sprintf("На данный момент я знаю %d %s!", n, an.AgreeWithNumber("рецепт", n))
}

func composeFoundOne(title string) string {
	return fmt.Sprintf("Я нашел для вас рецепт %s. %s", title, replyStartHint)
}

func composeFoundFew(titles []string) string {
	return fmt.Sprintf("Я нашел для вас следующие рецепты: %s. Что будем готовить?",
		numberedList(titles))
}

func composeFoundMany(total int, window []string, an morph.Analyzer) string {
	return fmt.Sprintf("Я нашел %d %s. Вот первые: %s. Что будем готовить? "+
		"Скажите \"дальше\", чтобы услышать остальные.",
		total, an.AgreeWithNumber("рецепт", total), numberedList(window))
}

func composePage(window []string) string {
	return fmt.Sprintf("%s. %s", numberedList(window), replyChooseHint)
}

func composeSelected(title string) string {
	return fmt.Sprintf("Отлично, готовим %s. %s", title, replyStartHint)
}

// composeSummary is the first reply of a walkthrough: ingredients and
// portions, then the first step.
func composeSummary(recipe *models.Recipe, an morph.Analyzer) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Для приготовления %s понадобится: %s.",
		an.Inflect(recipe.Title, morph.CaseGenitive), ingredientList(recipe.Ingredients))
	if recipe.Portions > 0 {
		fmt.Fprintf(&b, " Выйдет %d %s.", recipe.Portions,
			an.AgreeWithNumber("порция", recipe.Portions))
	}
	if len(recipe.Steps) > 0 {
		fmt.Fprintf(&b, " Начинаем! %s", recipe.Steps[0])
	}
	return b.String()
}

func composeIngredients(recipe *models.Recipe) string {
	return fmt.Sprintf("Вам понадобится: %s.", ingredientList(recipe.Ingredients))
}

func composeNutrient(n *models.Nutrient) string {
	return fmt.Sprintf("В одной порции: %s — %s %s.", n.Name, trimFloat(n.Amount), n.Unit)
}

func composeNutrition(recipe *models.Recipe) string {
	parts := make([]string, 0, len(recipe.Nutrients))
	for _, n := range recipe.Nutrients {
		parts = append(parts, fmt.Sprintf("%s — %s %s", n.Name, trimFloat(n.Amount), n.Unit))
	}
	return fmt.Sprintf("В одной порции: %s.", strings.Join(parts, ", "))
}

func composeCookTime(recipe *models.Recipe) string {
	return fmt.Sprintf("Приготовление займет %s.", recipe.Time)
}

func composePortions(recipe *models.Recipe, an morph.Analyzer) string {
	return fmt.Sprintf("Рецепт рассчитан на %d %s.", recipe.Portions,
		an.AgreeWithNumber("порция", recipe.Portions))
}

func numberedList(titles []string) string {
	parts := make([]string, len(titles))
	for i, title := range titles {
		parts[i] = fmt.Sprintf("%d. %s", i+1, title)
	}
	return strings.Join(parts, ", ")
}

func ingredientList(ingredients []models.Ingredient) string {
	parts := make([]string, len(ingredients))
	for i, ing := range ingredients {
		if ing.Amount == "" {
			parts[i] = ing.Name
			continue
		}
		parts[i] = fmt.Sprintf("%s — %s", ing.Name, ing.Amount)
	}
	return strings.Join(parts, ", ")
}

func trimFloat(f float64) string {
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.1f", f), "0"), ".")
}
