// ABOUTME: Self-contained Russian analyzer implementing the Analyzer port
// ABOUTME: Suffix-stripping normalization plus rule-based numeral agreement
package morph

import (
	"strings"
	"unicode/utf8"
)

// Russian is a lightweight approximation of a dictionary-backed
// morphological analyzer. Normalization strips inflectional endings so
// that forms of the same word compare equal; it does not attempt to
// reconstruct true dictionary forms for irregular words.
type Russian struct{}

// NewRussian returns a Russian analyzer
func NewRussian() *Russian {
	return &Russian{}
}

// Inflectional endings ordered longest-first; stripping stops at the
// first match that leaves a stem of at least three runes.
var endings = []string{
	"иями", "ями", "ами", "иях", "ией", "иям", "ием", "ого", "его",
	"ому", "ему", "ыми", "ими", "ах", "ях", "ам", "ям", "ом", "ем",
	"ой", "ей", "ая", "яя", "ую", "юю", "ые", "ие", "ый", "ий",
	"ов", "ев", "ии", "ия", "ию", "ы", "и", "а", "я", "о", "е",
	"у", "ю", "ь",
}

// Normalize lowercases the word and strips a known inflectional ending
func (r *Russian) Normalize(word string) string {
	w := strings.ToLower(strings.ReplaceAll(word, "ё", "е"))
	for _, end := range endings {
		if !strings.HasSuffix(w, end) {
			continue
		}
		stem := strings.TrimSuffix(w, end)
		if utf8.RuneCountInString(stem) >= 3 {
			return stem
		}
	}
	return w
}

// genitive holds explicit genitive singular forms for words the skill
// inflects in composed replies
var genitive = map[string]string{
	"рецепт":  "рецепта",
	"порция":  "порции",
	"минута":  "минуты",
	"шаг":     "шага",
	"блюдо":   "блюда",
	"паста":   "пасты",
	"суп":     "супа",
	"салат":   "салата",
	"каша":    "каши",
	"запеканка": "запеканки",
}

// Inflect rewrites a phrase to the target case. Only the genitive is
// approximated (explicit forms first, ending rewrite as a fallback);
// other cases return the phrase unchanged.
func (r *Russian) Inflect(phrase string, c Case) string {
	if c != CaseGenitive {
		return phrase
	}
	words := strings.Fields(phrase)
	for i, w := range words {
		lower := strings.ToLower(w)
		if form, ok := genitive[lower]; ok {
			words[i] = matchTitleCase(w, form)
			continue
		}
		words[i] = matchTitleCase(w, genitiveByEnding(lower))
	}
	return strings.Join(words, " ")
}

func genitiveByEnding(w string) string {
	switch {
	case strings.HasSuffix(w, "а"):
		return strings.TrimSuffix(w, "а") + "ы"
	case strings.HasSuffix(w, "я"):
		return strings.TrimSuffix(w, "я") + "и"
	case strings.HasSuffix(w, "о"):
		return w
	case strings.HasSuffix(w, "ь"):
		return strings.TrimSuffix(w, "ь") + "я"
	case endsWithConsonant(w):
		return w + "а"
	default:
		return w
	}
}

func endsWithConsonant(w string) bool {
	last, size := utf8.DecodeLastRuneInString(w)
	if size == 0 {
		return false
	}
	return !strings.ContainsRune("аеиоуыэюя", last)
}

func matchTitleCase(original, form string) string {
	first, size := utf8.DecodeRuneInString(original)
	if size == 0 || form == "" {
		return form
	}
	if first >= 'А' && first <= 'Я' || first == 'Ё' {
		f, fsize := utf8.DecodeRuneInString(form)
		return strings.ToUpper(string(f)) + form[fsize:]
	}
	return form
}

// numberForms holds (one, few, many) forms for words the skill counts
var numberForms = map[string][3]string{
	"рецепт":     {"рецепт", "рецепта", "рецептов"},
	"порция":     {"порция", "порции", "порций"},
	"минута":     {"минута", "минуты", "минут"},
	"шаг":        {"шаг", "шага", "шагов"},
	"ингредиент": {"ингредиент", "ингредиента", "ингредиентов"},
	"калория":    {"калория", "калории", "калорий"},
	"грамм":      {"грамм", "грамма", "граммов"},
	"час":        {"час", "часа", "часов"},
}

// AgreeWithNumber picks the word form agreeing with count n using the
// standard Russian three-way split (1 / 2-4 / 5-20 pattern)
func (r *Russian) AgreeWithNumber(word string, n int) string {
	lower := strings.ToLower(strings.ReplaceAll(word, "ё", "е"))
	forms, known := numberForms[lower]
	if !known {
		forms = fallbackForms(lower)
	}
	if n < 0 {
		n = -n
	}
	switch {
	case n%100 >= 11 && n%100 <= 14:
		return forms[2]
	case n%10 == 1:
		return forms[0]
	case n%10 >= 2 && n%10 <= 4:
		return forms[1]
	default:
		return forms[2]
	}
}

func fallbackForms(w string) [3]string {
	switch {
	case strings.HasSuffix(w, "а"):
		stem := strings.TrimSuffix(w, "а")
		return [3]string{w, stem + "ы", stem}
	case strings.HasSuffix(w, "я"):
		stem := strings.TrimSuffix(w, "я")
		return [3]string{w, stem + "и", stem + "й"}
	default:
		return [3]string{w, w + "а", w + "ов"}
	}
}
