package dialogue

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// namePatterns are introduction markers searched for in lowered input.
// The text after the first matching marker is taken as the name.
var namePatterns = []string{"меня зовут", "зовут", "мое имя", "имя", "это"}

const (
	nameFallbackRunes = 30
	nameMaxWords      = 2
)

// ExtractName pulls a personal name out of free-form introduction text.
// After a marker like "меня зовут" it keeps at most two words and
// title-cases them; without a marker the leading runes of the whole
// text are used as a best effort.
func ExtractName(text string) string {
	caser := cases.Title(language.Russian)
	lower := []rune(strings.ToLower(text))
	orig := []rune(text)

	for _, pattern := range namePatterns {
		idx := runeIndex(lower, []rune(pattern))
		if idx < 0 {
			continue
		}
		rest := strings.TrimSpace(string(orig[idx+len([]rune(pattern)):]))
		rest = strings.TrimLeft(rest, ",:-.")
		rest = strings.TrimSpace(rest)
		if rest == "" {
			continue
		}
		words := strings.Fields(rest)
		if len(words) > nameMaxWords {
			words = words[:nameMaxWords]
		}
		return caser.String(strings.Join(words, " "))
	}

	fallback := orig
	if len(fallback) > nameFallbackRunes {
		fallback = fallback[:nameFallbackRunes]
	}
	return caser.String(strings.TrimSpace(string(fallback)))
}

func runeIndex(haystack, needle []rune) int {
	if len(needle) == 0 || len(needle) > len(haystack) {
		return -1
	}
	for i := 0; i+len(needle) <= len(haystack); i++ {
		match := true
		for j, r := range needle {
			if haystack[i+j] != r {
				match = false
				break
			}
		}
		if match {
			return i
		}
	}
	return -1
}
