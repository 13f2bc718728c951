package dialogue

import (
	"math/rand"
	"strings"
	"unicode"
)

// contactRequestPhrases mark a generated reply as asking the client for
// contact details. Matching is on the lowered reply text.
var contactRequestPhrases = []string{
	"оставьте контакты",
	"оставьте телефон",
	"как вас зовут",
	"номер перезвонить",
}

// contactStripPhrases are removed from replies that mention contacts so
// the cleaned text does not repeat the ask verbatim.
var contactStripPhrases = []string{
	"оставьте контакты",
	"оставьте телефон",
	"как вас зовут",
	"номер перезвонить",
	"записать вас",
	"для связи",
}

var decorEmojis = []string{"🏠", "🌟", "✨", "💡", "📌", "🔎"}

var knownLeadEmojis = []string{"👋", "🏠", "📞", "ℹ️", "🔍"}

// ContainsContactRequest reports whether a generated reply asks the
// client to leave contact details.
func ContainsContactRequest(reply string) bool {
	lowered := strings.ToLower(reply)
	for _, phrase := range contactRequestPhrases {
		if strings.Contains(lowered, phrase) {
			return true
		}
	}
	return false
}

// CleanReply normalizes a generated reply for delivery: strips contact
// solicitation phrases when the reply talks about contacts, removes
// markdown markers and role prefixes, rewrites list dashes to bullets,
// collapses blank lines and prepends a random emoji when the reply does
// not already start with one.
func CleanReply(reply string) string {
	lowered := strings.ToLower(reply)
	if strings.Contains(lowered, "контакты") || strings.Contains(lowered, "телефон") {
		for _, phrase := range contactStripPhrases {
			reply = stripPhraseFold(reply, phrase)
		}
	}

	for _, marker := range []string{"**", "__", "\\"} {
		reply = strings.ReplaceAll(reply, marker, "")
	}
	reply = strings.ReplaceAll(reply, "[Ассистент]:", "")
	reply = strings.ReplaceAll(reply, "Пользователь:", "")
	reply = strings.ReplaceAll(reply, "- ", "• ")
	reply = strings.ReplaceAll(reply, "\n\n", "\n")
	reply = strings.TrimSpace(reply)

	for _, emoji := range knownLeadEmojis {
		if strings.HasPrefix(reply, emoji) {
			return reply
		}
	}
	return decorEmojis[rand.Intn(len(decorEmojis))] + " " + reply
}

// stripPhraseFold removes every case-insensitive occurrence of phrase.
// Works on runes: lowering can change a rune's UTF-8 width, so byte
// offsets from a lowered copy must never index the original string.
func stripPhraseFold(text, phrase string) string {
	runes := []rune(text)
	needle := []rune(phrase)
	if len(needle) == 0 {
		return text
	}

	out := make([]rune, 0, len(runes))
	for i := 0; i < len(runes); {
		if matchFold(runes[i:], needle) {
			i += len(needle)
			continue
		}
		out = append(out, runes[i])
		i++
	}
	return string(out)
}

// matchFold reports whether runes starts with needle, comparing
// case-insensitively. needle must already be lowercase.
func matchFold(runes, needle []rune) bool {
	if len(runes) < len(needle) {
		return false
	}
	for i, r := range needle {
		if unicode.ToLower(runes[i]) != r {
			return false
		}
	}
	return true
}
