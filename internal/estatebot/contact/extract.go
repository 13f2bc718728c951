// Package contact parses free text into validated lead contact details.
package contact

import (
	"strings"
	"unicode"
)

// Info is an extracted (name, phone) pair. Phone is normalized to digits,
// 11-digit Russian numbers carrying a leading "7" where recognizable.
type Info struct {
	Name  string
	Phone string
}

// MinPhoneDigits is the minimum digit count for a phone candidate.
const MinPhoneDigits = 6

// strippedPunctuation is removed from the text before tokenizing.
const strippedPunctuation = `",;`

// Extract parses "Имя Фамилия +79161234567"-style text. The last
// whitespace-delimited token is the phone candidate, everything before it
// is the name. Returns (zero, false) when no valid pair is present; this
// is the only failure signal, the function never errors.
func Extract(text string) (Info, bool) {
	cleaned := removeChars(text, strippedPunctuation)

	namePart, phonePart, ok := splitLastField(cleaned)
	if !ok {
		return Info{}, false
	}

	if !containsDigit(phonePart) {
		return Info{}, false
	}

	digits := keepDigits(phonePart)
	if len(digits) < MinPhoneDigits {
		return Info{}, false
	}

	return Info{Name: namePart, Phone: NormalizePhone(digits)}, true
}

// NormalizePhone maps a digit string onto the 11-digit Russian format with
// a leading "7". Idempotent. Unrecognized lengths pass through unchanged.
func NormalizePhone(digits string) string {
	switch {
	case len(digits) == 11 && strings.HasPrefix(digits, "8"):
		return "7" + digits[1:]
	case len(digits) == 11 && strings.HasPrefix(digits, "7"):
		return digits
	case len(digits) == 10:
		return "7" + digits
	default:
		return digits
	}
}

// splitLastField splits off the last whitespace-delimited token.
// Fails when fewer than two tokens remain.
func splitLastField(text string) (head, last string, ok bool) {
	trimmed := strings.TrimSpace(text)
	idx := strings.LastIndexFunc(trimmed, unicode.IsSpace)
	if idx < 0 {
		return "", "", false
	}
	head = strings.TrimSpace(trimmed[:idx])
	last = strings.TrimSpace(trimmed[idx:])
	if head == "" || last == "" {
		return "", "", false
	}
	return head, last, true
}

func removeChars(s, chars string) string {
	return strings.Map(func(r rune) rune {
		if strings.ContainsRune(chars, r) {
			return -1
		}
		return r
	}, s)
}

func containsDigit(s string) bool {
	return strings.IndexFunc(s, unicode.IsDigit) >= 0
}

func keepDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
