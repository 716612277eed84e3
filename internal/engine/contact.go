package engine

import (
	"strings"
	"unicode"

	"github.com/ekobrazil/birthday-panel/internal/config"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Contact is the canonical record every parser converges to.
// The JSON field names are part of the persisted storage format.
type Contact struct {
	// Name is the display name, trimmed, never empty.
	Name string `json:"name"`

	// Phone holds digits only; all formatting characters are stripped.
	Phone string `json:"phone"`

	// Birthday is exactly five characters in DD/MM layout, no year.
	// Day/month numeric ranges are intentionally not validated.
	Birthday string `json:"birthday"`
}

// Key derives the identity key used for deduplication and sent-flag indexing.
// It is never persisted as a standalone entity, always recomputed. Two records
// with the same key are the same person even if other fields differ.
func (c Contact) Key() string {
	return NormalizeText(c.Name) + config.KeySeparator + strings.TrimSpace(c.Phone)
}

// FirstName returns the leading whitespace-separated token of the name.
// Used for message personalization.
func (c Contact) FirstName() string {
	fields := strings.Fields(c.Name)
	if len(fields) == 0 {
		return c.Name
	}
	return fields[0]
}

// Initials returns up to two uppercase letters taken from the first and last
// name tokens, for the card avatar.
func (c Contact) Initials() string {
	fields := strings.Fields(c.Name)
	if len(fields) == 0 {
		return ""
	}
	first := []rune(fields[0])
	out := []rune{unicode.ToUpper(first[0])}
	if len(fields) > 1 {
		last := []rune(fields[len(fields)-1])
		out = append(out, unicode.ToUpper(last[0]))
	}
	return string(out)
}

// NormalizeText lowercases a string and strips diacritic marks, so that
// "João" and "JOAO" compare equal. Comparison helper for search and keys.
func NormalizeText(s string) string {
	lowered := strings.ToLower(s)
	stripper := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(stripper, lowered)
	if err != nil {
		return lowered
	}
	return out
}

// NormalizePhone strips every character that is not an ASCII digit.
func NormalizePhone(phone string) string {
	var b strings.Builder
	b.Grow(len(phone))
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
