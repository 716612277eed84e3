package engine

import (
	"strconv"
	"strings"

	"github.com/ekobrazil/birthday-panel/internal/config"
)

// Field key aliases shared by the JSON and CSV interpreters. Incoming keys are
// normalized through normalizeKey before lookup, so "Data de Aniversário" in a
// CSV header and "data_aniversario" in a JSON object land on the same alias.
var (
	nameAliases  = []string{"name", "nome"}
	phoneAliases = []string{"phone", "telefone", "telefone_whatsapp", "fone"}
	bdayAliases  = []string{
		"birthday",
		"data_nascimento",
		"aniversario",
		"data_aniversario",
		"datadeaniversario",
		"dataaniversario",
		"datanascimento",
	}
)

// normalizeKey reduces a raw field key to lowercase ASCII letters and
// underscores: accents stripped, spaces and punctuation removed.
func normalizeKey(key string) string {
	lowered := NormalizeText(strings.TrimSpace(key))
	var b strings.Builder
	b.Grow(len(lowered))
	for _, r := range lowered {
		if (r >= 'a' && r <= 'z') || r == '_' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// stringifyValue renders a raw JSON/CSV cell value as text. Numeric phone
// columns show up as float64 after JSON decoding and must not turn into
// scientific notation.
func stringifyValue(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case nil:
		return ""
	default:
		return ""
	}
}

// firstAlias returns the first non-empty value among the aliases of a field.
func firstAlias(raw map[string]string, aliases []string) string {
	for _, alias := range aliases {
		if v, ok := raw[alias]; ok && v != "" {
			return v
		}
	}
	return ""
}

// MapRawContact converts an untyped record with unpredictable key names into
// the canonical Contact shape. It never fails loudly: a record missing any
// required field, or with a birthday shorter than DD/MM after truncation,
// yields ok=false and is meant to be dropped by the caller.
func MapRawContact(raw map[string]any) (Contact, bool) {
	if len(raw) == 0 {
		return Contact{}, false
	}

	keyed := make(map[string]string, len(raw))
	for k, v := range raw {
		nk := normalizeKey(k)
		if nk == "" {
			continue
		}
		if _, exists := keyed[nk]; !exists {
			keyed[nk] = strings.TrimSpace(stringifyValue(v))
		}
	}

	name := strings.TrimSpace(firstAlias(keyed, nameAliases))
	phone := NormalizePhone(firstAlias(keyed, phoneAliases))
	birthday := strings.TrimSpace(firstAlias(keyed, bdayAliases))

	if name == "" || phone == "" || birthday == "" {
		return Contact{}, false
	}

	// Keep only the DD/MM prefix; trailing year or time parts are ignored.
	if len(birthday) > config.DayMonthLen {
		birthday = birthday[:config.DayMonthLen]
	}
	if len(birthday) != config.DayMonthLen {
		return Contact{}, false
	}

	return Contact{Name: name, Phone: phone, Birthday: birthday}, true
}

// mapContacts runs a batch of raw records through MapRawContact, silently
// dropping the invalid ones. Bulk imports of partially dirty spreadsheets
// must never abort on a single bad row.
func mapContacts(raws []map[string]any) []Contact {
	contacts := make([]Contact, 0, len(raws))
	for _, raw := range raws {
		if c, ok := MapRawContact(raw); ok {
			contacts = append(contacts, c)
		}
	}
	return contacts
}
