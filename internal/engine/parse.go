package engine

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"strings"

	"github.com/ekobrazil/birthday-panel/internal/config"
	"github.com/emersion/go-vcard"
)

// Import errors surfaced to the UI layer. Per-record failures never reach
// here; only a whole report yielding nothing does.
var (
	// ErrUnrecognizedFormat means the text parsed as neither JSON, CSV nor vCard.
	ErrUnrecognizedFormat = errors.New(config.ErrUnrecognizedFormat)

	// ErrNoValidRecords means the structure was readable but every record
	// failed normalization.
	ErrNoValidRecords = errors.New(config.ErrNoValidRecords)
)

const vcardPrefix = "BEGIN:VCARD"

// ParseContacts interprets raw report text as a contact list.
// Order of attempts: vCard (only when the payload is unmistakably one),
// then JSON, then CSV. It fails only when every interpretation yields zero
// valid records.
func ParseContacts(text string) ([]Contact, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, ErrUnrecognizedFormat
	}

	if strings.HasPrefix(trimmed, vcardPrefix) {
		if contacts := parseVCard(trimmed); len(contacts) > 0 {
			return contacts, nil
		}
		return nil, ErrNoValidRecords
	}

	structured := false

	if contacts, ok := parseJSON(trimmed); ok {
		structured = true
		if len(contacts) > 0 {
			return contacts, nil
		}
	}

	if contacts, ok := parseCSV(trimmed); ok {
		structured = true
		if len(contacts) > 0 {
			return contacts, nil
		}
	}

	if structured {
		return nil, ErrNoValidRecords
	}
	return nil, ErrUnrecognizedFormat
}

// parseJSON attempts the preferred interpretation: a JSON array of objects.
// ok reports whether the text was structurally JSON at all.
func parseJSON(text string) ([]Contact, bool) {
	var raws []map[string]any
	if err := json.Unmarshal([]byte(text), &raws); err != nil {
		return nil, false
	}
	return mapContacts(raws), true
}

// parseCSV attempts the fallback interpretation: header row plus data rows.
// The dialect is the original spreadsheet export format, not RFC 4180:
// delimiter is ";" when present anywhere in the text, "," otherwise; values
// fully wrapped in a matching single or double quote pair are unwrapped.
func parseCSV(text string) ([]Contact, bool) {
	delimiter := ","
	if strings.Contains(text, ";") {
		delimiter = ";"
	}

	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) < 2 {
		return nil, false
	}

	headers := strings.Split(lines[0], delimiter)
	for i, h := range headers {
		headers[i] = normalizeKey(h)
	}

	var contacts []Contact
	for _, line := range lines[1:] {
		parts := strings.Split(line, delimiter)
		raw := make(map[string]any, len(headers))
		for i, header := range headers {
			if header == "" {
				continue
			}
			value := ""
			if i < len(parts) {
				value = unquote(strings.TrimSpace(parts[i]))
			}
			raw[header] = value
		}

		if c, ok := MapRawContact(raw); ok {
			contacts = append(contacts, c)
		} else {
			slog.Debug(config.MsgSkippedRecord,
				config.LogKeyComponent, config.CompEngine,
				config.LogKeyValue, line)
		}
	}

	return contacts, true
}

// unquote strips one fully wrapping pair of matching quotes, if present.
func unquote(value string) string {
	if len(value) < 2 {
		return value
	}
	first, last := value[0], value[len(value)-1]
	if (first == '"' && last == '"') || (first == '\'' && last == '\'') {
		return value[1 : len(value)-1]
	}
	return value
}

// parseVCard decodes a vCard stream into contacts. Individual malformed
// cards are skipped to maximize data recovery, same as every other format.
func parseVCard(text string) []Contact {
	decoder := vcard.NewDecoder(strings.NewReader(text))
	var contacts []Contact

	for {
		card, err := decoder.Decode()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			slog.Warn(config.MsgSkippedCard,
				config.LogKeyComponent, config.CompEngine,
				config.LogKeyError, err)
			continue
		}

		raw := map[string]any{}
		if fn := card.Get(vcard.FieldFormattedName); fn != nil {
			raw["name"] = fn.Value
		} else if n := card.Get(vcard.FieldName); n != nil {
			raw["name"] = n.Value
		}
		if tel := card.Get(vcard.FieldTelephone); tel != nil {
			raw["phone"] = tel.Value
		}
		if bday := card.Get(vcard.FieldBirthday); bday != nil {
			raw["birthday"] = vcardDayMonth(bday.Value)
		}

		if c, ok := MapRawContact(raw); ok {
			contacts = append(contacts, c)
		}
	}

	return contacts
}

// vcardDayMonth converts common vCard BDAY layouts to DD/MM. Unrecognized
// values pass through unchanged and fall to the normalizer's length check.
func vcardDayMonth(value string) string {
	digits := func(s string) bool {
		for _, r := range s {
			if r < '0' || r > '9' {
				return false
			}
		}
		return len(s) > 0
	}

	switch {
	case len(value) >= 10 && value[4] == '-' && value[7] == '-' &&
		digits(value[5:7]) && digits(value[8:10]):
		// 2006-01-02 (possibly with a time suffix)
		return value[8:10] + "/" + value[5:7]
	case len(value) == 7 && strings.HasPrefix(value, "--") && value[4] == '-':
		// --01-02
		return value[5:7] + "/" + value[2:4]
	case len(value) == 8 && digits(value):
		// 20060102
		return value[6:8] + "/" + value[4:6]
	default:
		return value
	}
}
