package engine

import "strings"

// FilterByDate selects the contacts whose birthday exactly string-matches the
// given DD/MM reference. No numeric parsing, no range validation.
func FilterByDate(contacts []Contact, date string) []Contact {
	matched := make([]Contact, 0)
	for _, c := range contacts {
		if c.Birthday == date {
			matched = append(matched, c)
		}
	}
	return matched
}

// FilterByDates combines matches for a sequence of DD/MM references, in date
// order. A contact already selected for an earlier date is not duplicated
// when it also matches a later one; identity is the derived contact key, so
// the guarantee holds even against dirty data with repeated entries.
func FilterByDates(contacts []Contact, dates []string) []Contact {
	combined := make([]Contact, 0)
	seen := make(map[string]struct{})

	for _, date := range dates {
		for _, c := range FilterByDate(contacts, date) {
			key := c.Key()
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			combined = append(combined, c)
		}
	}

	return combined
}

// SearchByName narrows an already-selected collection by case- and
// accent-insensitive substring match on the name. An empty query returns the
// collection unchanged.
func SearchByName(contacts []Contact, query string) []Contact {
	term := NormalizeText(strings.TrimSpace(query))
	if term == "" {
		return contacts
	}

	filtered := make([]Contact, 0, len(contacts))
	for _, c := range contacts {
		if strings.Contains(NormalizeText(c.Name), term) {
			filtered = append(filtered, c)
		}
	}
	return filtered
}
