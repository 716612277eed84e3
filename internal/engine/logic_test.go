package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// White-box tests for unexported helpers.

func TestNormalizeKey(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"Simple", "name", "name"},
		{"Uppercase", "NOME", "nome"},
		{"Accented", "Data de Aniversário", "datadeaniversario"},
		{"Underscore", "telefone_whatsapp", "telefone_whatsapp"},
		{"Digits_Stripped", "col1", "col"},
		{"Surrounding_Space", "  Telefone  ", "telefone"},
		{"Empty", "", ""},
		{"Punctuation_Only", "##!!", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, normalizeKey(tt.input))
		})
	}
}

func TestStringifyValue(t *testing.T) {
	assert.Equal(t, "hello", stringifyValue("hello"))
	assert.Equal(t, "42", stringifyValue(42))
	assert.Equal(t, "42", stringifyValue(int64(42)))
	assert.Equal(t, "", stringifyValue(nil))
	assert.Equal(t, "", stringifyValue([]string{"x"}))

	// JSON numbers decode as float64; large phone numbers must not collapse
	// into scientific notation.
	assert.Equal(t, "5511999999999", stringifyValue(float64(5511999999999)))
	assert.Equal(t, "3.5", stringifyValue(3.5))
}

func TestUnquote(t *testing.T) {
	assert.Equal(t, "abc", unquote(`"abc"`))
	assert.Equal(t, "abc", unquote("'abc'"))
	assert.Equal(t, "abc", unquote("abc"))
	// Mismatched pairs stay untouched.
	assert.Equal(t, `"abc'`, unquote(`"abc'`))
	// A lone quote is too short to be a pair.
	assert.Equal(t, `"`, unquote(`"`))
	assert.Equal(t, "", unquote(""))
}

func TestVCardDayMonth(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"FullDate", "1990-10-05", "05/10"},
		{"FullDateWithTime", "1990-10-05T00:00:00Z", "05/10"},
		{"NoYear", "--10-05", "05/10"},
		{"Compact", "19901005", "05/10"},
		{"AlreadyDayMonth", "05/10", "05/10"},
		{"Garbage", "not-a-date", "not-a-date"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, vcardDayMonth(tt.input))
		})
	}
}

func TestSplitDayMonth(t *testing.T) {
	day, month, ok := splitDayMonth("05/10")
	assert.True(t, ok)
	assert.Equal(t, 5, day)
	assert.Equal(t, 10, month)

	for _, invalid := range []string{"", "5/10", "05-10", "00/10", "32/01", "05/13", "ab/cd"} {
		_, _, ok := splitDayMonth(invalid)
		assert.Falsef(t, ok, "birthday %q must not parse", invalid)
	}
}

func TestDedupDates(t *testing.T) {
	assert.Equal(t, []string{"01/01", "02/01"}, dedupDates([]string{"01/01", "02/01", "01/01"}))
	assert.Empty(t, dedupDates(nil))
}
