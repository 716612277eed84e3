package engine_test

import (
	"testing"

	"github.com/ekobrazil/birthday-panel/internal/engine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeText(t *testing.T) {
	assert.Equal(t, "joao silva", engine.NormalizeText("João Silva"))
	assert.Equal(t, "joao silva", engine.NormalizeText("JOAO SILVA"))
	assert.Equal(t, "aniversario", engine.NormalizeText("Aniversário"))
	// Idempotence: normalizing a normalized string changes nothing.
	assert.Equal(t, "joao", engine.NormalizeText(engine.NormalizeText("João")))
}

func TestNormalizePhone(t *testing.T) {
	assert.Equal(t, "5511999999999", engine.NormalizePhone("+55 (11) 99999-9999"))
	assert.Equal(t, "5511999999999", engine.NormalizePhone("5511999999999"))
	assert.Equal(t, "", engine.NormalizePhone("sem telefone"))
}

func TestContactKey(t *testing.T) {
	a := engine.Contact{Name: "João Silva", Phone: "5511999999999", Birthday: "05/10"}
	b := engine.Contact{Name: "JOAO SILVA", Phone: "5511999999999", Birthday: "05/10"}

	assert.Equal(t, "joao silva__5511999999999", a.Key())
	assert.Equal(t, a.Key(), b.Key(), "accent and case variants must share identity")
}

func TestContactFirstName(t *testing.T) {
	assert.Equal(t, "Ana", engine.Contact{Name: "Ana Maria Souza"}.FirstName())
	assert.Equal(t, "Ana", engine.Contact{Name: "  Ana  "}.FirstName())
	assert.Equal(t, "", engine.Contact{Name: ""}.FirstName())
}

func TestContactInitials(t *testing.T) {
	assert.Equal(t, "AS", engine.Contact{Name: "Ana Maria Souza"}.Initials())
	assert.Equal(t, "A", engine.Contact{Name: "ana"}.Initials())
	assert.Equal(t, "JP", engine.Contact{Name: "joão pereira"}.Initials())
	assert.Equal(t, "", engine.Contact{Name: "  "}.Initials())
}

func TestMapRawContact_Aliases(t *testing.T) {
	tests := []struct {
		name string
		raw  map[string]any
	}{
		{"EnglishKeys", map[string]any{"name": "Ana Silva", "phone": "5511999999999", "birthday": "05/10"}},
		{"PortugueseKeys", map[string]any{"nome": "Ana Silva", "telefone": "5511999999999", "data_nascimento": "05/10"}},
		{"WhatsAppColumn", map[string]any{"nome": "Ana Silva", "telefone_whatsapp": "5511999999999", "aniversario": "05/10"}},
		{"AccentedHeader", map[string]any{"Nome": "Ana Silva", "Fone": "5511999999999", "Data de Aniversário": "05/10"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, ok := engine.MapRawContact(tt.raw)
			require.True(t, ok)
			assert.Equal(t, "Ana Silva", c.Name)
			assert.Equal(t, "5511999999999", c.Phone)
			assert.Equal(t, "05/10", c.Birthday)
		})
	}
}

func TestMapRawContact_BirthdayTruncation(t *testing.T) {
	c, ok := engine.MapRawContact(map[string]any{
		"nome":            "Ana Silva",
		"telefone":        "5511999999999",
		"data_nascimento": "05/10/1990",
	})
	require.True(t, ok)
	assert.Equal(t, "05/10", c.Birthday, "trailing year must be dropped")
}

func TestMapRawContact_PhoneAsNumber(t *testing.T) {
	c, ok := engine.MapRawContact(map[string]any{
		"nome":            "Ana Silva",
		"telefone":        float64(5511999999999),
		"data_nascimento": "05/10",
	})
	require.True(t, ok)
	assert.Equal(t, "5511999999999", c.Phone)
}

func TestMapRawContact_Rejections(t *testing.T) {
	tests := []struct {
		name string
		raw  map[string]any
	}{
		{"Empty", map[string]any{}},
		{"MissingName", map[string]any{"telefone": "5511999999999", "data_nascimento": "05/10"}},
		{"MissingPhone", map[string]any{"nome": "Ana", "data_nascimento": "05/10"}},
		{"MissingBirthday", map[string]any{"nome": "Ana", "telefone": "5511999999999"}},
		{"BirthdayTooShort", map[string]any{"nome": "Ana", "telefone": "5511999999999", "data_nascimento": "5/10"}},
		{"PhoneWithoutDigits", map[string]any{"nome": "Ana", "telefone": "n/a", "data_nascimento": "05/10"}},
		{"UnknownKeys", map[string]any{"foo": "Ana", "bar": "5511999999999", "baz": "05/10"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := engine.MapRawContact(tt.raw)
			assert.False(t, ok)
		})
	}
}
