package engine_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/ekobrazil/birthday-panel/internal/engine"
	"github.com/stretchr/testify/assert"
)

func TestBuildMessage_UsesFormatter(t *testing.T) {
	ana := engine.Contact{Name: "Ana Maria Souza", Phone: "5511999999999", Birthday: "05/10"}

	format := func(firstName string, kind engine.BirthdayKind) string {
		return fmt.Sprintf("%s:%s", kind, firstName)
	}

	msg := engine.BuildMessage(ana, engine.KindToday, format)
	assert.Equal(t, "today:Ana", msg, "formatter receives the first name only")
}

func TestBuildMessage_FallbackWithoutFormatter(t *testing.T) {
	ana := engine.Contact{Name: "Ana Maria Souza"}
	msg := engine.BuildMessage(ana, engine.KindOther, nil)
	assert.Contains(t, msg, "Ana")
	assert.NotContains(t, msg, "Maria")
}

func TestWhatsAppURL(t *testing.T) {
	ana := engine.Contact{Name: "Ana Silva", Phone: "+55 (11) 99999-9999", Birthday: "05/10"}

	link := engine.WhatsAppURL(ana, "Olá Ana! Feliz Aniversário!")

	assert.True(t, strings.HasPrefix(link, "https://wa.me/5511999999999?text="), link)
	// encodeURIComponent semantics: %20 for spaces, never '+'.
	assert.NotContains(t, link, "+")
	assert.Contains(t, link, "%20")
	assert.Contains(t, link, "Ol%C3%A1")
}

func TestWhatsAppURL_EmptyMessage(t *testing.T) {
	ana := engine.Contact{Phone: "5511999999999"}
	assert.Equal(t, "https://wa.me/5511999999999?text=", engine.WhatsAppURL(ana, ""))
}
