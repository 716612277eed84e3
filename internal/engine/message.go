package engine

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/ekobrazil/birthday-panel/internal/config"
)

// MessageFormatter renders the localized outbound message for a contact's
// first name and birthday kind. The UI layer injects an i18n-backed
// implementation; the engine stays free of translation machinery.
type MessageFormatter func(firstName string, kind BirthdayKind) string

// BuildMessage produces the personalized text for a contact. When no
// formatter is supplied, a plain Portuguese fallback keeps the link usable.
func BuildMessage(contact Contact, kind BirthdayKind, format MessageFormatter) string {
	name := contact.FirstName()
	if format == nil {
		return fmt.Sprintf(config.FallbackMessage, name)
	}
	return format(name, kind)
}

// WhatsAppURL assembles the navigable outbound link: fixed base, digits-only
// phone, URL-encoded message text. Not a protocol call; just a link the OS
// browser opens in a new context.
func WhatsAppURL(contact Contact, message string) string {
	phone := NormalizePhone(contact.Phone)

	// encodeURIComponent-style escaping: spaces as %20, not '+'.
	encoded := strings.ReplaceAll(url.QueryEscape(message), "+", "%20")

	return config.WhatsAppBaseURL + phone + "?" + config.WhatsAppTextParam + "=" + encoded
}
