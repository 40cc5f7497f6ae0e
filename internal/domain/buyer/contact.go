package buyer

import (
	"errors"
	"strings"
)

var (
	ErrNameRequired    = errors.New("buyer name is required")
	ErrContactRequired = errors.New("buyer whatsapp is required")
	ErrInvalidWhatsApp = errors.New("whatsapp number must have 10 to 14 digits")
	ErrInvalidEmail    = errors.New("invalid email address")
)

// Contact identifies a buyer within a campaign. WhatsApp is the primary key
// contact; email is optional.
type Contact struct {
	name     string
	whatsapp string
	email    *string
}

func NewContact(name, whatsapp string, email *string) (Contact, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Contact{}, ErrNameRequired
	}

	digits := digitsOnly(whatsapp)
	if digits == "" {
		return Contact{}, ErrContactRequired
	}
	if len(digits) < 10 || len(digits) > 14 {
		return Contact{}, ErrInvalidWhatsApp
	}

	var normalizedEmail *string
	if email != nil && strings.TrimSpace(*email) != "" {
		e := strings.ToLower(strings.TrimSpace(*email))
		at := strings.Index(e, "@")
		if at < 1 || at == len(e)-1 || !strings.Contains(e[at:], ".") {
			return Contact{}, ErrInvalidEmail
		}
		normalizedEmail = &e
	}

	return Contact{name: name, whatsapp: digits, email: normalizedEmail}, nil
}

func (c Contact) Name() string     { return c.name }
func (c Contact) WhatsApp() string { return c.whatsapp }
func (c Contact) Email() *string   { return c.email }

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
