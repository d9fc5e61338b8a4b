package validators

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
)

const emailAtext = "a-z0-9!#$%&'*/=?^_`{|}~-"

var emailAddressRE = regexp.MustCompile(`(?i)^(?:([^+@\s]+)\+)?` +
	`([` + emailAtext + `]+(?:\.[` + emailAtext + `]+)*)@` +
	`((?:[a-z0-9](?:[a-z0-9_-]*[a-z0-9])?\.)+[a-z0-9](?:[a-z0-9_-]*[a-z0-9])|[a-z0-9][a-z0-9_-]{5,})$`)

// Email is an address split into its parts.
type Email struct {
	Name      string `json:"name"`
	User      string `json:"user"`
	Label     string `json:"label"`
	Domain    string `json:"domain"`
	Email     string `json:"email"`
	FullEmail string `json:"full_email"`
}

// IsUUID reports whether value is a version 4 UUID in 8-4-4-4-12 form.
func IsUUID(value string) bool {
	if len(value) != 36 {
		return false
	}

	id, err := uuid.Parse(value)

	return err == nil && id.Version() == 4
}

// IsEmail parses "Name <label+user@domain>", "Name: user@domain",
// "Name user@domain" and bare addresses. The label is whatever precedes the
// first '+' of the local part.
func IsEmail(value string) (*Email, bool) {
	name, address := splitDisplayName(strings.TrimSpace(value))

	m := emailAddressRE.FindStringSubmatch(address)
	if m == nil {
		return nil, false
	}

	email := &Email{
		Name:      name,
		Label:     m[1],
		User:      m[2],
		Domain:    m[3],
		Email:     m[2] + "@" + m[3],
		FullEmail: address,
	}

	return email, true
}

// splitDisplayName separates an optional display name from the address.
func splitDisplayName(value string) (string, string) {
	if open := strings.LastIndexByte(value, '<'); open >= 0 {
		address := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(value[open+1:]), ">"))
		return cleanDisplayName(value[:open]), address
	}

	cut := strings.LastIndexFunc(value, func(r rune) bool {
		return r == ':' || r == '"' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
	if cut < 0 {
		return "", value
	}

	return cleanDisplayName(value[:cut+1]), value[cut+1:]
}

func cleanDisplayName(name string) string {
	name = strings.TrimSpace(name)
	name = strings.TrimSpace(strings.TrimSuffix(name, ":"))

	if len(name) >= 2 {
		if q := name[0]; (q == '"' || q == '\'') && name[len(name)-1] == q {
			name = strings.TrimSpace(name[1 : len(name)-1])
		}
	}

	return name
}
