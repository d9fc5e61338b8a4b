package urlparse

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Keys used by Record.Map and accepted by AssembleMap.
const (
	KeySchema   = "schema"
	KeyUser     = "user"
	KeyPassword = "password"
	KeyHost     = "host"
	KeyPort     = "port"
	KeyFullPath = "fullpath"
	KeyPath     = "path"
	KeyQuery    = "query"
	KeyURL      = "url"
	KeyQSD      = "qsd"
	KeyQSDPlus  = "qsd+"
	KeyQSDMinus = "qsd-"
	KeyQSDColon = "qsd:"
)

// Port is the port token of a URL. Integer tokens are exposed through Int;
// anything else is kept as the raw string it was written as.
type Port struct {
	raw   string
	value int
	isInt bool
}

// IntPort returns an integer port.
func IntPort(n int) *Port {
	return &Port{raw: strconv.Itoa(n), value: n, isInt: true}
}

// ParsePort interprets a port token. A token made of an optional sign and
// digits becomes an integer port; "4.2" or "invalid" stay raw strings.
func ParsePort(token string) *Port {
	if portIntRE.MatchString(token) {
		if n, err := strconv.Atoi(token); err == nil {
			return IntPort(n)
		}
	}

	return &Port{raw: token}
}

// Int returns the integer value of the port and whether it had one.
func (p *Port) Int() (int, bool) {
	if p == nil {
		return 0, false
	}

	return p.value, p.isInt
}

func (p *Port) String() string {
	if p == nil {
		return ""
	}

	return p.raw
}

// Value returns the port as an int, a string, or nil.
func (p *Port) Value() any {
	if p == nil {
		return nil
	}

	if p.isInt {
		return p.value
	}

	return p.raw
}

// Record is a parsed notification URL.
//
// Optional components are nil when absent; Host is always set, possibly to
// the empty string when host verification was skipped.
type Record struct {
	User     *string
	Password *string
	Port     *Port
	FullPath *string
	Path     *string
	Query    *string
	QSD      map[string]string
	QSDPlus  map[string]string
	QSDMinus map[string]string
	QSDColon map[string]string
	Schema   string
	Host     string
	URL      string

	simple bool
}

// Simple reports whether the record was produced in simple mode.
func (r *Record) Simple() bool {
	return r.simple
}

// Map renders the record with its canonical key names. Records parsed in
// simple mode drop absent fields, empty mappings and an empty host.
func (r *Record) Map() map[string]any {
	m := map[string]any{
		KeySchema:   r.Schema,
		KeyUser:     optional(r.User),
		KeyPassword: optional(r.Password),
		KeyHost:     r.Host,
		KeyPort:     r.Port.Value(),
		KeyFullPath: optional(r.FullPath),
		KeyPath:     optional(r.Path),
		KeyQuery:    optional(r.Query),
		KeyURL:      r.URL,
		KeyQSD:      r.QSD,
	}

	if !r.simple {
		m[KeyQSDPlus] = r.QSDPlus
		m[KeyQSDMinus] = r.QSDMinus
		m[KeyQSDColon] = r.QSDColon

		return m
	}

	return compact(m)
}

// Compact is Map with absent and empty values removed, regardless of mode.
func (r *Record) Compact() map[string]any {
	m := r.Map()
	if r.simple {
		return m
	}

	return compact(m)
}

// Fields returns the assembler view of the record.
func (r *Record) Fields() Fields {
	return Fields{
		Schema:   r.Schema,
		Host:     r.Host,
		User:     r.User,
		Password: r.Password,
		Port:     r.Port.String(),
		FullPath: r.FullPath,
		Path:     r.Path,
		Query:    r.Query,
		QSD:      r.QSD,
	}
}

// MarshalJSON encodes the record through Map.
func (r *Record) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Map())
}

// MarshalYAML encodes the record through Map.
func (r *Record) MarshalYAML() (any, error) {
	return r.Map(), nil
}

// String returns the best-effort URL built at parse time.
func (r *Record) String() string {
	return r.URL
}

func (r *Record) buildURL() string {
	var b strings.Builder

	b.WriteString(r.Schema)
	b.WriteString("://")

	if r.User != nil {
		b.WriteString(*r.User)

		if r.Password != nil {
			b.WriteByte(':')
			b.WriteString(*r.Password)
		}

		b.WriteByte('@')
	}

	b.WriteString(r.Host)

	if r.Port != nil {
		b.WriteByte(':')
		b.WriteString(r.Port.String())
	}

	if r.FullPath != nil {
		b.WriteString(*r.FullPath)
	}

	return b.String()
}

func optional(s *string) any {
	if s == nil {
		return nil
	}

	return *s
}

func compact(m map[string]any) map[string]any {
	for key, value := range m {
		switch v := value.(type) {
		case nil:
			delete(m, key)
		case map[string]string:
			if len(v) == 0 {
				delete(m, key)
			}
		case string:
			if v == "" && key == KeyHost {
				delete(m, key)
			}
		}
	}

	return m
}
