package urlparse

import (
	"sort"
	"strings"

	"github.com/go-viper/mapstructure/v2"
)

// Fields are the components the assembler renders. Port is the port token
// as text; an empty token or "0" renders no port.
type Fields struct {
	Schema   string            `mapstructure:"schema"`
	Host     string            `mapstructure:"host"`
	User     *string           `mapstructure:"user"`
	Password *string           `mapstructure:"password"`
	Port     string            `mapstructure:"port"`
	FullPath *string           `mapstructure:"fullpath"`
	Path     *string           `mapstructure:"path"`
	Query    *string           `mapstructure:"query"`
	QSD      map[string]string `mapstructure:"qsd"`
}

// Assemble renders f as a URL.
//
// FullPath wins over Path and Query. The query string is always built from
// QSD with form encoding, so spaces become '+' and a literal '+' becomes
// %2B whether or not encode is set. With encode, credentials and the path
// are treated as raw text and percent-escaped; without it they are assumed
// to be escaped already.
func Assemble(f Fields, encode bool) string {
	var b strings.Builder

	b.WriteString(f.Schema)
	b.WriteString("://")

	if f.User != nil {
		b.WriteString(escapeIf(*f.User, "", encode))

		if f.Password != nil {
			b.WriteByte(':')
			b.WriteString(escapeIf(*f.Password, "", encode))
		}

		b.WriteByte('@')
	}

	b.WriteString(f.Host)

	if f.Port != "" && f.Port != "0" {
		b.WriteByte(':')
		b.WriteString(f.Port)
	}

	b.WriteString(escapeIf(f.pathComponent(), "/", encode))

	if len(f.QSD) > 0 {
		b.WriteByte('?')
		b.WriteString(EncodeQuery(f.QSD))
	}

	return b.String()
}

// AssembleMap decodes a loose field map, such as Record.Map with overrides
// applied, and assembles it. Unknown keys are ignored.
func AssembleMap(fields map[string]any, encode bool) (string, error) {
	var f Fields

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &f,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return "", err
	}

	if err := decoder.Decode(fields); err != nil {
		return "", err
	}

	return Assemble(f, encode), nil
}

// EncodeQuery form-encodes args with keys in sorted order.
func EncodeQuery(args map[string]string) string {
	keys := make([]string, 0, len(args))
	for key := range args {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		parts = append(parts, QuotePlus(key, "")+"="+QuotePlus(args[key], ""))
	}

	return strings.Join(parts, "&")
}

func (f Fields) pathComponent() string {
	if f.FullPath != nil {
		return *f.FullPath
	}

	var dir, leaf string
	if f.Path != nil {
		dir = *f.Path
	}

	if f.Query != nil {
		leaf = *f.Query
	}

	if leaf != "" && !strings.HasSuffix(dir, "/") {
		dir += "/"
	}

	return dir + leaf
}

func escapeIf(s, safe string, encode bool) string {
	if !encode {
		return s
	}

	return Quote(s, safe)
}
