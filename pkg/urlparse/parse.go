// Package urlparse parses free-form notification URLs into records and
// assembles records back into URLs.
package urlparse

import (
	"regexp"
	"strings"

	"github.com/btraven00/notifyurl/pkg/validators"
)

// DefaultSchema is used when a URL carries no scheme.
const DefaultSchema = "http"

var (
	schemaRE   = regexp.MustCompile(`(?i)^([a-z0-9+.-]+)://`)
	hostPortRE = regexp.MustCompile(`(?i)^(\[[0-9a-f:]+\]|[^:]+):([^:]*)$`)
	portIntRE  = regexp.MustCompile(`^[+-]?[0-9]+$`)
	atRunRE    = regexp.MustCompile(`@+`)
	colonRunRE = regexp.MustCompile(`:+`)
	slashRunRE = regexp.MustCompile(`/{2,}`)
)

// Options controls Parse.
type Options struct {
	// DefaultSchema replaces a missing scheme.
	DefaultSchema string
	// VerifyHost rejects URLs whose host is not a hostname or IP address.
	VerifyHost bool
	// StrictPort keeps non-integer port tokens as strings instead of
	// leaving them in the host; combined with VerifyHost it also requires
	// the port to be an integer in [1, 65535].
	StrictPort bool
	// Sanitize lowercases and trims the keys of the merged query mapping.
	Sanitize bool
	// PlusToSpace decodes '+' in query arguments as a space.
	PlusToSpace bool
	// Simple skips the sigil groups and drops empty fields from Map.
	Simple bool
}

// DefaultOptions returns the options used by the package level helpers.
func DefaultOptions() Options {
	return Options{
		DefaultSchema: DefaultSchema,
		VerifyHost:    true,
		StrictPort:    false,
		Sanitize:      true,
		PlusToSpace:   false,
		Simple:        false,
	}
}

// ParseURL parses text and returns nil when it cannot be parsed.
func ParseURL(text string, opts Options) *Record {
	rec, err := Parse(text, opts)
	if err != nil {
		return nil
	}

	return rec
}

// Parse tokenizes text into a Record. Failures are reported as *ParseError.
func Parse(text string, opts Options) (*Record, error) {
	s := strings.TrimSpace(text)

	schema := strings.ToLower(strings.TrimSpace(opts.DefaultSchema))
	if schema == "" {
		schema = DefaultSchema
	}

	if m := schemaRE.FindStringSubmatch(s); m != nil {
		schema = strings.ToLower(m[1])
		s = s[len(m[0]):]
	}

	s = strings.TrimLeft(s, "/")

	var rawQuery string

	if head, tail, found := strings.Cut(s, "?"); found {
		if credentialsSpill(head, tail) {
			return nil, newParseError(ErrorTypeCredentials, text,
				"password of %q contains an unescaped '?'", text)
		}

		s, rawQuery = head, tail
	}

	// fragments never reach the record
	if i := strings.IndexByte(s, '#'); i >= 0 {
		s = s[:i]
	}

	authority, rawPath := s, ""
	if i := strings.IndexByte(s, '/'); i >= 0 {
		authority, rawPath = s[:i], s[i:]
	}

	rec := &Record{Schema: schema, simple: opts.Simple}

	host := authority
	if loc := atRunRE.FindStringIndex(authority); loc != nil {
		rec.User, rec.Password = splitUserInfo(authority[:loc[0]])
		host = authority[loc[1]:]
	}

	host, port, err := splitHostPort(text, host, opts.StrictPort)
	if err != nil {
		return nil, err
	}

	if opts.StrictPort && opts.VerifyHost && port != nil {
		if n, ok := port.Int(); !ok || n < 1 || n > 65535 {
			return nil, newParseError(ErrorTypePort, text, "invalid port %q", port.String())
		}
	}

	if opts.VerifyHost {
		normalized, ok := validators.IsHostname(host, validators.DefaultHostnameOptions())
		if !ok {
			return nil, newParseError(ErrorTypeHost, text, "invalid host %q", host)
		}

		host = normalized
	}

	rec.Host = host
	rec.Port = port

	if rawPath != "" {
		setPath(rec, rawPath)
	}

	args := ParseQSD(rawQuery, opts.PlusToSpace, opts.Sanitize)
	rec.QSD = args.QSD

	if !opts.Simple {
		rec.QSDPlus = args.Plus
		rec.QSDMinus = args.Minus
		rec.QSDColon = args.Colon
	}

	rec.URL = rec.buildURL()

	return rec, nil
}

// credentialsSpill detects a '?' inside a password: the part before '?' is
// a bare user:pass authority and the query reaches an '@' before any
// argument syntax.
func credentialsSpill(head, query string) bool {
	if strings.ContainsAny(head, "/@") || !strings.Contains(head, ":") {
		return false
	}

	at := strings.IndexByte(query, '@')
	if at < 0 {
		return false
	}

	stop := strings.IndexAny(query, "=&/")

	return stop < 0 || at < stop
}

func splitUserInfo(info string) (*string, *string) {
	loc := colonRunRE.FindStringIndex(info)
	if loc == nil {
		return &info, nil
	}

	user, password := info[:loc[0]], info[loc[1]:]

	return &user, &password
}

// splitHostPort separates a port from host. Non-integer tokens only split
// in strict mode; otherwise the colon stays part of the host and host
// verification decides.
func splitHostPort(input, host string, strict bool) (string, *Port, error) {
	m := hostPortRE.FindStringSubmatch(host)
	if m == nil {
		return host, nil, nil
	}

	name, token := m[1], m[2]

	if token == "" {
		if strict {
			return "", nil, newParseError(ErrorTypePort, input, "missing port after %q", name+":")
		}

		return host, nil, nil
	}

	port := ParsePort(token)
	if _, ok := port.Int(); ok || strict {
		return name, port, nil
	}

	return host, nil, nil
}

func setPath(rec *Record, rawPath string) {
	full := Quote(Unquote(slashRunRE.ReplaceAllString(rawPath, "/")), "/")
	rec.FullPath = &full

	i := strings.LastIndexByte(full, '/')
	dir := full[:i+1]
	rec.Path = &dir

	if leaf := full[i+1:]; leaf != "" {
		rec.Query = &leaf
	}
}
