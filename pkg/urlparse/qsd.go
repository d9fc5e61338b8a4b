package urlparse

import (
	"strings"
)

// Key sigils recognized at the start of a query argument name.
const (
	SigilPlus  = '+'
	SigilMinus = '-'
	SigilColon = ':'
)

// QueryArgs is a query string split by key sigil. QSD holds every argument;
// Plus, Minus and Colon additionally hold the arguments whose key started
// with the matching sigil, keyed by the original key without the sigil.
type QueryArgs struct {
	QSD   map[string]string
	Plus  map[string]string
	Minus map[string]string
	Colon map[string]string
}

// NewQueryArgs returns a QueryArgs with all four mappings allocated.
func NewQueryArgs() QueryArgs {
	return QueryArgs{
		QSD:   make(map[string]string),
		Plus:  make(map[string]string),
		Minus: make(map[string]string),
		Colon: make(map[string]string),
	}
}

// ParseQSD decomposes a raw query string (the content after '?').
//
// Arguments are separated by '&' and split on the first '='; an argument
// without '=' has an empty value. Values are percent-decoded, and '+' only
// becomes a space when plusToSpace is set. The first character of a key is
// taken literally so a leading '+' survives as a sigil. With sanitize the
// key stored in QSD is lowercased and trimmed; the sigil groups always keep
// the key as written.
func ParseQSD(raw string, plusToSpace, sanitize bool) QueryArgs {
	args := NewQueryArgs()

	for _, token := range strings.Split(raw, "&") {
		name, value, _ := strings.Cut(token, "=")
		if name == "" {
			continue
		}

		key := decodeKey(name, plusToSpace)
		if key == "" {
			continue
		}

		if plusToSpace {
			value = UnquotePlus(value)
		} else {
			value = Unquote(value)
		}

		if sanitize {
			args.QSD[strings.TrimSpace(strings.ToLower(key))] = value
		} else {
			args.QSD[key] = value
		}

		switch key[0] {
		case SigilPlus:
			args.Plus[key[1:]] = value
		case SigilMinus:
			args.Minus[key[1:]] = value
		case SigilColon:
			args.Colon[key[1:]] = value
		}
	}

	return args
}

func decodeKey(name string, plusToSpace bool) string {
	rest := name[1:]
	if plusToSpace {
		rest = strings.ReplaceAll(rest, "+", " ")
	}

	return Unquote(name[:1] + rest)
}
