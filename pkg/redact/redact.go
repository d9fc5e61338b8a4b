// Package redact hides secrets in notification URLs before they are logged
// or displayed (CWE-312). A redacted word keeps only its first and last
// character: "abc123" becomes "a...3".
package redact

import (
	"sort"
	"strings"
	"unicode"

	"github.com/btraven00/notifyurl/pkg/urlparse"
	"github.com/btraven00/notifyurl/pkg/validators"
)

// DefaultThreshold is the number of character class changes that marks a
// word as a generated token.
const DefaultThreshold = 5

// longWord is the length from which any word is redacted.
const longWord = 16

// SensitiveKeys are query argument names whose values are always redacted.
var SensitiveKeys = []string{"apikey", "key", "pass", "password", "secret", "token"}

// WordOptions controls Word.
type WordOptions struct {
	// Force redacts the word unconditionally.
	Force bool
	// Advanced redacts words that switch between lowercase, uppercase,
	// digits and symbols at least Threshold times.
	Advanced  bool
	Threshold int
}

// DefaultWordOptions enables the variance check.
func DefaultWordOptions() WordOptions {
	return WordOptions{Advanced: true, Threshold: DefaultThreshold}
}

type variance int

const (
	varianceNone variance = iota
	varianceLower
	varianceUpper
	varianceDigit
	varianceSpecial
)

func classify(r rune) variance {
	switch {
	case unicode.IsDigit(r):
		return varianceDigit
	case unicode.IsUpper(r):
		return varianceUpper
	case unicode.IsLetter(r):
		return varianceLower
	default:
		return varianceSpecial
	}
}

// Word redacts word when it is forced, looks generated, is not a plain
// host-like name, or is long. Blank words are returned unchanged.
func Word(word string, opts WordOptions) string {
	if strings.TrimSpace(word) == "" {
		return word
	}

	if opts.Force || looksGenerated(word, opts) || len(word) >= longWord || !hostLike(word) {
		return obscure(word)
	}

	return word
}

func hostLike(word string) bool {
	if len(word) <= 1 {
		return true
	}

	_, ok := validators.IsHostname(word, validators.HostnameOptions{IPv4: true, IPv6: true})

	return ok
}

func looksGenerated(word string, opts WordOptions) bool {
	if !opts.Advanced {
		return false
	}

	threshold := opts.Threshold
	if threshold <= 0 {
		threshold = DefaultThreshold
	}

	last, score := varianceNone, 0

	for _, r := range word {
		if v := classify(r); v != last {
			last = v
			score++

			if score >= threshold {
				return true
			}
		}
	}

	return false
}

func obscure(word string) string {
	runes := []rune(word)

	return string(runes[0]) + "..." + string(runes[len(runes)-1])
}

// URL redacts the secrets in a notification URL: the password always, the
// host, user and path segments when they look like tokens, and the values
// of sensitive query arguments. Fragments are dropped. A URL that cannot be
// parsed is returned unchanged.
func URL(raw string) string {
	opts := urlparse.DefaultOptions()
	opts.VerifyHost = false

	rec, err := urlparse.Parse(raw, opts)
	if err != nil {
		return raw
	}

	fields := rec.Fields()
	web := strings.HasPrefix(rec.Schema, "http")

	if fields.Password != nil {
		password := Word(*fields.Password, WordOptions{Force: true})
		fields.Password = &password
	}

	if fields.User != nil && !web {
		user := Word(*fields.User, DefaultWordOptions())
		fields.User = &user
	}

	hostOpts := DefaultWordOptions()
	if web {
		hostOpts.Advanced = false
	}

	fields.Host = Word(fields.Host, hostOpts)

	if fields.FullPath != nil {
		path := redactPath(*fields.FullPath)
		fields.FullPath = &path
	}

	fields.QSD = redactArgs(rec.QSD)

	return urlparse.Assemble(fields, false)
}

func redactPath(path string) string {
	segments := strings.Split(path, "/")
	for i, segment := range segments {
		segments[i] = Word(segment, DefaultWordOptions())
	}

	return strings.Join(segments, "/")
}

func redactArgs(args map[string]string) map[string]string {
	out := make(map[string]string, len(args))

	for key, value := range args {
		opts := DefaultWordOptions()
		opts.Force = isSensitive(key)
		out[key] = Word(value, opts)
	}

	return out
}

func isSensitive(key string) bool {
	key = strings.TrimLeft(strings.ToLower(key), "+-:")
	i := sort.SearchStrings(SensitiveKeys, key)

	return i < len(SensitiveKeys) && SensitiveKeys[i] == key
}
