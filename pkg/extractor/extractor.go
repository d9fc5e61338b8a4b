// Package extractor splits free-form blobs holding several targets into
// individual URL, email, phone number or call sign tokens.
//
// Commas and whitespace separate entries, but only where the next entry
// visibly starts; separators inside a token (a comma in a query argument, the
// space between a display name and an address) are kept. When a blob holds
// no recognizable token at all, its content can be kept verbatim so callers
// can report it instead of silently losing it.
package extractor

import (
	"github.com/btraven00/notifyurl/pkg/urlparse"
)

// Options controls the batch extractors.
type Options struct {
	// StoreUnparseable keeps the whitespace/comma separated pieces of a
	// blob that yielded no token.
	StoreUnparseable bool `json:"store_unparseable" mapstructure:"store_unparseable"`
	// Prefix lets phone numbers carry a "label:" tag such as "sms:".
	Prefix bool `json:"prefix" mapstructure:"prefix"`
}

// DefaultOptions keeps unparseable content.
func DefaultOptions() Options {
	return Options{
		StoreUnparseable: true,
		Prefix:           false,
	}
}

// ParseURLs extracts scheme-prefixed URLs. A URL only ends where a delimiter
// run is followed by another scheme, so "discord://host?url=https://x"
// stays whole.
func ParseURLs(opts Options, values ...string) []string {
	return extract(opts, values, func(string) matcher { return matchURL })
}

// ParseEmails extracts addresses with their optional display names.
func ParseEmails(opts Options, values ...string) []string {
	return extract(opts, values, func(s string) matcher { return newEmailScanner(s).match })
}

// ParsePhoneNo extracts phone numbers. No minimum length is enforced here;
// validate the tokens afterwards.
func ParsePhoneNo(opts Options, values ...string) []string {
	m := phoneMatcher(opts.Prefix)
	return extract(opts, values, func(string) matcher { return m })
}

// ParseCallSign extracts amateur radio call signs.
func ParseCallSign(opts Options, values ...string) []string {
	return extract(opts, values, func(string) matcher { return matchCallSign })
}

func extract(opts Options, values []string, build func(string) matcher) []string {
	result := make([]string, 0, len(values))

	for _, value := range values {
		if value == "" {
			continue
		}

		if tokens := findAll(value, build(value)); len(tokens) > 0 {
			result = append(result, tokens...)
			continue
		}

		if opts.StoreUnparseable {
			result = append(result, urlparse.SplitList(value)...)
		}
	}

	return result
}
