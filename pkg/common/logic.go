package common

import (
	"github.com/btraven00/notifyurl/pkg/urlparse"
)

// Logic is a tag filter: it matches when any of its entries matches, and an
// entry matches when every tag in it is present.
type Logic [][]string

// ParseLogic turns a delimited string such as "abc, def" into alternatives:
// abc OR def.
func ParseLogic(value string) Logic {
	var logic Logic
	for _, tag := range urlparse.ParseList(value) {
		logic = append(logic, []string{tag})
	}

	return logic
}

// LogicOf builds alternatives from entries; each entry is itself a delimited
// list of tags that must all be present, so "abc, xyz" means abc AND xyz.
func LogicOf(entries ...string) Logic {
	var logic Logic
	for _, entry := range entries {
		logic = append(logic, urlparse.ParseList(entry))
	}

	return logic
}

// TagMatcher evaluates Logic against the tags of a URL.
type TagMatcher struct {
	// MatchAll is the tag that selects everything; empty disables it.
	MatchAll string
	// MatchAlways is a tag that always matches when present on the URL;
	// empty disables it.
	MatchAlways string
}

// DefaultTagMatcher uses the reserved "all" and "always" tags.
func DefaultTagMatcher() TagMatcher {
	return TagMatcher{MatchAll: MatchAllTag, MatchAlways: MatchAlwaysTag}
}

// Match reports whether tags satisfy logic. Empty logic only matches a URL
// without tags.
func (m TagMatcher) Match(logic Logic, tags []string) bool {
	entries := make(Logic, 0, len(logic)+1)
	for _, entry := range logic {
		if len(entry) > 0 {
			entries = append(entries, entry)
		}
	}

	if len(entries) == 0 {
		return len(tags) == 0
	}

	if m.MatchAlways != "" {
		entries = append(entries, []string{m.MatchAlways})
	}

	have := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		have[tag] = struct{}{}
	}

	for _, entry := range entries {
		if m.satisfies(entry, have) {
			return true
		}
	}

	return false
}

func (m TagMatcher) satisfies(entry []string, have map[string]struct{}) bool {
	for _, tag := range entry {
		if m.MatchAll != "" && tag == m.MatchAll {
			return true
		}
	}

	for _, tag := range entry {
		if _, ok := have[tag]; !ok {
			return false
		}
	}

	return true
}
