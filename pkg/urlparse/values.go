package urlparse

import (
	"regexp"
	"sort"
	"strings"
)

// listDelimiterRE separates entries of a loosely written list.
var listDelimiterRE = regexp.MustCompile(`[\[\];,\s]+`)

// ParseBool interprets the common yes/no spellings used in URL arguments by
// their first two characters: "yes", "true", "on", "1", "enable", "allow"
// and "always" are true; "no", "false", "off", "0", "disable", "deny" and
// "never" are false. Anything else returns def.
func ParseBool(value string, def bool) bool {
	prefix := strings.ToLower(value)
	if len(prefix) > 2 {
		prefix = prefix[:2]
	}

	switch prefix {
	case "de", "di", "ne", "f", "n", "no", "of", "0", "fa":
		return false
	case "en", "al", "t", "y", "ye", "on", "1", "tr":
		return true
	}

	return def
}

// ParseList splits every value on brackets, semicolons, commas and
// whitespace and returns the distinct non-empty entries, sorted.
func ParseList(values ...string) []string {
	seen := make(map[string]struct{})

	for _, value := range values {
		for _, entry := range SplitList(value) {
			seen[entry] = struct{}{}
		}
	}

	result := make([]string, 0, len(seen))
	for entry := range seen {
		result = append(result, entry)
	}

	sort.Strings(result)

	return result
}

// SplitList splits value like ParseList but keeps order and duplicates.
func SplitList(value string) []string {
	var result []string

	for _, entry := range listDelimiterRE.Split(value, -1) {
		if entry != "" {
			result = append(result, entry)
		}
	}

	return result
}
