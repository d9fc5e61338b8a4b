// Package urlconfig loads notification URL configuration files.
//
// Two formats are understood. TEXT holds one URL per line, optionally
// prefixed by tags ("alerts,ops=mailto://..."), plus tag group assignments
// and include lines. YAML holds a versioned document with global tags,
// groups, includes and a list of URLs that may carry per-entry overrides.
// Problems with individual entries are collected as warnings; only content
// that cannot be read as configuration at all is an error.
package urlconfig

import (
	"fmt"
	"regexp"
	"sort"

	"github.com/pkg/errors"

	"github.com/btraven00/notifyurl/pkg/common"
	"github.com/btraven00/notifyurl/pkg/urlparse"
)

var (
	lineSplitRE = regexp.MustCompile(`\r*\n`)
	detectRE    = regexp.MustCompile(`(?i)^\s*(?P<line>([;#]+(?P<comment>.*))|` +
		`(?P<text>((?P<tag>[ \t,a-z0-9_-]+)=)?[a-z0-9]+://.*)|` +
		`((?P<yaml>[a-z0-9]+):.*))?$`)
	schemaRE     = regexp.MustCompile(`(?i)^\s*([a-z0-9]{1,12})://`)
	validTokenRE = regexp.MustCompile(`(?i)^[a-z0-9][a-z0-9_]+`)
)

// Entry is one notification URL loaded from a configuration.
type Entry struct {
	// Line is the TEXT line the URL was found on.
	Line int `json:"line,omitempty" yaml:"line,omitempty"`
	// Index and Item locate a YAML entry: the position in the urls list
	// and the override set within it, both starting at 1.
	Index     int              `json:"index,omitempty" yaml:"index,omitempty"`
	Item      int              `json:"item,omitempty" yaml:"item,omitempty"`
	Source    string           `json:"source" yaml:"source"`
	Schema    string           `json:"schema" yaml:"schema"`
	Tags      []string         `json:"tags" yaml:"tags"`
	Record    *urlparse.Record `json:"record,omitempty" yaml:"record,omitempty"`
	Overrides map[string]any   `json:"overrides,omitempty" yaml:"overrides,omitempty"`
}

// Fields returns the record fields with the overrides applied. Overrides
// naming a record field replace it; any other override becomes a query
// argument.
func (e Entry) Fields() map[string]any {
	fields := map[string]any{urlparse.KeySchema: e.Schema}

	qsd := make(map[string]string)

	if e.Record != nil {
		fields = e.Record.Map()
		for k, v := range e.Record.QSD {
			qsd[k] = v
		}
	}

	for key, value := range e.Overrides {
		switch key {
		case urlparse.KeySchema, urlparse.KeyUser, urlparse.KeyPassword, urlparse.KeyHost,
			urlparse.KeyPort, urlparse.KeyFullPath, urlparse.KeyPath, urlparse.KeyQuery:
			fields[key] = value
		default:
			qsd[key] = stringify(value)
		}
	}

	fields[urlparse.KeyQSD] = qsd

	return fields
}

// URL renders the entry with its overrides applied.
func (e Entry) URL(encode bool) (string, error) {
	url, err := urlparse.AssembleMap(e.Fields(), encode)
	if err != nil {
		return "", errors.Wrapf(err, "cannot assemble %s entry", e.Schema)
	}

	return url, nil
}

// HasTag reports whether the entry carries tag.
func (e Entry) HasTag(tag string) bool {
	i := sort.SearchStrings(e.Tags, tag)
	return i < len(e.Tags) && e.Tags[i] == tag
}

// Result is a parsed configuration.
type Result struct {
	Format   common.ConfigFormat `json:"format" yaml:"format"`
	Entries  []Entry             `json:"entries" yaml:"entries"`
	Includes []string            `json:"includes,omitempty" yaml:"includes,omitempty"`
	Groups   map[string][]string `json:"groups,omitempty" yaml:"groups,omitempty"`
	Warnings []string            `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

func (r *Result) warnf(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// Select returns the entries whose tags satisfy logic.
func (r *Result) Select(logic common.Logic, matcher common.TagMatcher) []Entry {
	var selected []Entry

	for _, entry := range r.Entries {
		if matcher.Match(logic, entry.Tags) {
			selected = append(selected, entry)
		}
	}

	return selected
}

// ConfigError reports content that cannot be loaded.
type ConfigError struct {
	Format  common.ConfigFormat `json:"format"`
	Line    int                 `json:"line,omitempty"`
	Message string              `json:"message"`
}

func (e *ConfigError) Error() string {
	prefix := "configuration"
	if e.Format != "" {
		prefix = string(e.Format) + " configuration"
	}

	if e.Line > 0 {
		return fmt.Sprintf("%s line %d: %s", prefix, e.Line, e.Message)
	}

	return fmt.Sprintf("%s: %s", prefix, e.Message)
}

func splitLines(content string) []string {
	return lineSplitRE.Split(content, -1)
}

// DetectFormat inspects the first meaningful line of content. A "key:" line
// means YAML, a URL (optionally tagged) means TEXT, and content holding only
// comments or blank lines is TEXT.
func DetectFormat(content string) (common.ConfigFormat, error) {
	yamlGroup := detectRE.SubexpIndex("yaml")
	textGroup := detectRE.SubexpIndex("text")

	for i, line := range splitLines(content) {
		m := detectRE.FindStringSubmatch(line)
		if m == nil {
			return "", &ConfigError{Line: i + 1, Message: "undetectable configuration format"}
		}

		if m[yamlGroup] != "" {
			return common.ConfigFormatYAML, nil
		}

		if m[textGroup] != "" {
			return common.ConfigFormatText, nil
		}
	}

	return common.ConfigFormatText, nil
}

// Parse loads content in the given format, detecting it when format is
// empty.
func Parse(content string, format common.ConfigFormat) (*Result, error) {
	if format == "" {
		detected, err := DetectFormat(content)
		if err != nil {
			return nil, err
		}

		format = detected
	}

	parsed, err := common.ParseConfigFormat(string(format))
	if err != nil {
		return nil, err
	}

	if parsed == common.ConfigFormatYAML {
		return ParseYAML(content)
	}

	return ParseText(content)
}

func stringify(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		if v {
			return "yes"
		}

		return "no"
	default:
		return fmt.Sprint(v)
	}
}

// tagSet collects tags from strings holding delimited lists.
type tagSet map[string]struct{}

func (s tagSet) add(values ...string) {
	for _, tag := range urlparse.ParseList(values...) {
		s[tag] = struct{}{}
	}
}

func (s tagSet) sorted() []string {
	tags := make([]string, 0, len(s))
	for tag := range s {
		tags = append(tags, tag)
	}

	sort.Strings(tags)

	return tags
}
