package urlconfig

import (
	"regexp"
	"strings"

	"github.com/btraven00/notifyurl/pkg/common"
	"github.com/btraven00/notifyurl/pkg/redact"
	"github.com/btraven00/notifyurl/pkg/urlparse"
)

var textLineRE = regexp.MustCompile(`(?i)^\s*(?P<line>([;#]+(?P<comment>.*))|` +
	`(\s*(?P<tags>[a-z0-9, \t_-]+)\s*=|=)?\s*` +
	`((?P<url>[a-z0-9]{1,12}://.*)|(?P<assign>[a-z0-9, \t_-]+))|` +
	`include\s+(?P<config>.+))?\s*$`)

// ParseText loads TEXT configuration. Each line is one of:
//
//	# comment (or ; comment)
//	[tags=]schema://...
//	group=tag1, tag2
//	include path-or-url
//
// A line matching none of these aborts the load.
func ParseText(content string) (*Result, error) {
	result := &Result{Format: common.ConfigFormatText}
	groups := make(map[string]tagSet)

	var (
		tagsGroup   = textLineRE.SubexpIndex("tags")
		urlGroup    = textLineRE.SubexpIndex("url")
		assignGroup = textLineRE.SubexpIndex("assign")
		configGroup = textLineRE.SubexpIndex("config")
	)

	for i, line := range splitLines(content) {
		lineNo := i + 1

		m := textLineRE.FindStringSubmatch(line)
		if m == nil {
			return nil, &ConfigError{
				Format:  common.ConfigFormatText,
				Line:    lineNo,
				Message: "invalid syntax",
			}
		}

		switch {
		case m[configGroup] != "":
			result.Includes = append(result.Includes, strings.TrimSpace(m[configGroup]))

		case m[assignGroup] != "":
			assignGroups(result, groups, lineNo, m[tagsGroup], m[assignGroup])

		case m[urlGroup] != "":
			result.addTextEntry(lineNo, m[urlGroup], m[tagsGroup])
		}
	}

	result.applyGroups(groups)

	return result, nil
}

func assignGroups(result *Result, groups map[string]tagSet, lineNo int, names, tags string) {
	groupNames := urlparse.ParseList(names)
	if len(groupNames) == 0 {
		result.warnf("line %d: tag assignment without group name", lineNo)
		return
	}

	tagNames := urlparse.ParseList(tags)

	for _, group := range groupNames {
		set, ok := groups[group]
		if !ok {
			set = make(tagSet)
			groups[group] = set
		}

		for _, tag := range tagNames {
			if tag != group {
				set[tag] = struct{}{}
			}
		}
	}
}

func (r *Result) addTextEntry(lineNo int, url, tags string) {
	url = strings.TrimSpace(url)

	record, err := urlparse.Parse(url, urlparse.DefaultOptions())
	if err != nil {
		r.warnf("line %d: unparseable URL %s", lineNo, redact.URL(url))
		return
	}

	set := make(tagSet)
	set.add(tags)

	r.Entries = append(r.Entries, Entry{
		Line:   lineNo,
		Source: url,
		Schema: record.Schema,
		Tags:   set.sorted(),
		Record: record,
	})
}
