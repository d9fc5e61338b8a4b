package urlconfig

import "sort"

// expandGroups resolves groups that name other groups. Each group keeps its
// own members and gains every plain tag reachable through nested groups;
// cycles are cut at the first revisit.
func expandGroups(groups map[string]tagSet) map[string]tagSet {
	expanded := make(map[string]tagSet, len(groups))

	for name, members := range groups {
		set := make(tagSet, len(members))
		for tag := range members {
			set[tag] = struct{}{}
		}

		collectGroup(groups, name, set, make(map[string]bool))
		expanded[name] = set
	}

	return expanded
}

func collectGroup(groups map[string]tagSet, name string, into tagSet, seen map[string]bool) {
	if seen[name] {
		return
	}

	seen[name] = true

	for tag := range groups[name] {
		if _, nested := groups[tag]; nested {
			collectGroup(groups, tag, into, seen)
			continue
		}

		into[tag] = struct{}{}
	}
}

// applyGroups records the expanded groups and adds a group name to every
// entry carrying one of the group's tags. Empty groups are dropped.
func (r *Result) applyGroups(groups map[string]tagSet) {
	if len(groups) == 0 {
		return
	}

	expanded := expandGroups(groups)

	names := make([]string, 0, len(expanded))
	for name := range expanded {
		names = append(names, name)
	}

	sort.Strings(names)

	r.Groups = make(map[string][]string, len(names))

	for _, name := range names {
		if len(expanded[name]) == 0 {
			r.warnf("tag group %q has no tags", name)
			delete(expanded, name)

			continue
		}

		r.Groups[name] = expanded[name].sorted()
	}

	for i := range r.Entries {
		entry := &r.Entries[i]

		tags := make(tagSet, len(entry.Tags))
		for _, tag := range entry.Tags {
			tags[tag] = struct{}{}
		}

		for _, name := range names {
			members, ok := expanded[name]
			if !ok {
				continue
			}

			for _, tag := range entry.Tags {
				if _, in := members[tag]; in {
					tags[name] = struct{}{}
					break
				}
			}
		}

		entry.Tags = tags.sorted()
	}

	if len(r.Groups) == 0 {
		r.Groups = nil
	}
}
