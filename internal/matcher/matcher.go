package matcher

import (
	"strings"

	"github.com/seitarof/gen-derive/syntax"
)

// ItemMatcher selects the items a run should analyze.
type ItemMatcher interface {
	Match(items []syntax.Item, include, ignore []string) []syntax.Item
}

type itemMatcherImpl struct{}

// NewItemMatcher returns default item matcher. Names are compared
// case-insensitively; an empty include list selects every item.
func NewItemMatcher() ItemMatcher {
	return &itemMatcherImpl{}
}

func (m *itemMatcherImpl) Match(items []syntax.Item, include, ignore []string) []syntax.Item {
	includeSet := toNameSet(include)
	ignoreSet := toNameSet(ignore)

	out := make([]syntax.Item, 0, len(items))
	for _, it := range items {
		lower := strings.ToLower(it.Name)
		if ignoreSet[lower] {
			continue
		}
		if len(includeSet) > 0 && !includeSet[lower] {
			continue
		}
		out = append(out, it)
	}
	return out
}

// Missing returns the names in include that match none of items.
func Missing(items []syntax.Item, include []string) []string {
	present := make(map[string]bool, len(items))
	for _, it := range items {
		present[strings.ToLower(it.Name)] = true
	}
	var out []string
	for _, name := range include {
		name = strings.TrimSpace(name)
		if name == "" || present[strings.ToLower(name)] {
			continue
		}
		out = append(out, name)
	}
	return out
}

func toNameSet(names []string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		n = strings.TrimSpace(strings.ToLower(n))
		if n == "" {
			continue
		}
		set[n] = true
	}
	return set
}
