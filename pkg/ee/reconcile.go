package ee

import "sort"

// TagSet is an unordered set of image tags. Comparisons are case-sensitive;
// duplicates and ordering in the source list are irrelevant.
type TagSet map[string]struct{}

func NewTagSet(tags []string) TagSet {
	set := make(TagSet, len(tags))
	for _, t := range tags {
		set[t] = struct{}{}
	}
	return set
}

func (s TagSet) Contains(tag string) bool {
	_, ok := s[tag]
	return ok
}

// diff returns the members of s that are not in other, sorted.
func (s TagSet) diff(other TagSet) []string {
	var out []string
	for t := range s {
		if !other.Contains(t) {
			out = append(out, t)
		}
	}
	sort.Strings(out)
	return out
}

// Reconcile computes the tag operations that turn current into the desired
// state. In append mode only missing tags are added and nothing is ever
// removed; otherwise the requested set replaces the current one. changed
// reports whether any operation is needed.
func Reconcile(current TagSet, requested TagSet, appendOnly bool) (toAdd []string, toRemove []string, changed bool) {
	toAdd = requested.diff(current)
	if !appendOnly {
		toRemove = current.diff(requested)
	}
	return toAdd, toRemove, len(toAdd) > 0 || len(toRemove) > 0
}
