package rollup

import (
	"strings"
)

// Labels produced when several distinct labels are merged.
const (
	LabelWaiting = "waiting for new/re-release"
	LabelBroken  = "does not build on some platforms"
	LabelMixed   = "mixed"
)

// NewLabelSet returns a set holding the given labels.
func NewLabelSet(labels ...string) LabelSet {
	s := make(LabelSet, len(labels))
	for _, l := range labels {
		s.Add(l)
	}
	return s
}

// Add inserts a label into the set.
func (s LabelSet) Add(l string) {
	s[l] = struct{}{}
}

// MergeStatuses collapses a set of labels into one.  A single label
// is returned untouched.  Otherwise the result is LabelWaiting when
// every label is a waiting label, LabelBroken when every label is a
// build failure, and LabelMixed in all other cases.
//
// The set must not be empty.
func MergeStatuses(labels LabelSet) string {
	if len(labels) == 0 {
		panic("rollup: MergeStatuses called with no labels")
	}
	if len(labels) == 1 {
		for l := range labels {
			return l
		}
	}

	allWaiting, allBroken := true, true
	for l := range labels {
		if !isWaiting(l) {
			allWaiting = false
		}
		if !isBroken(l) {
			allBroken = false
		}
	}
	switch {
	case allWaiting:
		return LabelWaiting
	case allBroken:
		return LabelBroken
	default:
		return LabelMixed
	}
}

func isWaiting(l string) bool {
	return strings.Contains(l, "waiting")
}

func isBroken(l string) bool {
	return strings.Contains(l, "build")
}
