// Package classify provides the default per distribution status
// classifier used by the buildfarm tools.
package classify

import (
	"github.com/locusrobotics/ros-buildfarm/pkg/buildfile"
	"github.com/locusrobotics/ros-buildfarm/pkg/rollup"
	"github.com/locusrobotics/ros-buildfarm/pkg/status"
)

// LabelMissing is reported for an expected platform with no recorded
// build result.
const LabelMissing = "waiting for new release"

// Basic labels each distribution of a package that has expected
// platforms.  Every expected platform that is not blacklisted
// contributes its recorded label, or LabelMissing, and the labels
// are merged.  Distributions with nothing expected are left out.
var Basic rollup.Classifier = rollup.ClassifierFunc(basic)

func basic(e *status.Entry, expected buildfile.ExpectationSet, name string, blacklist buildfile.Blacklist) map[string]string {
	out := make(map[string]string, len(e.Distros))
	for distro, ds := range e.Distros {
		var builds status.BuildResults
		if ds != nil {
			builds = ds.Builds
		}
		excluded := blacklist.For(name, distro)
		labels := make(rollup.LabelSet)
		for _, p := range expected.Platforms(distro) {
			if _, ok := excluded[p]; ok {
				continue
			}
			l, ok := builds.Get(p)
			if !ok || l == "" {
				l = LabelMissing
			}
			labels.Add(l)
		}
		if len(labels) == 0 {
			continue
		}
		out[distro] = rollup.MergeStatuses(labels)
	}
	return out
}
