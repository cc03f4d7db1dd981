package status

import (
	"sort"

	"github.com/locusrobotics/ros-buildfarm/pkg/types"
)

// Get returns the label recorded for a platform.
func (br BuildResults) Get(p types.Platform) (string, bool) {
	l, ok := br[p.OSName][p.OSFlavor][p.Arch]
	return l, ok
}

// Set records a label for a platform.
func (br BuildResults) Set(p types.Platform, label string) {
	if _, ok := br[p.OSName]; !ok {
		br[p.OSName] = make(map[string]map[string]string)
	}
	if _, ok := br[p.OSName][p.OSFlavor]; !ok {
		br[p.OSName][p.OSFlavor] = make(map[string]string)
	}
	br[p.OSName][p.OSFlavor][p.Arch] = label
}

// Platforms lists the platforms with a recorded label in a stable
// order.
func (br BuildResults) Platforms() []types.Platform {
	var out []types.Platform
	for osName, flavors := range br {
		for flavor, archs := range flavors {
			for arch := range archs {
				out = append(out, types.NewPlatform(osName, flavor, arch))
			}
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].String() < out[j].String()
	})
	return out
}

func (br BuildResults) clone() BuildResults {
	if br == nil {
		return nil
	}
	out := make(BuildResults, len(br))
	for _, p := range br.Platforms() {
		l, _ := br.Get(p)
		out.Set(p, l)
	}
	return out
}
