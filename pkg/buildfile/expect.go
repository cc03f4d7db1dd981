package buildfile

import (
	"sort"

	"github.com/locusrobotics/ros-buildfarm/pkg/types"
)

// Expectations computes, per distribution, the platforms a package is
// expected to build on.  Architectures are unioned across all the
// variants of a distribution and every declared flavor always expects
// the source target.
func Expectations(files Set) ExpectationSet {
	es := make(ExpectationSet)
	for distro, variants := range files {
		for _, bf := range variants {
			if bf == nil {
				continue
			}
			for osName, flavors := range bf.Targets {
				for flavor, archs := range flavors {
					set := es.bucket(distro, osName, flavor)
					for _, arch := range archs {
						set[arch] = struct{}{}
					}
					set[types.ArchSource] = struct{}{}
				}
			}
		}
	}
	return es
}

func (es ExpectationSet) bucket(distro, osName, flavor string) map[string]struct{} {
	if _, ok := es[distro]; !ok {
		es[distro] = make(map[string]map[string]map[string]struct{})
	}
	if _, ok := es[distro][osName]; !ok {
		es[distro][osName] = make(map[string]map[string]struct{})
	}
	if _, ok := es[distro][osName][flavor]; !ok {
		es[distro][osName][flavor] = make(map[string]struct{})
	}
	return es[distro][osName][flavor]
}

// Platforms lists every expected platform of a distribution in a
// stable order.
func (es ExpectationSet) Platforms(distro string) []types.Platform {
	var out []types.Platform
	for osName, flavors := range es[distro] {
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
