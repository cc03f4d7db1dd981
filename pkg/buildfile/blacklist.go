package buildfile

import (
	"github.com/locusrobotics/ros-buildfarm/pkg/types"
)

// Blacklists collects the platforms each blacklisted package is
// excluded from.  A package is excluded from every target triple of
// the build file that blacklists it.
func Blacklists(files Set) Blacklist {
	bl := make(Blacklist)
	for distro, variants := range files {
		for _, bf := range variants {
			if bf == nil || len(bf.PackageBlacklist) == 0 {
				continue
			}
			for _, pkg := range bf.PackageBlacklist {
				for osName, flavors := range bf.Targets {
					for flavor, archs := range flavors {
						for _, arch := range archs {
							bl.add(pkg, distro, types.NewPlatform(osName, flavor, arch))
						}
					}
				}
			}
		}
	}
	return bl
}

func (bl Blacklist) add(pkg, distro string, p types.Platform) {
	if _, ok := bl[pkg]; !ok {
		bl[pkg] = make(map[string]map[types.Platform]struct{})
	}
	if _, ok := bl[pkg][distro]; !ok {
		bl[pkg][distro] = make(map[types.Platform]struct{})
	}
	bl[pkg][distro][p] = struct{}{}
}

// For returns the excluded platforms of a package in a distribution.
// The result is never nil.
func (bl Blacklist) For(pkg, distro string) map[types.Platform]struct{} {
	if s, ok := bl[pkg][distro]; ok {
		return s
	}
	return map[types.Platform]struct{}{}
}
