package buildfile

import (
	"github.com/locusrobotics/ros-buildfarm/pkg/types"
)

// A BuildFile is the release build declaration for one variant of a
// distribution.  Only the parts the status rollup cares about are
// decoded.
type BuildFile struct {
	// Targets is the declared matrix: os name -> os flavor ->
	// architectures.
	Targets map[string]map[string]Archs `yaml:"targets"`

	PackageBlacklist []string `yaml:"package_blacklist"`
}

// Archs is the collection of architectures declared for a flavor.
type Archs []string

// Set holds every build file of a snapshot keyed by distribution and
// then by variant.
type Set map[string]map[string]*BuildFile

// ExpectationSet maps distribution -> os name -> os flavor -> the
// architectures a package is expected to build on.
type ExpectationSet map[string]map[string]map[string]map[string]struct{}

// Blacklist maps package -> distribution -> platforms the package is
// explicitly excluded from.
type Blacklist map[string]map[string]map[types.Platform]struct{}

// Index is the buildfarm configuration index that names the release
// build files of every distribution.
type Index struct {
	Distributions map[string]IndexDistribution `yaml:"distributions"`
}

// IndexDistribution lists the release build files of a distribution
// keyed by variant.  Locations are relative to the index.
type IndexDistribution struct {
	ReleaseBuilds map[string]string `yaml:"release_builds"`
}
