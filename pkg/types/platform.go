package types

// ArchSource is the pseudo-architecture every distribution flavor
// builds source packages for.
const ArchSource = "source"

// A Platform is a single build target: the operating system, its
// flavor (usually a release codename) and an architecture.
type Platform struct {
	OSName   string
	OSFlavor string
	Arch     string
}

func (p Platform) String() string {
	return p.OSName + ":" + p.OSFlavor + ":" + p.Arch
}

// NewPlatform returns a platform for the given target triple.
func NewPlatform(os, flavor, arch string) Platform {
	return Platform{os, flavor, arch}
}
