package types

import (
	"testing"
)

func TestPlatformString(t *testing.T) {
	p := NewPlatform("ubuntu", "xenial", "amd64")
	if got := p.String(); got != "ubuntu:xenial:amd64" {
		t.Errorf("String() = %q, want %q", got, "ubuntu:xenial:amd64")
	}
}

func TestPlatformComparable(t *testing.T) {
	seen := map[Platform]struct{}{NewPlatform("ubuntu", "bionic", ArchSource): {}}
	if _, ok := seen[Platform{OSName: "ubuntu", OSFlavor: "bionic", Arch: "source"}]; !ok {
		t.Error("equal platforms do not share a map key")
	}
}
