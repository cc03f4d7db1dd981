package status

import (
	"github.com/hashicorp/go-hclog"

	"github.com/locusrobotics/ros-buildfarm/pkg/types"
)

// A Document is one status file as published for a single
// distribution and build variant, keyed by package name.
type Document map[string]PackageDoc

// PackageDoc is the status of a package within a Document.
type PackageDoc struct {
	Version     string             `yaml:"version,omitempty"`
	URL         string             `yaml:"url,omitempty"`
	Maintainers []types.Maintainer `yaml:"maintainers,omitempty"`
	Builds      BuildResults       `yaml:"build_status,omitempty"`
}

// BuildResults holds the per platform build labels as os name -> os
// flavor -> architecture -> label.
type BuildResults map[string]map[string]map[string]string

// DistroStatus is everything known about a package in one
// distribution after all variants have been merged.
type DistroStatus struct {
	Version string       `json:"version,omitempty"`
	URL     string       `json:"url,omitempty"`
	Builds  BuildResults `json:"builds,omitempty"`
}

// An Entry is the accumulated record of a package across every
// document merged so far.
type Entry struct {
	Distros map[string]*DistroStatus `json:"distros"`

	// Maintainers maps email to name.
	Maintainers map[string]string `json:"maintainers"`
}

// Store accumulates package entries for one snapshot.  It is not
// safe for concurrent writers.
type Store struct {
	l hclog.Logger

	entries map[string]*Entry
}
