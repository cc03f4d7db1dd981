package rollup

import (
	"github.com/hashicorp/go-hclog"

	"github.com/locusrobotics/ros-buildfarm/pkg/buildfile"
	"github.com/locusrobotics/ros-buildfarm/pkg/status"
)

// A LabelSet is a set of distinct status labels.
type LabelSet map[string]struct{}

// A Classifier turns the merged status of one package into a label
// per distribution.  Implementations must be pure and only return
// distributions present in the entry.  A distribution that cannot be
// classified is left out of the result.
type Classifier interface {
	Classify(e *status.Entry, expected buildfile.ExpectationSet, name string, blacklist buildfile.Blacklist) map[string]string
}

// ClassifierFunc adapts a plain function to the Classifier
// interface.
type ClassifierFunc func(*status.Entry, buildfile.ExpectationSet, string, buildfile.Blacklist) map[string]string

// Classify calls f.
func (f ClassifierFunc) Classify(e *status.Entry, expected buildfile.ExpectationSet, name string, blacklist buildfile.Blacklist) map[string]string {
	return f(e, expected, name, blacklist)
}

// Tree is the rollup of one snapshot keyed by organization.  Packages
// whose repository could not be attributed to an organization are
// filed under the empty organization.
type Tree map[string]*Org

// Org is an organization node.
type Org struct {
	URL    string            `json:"url"`
	Repos  map[string]*Repo  `json:"repos"`
	Status map[string]string `json:"status"`
}

// Repo is a repository node.
type Repo struct {
	URL    string              `json:"url"`
	Pkgs   map[string]*Package `json:"pkgs"`
	Status map[string]string   `json:"status"`
}

// Package is a leaf of the tree.
type Package struct {
	Status      map[string]string `json:"status"`
	Maintainers map[string]string `json:"maintainers,omitempty"`
	Versions    map[string]string `json:"versions,omitempty"`
}

// Builder assembles rollup trees.
type Builder struct {
	l hclog.Logger
	c Classifier
}
