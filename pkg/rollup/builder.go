package rollup

import (
	"maps"

	"github.com/hashicorp/go-hclog"

	"github.com/locusrobotics/ros-buildfarm/pkg/buildfile"
	"github.com/locusrobotics/ros-buildfarm/pkg/identity"
	"github.com/locusrobotics/ros-buildfarm/pkg/status"
)

// New returns a builder that labels packages with c.
func New(l hclog.Logger, c Classifier) *Builder {
	return &Builder{
		l: l.Named("rollup"),
		c: c,
	}
}

// Build places every package of the store into the organization and
// repository its URLs resolve to and rolls the package labels up to
// the repository and organization levels.
func (b *Builder) Build(store *status.Store, files buildfile.Set) Tree {
	expected := buildfile.Expectations(files)
	blacklist := buildfile.Blacklists(files)

	tree := make(Tree)
	for _, name := range store.Names() {
		entry, err := store.Get(name)
		if err != nil {
			continue
		}

		id := identity.ForEntry(entry)
		if id.Organization == "" {
			b.l.Debug("No organization for package", "package", name, "url", id.RepoURL)
		}

		labels := b.c.Classify(entry, expected, name, blacklist)
		pkg := &Package{
			Status:      make(map[string]string, len(labels)),
			Maintainers: maps.Clone(entry.Maintainers),
			Versions:    make(map[string]string, len(labels)),
		}
		for distro, label := range labels {
			ds, ok := entry.Distros[distro]
			if !ok {
				b.l.Warn("Classifier returned unknown distribution", "package", name, "distro", distro)
				continue
			}
			pkg.Status[distro] = label
			pkg.Versions[distro] = ds.Version
		}
		for distro := range entry.Distros {
			if _, ok := labels[distro]; !ok {
				b.l.Trace("No status available", "package", name, "distro", distro)
			}
		}

		tree.repo(id).Pkgs[name] = pkg
	}

	for _, org := range tree {
		orgLabels := make(map[string]LabelSet)
		for _, repo := range org.Repos {
			repoLabels := make(map[string]LabelSet)
			for _, pkg := range repo.Pkgs {
				for distro, label := range pkg.Status {
					addLabel(repoLabels, distro, label)
					addLabel(orgLabels, distro, label)
				}
			}
			repo.Status = mergeAll(repoLabels)
		}
		org.Status = mergeAll(orgLabels)
	}

	b.l.Debug("Built rollup", "orgs", len(tree), "packages", store.Len())
	return tree
}

// repo returns the repository node for id, creating it and its
// organization on first use.
func (t Tree) repo(id identity.Identity) *Repo {
	org, ok := t[id.Organization]
	if !ok {
		org = &Org{
			URL:    id.OrgURL,
			Repos:  make(map[string]*Repo),
			Status: make(map[string]string),
		}
		t[id.Organization] = org
	}
	repo, ok := org.Repos[id.Repository]
	if !ok {
		repo = &Repo{
			URL:    id.RepoURL,
			Pkgs:   make(map[string]*Package),
			Status: make(map[string]string),
		}
		org.Repos[id.Repository] = repo
	}
	return repo
}

func addLabel(m map[string]LabelSet, distro, label string) {
	s, ok := m[distro]
	if !ok {
		s = make(LabelSet)
		m[distro] = s
	}
	s.Add(label)
}

func mergeAll(m map[string]LabelSet) map[string]string {
	out := make(map[string]string, len(m))
	for distro, labels := range m {
		out[distro] = MergeStatuses(labels)
	}
	return out
}
