package status

import (
	"errors"
	"sort"

	"github.com/hashicorp/go-hclog"
	"gopkg.in/yaml.v3"
)

// ErrNoSuchPackage is returned when a package has no entry in the
// store.
var ErrNoSuchPackage = errors.New("no such package")

// NewStore returns an empty store.
func NewStore(l hclog.Logger) *Store {
	return &Store{
		l:       l.Named("status"),
		entries: make(map[string]*Entry),
	}
}

// ParseDocument decodes a status document.
func ParseDocument(b []byte) (Document, error) {
	doc := make(Document)
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// Merge folds a document published for distro into the store.  Each
// package contributes its fields under the distribution and its
// maintainers to the shared maintainer map.  Existing entries are
// merged leaf by leaf so that nothing contributed by an earlier
// document for another distribution or platform is lost.
func (s *Store) Merge(doc Document, distro string) {
	for name, pd := range doc {
		delta := newDelta(pd, distro)
		old, ok := s.entries[name]
		if !ok {
			s.entries[name] = delta
			continue
		}
		mergeEntry(old, delta)
	}
	s.l.Trace("Merged document", "distro", distro, "packages", len(doc))
}

// Restore replaces the contents of the store with previously
// persisted entries.
func (s *Store) Restore(entries map[string]*Entry) {
	s.entries = make(map[string]*Entry, len(entries))
	for name, e := range entries {
		if e.Distros == nil {
			e.Distros = make(map[string]*DistroStatus)
		}
		if e.Maintainers == nil {
			e.Maintainers = make(map[string]string)
		}
		s.entries[name] = e
	}
}

// Entries exposes the underlying map for serialization.
func (s *Store) Entries() map[string]*Entry {
	return s.entries
}

// Get returns the entry for a package.
func (s *Store) Get(name string) (*Entry, error) {
	e, ok := s.entries[name]
	if !ok {
		return nil, ErrNoSuchPackage
	}
	return e, nil
}

// Names returns all package names in the store, sorted.
func (s *Store) Names() []string {
	out := make([]string, 0, len(s.entries))
	for n := range s.entries {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// Len is the number of packages in the store.
func (s *Store) Len() int {
	return len(s.entries)
}

func newDelta(pd PackageDoc, distro string) *Entry {
	e := &Entry{
		Distros: map[string]*DistroStatus{
			distro: {
				Version: pd.Version,
				URL:     pd.URL,
				Builds:  pd.Builds.clone(),
			},
		},
		Maintainers: make(map[string]string, len(pd.Maintainers)),
	}
	for _, m := range pd.Maintainers {
		e.Maintainers[m.Email] = m.Name
	}
	return e
}

func mergeEntry(dst, src *Entry) {
	for distro, ds := range src.Distros {
		old, ok := dst.Distros[distro]
		if !ok {
			dst.Distros[distro] = ds
			continue
		}
		mergeDistro(old, ds)
	}
	for email, name := range src.Maintainers {
		dst.Maintainers[email] = name
	}
}

// mergeDistro overlays src onto dst.  Empty values in src never
// replace recorded ones.
func mergeDistro(dst, src *DistroStatus) {
	if src.Version != "" {
		dst.Version = src.Version
	}
	if src.URL != "" {
		dst.URL = src.URL
	}
	if src.Builds == nil {
		return
	}
	if dst.Builds == nil {
		dst.Builds = make(BuildResults)
	}
	for _, p := range src.Builds.Platforms() {
		l, _ := src.Builds.Get(p)
		if l == "" {
			continue
		}
		dst.Builds.Set(p, l)
	}
}
