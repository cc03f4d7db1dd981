package rollup

import (
	"sort"
)

// A Location says where in the tree a package was placed.
type Location struct {
	Org     string   `json:"org"`
	Repo    string   `json:"repo"`
	Package *Package `json:"package"`
}

// Find looks a package up by name.
func (t Tree) Find(name string) (Location, bool) {
	for orgName, org := range t {
		for repoName, repo := range org.Repos {
			if pkg, ok := repo.Pkgs[name]; ok {
				return Location{Org: orgName, Repo: repoName, Package: pkg}, true
			}
		}
	}
	return Location{}, false
}

// Distributions lists every distribution that has a label anywhere
// in the tree, sorted.
func (t Tree) Distributions() []string {
	seen := make(map[string]struct{})
	for _, org := range t {
		for d := range org.Status {
			seen[d] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for d := range seen {
		out = append(out, d)
	}
	sort.Strings(out)
	return out
}

// PackageCount is the number of leaves in the tree.
func (t Tree) PackageCount() int {
	n := 0
	for _, org := range t {
		for _, repo := range org.Repos {
			n += len(repo.Pkgs)
		}
	}
	return n
}
