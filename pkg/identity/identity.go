// Package identity groups packages by the organization and
// repository that host their sources.
package identity

import (
	"regexp"
	"sort"
	"strings"

	"github.com/locusrobotics/ros-buildfarm/pkg/status"
)

// Identity names the organization and repository a URL belongs to.
// Organization is empty when the URL matched no known host.
type Identity struct {
	Organization string
	Repository   string
	RepoURL      string
	OrgURL       string
}

type hostPattern struct {
	re     *regexp.Regexp
	orgURL func(m map[string]string) string
}

var patterns = []hostPattern{
	{
		re: regexp.MustCompile(`^https?://github\.com/(?P<org>[^/]+)/(?P<repo>.+)\.git`),
		orgURL: func(m map[string]string) string {
			return "https://github.com/" + m["org"]
		},
	},
	{
		re: regexp.MustCompile(`^https://github\.com/(?P<org>[^/]+)/(?P<repo>[^/]+)/tree/(?P<branch>.*)`),
		orgURL: func(m map[string]string) string {
			return "https://github.com/" + m["org"]
		},
	},
	{
		re: regexp.MustCompile(`^https://bitbucket\.org/(?P<org>.*)/(?P<repo>.*)`),
		orgURL: func(m map[string]string) string {
			return "https://bitbucket.org/" + m["org"]
		},
	},
	{
		re: regexp.MustCompile(`^https?://gitlab\.(?P<server>[^/]+)/(?P<org>[^/]+)/(?P<repo>.+)\.git`),
		orgURL: func(m map[string]string) string {
			return "https://gitlab." + m["server"] + "/" + m["org"]
		},
	},
}

// Resolve extracts the identity of a version control URL.  It returns
// nil when the URL matches none of the known hosting conventions.
// Release mirrors resolve to the same repository as their source.
func Resolve(url string) *Identity {
	for _, p := range patterns {
		sm := p.re.FindStringSubmatch(url)
		if sm == nil {
			continue
		}
		m := make(map[string]string, len(sm))
		for i, name := range p.re.SubexpNames() {
			if name != "" {
				m[name] = sm[i]
			}
		}
		return &Identity{
			Organization: m["org"],
			Repository:   cleanRepo(m["repo"]),
			RepoURL:      url,
			OrgURL:       p.orgURL(m),
		}
	}
	return nil
}

func cleanRepo(r string) string {
	r = strings.TrimSuffix(r, ".git")
	return strings.TrimSuffix(r, "-release")
}

// ForEntry picks the identity of a package from the URLs it carries
// in each distribution.  The newest distribution, in reverse
// lexical order, with a resolvable URL wins.  When nothing resolves
// the last URL seen stands in as the repository with no
// organization.
func ForEntry(e *status.Entry) Identity {
	distros := make([]string, 0, len(e.Distros))
	for d := range e.Distros {
		distros = append(distros, d)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(distros)))

	var url string
	for _, d := range distros {
		ds := e.Distros[d]
		if ds == nil || ds.URL == "" {
			continue
		}
		url = ds.URL
		if id := Resolve(url); id != nil {
			return *id
		}
	}
	return Identity{Repository: url, RepoURL: url}
}
