package buildfile

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/hashicorp/go-hclog"
	"gopkg.in/yaml.v3"
)

// A Getter retrieves the raw bytes behind a URL.
type Getter interface {
	Get(context.Context, string) ([]byte, error)
}

// ParseIndex decodes the buildfarm configuration index.
func ParseIndex(b []byte) (*Index, error) {
	idx := new(Index)
	if err := yaml.Unmarshal(b, idx); err != nil {
		return nil, err
	}
	return idx, nil
}

// ErrNoBuildFiles is returned when the index names build files but
// none of them could be loaded.
var ErrNoBuildFiles = errors.New("no build file could be loaded")

// LoadSet reads the index at indexURL and every release build file
// it names.  When distros is not empty only those distributions are
// loaded.  A build file that cannot be retrieved is logged and left
// out of the set.
func LoadSet(ctx context.Context, l hclog.Logger, g Getter, indexURL string, distros []string) (Set, error) {
	base, err := url.Parse(indexURL)
	if err != nil {
		return nil, fmt.Errorf("index url: %w", err)
	}

	raw, err := g.Get(ctx, indexURL)
	if err != nil {
		return nil, fmt.Errorf("loading index: %w", err)
	}
	idx, err := ParseIndex(raw)
	if err != nil {
		return nil, fmt.Errorf("decoding index: %w", err)
	}

	want := make(map[string]struct{}, len(distros))
	for _, d := range distros {
		want[d] = struct{}{}
		if _, ok := idx.Distributions[d]; !ok {
			l.Warn("Distribution not found in index", "distro", d)
		}
	}

	set := make(Set)
	named := 0
	for distro, info := range idx.Distributions {
		if _, ok := want[distro]; len(want) > 0 && !ok {
			continue
		}
		for variant, loc := range info.ReleaseBuilds {
			named++
			ref, err := url.Parse(loc)
			if err != nil {
				l.Warn("Bad build file location", "distro", distro, "variant", variant, "error", err)
				continue
			}
			u := base.ResolveReference(ref).String()
			b, err := g.Get(ctx, u)
			if err != nil {
				l.Warn("Error loading build file", "distro", distro, "variant", variant, "url", u, "error", err)
				continue
			}
			bf, err := Parse(b)
			if err != nil {
				l.Warn("Error decoding build file", "distro", distro, "variant", variant, "error", err)
				continue
			}
			l.Trace("Loaded build file", "distro", distro, "variant", variant, "targets", len(bf.Targets))
			set.Add(distro, variant, bf)
		}
	}
	if named > 0 && len(set) == 0 {
		return nil, ErrNoBuildFiles
	}
	return set, nil
}
