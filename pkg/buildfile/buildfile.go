package buildfile

import (
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

// Parse decodes a single release build file.
func Parse(b []byte) (*BuildFile, error) {
	bf := new(BuildFile)
	if err := yaml.Unmarshal(b, bf); err != nil {
		return nil, err
	}
	return bf, nil
}

// UnmarshalYAML accepts both a plain sequence of architectures and
// the mapping form used by release build files, where each
// architecture maps to its own (ignored) options.
func (a *Archs) UnmarshalYAML(n *yaml.Node) error {
	switch n.Kind {
	case yaml.SequenceNode:
		var l []string
		if err := n.Decode(&l); err != nil {
			return err
		}
		*a = l
	case yaml.MappingNode:
		out := make([]string, 0, len(n.Content)/2)
		for i := 0; i < len(n.Content); i += 2 {
			out = append(out, n.Content[i].Value)
		}
		*a = out
	case yaml.ScalarNode:
		if n.Tag == "!!null" {
			*a = nil
			return nil
		}
		*a = []string{n.Value}
	default:
		return fmt.Errorf("line %d: unsupported architecture declaration", n.Line)
	}
	return nil
}

// Distributions returns the distribution names in the set, sorted.
func (s Set) Distributions() []string {
	out := make([]string, 0, len(s))
	for d := range s {
		out = append(out, d)
	}
	sort.Strings(out)
	return out
}

// Variants returns the variant names declared for a distribution,
// sorted.
func (s Set) Variants(distro string) []string {
	out := make([]string, 0, len(s[distro]))
	for v := range s[distro] {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// Add stores a build file under its distribution and variant.
func (s Set) Add(distro, variant string, bf *BuildFile) {
	if _, ok := s[distro]; !ok {
		s[distro] = make(map[string]*BuildFile)
	}
	s[distro][variant] = bf
}
