package types

// A Maintainer is a person responsible for a package as declared in
// its manifest.
type Maintainer struct {
	Name  string `yaml:"name" json:"name"`
	Email string `yaml:"email" json:"email"`
}
