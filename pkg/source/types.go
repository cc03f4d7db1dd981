package source

import (
	"context"
	"net/http"
	"sync"

	git "github.com/go-git/go-git/v5"
	"github.com/hashicorp/go-hclog"
)

// A Getter retrieves the raw bytes behind a URL.
type Getter interface {
	Get(context.Context, string) ([]byte, error)
}

// Fetcher retrieves documents over http(s) or from the local
// filesystem.
type Fetcher struct {
	l hclog.Logger

	hClient *http.Client
}

// Cache memoizes the documents fetched through a Getter.  A cache
// lives for a single snapshot run.
type Cache struct {
	g Getter

	mu      sync.Mutex
	entries map[string][]byte
	hits    int
}

// A RepoMngr manages the git checkout holding the buildfarm
// configuration.
type RepoMngr struct {
	l    hclog.Logger
	Path string
	URL  string
	Mu   *sync.Mutex
	repo *git.Repository
}
