package source

import (
	"errors"
	"sync"

	git "github.com/go-git/go-git/v5"
	gitPlumbing "github.com/go-git/go-git/v5/plumbing"
	"github.com/hashicorp/go-hclog"
)

// ErrNotBootstrapped is returned when the checkout is used before
// Bootstrap.
var ErrNotBootstrapped = errors.New("repository must be bootstrapped first")

// New creates a new instance of RepoMngr
func New(l hclog.Logger, url, path string) *RepoMngr {
	x := RepoMngr{
		l:    l.Named("git"),
		URL:  url,
		Path: path,
		Mu:   new(sync.Mutex),
	}
	return &x
}

// Bootstrap opens the checkout at Path, cloning it from URL if it
// does not exist yet.
func (r *RepoMngr) Bootstrap() error {
	r.Mu.Lock()
	defer r.Mu.Unlock()

	repo, err := git.PlainOpen(r.Path)
	if err == nil {
		r.l.Debug("Using existing checkout", "path", r.Path)
		r.repo = repo
		return nil
	}
	if !errors.Is(err, git.ErrRepositoryNotExists) {
		return err
	}

	r.l.Debug("Cloning repository", "path", r.Path, "url", r.URL)
	r.repo, err = git.PlainClone(r.Path, false, &git.CloneOptions{URL: r.URL})
	if err != nil {
		r.l.Trace("Error running PlainClone")
		return err
	}
	return nil
}

// At returns the current HEAD hash.
func (r *RepoMngr) At() (string, error) {
	if r.repo == nil {
		return "", ErrNotBootstrapped
	}
	head, err := r.repo.Head()
	if err != nil {
		r.l.Trace("Error getting HEAD")
		return "", err
	}
	return head.Hash().String(), nil
}

// Fetch updates the remote refs from origin.
func (r *RepoMngr) Fetch() error {
	if r.repo == nil {
		return ErrNotBootstrapped
	}
	r.Mu.Lock()
	defer r.Mu.Unlock()
	r.l.Debug("Fetching origin for git repository", "path", r.Path)
	err := r.repo.Fetch(&git.FetchOptions{RemoteName: "origin"})
	if err != nil && !errors.Is(err, git.NoErrAlreadyUpToDate) {
		r.l.Trace("Error fetching")
		return err
	}
	return nil
}

// Checkout moves the worktree to a revision.  An empty revision
// leaves the worktree where it is.
func (r *RepoMngr) Checkout(rev string) error {
	if r.repo == nil {
		return ErrNotBootstrapped
	}
	if rev == "" {
		return nil
	}
	r.Mu.Lock()
	defer r.Mu.Unlock()

	hash, err := r.repo.ResolveRevision(gitPlumbing.Revision(rev))
	if err != nil {
		return err
	}
	worktree, err := r.repo.Worktree()
	if err != nil {
		r.l.Trace("Error getting worktree")
		return err
	}
	r.l.Debug("Checking out configuration", "path", r.Path, "rev", rev, "hash", hash.String())
	return worktree.Checkout(&git.CheckoutOptions{Hash: *hash, Force: true})
}
