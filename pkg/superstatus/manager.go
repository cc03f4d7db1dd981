package superstatus

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/locusrobotics/ros-buildfarm/pkg/buildfile"
	"github.com/locusrobotics/ros-buildfarm/pkg/classify"
	"github.com/locusrobotics/ros-buildfarm/pkg/config"
	"github.com/locusrobotics/ros-buildfarm/pkg/rollup"
	"github.com/locusrobotics/ros-buildfarm/pkg/source"
	"github.com/locusrobotics/ros-buildfarm/pkg/status"
)

// ErrNoDocuments is returned by Refresh when none of the status
// documents could be retrieved.
var ErrNoDocuments = errors.New("no status document could be loaded")

// New returns a manager with no snapshot loaded.
func New(opts ...Option) *Manager {
	x := Manager{
		l:           hclog.NewNullLogger(),
		cfg:         config.NewConfig(),
		classifier:  classify.Basic,
		parallelism: 10,
		tree:        make(rollup.Tree),
	}
	for _, o := range opts {
		o(&x)
	}
	if x.fetcher == nil {
		x.fetcher = source.NewFetcher(x.l)
	}
	if x.cm == nil && x.cfg.ConfigRepo != nil {
		x.cm = source.New(x.l, x.cfg.ConfigRepo.URL, x.cfg.ConfigRepo.Path)
	}
	return &x
}

// Tree returns the current rollup.  The tree must not be modified.
func (m *Manager) Tree() rollup.Tree {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.tree
}

// Meta describes the current snapshot.
func (m *Manager) Meta() Meta {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.meta
}

// Refresh takes a new snapshot: it loads the build files, fetches the
// status document of every distribution and variant, merges them and
// rebuilds the rollup.  Status documents that cannot be retrieved are
// skipped, but a run that loads none of them fails.  The previous
// snapshot keeps being served until a new one is complete.
func (m *Manager) Refresh(ctx context.Context) error {
	m.refreshMutex.Lock()
	defer m.refreshMutex.Unlock()
	start := time.Now()

	rev, err := m.syncConfig()
	if err != nil {
		return fmt.Errorf("syncing configuration: %w", err)
	}

	// Documents are shared between variants, so they are only
	// fetched once per run.
	cache := source.NewCache(m.fetcher)

	files, err := buildfile.LoadSet(ctx, m.l, cache, m.cfg.ResolvedIndexURL(), m.cfg.Distributions)
	if err != nil {
		return err
	}

	docs := m.fetchDocuments(ctx, cache, files)
	if err := ctx.Err(); err != nil {
		return err
	}

	store := status.NewStore(m.l)
	loaded := 0
	for _, d := range docs {
		if d.doc == nil {
			continue
		}
		store.Merge(d.doc, d.distro)
		loaded++
	}
	if len(docs) > 0 && loaded == 0 {
		return ErrNoDocuments
	}

	tree := rollup.New(m.l, m.classifier).Build(store, files)
	meta := Meta{
		Rev:           rev,
		Updated:       time.Now(),
		Packages:      store.Len(),
		Distributions: files.Distributions(),
	}

	m.mu.Lock()
	m.tree = tree
	m.files = files
	m.meta = meta
	m.mu.Unlock()

	if err := m.persist(store, files, tree, meta); err != nil {
		m.l.Warn("Error persisting snapshot", "error", err)
	}
	m.l.Info("Snapshot refreshed",
		"packages", meta.Packages,
		"orgs", len(tree),
		"documents", loaded,
		"cached", cache.Hits(),
		"duration", time.Since(start))
	return nil
}

func (m *Manager) syncConfig() (string, error) {
	if m.cm == nil {
		return "", nil
	}
	if err := m.cm.Bootstrap(); err != nil {
		return "", err
	}
	if err := m.cm.Fetch(); err != nil {
		m.l.Warn("Error fetching configuration", "error", err)
	}
	if m.cfg.ConfigRepo != nil {
		if err := m.cm.Checkout(m.cfg.ConfigRepo.Rev); err != nil {
			return "", err
		}
	}
	return m.cm.At()
}

type fetched struct {
	distro  string
	variant string
	doc     status.Document
}

// fetchDocuments retrieves the status documents concurrently.  The
// result is ordered by distribution and variant so that merging is
// deterministic.
func (m *Manager) fetchDocuments(ctx context.Context, g source.Getter, files buildfile.Set) []fetched {
	var out []fetched
	for _, distro := range files.Distributions() {
		for _, variant := range files.Variants(distro) {
			out = append(out, fetched{distro: distro, variant: variant})
		}
	}

	loadCh := make(chan int)
	wg := new(sync.WaitGroup)
	for i := 0; i < m.parallelism; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range loadCh {
				f := &out[idx]
				u := m.cfg.StatusURLFor(f.distro, f.variant)
				b, err := g.Get(ctx, u)
				if err != nil {
					m.l.Warn("Error fetching status", "distro", f.distro, "variant", f.variant, "url", u, "error", err)
					continue
				}
				doc, err := status.ParseDocument(b)
				if err != nil {
					m.l.Warn("Error decoding status", "distro", f.distro, "variant", f.variant, "error", err)
					continue
				}
				f.doc = doc
			}
		}()
	}
	for i := range out {
		loadCh <- i
	}
	close(loadCh)
	wg.Wait()
	return out
}
