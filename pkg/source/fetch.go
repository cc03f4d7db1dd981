package source

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/klauspost/compress/zstd"
)

// NewFetcher returns a fetcher with a bounded http client.
func NewFetcher(l hclog.Logger) *Fetcher {
	return &Fetcher{
		l:       l.Named("fetch"),
		hClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Get retrieves the document at loc.  Documents whose name ends in
// .zst are decompressed transparently.
func (f *Fetcher) Get(ctx context.Context, loc string) ([]byte, error) {
	var b []byte
	var err error

	switch {
	case strings.HasPrefix(loc, "http://"), strings.HasPrefix(loc, "https://"):
		b, err = f.fetchHTTP(ctx, loc)
	case strings.HasPrefix(loc, "file://"):
		b, err = f.fetchFile(loc)
	default:
		err = NewErrUnknownScheme(loc)
	}
	if err != nil {
		return nil, err
	}

	if strings.HasSuffix(loc, ".zst") {
		return decompress(b)
	}
	f.l.Trace("Fetched document", "url", loc, "bytes", len(b))
	return b, nil
}

func (f *Fetcher) fetchHTTP(ctx context.Context, loc string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, loc, nil)
	if err != nil {
		return nil, err
	}
	resp, err := f.hClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, ErrBadStatus{loc, resp.StatusCode}
	}
	return io.ReadAll(resp.Body)
}

// fetchFile reads a local document.  Resolved references come back
// percent-escaped, so the path is taken from the parsed URL.
func (f *Fetcher) fetchFile(loc string) ([]byte, error) {
	u, err := url.Parse(loc)
	if err != nil {
		return nil, err
	}
	return os.ReadFile(u.Path)
}

func decompress(b []byte) ([]byte, error) {
	d, err := zstd.NewReader(bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	defer d.Close()
	return io.ReadAll(d)
}

// NewCache wraps g so that every URL is retrieved at most once.
// Failed retrievals are not cached.
func NewCache(g Getter) *Cache {
	return &Cache{
		g:       g,
		entries: make(map[string][]byte),
	}
}

// Get returns the cached document or retrieves it.
func (c *Cache) Get(ctx context.Context, url string) ([]byte, error) {
	c.mu.Lock()
	if b, ok := c.entries[url]; ok {
		c.hits++
		c.mu.Unlock()
		return b, nil
	}
	c.mu.Unlock()

	b, err := c.g.Get(ctx, url)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.entries[url] = b
	c.mu.Unlock()
	return b, nil
}

// Hits reports how many lookups were served from the cache.
func (c *Cache) Hits() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits
}
