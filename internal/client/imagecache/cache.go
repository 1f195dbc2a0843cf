package imagecache

import (
	"context"
	"sync"

	"github.com/samterminal/samclient/internal/logging"
)

// Cache is a URL-keyed image preloader. The zero value is not usable;
// build one with New. Safe for concurrent use.
type Cache struct {
	loader Loader
	log    logging.Logger
	ctx    context.Context

	mu      sync.Mutex
	entries map[string]*Future
}

type Option func(*Cache)

func WithLogger(l logging.Logger) Option {
	return func(c *Cache) { c.log = l }
}

// WithLoadContext sets the context every load runs on. It defaults to
// context.Background().
func WithLoadContext(ctx context.Context) Option {
	return func(c *Cache) { c.ctx = ctx }
}

func New(loader Loader, opts ...Option) *Cache {
	c := &Cache{
		loader:  loader,
		log:     logging.Nop(),
		ctx:     context.Background(),
		entries: make(map[string]*Future),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Preload returns the future for url, starting a load only when url has
// no entry. An empty url yields a settled future with a nil image and is
// never stored.
func (c *Cache) Preload(url string) *Future {
	if url == "" {
		return settledFuture(nil, nil)
	}

	c.mu.Lock()
	if f, ok := c.entries[url]; ok {
		c.mu.Unlock()
		return f
	}
	f := newFuture()
	c.entries[url] = f
	c.mu.Unlock()

	go c.load(url, f)
	return f
}

// Get returns the stored future for url without starting a load.
func (c *Cache) Get(url string) (*Future, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	f, ok := c.entries[url]
	return f, ok
}

func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

type Stats struct {
	Entries  int
	Resolved int
	Pending  int
	Bytes    int64
}

func (c *Cache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := Stats{Entries: len(c.entries)}
	for _, f := range c.entries {
		img, ok := f.Peek()
		if !ok {
			s.Pending++
			continue
		}
		s.Resolved++
		if img != nil {
			s.Bytes += img.Bytes
		}
	}
	return s
}

func (c *Cache) load(url string, f *Future) {
	c.log.Debug(c.ctx, "loading image", "url", url)

	img, err := c.loader.Load(c.ctx, url)
	if err != nil {
		c.mu.Lock()
		if c.entries[url] == f {
			delete(c.entries, url)
		}
		c.mu.Unlock()

		c.log.Warn(c.ctx, "image load failed", "url", url, "error", err)
		f.settle(nil, &LoadError{URL: url, Err: err})
		return
	}

	f.settle(img, nil)
}
