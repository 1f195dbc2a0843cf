package imagecache

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// PreloadAll preloads urls with at most limit loads awaited at once. It
// waits for every url to settle and returns the first failure. Empty urls
// are skipped. limit <= 0 means no bound.
func (c *Cache) PreloadAll(ctx context.Context, urls []string, limit int) error {
	var g errgroup.Group
	if limit > 0 {
		g.SetLimit(limit)
	}
	for _, u := range urls {
		if u == "" {
			continue
		}
		g.Go(func() error {
			_, err := c.Preload(u).Wait(ctx)
			return err
		})
	}
	return g.Wait()
}
