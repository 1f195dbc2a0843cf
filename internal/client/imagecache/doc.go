// Package imagecache preloads remote images with at most one load per URL.
//
// # Overview
//
// Cache maps a URL to a *Future. The first Preload of a URL stores a
// pending future and starts the load in its own goroutine; every later
// Preload of that URL gets the same future back until it fails. A failed
// load removes its entry so the next Preload retries; a successful one
// stays for the cache's lifetime.
//
// Loads run on the cache's own context. Waiters pass their context to
// Future.Wait, which stops waiting without cancelling the load other
// callers may share.
//
// # Loaders
//
// HTTPLoader fetches over HTTP and decodes png, jpeg, gif, webp and bmp.
// SchemeLoader sends s3:// URLs to an S3Fetcher and everything else to
// its fallback.
package imagecache
