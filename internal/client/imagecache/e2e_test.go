package imagecache_test

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/samterminal/samclient/internal/client/client"
	"github.com/samterminal/samclient/internal/client/imagecache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Map backgrounds come back relative, get normalized by the gateway and
// are loaded once each by the cache.
func TestMapBackgroundsPreloadOnce(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewGray(image.Rect(0, 0, 8, 8))))
	pngData := buf.Bytes()

	var mu sync.Mutex
	hits := map[string]int{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		hits[r.URL.Path]++
		mu.Unlock()

		switch r.URL.Path {
		case "/api/world/map":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{
				"domains": [{"id": "penacony", "name": "Penacony"}],
				"locations": [
					{"id": "a", "backgroundUrl": "/uploads/a.png", "domainId": "penacony"},
					{"id": "b", "backgroundUrl": "/uploads/a.png", "domainId": "penacony"},
					{"id": "c", "backgroundUrl": "/uploads/c.png", "domainId": "penacony"},
					{"id": "d", "domainId": "penacony"}
				]
			}`))
		case "/uploads/a.png", "/uploads/c.png":
			_, _ = w.Write(pngData)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	gw := client.NewHTTPClient(srv.URL)
	cache := imagecache.New(imagecache.NewHTTPLoader(srv.Client()))

	world, err := gw.Map(context.Background(), "tok")
	require.NoError(t, err)

	urls := world.BackgroundURLs()
	assert.Equal(t, []string{srv.URL + "/uploads/a.png", srv.URL + "/uploads/c.png"}, urls)

	require.NoError(t, cache.PreloadAll(context.Background(), urls, 4))
	require.NoError(t, cache.PreloadAll(context.Background(), urls, 4))

	for _, u := range urls {
		f, ok := cache.Get(u)
		require.True(t, ok, u)
		img, err := f.Wait(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 8, img.Width)
	}

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 1, hits["/uploads/a.png"])
	assert.Equal(t, 1, hits["/uploads/c.png"])
}
