package imagecache

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"io"
	"net/http"
	"time"

	// Decoders registered with image.Decode.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"github.com/samterminal/samclient/internal/netx"
)

// MaxImageSize caps how much of a response is read before decoding.
const MaxImageSize = 32 << 20

// Loader fetches and decodes one image.
type Loader interface {
	Load(ctx context.Context, url string) (*Image, error)
}

// LoaderFunc adapts a function to Loader.
type LoaderFunc func(ctx context.Context, url string) (*Image, error)

func (f LoaderFunc) Load(ctx context.Context, url string) (*Image, error) {
	return f(ctx, url)
}

// HTTPLoader loads images with a plain GET.
type HTTPLoader struct {
	client *http.Client
}

// NewHTTPLoader uses hc, or a client with a 30 second timeout when hc is
// nil.
func NewHTTPLoader(hc *http.Client) *HTTPLoader {
	if hc == nil {
		hc = &http.Client{Timeout: 30 * time.Second}
	}
	return &HTTPLoader{client: hc}
}

func (l *HTTPLoader) Load(ctx context.Context, url string) (*Image, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	defer netx.Drain(resp)

	if !netx.IsSuccess(resp) {
		return nil, fmt.Errorf("fetch: unexpected status %d", resp.StatusCode)
	}

	data, err := readAll(resp.Body)
	if err != nil {
		return nil, err
	}
	return Decode(url, data)
}

func readAll(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxImageSize+1))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if len(data) > MaxImageSize {
		return nil, fmt.Errorf("image larger than %d bytes", MaxImageSize)
	}
	return data, nil
}

// Decode decodes data with any registered codec.
func Decode(url string, data []byte) (*Image, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	b := img.Bounds()
	return &Image{
		URL:     url,
		Format:  format,
		Width:   b.Dx(),
		Height:  b.Dy(),
		Bytes:   int64(len(data)),
		Decoded: img,
	}, nil
}
