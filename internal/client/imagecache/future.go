package imagecache

import (
	"context"
	"image"
)

// Image is a decoded image and what is known about its source.
type Image struct {
	URL     string
	Format  string
	Width   int
	Height  int
	Bytes   int64
	Decoded image.Image
}

// Future is a pending or settled image load. It settles exactly once and
// any number of goroutines may wait on it.
type Future struct {
	done chan struct{}
	img  *Image
	err  error
}

func newFuture() *Future {
	return &Future{done: make(chan struct{})}
}

func settledFuture(img *Image, err error) *Future {
	f := newFuture()
	f.settle(img, err)
	return f
}

func (f *Future) settle(img *Image, err error) {
	f.img, f.err = img, err
	close(f.done)
}

// Done is closed once the future has settled.
func (f *Future) Done() <-chan struct{} {
	return f.done
}

// Wait blocks until the load settles or ctx ends. Giving up on ctx does
// not cancel the load.
func (f *Future) Wait(ctx context.Context) (*Image, error) {
	select {
	case <-f.done:
		return f.img, f.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Peek returns the image without blocking; settled is false while the
// load is pending.
func (f *Future) Peek() (img *Image, settled bool) {
	select {
	case <-f.done:
		return f.img, true
	default:
		return nil, false
	}
}

// Err is the load failure, or nil while pending or after success.
func (f *Future) Err() error {
	select {
	case <-f.done:
		return f.err
	default:
		return nil
	}
}
