package imagecache

import (
	"errors"
	"fmt"
)

var ErrLoadFailed = errors.New("image load failed")

// LoadError is the rejection of a failed load.
type LoadError struct {
	URL string
	Err error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load image %s: %v", e.URL, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

func (e *LoadError) Is(target error) bool {
	return target == ErrLoadFailed
}
