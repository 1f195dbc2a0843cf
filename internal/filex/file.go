// Package filex has the file helpers the CLI needs: preparing the session
// database location and reading images picked for upload.
package filex

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// MaxUploadSize caps files read by ReadUpload.
const MaxUploadSize = 10 << 20

var ErrTooLarge = errors.New("file too large")

// EnsureParentDir creates the directory that will hold path.
func EnsureParentDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return nil
}

// Upload is a file loaded into memory for a multipart request.
type Upload struct {
	Name string
	Data []byte
}

// ReadUpload reads path fully, refusing regular files above limit bytes.
// A non-positive limit means MaxUploadSize.
func ReadUpload(path string, limit int64) (*Upload, error) {
	if limit <= 0 {
		limit = MaxUploadSize
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if fi.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}
	if fi.Size() > limit {
		return nil, fmt.Errorf("%s: %w", path, ErrTooLarge)
	}

	data, err := io.ReadAll(io.LimitReader(f, limit+1))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("%s: %w", path, ErrTooLarge)
	}

	return &Upload{Name: filepath.Base(path), Data: data}, nil
}
