package filex

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEnsureParentDir_CreatesNestedDirs(t *testing.T) {
	tmp := t.TempDir()
	target := filepath.Join(tmp, "state", "sam", "session.db")

	require.NoError(t, EnsureParentDir(target))

	fi, err := os.Stat(filepath.Dir(target))
	require.NoError(t, err)
	require.True(t, fi.IsDir())

	if runtime.GOOS != "windows" {
		require.Equal(t, os.FileMode(0o700), fi.Mode().Perm()&0o700)
	}
}

func TestEnsureParentDir_Idempotent(t *testing.T) {
	target := filepath.Join(t.TempDir(), "a", "session.db")
	require.NoError(t, EnsureParentDir(target))
	require.NoError(t, EnsureParentDir(target))
}

func TestEnsureParentDir_BareFileName(t *testing.T) {
	require.NoError(t, EnsureParentDir("session.db"))
}

func TestEnsureParentDir_FailsWhenParentIsFile(t *testing.T) {
	tmp := t.TempDir()
	blocker := filepath.Join(tmp, "state")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))

	require.Error(t, EnsureParentDir(filepath.Join(blocker, "session.db")))
}

func TestReadUpload(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "firefly.png")
	require.NoError(t, os.WriteFile(path, []byte("pngbytes"), 0o600))

	up, err := ReadUpload(path, 0)
	require.NoError(t, err)
	require.Equal(t, "firefly.png", up.Name)
	require.Equal(t, []byte("pngbytes"), up.Data)
}

func TestReadUpload_TooLarge(t *testing.T) {
	path := filepath.Join(t.TempDir(), "big.png")
	require.NoError(t, os.WriteFile(path, make([]byte, 64), 0o600))

	_, err := ReadUpload(path, 16)
	require.ErrorIs(t, err, ErrTooLarge)
}

func TestReadUpload_MissingAndDirectory(t *testing.T) {
	tmp := t.TempDir()

	_, err := ReadUpload(filepath.Join(tmp, "nope.png"), 0)
	require.Error(t, err)

	_, err = ReadUpload(tmp, 0)
	require.Error(t, err)
}
