package osx

import (
	"io"
	"os"
	"path/filepath"
	"strings"
)

// InlineTilde replaces the leading ~ with the home directory, so a VRM path
// or cache directory given on the command line can use it.
func InlineTilde(path string) string {
	if path == "" {
		return path
	}
	if strings.HasPrefix(path, "~"+string(filepath.Separator)) {
		path = filepath.Join(UserHomeDir(), path[2:])
	}
	return path
}

// Open is similar to os.Open but supports ~ as the home directory, for
// opening a local source VRM.
func Open(path string) (*os.File, error) {
	p := filepath.Clean(path)
	p = InlineTilde(p)
	return os.Open(p)
}

// Exists checks if the given path exists.
func Exists(path string, checks ...func(os.FileInfo) bool) bool {
	p := filepath.Clean(path)
	p = InlineTilde(p)

	stat, err := os.Lstat(p)
	if err != nil {
		return false
	}

	for i := range checks {
		if checks[i] == nil {
			continue
		}

		if !checks[i](stat) {
			return false
		}
	}

	return true
}

// ExistsFile checks if the given path exists and is a regular file, used to
// decide whether the driver needs an overwrite confirmation before writing
// a normalized VRM to outPath, and whether a cache entry is already on disk.
func ExistsFile(path string) bool {
	return Exists(path, func(stat os.FileInfo) bool {
		return stat.Mode().IsRegular()
	})
}

// Close closes the given io.Closer without error.
func Close(c io.Closer) {
	if c == nil {
		return
	}
	_ = c.Close()
}

// WriteFile is similar to os.WriteFile but supports ~ as the home directory,
// and also supports the parent directory creation. Used for the download
// cache's final, atomically-renamed write.
func WriteFile(name string, data []byte, perm os.FileMode) error {
	p := filepath.Clean(name)
	p = InlineTilde(p)

	if err := os.MkdirAll(filepath.Dir(p), 0o700); err != nil {
		return err
	}

	return os.WriteFile(p, data, perm)
}

// CreateFile is similar to os.Create but supports ~ as the home directory,
// and also supports the parent directory creation. This is the call that
// truncates (or creates) the CLI's real output path per the order-of-side-
// effects rule: it must run once the source VRM's JSON chunk has parsed,
// before the binary portion is ever validated.
func CreateFile(name string, perm os.FileMode) (*os.File, error) {
	p := filepath.Clean(name)
	p = InlineTilde(p)

	if err := os.MkdirAll(filepath.Dir(p), 0o700); err != nil {
		return nil, err
	}

	return os.OpenFile(p, os.O_RDWR|os.O_CREATE|os.O_TRUNC, perm)
}
