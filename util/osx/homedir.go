package osx

import (
	"os"
	"path/filepath"
	"time"
)

// UserHomeDir is similar to os.UserHomeDir, but returns a dated temp dir if
// the home dir is not found, so a bare "~/" cache or output path still
// resolves to somewhere writable.
func UserHomeDir() string {
	hd, err := os.UserHomeDir()
	if err != nil {
		hd = filepath.Join(os.TempDir(), time.Now().Format(time.DateOnly))
	}
	return hd
}
