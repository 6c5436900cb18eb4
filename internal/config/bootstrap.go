package config

import (
	"errors"
	"io"
	"os"
	"path/filepath"
)

// EnsureUserConfig copies the shipped default config into the data dir on
// first run so users edit their own copy, never the checked-in one. The
// bool reports whether the copy was created by this call.
func EnsureUserConfig(dataDir string, defaultPath string) (string, bool, error) {
	userPath := filepath.Join(dataDir, "config.yml")

	_, err := os.Stat(userPath)
	if err == nil {
		return userPath, false, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return "", false, err
	}

	src, err := os.Open(defaultPath)
	if err != nil {
		return "", false, err
	}
	defer src.Close()

	dst, err := os.Create(userPath)
	if err != nil {
		return "", false, err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", false, err
	}
	return userPath, true, nil
}
