package config

import (
	"errors"
	"io"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// EnsureUserConfig copies the default config into dataDir on first run and
// returns the path of the user copy.
func EnsureUserConfig(dataDir string, defaultPath string) (string, error) {
	userPath := filepath.Join(dataDir, "config.yml")

	_, err := os.Stat(userPath)
	if err == nil {
		return userPath, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return "", err
	}

	src, err := os.Open(defaultPath)
	if err != nil {
		return "", err
	}
	defer src.Close()

	dst, err := os.Create(userPath)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}
	return userPath, nil
}

// LoadEnv loads .env from the working directory. A missing file is fine;
// credentials can come from the real environment instead.
func LoadEnv() {
	_ = godotenv.Load()
}
