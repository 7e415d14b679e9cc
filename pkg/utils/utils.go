package utils

import (
	"os"
	"path/filepath"
)

func CacheDir() string {
	tmpDir, err := os.UserCacheDir()
	if err != nil {
		tmpDir = os.TempDir()
	}
	return filepath.Join(tmpDir, "incident-db")
}

// FeedDir is where the raw feed files of a source live inside the cache.
func FeedDir(cacheDir, name string) string {
	return filepath.Join(cacheDir, "feeds", name)
}
