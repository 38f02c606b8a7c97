package util

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
)

const cacheDirectoryName = "tunedeck"

var legalizer = strings.NewReplacer(
	"/", "-",
	"\\", "-",
	":", "-",
	"*", "",
	"?", "",
	"\"", "'",
	"<", "",
	">", "",
	"|", "",
)

// LegalizeFilename strips from the given filename
// all characters disallowed on common filesystems
func LegalizeFilename(filename string) string {
	return strings.TrimSpace(legalizer.Replace(filename))
}

// CacheDirectory returns the application cache directory,
// creating it if missing
func CacheDirectory() string {
	dir := filepath.Join(xdg.CacheHome, cacheDirectoryName)
	ErrSuppress(os.MkdirAll(dir, 0o755))
	return dir
}

// CacheFile returns the path of the given filename
// within the application cache directory
func CacheFile(filename string) string {
	return filepath.Join(CacheDirectory(), filename)
}

// FileExists reports whether path points to an existing regular file
func FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// FileBaseStem returns the base name of the given
// path, without its extension
func FileBaseStem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// FileMoveOrCopy moves source to destination, falling
// back to a copy (and source removal) when the rename
// crosses filesystem boundaries
func FileMoveOrCopy(source, destination string, overwrite ...bool) error {
	if len(overwrite) == 0 || !overwrite[0] {
		if FileExists(destination) {
			return os.ErrExist
		}
	}

	if err := os.Rename(source, destination); err == nil {
		return nil
	}

	input, err := os.Open(source)
	if err != nil {
		return err
	}
	defer input.Close()

	output, err := os.Create(destination)
	if err != nil {
		return err
	}
	defer output.Close()

	if _, err := io.Copy(output, input); err != nil {
		return err
	}
	return os.Remove(source)
}
