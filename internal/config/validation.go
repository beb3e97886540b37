package config

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gobwas/glob"
	"github.com/k1LoW/duration"
)

var sizePattern = regexp.MustCompile(`^\d+(B|KB|MB|GB|TB|PB)$`)

// validateSize validates the size format (e.g., "10MB", "1GB")
func validateSize(fl validator.FieldLevel) bool {
	value := strings.ToUpper(strings.TrimSpace(fl.Field().String()))
	return sizePattern.MatchString(value)
}

// validateDuration accepts human durations such as "30 days" or "12h"
func validateDuration(fl validator.FieldLevel) bool {
	_, err := duration.Parse(fl.Field().String())
	return err == nil
}

func validateGlob(fl validator.FieldLevel) bool {
	_, err := glob.Compile(fl.Field().String(), filepath.Separator)
	return err == nil
}

// validateDirPath is a validation function for directory paths that works on any OS.
// The stock "dirpath" validator rejects some valid paths, such as ones
// with a trailing separator or a leading dot component on Windows.
//
// Empty strings are considered invalid.
func validateDirPath(fl validator.FieldLevel) bool {
	path := strings.TrimSpace(fl.Field().String())
	if path == "" {
		return false
	}

	// unexpanded paths are checked after expansion
	if strings.HasPrefix(path, "~") || strings.Contains(path, "$") {
		return true
	}

	fi, err := os.Stat(filepath.Clean(path))
	if err == nil {
		return fi.IsDir()
	}
	// a missing directory is created on first use
	return os.IsNotExist(err)
}
