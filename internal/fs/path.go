package fs

import (
	"path/filepath"
	"strings"
)

// IsProtected reports whether path names the root directory or a "." / ".."
// entry, none of which may ever be trashed.
func IsProtected(path string) bool {
	if path == "" {
		return false
	}

	// Check the name as typed first so "foo/.." is caught before Clean folds it away
	base := filepath.Base(path)
	if base == "." || base == ".." {
		return true
	}

	return filepath.Clean(path) == string(filepath.Separator)
}

// Resolve returns the absolute, symlink-free location that removing path
// would act on. A final symlink component is kept as a link unless path ends
// in a separator, which makes the kernel follow it. Components that do not
// exist are kept as written.
func Resolve(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}
	if strings.HasSuffix(path, string(filepath.Separator)) {
		if resolved, err := filepath.EvalSymlinks(abs); err == nil {
			return resolved
		}
	}
	dir := filepath.Dir(abs)
	if dir == abs {
		return abs
	}
	return filepath.Join(resolveDir(dir), filepath.Base(abs))
}

// resolveDir follows every symlink in dir, walking up past missing components
func resolveDir(dir string) string {
	if resolved, err := filepath.EvalSymlinks(dir); err == nil {
		return resolved
	}
	parent := filepath.Dir(dir)
	if parent == dir {
		return dir
	}
	return filepath.Join(resolveDir(parent), filepath.Base(dir))
}

// Contains reports whether removing parent would also remove child, that is
// whether child is parent itself or lives somewhere below it once symlinks
// are followed. parent is resolved as a removal target (see Resolve); child
// is resolved completely.
func Contains(parent, child string) bool {
	p := Resolve(parent)
	c := resolveDir(filepath.Clean(absOrSelf(child)))
	rel, err := filepath.Rel(p, c)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}

func absOrSelf(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}
