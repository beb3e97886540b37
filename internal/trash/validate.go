package trash

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/babarot/rmtrash/internal/fs"
	"github.com/gobwas/glob"
)

// Validator checks a single target against the removal preconditions.
type Validator struct {
	fs       fs.FS
	trashDir string
	protect  []glob.Glob
}

// NewValidator builds a validator. Each pattern in protect is matched against
// the absolute path of a target; a match protects it like "/" is protected.
func NewValidator(fsys fs.FS, trashDir string, protect []string) (*Validator, error) {
	v := &Validator{fs: fsys, trashDir: trashDir}
	for _, pattern := range protect {
		g, err := glob.Compile(pattern, filepath.Separator)
		if err != nil {
			return nil, fmt.Errorf("invalid protect pattern %q: %w", pattern, err)
		}
		v.protect = append(v.protect, g)
	}
	return v, nil
}

// Check evaluates path under policy p. When ok is false the returned result
// carries the skip outcome and the target must not be touched.
func (v *Validator) Check(path string, p Policy) (res Result, ok bool) {
	res = Result{Target: path}

	if v.isProtected(path) {
		res.Outcome = SkippedProtected
		return res, false
	}

	// A dangling link does not exist but is still a removable entry
	if !v.fs.Exists(path) && !v.fs.IsSymlink(path) {
		res.Outcome = SkippedMissing
		return res, false
	}

	if !v.fs.IsDir(path) {
		return res, true
	}

	if !p.DirectoriesAllowed() {
		res.Outcome = SkippedIsDirectory
		return res, false
	}

	if !p.Recursive {
		children, err := v.fs.ReadDir(path)
		if err != nil {
			slog.Debug("cannot list directory", "path", path, "error", err)
			res.Outcome = SkippedNotEmpty
			res.Err = err
			return res, false
		}
		if len(children) > 0 {
			res.Outcome = SkippedNotEmpty
			return res, false
		}
	}

	return res, true
}

func (v *Validator) isProtected(path string) bool {
	if fs.IsProtected(path) {
		return true
	}

	// Trashing the trash itself, or anything that contains it even through a
	// symlink, would copy the tree into itself
	if v.trashDir != "" && fs.Contains(path, v.trashDir) {
		slog.Debug("target contains the trash directory", "path", path, "trash", v.trashDir)
		return true
	}

	if len(v.protect) == 0 {
		return false
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	for _, g := range v.protect {
		if g.Match(abs) {
			slog.Debug("target matches a protect pattern", "path", abs)
			return true
		}
	}
	return false
}
