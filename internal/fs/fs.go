// Package fs provides the filesystem operations the trash engine is built on.
package fs

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	cp "github.com/otiai10/copy"
)

// FS is the set of filesystem primitives needed to move a target into the trash.
type FS interface {
	// Copy copies src (recursively for directories) to dst.
	Copy(src, dst string) error

	// Remove removes a single file, link or empty directory.
	Remove(path string) error

	// RemoveAll removes path and everything below it.
	RemoveAll(path string) error

	// Exists reports whether path resolves to an existing entry (links are followed).
	Exists(path string) bool

	// IsSymlink reports whether path itself is a symbolic link, broken or not.
	IsSymlink(path string) bool

	// IsDir reports whether path is a directory. Links are not followed.
	IsDir(path string) bool

	// ReadDir returns the names of the direct children of path.
	ReadDir(path string) ([]string, error)

	// Walk lists path and all entries below it in lexical pre-order.
	Walk(path string) ([]Entry, error)

	// Size returns the total size in bytes of the regular files under path.
	Size(path string) (int64, error)

	// MkdirAll creates path and any missing parents.
	MkdirAll(path string, perm os.FileMode) error
}

// Entry is a single item produced by Walk.
type Entry struct {
	Path  string
	IsDir bool
}

// OS implements FS on top of the host filesystem.
type OS struct {
	copyOpts cp.Options
}

var _ FS = (*OS)(nil)

// NewOS returns an FS backed by the os package.
func NewOS() *OS {
	return &OS{
		copyOpts: cp.Options{
			// a link is trashed as a link, even when it dangles
			OnSymlink: func(string) cp.SymlinkAction {
				return cp.Shallow
			},
			PreserveTimes: true,
			Sync:          true,
		},
	}
}

func (o *OS) Copy(src, dst string) error {
	return cp.Copy(src, dst, o.copyOpts)
}

func (o *OS) Remove(path string) error {
	return os.Remove(path)
}

func (o *OS) RemoveAll(path string) error {
	if _, err := os.Lstat(path); err != nil {
		// os.RemoveAll reports success for a missing path; callers need to know
		return err
	}
	return os.RemoveAll(path)
}

func (o *OS) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func (o *OS) IsSymlink(path string) bool {
	fi, err := os.Lstat(path)
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeSymlink != 0
}

func (o *OS) IsDir(path string) bool {
	fi, err := os.Lstat(path)
	if err != nil {
		return false
	}
	return fi.IsDir()
}

func (o *OS) ReadDir(path string) ([]string, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names, nil
}

func (o *OS) Walk(path string) ([]Entry, error) {
	var entries []Entry
	err := filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		entries = append(entries, Entry{Path: p, IsDir: d.IsDir()})
		return nil
	})
	return entries, err
}

func (o *OS) Size(path string) (int64, error) {
	var size int64
	err := filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrPermission) {
				return nil
			}
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		size += info.Size()
		return nil
	})
	return size, err
}

func (o *OS) MkdirAll(path string, perm os.FileMode) error {
	return os.MkdirAll(path, perm)
}
