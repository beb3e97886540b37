package trash

import (
	"errors"
	"log/slog"
	"path/filepath"
	"slices"

	"github.com/babarot/rmtrash/internal/fs"
)

// Reporter receives the user-facing lines produced while a batch runs.
type Reporter interface {
	// Info writes an informational line to standard output.
	Info(format string, args ...any)

	// Warn reports a skipped target.
	Warn(msg string)

	// Fail reports a target whose transfer failed.
	Fail(msg string)
}

// Transfer moves one validated and confirmed target into the trash.
type Transfer struct {
	fs       fs.FS
	trashDir string
	reporter Reporter
}

// NewTransfer returns a Transfer writing into trashDir.
func NewTransfer(fsys fs.FS, trashDir string, reporter Reporter) *Transfer {
	return &Transfer{fs: fsys, trashDir: trashDir, reporter: reporter}
}

// Do copies path into the trash and removes the original. A copy that fails
// halfway is cleared out of the trash. When the removal fails the trash copy
// is removed again, unless part of the original is already gone. Do never returns an error: every failure is an Outcome.
func (t *Transfer) Do(path string, isDir, verbose bool) Result {
	res := Result{Target: path}

	name := NextName(t.fs, t.trashDir, filepath.Base(filepath.Clean(path)))
	res.Dest = filepath.Join(t.trashDir, name)

	if size, err := t.fs.Size(path); err == nil {
		res.Size = size
	}

	var before []fs.Entry
	if isDir {
		entries, err := t.fs.Walk(path)
		if err != nil {
			slog.Debug("cannot list directory before copy", "path", path, "error", err)
		}
		before = entries
	}

	existed := t.fs.Exists(res.Dest) || t.fs.IsSymlink(res.Dest)

	slog.Debug("copying to trash", "from", path, "to", res.Dest)
	if err := t.fs.Copy(path, res.Dest); err != nil {
		res.Outcome = FailedCopy
		res.Err = newTransferError("copy", path, err)
		if !existed {
			t.discard(res.Dest)
		}
		return res
	}

	if verbose {
		t.list(path, isDir, before)
	}

	var rmErr error
	if isDir {
		rmErr = t.fs.RemoveAll(path)
	} else {
		rmErr = t.fs.Remove(path)
	}
	if rmErr == nil {
		slog.Debug("moved to trash", "from", path, "to", res.Dest)
		res.Outcome = Deleted
		return res
	}
	res.Err = newTransferError("remove", path, rmErr)

	if isDir && !t.intact(path, before) {
		slog.Warn("original partially removed, keeping trash copy", "path", path, "trash", res.Dest, "error", rmErr)
		res.Outcome = FailedRemoveOrphaned
		res.Partial = true
		return res
	}

	if err := t.fs.RemoveAll(res.Dest); err != nil {
		slog.Error("rollback failed", "path", path, "trash", res.Dest, "error", err)
		res.Outcome = FailedRemoveOrphaned
		res.Err = errors.Join(res.Err, newTransferError("rollback", res.Dest, err))
		return res
	}

	slog.Debug("rolled back trash copy", "path", path, "trash", res.Dest)
	res.Outcome = FailedRemoveRolledBack
	return res
}

// discard clears whatever a failed copy left at dest
func (t *Transfer) discard(dest string) {
	if !t.fs.Exists(dest) && !t.fs.IsSymlink(dest) {
		return
	}
	if err := t.fs.RemoveAll(dest); err != nil {
		slog.Warn("cannot clear partial trash copy", "trash", dest, "error", err)
		return
	}
	slog.Debug("cleared partial trash copy", "trash", dest)
}

// list prints what is about to be removed; directories deepest entry first.
func (t *Transfer) list(path string, isDir bool, entries []fs.Entry) {
	if t.reporter == nil {
		return
	}
	if !isDir {
		t.reporter.Info("removed '%s'", path)
		return
	}
	if len(entries) == 0 {
		entries = []fs.Entry{{Path: path, IsDir: true}}
	}
	reversed := slices.Clone(entries)
	slices.Reverse(reversed)
	for _, e := range reversed {
		if e.IsDir {
			t.reporter.Info("removed directory '%s'", e.Path)
		} else {
			t.reporter.Info("removed '%s'", e.Path)
		}
	}
}

// intact reports whether every entry listed before the copy is still present.
func (t *Transfer) intact(path string, before []fs.Entry) bool {
	if len(before) == 0 {
		return t.fs.Exists(path) || t.fs.IsSymlink(path)
	}
	for _, e := range before {
		if !t.fs.Exists(e.Path) && !t.fs.IsSymlink(e.Path) {
			return false
		}
	}
	return true
}
