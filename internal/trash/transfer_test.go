package trash

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransferFile(t *testing.T) {
	work, trashDir := workspace(t)
	require.NoError(t, os.Mkdir(trashDir, 0o700))
	target := filepath.Join(work, "report.txt")
	writeFile(t, target, "quarterly numbers")

	tr := NewTransfer(newFaultFS(), trashDir, &recorder{})
	res := tr.Do(target, false, false)

	require.Equal(t, Deleted, res.Outcome, res.Message())
	assert.NoFileExists(t, target)
	assert.Equal(t, filepath.Join(trashDir, "report.txt"), res.Dest)
	assert.Equal(t, int64(len("quarterly numbers")), res.Size)

	got, err := os.ReadFile(res.Dest)
	require.NoError(t, err)
	assert.Equal(t, "quarterly numbers", string(got))
}

func TestTransferVersionsOnCollision(t *testing.T) {
	work, trashDir := workspace(t)
	writeFile(t, filepath.Join(trashDir, "report.txt"), "old")
	target := filepath.Join(work, "report.txt")
	writeFile(t, target, "new")

	res := NewTransfer(newFaultFS(), trashDir, nil).Do(target, false, false)

	require.Equal(t, Deleted, res.Outcome)
	assert.Equal(t, filepath.Join(trashDir, "report [v1].txt"), res.Dest)
	got, err := os.ReadFile(filepath.Join(trashDir, "report.txt"))
	require.NoError(t, err)
	assert.Equal(t, "old", string(got), "existing trash entry must not be overwritten")
}

func TestTransferDirectoryVerboseListsDeepestFirst(t *testing.T) {
	work, trashDir := workspace(t)
	require.NoError(t, os.Mkdir(trashDir, 0o700))
	dir := filepath.Join(work, "project")
	writeFile(t, filepath.Join(dir, "src", "main.go"), "package main")

	rec := &recorder{}
	res := NewTransfer(newFaultFS(), trashDir, rec).Do(dir, true, true)

	require.Equal(t, Deleted, res.Outcome)
	assert.NoDirExists(t, dir)
	assert.FileExists(t, filepath.Join(trashDir, "project", "src", "main.go"))
	assert.Equal(t, []string{
		"removed '" + filepath.Join(dir, "src", "main.go") + "'",
		"removed directory '" + filepath.Join(dir, "src") + "'",
		"removed directory '" + dir + "'",
	}, rec.infos)
}

func TestTransferVerboseFile(t *testing.T) {
	work, trashDir := workspace(t)
	require.NoError(t, os.Mkdir(trashDir, 0o700))
	target := filepath.Join(work, "a")
	writeFile(t, target, "a")

	rec := &recorder{}
	NewTransfer(newFaultFS(), trashDir, rec).Do(target, false, true)
	assert.Equal(t, []string{"removed '" + target + "'"}, rec.infos)
}

func TestTransferCopyFailureLeavesOriginal(t *testing.T) {
	work, trashDir := workspace(t)
	require.NoError(t, os.Mkdir(trashDir, 0o700))
	target := filepath.Join(work, "a")
	writeFile(t, target, "a")

	fsys := newFaultFS()
	fsys.failCopy[target] = true
	res := NewTransfer(fsys, trashDir, nil).Do(target, false, false)

	assert.Equal(t, FailedCopy, res.Outcome)
	assert.ErrorIs(t, res.Err, errInjected)
	assert.FileExists(t, target)
	assert.Empty(t, trashEntries(t, trashDir))
}

func TestTransferCopyFailureClearsPartialCopy(t *testing.T) {
	tests := []struct {
		name  string
		isDir bool
	}{
		{name: "file", isDir: false},
		{name: "directory", isDir: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			work, trashDir := workspace(t)
			require.NoError(t, os.Mkdir(trashDir, 0o700))
			target := filepath.Join(work, "a")
			if tt.isDir {
				writeFile(t, filepath.Join(target, "deep", "leaf.txt"), "leaf")
			} else {
				writeFile(t, target, "a")
			}

			fsys := newFaultFS()
			fsys.partialCopy[target] = true
			res := NewTransfer(fsys, trashDir, nil).Do(target, tt.isDir, false)

			assert.Equal(t, FailedCopy, res.Outcome)
			assert.ErrorIs(t, res.Err, errInjected)
			assert.True(t, fsys.Exists(target))
			assert.Empty(t, trashEntries(t, trashDir), "a failed copy must not leave anything in the trash")
		})
	}
}

func TestTransferRemoveFailureRollsBack(t *testing.T) {
	work, trashDir := workspace(t)
	require.NoError(t, os.Mkdir(trashDir, 0o700))
	target := filepath.Join(work, "a.txt")
	writeFile(t, target, "a")

	fsys := newFaultFS()
	fsys.failRemove[target] = true
	res := NewTransfer(fsys, trashDir, nil).Do(target, false, false)

	assert.Equal(t, FailedRemoveRolledBack, res.Outcome)
	assert.FileExists(t, target)
	assert.Empty(t, trashEntries(t, trashDir), "trash copy must be rolled back")
	assert.Contains(t, res.Message(), "was removed because the original could not be removed")

	var te *TransferError
	require.ErrorAs(t, res.Err, &te)
	assert.Equal(t, "remove", te.Op)
}

func TestTransferRollbackFailureOrphans(t *testing.T) {
	work, trashDir := workspace(t)
	require.NoError(t, os.Mkdir(trashDir, 0o700))
	target := filepath.Join(work, "a.txt")
	writeFile(t, target, "a")

	fsys := newFaultFS()
	fsys.failRemove[target] = true
	fsys.failRemoveAll[filepath.Join(trashDir, "a.txt")] = true
	res := NewTransfer(fsys, trashDir, nil).Do(target, false, false)

	assert.Equal(t, FailedRemoveOrphaned, res.Outcome)
	assert.False(t, res.Partial)
	assert.FileExists(t, target)
	assert.FileExists(t, filepath.Join(trashDir, "a.txt"))
	assert.Contains(t, res.Message(), "orphaned")
}

func TestTransferPartialDirectoryRemovalKeepsCopy(t *testing.T) {
	work, trashDir := workspace(t)
	require.NoError(t, os.Mkdir(trashDir, 0o700))
	dir := filepath.Join(work, "photos")
	writeFile(t, filepath.Join(dir, "a.jpg"), "a")
	writeFile(t, filepath.Join(dir, "b.jpg"), "b")

	fsys := newFaultFS()
	fsys.failRemoveAll[dir] = true
	fsys.removeFirstChild = true
	res := NewTransfer(fsys, trashDir, nil).Do(dir, true, false)

	assert.Equal(t, FailedRemoveOrphaned, res.Outcome)
	assert.True(t, res.Partial)
	assert.FileExists(t, filepath.Join(trashDir, "photos", "a.jpg"))
	assert.FileExists(t, filepath.Join(trashDir, "photos", "b.jpg"))
}

func TestTransferDirectoryRemoveFailureRollsBack(t *testing.T) {
	work, trashDir := workspace(t)
	require.NoError(t, os.Mkdir(trashDir, 0o700))
	dir := filepath.Join(work, "photos")
	writeFile(t, filepath.Join(dir, "a.jpg"), "a")

	fsys := newFaultFS()
	fsys.failRemoveAll[dir] = true
	res := NewTransfer(fsys, trashDir, nil).Do(dir, true, false)

	assert.Equal(t, FailedRemoveRolledBack, res.Outcome)
	assert.DirExists(t, dir)
	assert.Empty(t, trashEntries(t, trashDir))
}
