package trash

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T, trashDir string, fsys *faultFS, prompter Prompter, rec *recorder) *Engine {
	t.Helper()
	e, err := New(Config{
		TrashDir: trashDir,
		FS:       fsys,
		Prompter: prompter,
		Reporter: rec,
	})
	require.NoError(t, err)
	return e
}

func TestNewRequiresAbsoluteTrashDir(t *testing.T) {
	_, err := New(Config{})
	assert.ErrorIs(t, err, ErrNoTrashDir)

	_, err = New(Config{TrashDir: "relative/Trash"})
	assert.ErrorIs(t, err, ErrTrashDirNotAbs)

	_, err = New(Config{TrashDir: "/tmp/Trash", Protect: []string{"[bad"}})
	assert.Error(t, err)
}

func TestEngineRoundTrip(t *testing.T) {
	work, trashDir := workspace(t)
	target := filepath.Join(work, "data.bin")
	content := []byte{0x00, 0x01, 0xfe, 0xff, 'x'}
	require.NoError(t, os.WriteFile(target, content, 0o600))

	rec := &recorder{}
	report, err := newTestEngine(t, trashDir, newFaultFS(), nil, rec).Run(Policy{}, []string{target})
	require.NoError(t, err)

	require.Len(t, report.Results, 1)
	assert.Equal(t, Deleted, report.Results[0].Outcome)
	assert.NoFileExists(t, target)
	assert.Equal(t, []string{"data.bin"}, trashEntries(t, trashDir))

	got, err := os.ReadFile(filepath.Join(trashDir, "data.bin"))
	require.NoError(t, err)
	assert.Equal(t, content, got)
	assert.Equal(t, []string{"moved '" + target + "' to '" + filepath.Join(trashDir, "data.bin") + "'"}, rec.infos)
	assert.Empty(t, rec.warns)
	assert.Empty(t, rec.fails)
}

func TestEngineContinuesPastFailures(t *testing.T) {
	work, trashDir := workspace(t)
	ok1 := filepath.Join(work, "one")
	bad := filepath.Join(work, "bad")
	ok2 := filepath.Join(work, "two")
	dir := filepath.Join(work, "dir")
	for _, p := range []string{ok1, bad, ok2, filepath.Join(dir, "child")} {
		writeFile(t, p, p)
	}
	missing := filepath.Join(work, "missing")

	fsys := newFaultFS()
	fsys.failCopy[bad] = true
	rec := &recorder{}

	report, err := newTestEngine(t, trashDir, fsys, nil, rec).
		Run(Policy{}, []string{ok1, "..", bad, missing, dir, ok2})
	require.NoError(t, err)

	var outcomes []Outcome
	for _, res := range report.Results {
		outcomes = append(outcomes, res.Outcome)
	}
	assert.Equal(t, []Outcome{
		Deleted, SkippedProtected, FailedCopy, SkippedMissing, SkippedIsDirectory, Deleted,
	}, outcomes)
	assert.Len(t, rec.warns, 3)
	assert.Len(t, rec.fails, 1)
	assert.Equal(t, 4, report.Warnings())
	assert.Len(t, report.Deleted(), 2)
	assert.FileExists(t, bad)
	assert.DirExists(t, dir)
}

func TestEnginePromptOnceDeclinedLeavesEverything(t *testing.T) {
	work, trashDir := workspace(t)
	var targets []string
	for i := range 5 {
		p := filepath.Join(work, fmt.Sprintf("f%d", i))
		writeFile(t, p, "x")
		targets = append(targets, p)
	}

	prompter := &scriptedPrompter{answers: []bool{false}}
	report, err := newTestEngine(t, trashDir, newFaultFS(), prompter, &recorder{}).
		Run(Policy{PromptOnceIfMany: true}, targets)
	require.NoError(t, err)

	assert.True(t, report.Declined)
	assert.Empty(t, report.Results)
	assert.Equal(t, []string{"Delete 5 files?"}, prompter.questions)
	for _, p := range targets {
		assert.FileExists(t, p)
	}
	assert.NoDirExists(t, trashDir, "a declined batch must not touch the trash")
}

func TestEnginePromptOnceSmallBatchDoesNotAsk(t *testing.T) {
	work, trashDir := workspace(t)
	a := filepath.Join(work, "a")
	b := filepath.Join(work, "b")
	writeFile(t, a, "a")
	writeFile(t, b, "b")

	prompter := &scriptedPrompter{}
	report, err := newTestEngine(t, trashDir, newFaultFS(), prompter, &recorder{}).
		Run(Policy{PromptOnceIfMany: true}, []string{a, b})
	require.NoError(t, err)

	assert.Empty(t, prompter.questions)
	assert.Len(t, report.Deleted(), 2)
}

func TestEnginePromptEachSkipsDeclined(t *testing.T) {
	work, trashDir := workspace(t)
	keep := filepath.Join(work, "keep")
	drop := filepath.Join(work, "drop")
	writeFile(t, keep, "k")
	writeFile(t, drop, "d")

	prompter := &scriptedPrompter{answers: []bool{false, true}}
	rec := &recorder{}
	report, err := newTestEngine(t, trashDir, newFaultFS(), prompter, rec).
		Run(Policy{PromptEach: true}, []string{keep, drop})
	require.NoError(t, err)

	assert.Equal(t, SkippedNotConfirmed, report.Results[0].Outcome)
	assert.Equal(t, Deleted, report.Results[1].Outcome)
	assert.FileExists(t, keep)
	assert.NoFileExists(t, drop)
	assert.Len(t, rec.warns, 1)
}

func TestEngineEmptyDirectoryOnlyWithDirFlag(t *testing.T) {
	work, trashDir := workspace(t)
	dir := filepath.Join(work, "cache")
	child := filepath.Join(dir, "entry")
	writeFile(t, child, "x")

	e := newTestEngine(t, trashDir, newFaultFS(), nil, &recorder{})
	p := Policy{AllowEmptyDirDelete: true}

	report, err := e.Run(p, []string{dir})
	require.NoError(t, err)
	assert.Equal(t, SkippedNotEmpty, report.Results[0].Outcome)
	assert.DirExists(t, dir)

	require.NoError(t, os.Remove(child))
	report, err = e.Run(p, []string{dir})
	require.NoError(t, err)
	assert.Equal(t, Deleted, report.Results[0].Outcome)
	assert.NoDirExists(t, dir)
	assert.DirExists(t, filepath.Join(trashDir, "cache"))
}

func TestEngineVersionsWithinOneBatch(t *testing.T) {
	work, trashDir := workspace(t)
	a := filepath.Join(work, "a", "notes.md")
	b := filepath.Join(work, "b", "notes.md")
	writeFile(t, a, "a")
	writeFile(t, b, "b")

	report, err := newTestEngine(t, trashDir, newFaultFS(), nil, &recorder{}).
		Run(Policy{}, []string{a, b})
	require.NoError(t, err)

	require.Len(t, report.Deleted(), 2)
	assert.ElementsMatch(t, []string{"notes.md", "notes [v1].md"}, trashEntries(t, trashDir))
	assert.Equal(t, int64(2), report.DeletedSize())
}
