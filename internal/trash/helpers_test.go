package trash

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/babarot/rmtrash/internal/fs"
	"github.com/stretchr/testify/require"
)

var errInjected = errors.New("injected failure")

// faultFS wraps the real filesystem and fails selected operations by path
type faultFS struct {
	*fs.OS
	failCopy      map[string]bool
	failRemove    map[string]bool
	failRemoveAll map[string]bool
	failReadDir   map[string]bool

	// partialCopy lists sources whose copy writes everything and then
	// reports an error, like a copy that dies on the last entry
	partialCopy map[string]bool

	// removeFirstChild makes a failing RemoveAll delete one child first,
	// like a removal that stops halfway through a tree
	removeFirstChild bool
}

func newFaultFS() *faultFS {
	return &faultFS{
		OS:            fs.NewOS(),
		failCopy:      map[string]bool{},
		failRemove:    map[string]bool{},
		failRemoveAll: map[string]bool{},
		failReadDir:   map[string]bool{},
		partialCopy:   map[string]bool{},
	}
}

func (f *faultFS) Copy(src, dst string) error {
	if f.failCopy[src] {
		return errInjected
	}
	if f.partialCopy[src] {
		if err := f.OS.Copy(src, dst); err != nil {
			return err
		}
		return errInjected
	}
	return f.OS.Copy(src, dst)
}

func (f *faultFS) ReadDir(path string) ([]string, error) {
	if f.failReadDir[path] {
		return nil, errInjected
	}
	return f.OS.ReadDir(path)
}

func (f *faultFS) Remove(path string) error {
	if f.failRemove[path] {
		return errInjected
	}
	return f.OS.Remove(path)
}

func (f *faultFS) RemoveAll(path string) error {
	if f.failRemoveAll[path] {
		if f.removeFirstChild {
			if names, err := f.OS.ReadDir(path); err == nil && len(names) > 0 {
				_ = f.OS.RemoveAll(filepath.Join(path, names[0]))
			}
		}
		return errInjected
	}
	return f.OS.RemoveAll(path)
}

// scriptedPrompter answers questions from a fixed list and records them
type scriptedPrompter struct {
	answers   []bool
	questions []string
}

func (p *scriptedPrompter) Ask(question string) (bool, error) {
	p.questions = append(p.questions, question)
	if len(p.answers) == 0 {
		return false, fmt.Errorf("unexpected question: %s", question)
	}
	answer := p.answers[0]
	p.answers = p.answers[1:]
	return answer, nil
}

// recorder collects everything the engine reports
type recorder struct {
	infos []string
	warns []string
	fails []string
}

func (r *recorder) Info(format string, args ...any) {
	r.infos = append(r.infos, fmt.Sprintf(format, args...))
}

func (r *recorder) Warn(msg string) { r.warns = append(r.warns, msg) }
func (r *recorder) Fail(msg string) { r.fails = append(r.fails, msg) }

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func trashEntries(t *testing.T, dir string) []string {
	t.Helper()
	names, err := fs.NewOS().ReadDir(dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	require.NoError(t, err)
	return names
}

// workspace returns a directory for targets and a separate trash root
func workspace(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()
	work := filepath.Join(dir, "work")
	require.NoError(t, os.Mkdir(work, 0o755))
	return work, filepath.Join(dir, "Trash")
}
