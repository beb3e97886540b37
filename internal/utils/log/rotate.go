package log

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/babarot/rmtrash/internal/config"
	"github.com/docker/go-units"
	"github.com/k1LoW/duration"
)

// RotateWriter is an io.Writer that renames the log file aside once it
// would grow past maxSize, keeping at most maxFiles backups no older than maxAge.
type RotateWriter struct {
	mu       sync.Mutex
	file     *os.File
	size     int64
	maxSize  int64
	maxFiles int
	maxAge   time.Duration
	path     string
	now      func() time.Time
}

func NewRotateWriter(path string, cfg config.Rotation) (*RotateWriter, error) {
	maxSize, err := units.FromHumanSize(cfg.MaxSize)
	if err != nil {
		return nil, fmt.Errorf("invalid max size format: %w", err)
	}

	var maxAge time.Duration
	if cfg.MaxAge != "" {
		maxAge, err = duration.Parse(cfg.MaxAge)
		if err != nil {
			return nil, fmt.Errorf("invalid max age format: %w", err)
		}
	}

	w := &RotateWriter{
		maxSize:  maxSize,
		maxFiles: cfg.MaxFiles,
		maxAge:   maxAge,
		path:     path,
		now:      time.Now,
	}

	if err := w.openFile(); err != nil {
		return nil, err
	}
	return w, nil
}

func (w *RotateWriter) Write(p []byte) (n int, err error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.size > 0 && w.size+int64(len(p)) > w.maxSize {
		if err := w.rotate(); err != nil {
			return 0, err
		}
	}

	n, err = w.file.Write(p)
	w.size += int64(n)
	return n, err
}

func (w *RotateWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.file != nil {
		return w.file.Close()
	}
	return nil
}

func (w *RotateWriter) openFile() error {
	if err := os.MkdirAll(filepath.Dir(w.path), 0o755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	f, err := os.OpenFile(w.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return err
	}

	if w.file != nil {
		w.file.Close()
	}

	w.file = f
	w.size = info.Size()
	return nil
}

// rotate must be called with mu held
func (w *RotateWriter) rotate() error {
	if w.file != nil {
		w.file.Close()
		w.file = nil
	}

	backupPath := w.backupPath()
	if err := os.Rename(w.path, backupPath); err != nil && !os.IsNotExist(err) {
		return err
	}

	if err := w.removeOldFiles(); err != nil {
		return err
	}
	return w.openFile()
}

func (w *RotateWriter) backupPath() string {
	base := fmt.Sprintf("%s.%s", w.path, w.now().Format("20060102-150405"))
	candidate := base
	for i := 1; ; i++ {
		if _, err := os.Lstat(candidate); os.IsNotExist(err) {
			return candidate
		}
		candidate = fmt.Sprintf("%s.%d", base, i)
	}
}

func (w *RotateWriter) removeOldFiles() error {
	dir := filepath.Dir(w.path)
	base := filepath.Base(w.path)

	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}

	var backups []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasPrefix(e.Name(), base+".") {
			continue
		}
		if w.maxAge > 0 {
			if info, err := e.Info(); err == nil && w.now().Sub(info.ModTime()) > w.maxAge {
				if err := os.Remove(filepath.Join(dir, e.Name())); err != nil {
					return err
				}
				continue
			}
		}
		backups = append(backups, e.Name())
	}

	if w.maxFiles <= 0 || len(backups) <= w.maxFiles {
		return nil
	}

	sort.Strings(backups)
	for _, f := range backups[:len(backups)-w.maxFiles] {
		if err := os.Remove(filepath.Join(dir, f)); err != nil {
			return err
		}
	}
	return nil
}
