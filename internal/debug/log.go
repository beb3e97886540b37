package debug

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/nxadm/tail"
)

var (
	ErrLoggingDisabled = errors.New("logging is not enabled in config: set logging.enabled to true")
	ErrNoLogFile       = errors.New("no log file exists yet: try running some commands first")
)

// Logs prints the log file at path. With live set it follows new entries
// instead, as long as stdout is a terminal.
func Logs(w io.Writer, path string, enabled, live bool) error {
	if live {
		return tailLiveLogs(w, path, enabled)
	}
	return showExistingLogs(w, path, enabled)
}

func tailLiveLogs(w io.Writer, path string, enabled bool) error {
	if !enabled {
		return ErrLoggingDisabled
	}

	shouldFollow := isatty.IsTerminal(os.Stdout.Fd())
	t, err := tail.TailFile(path, tail.Config{
		ReOpen: shouldFollow,
		Follow: shouldFollow,
		Poll:   true,
		Logger: tail.DiscardingLogger,
		Location: &tail.SeekInfo{
			Offset: 0,
			Whence: io.SeekEnd,
		},
	})
	if err != nil {
		if os.IsNotExist(err) {
			return ErrNoLogFile
		}
		return err
	}
	defer t.Cleanup()
	slog.Info("live tail started", "path", path)

	for line := range t.Lines {
		if line.Err != nil {
			return line.Err
		}
		fmt.Fprintln(w, line.Text)
	}
	return t.Err()
}

func showExistingLogs(w io.Writer, path string, enabled bool) error {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			if !enabled {
				return ErrLoggingDisabled
			}
			return ErrNoLogFile
		}
		return err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		fmt.Fprintln(w, scanner.Text())
	}
	return scanner.Err()
}
