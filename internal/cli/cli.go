package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/babarot/rmtrash/internal/config"
	"github.com/babarot/rmtrash/internal/debug"
	"github.com/babarot/rmtrash/internal/env"
	"github.com/babarot/rmtrash/internal/shell"
	"github.com/babarot/rmtrash/internal/trash"
	"github.com/babarot/rmtrash/internal/ui"
	"github.com/babarot/rmtrash/internal/utils/log"
	"github.com/dustin/go-humanize"
	"github.com/jessevdk/go-flags"
	"github.com/rs/xid"
)

type CLI struct {
	version Version
	stdin   io.Reader
	stdout  io.Writer
	stderr  io.Writer
	runID   string
}

// Run parses args, which exclude the program name, and runs one invocation
// against the process's standard streams.
func Run(v Version, args []string) error {
	return New(v, os.Stdin, os.Stdout, os.Stderr).Run(args)
}

func New(v Version, stdin io.Reader, stdout, stderr io.Writer) *CLI {
	return &CLI{
		version: v,
		stdin:   stdin,
		stdout:  stdout,
		stderr:  stderr,
		runID:   xid.New().String(),
	}
}

// Run returns an error only when the invocation as a whole fails. Targets
// that are skipped or fail to move are reported as warnings instead.
func (c *CLI) Run(args []string) error {
	opt, rest, err := parseMeta(args, c.version.AppName)
	if err != nil {
		if flags.WroteHelp(err) {
			fmt.Fprint(c.stdout, err.Error())
			fmt.Fprint(c.stdout, shortHelp)
			return nil
		}
		return err
	}

	switch {
	case opt.Meta.Version:
		fmt.Fprint(c.stdout, c.version.Print())
		return nil
	case opt.Meta.Init != "":
		return c.printInit(opt.Meta.Init)
	}

	var (
		policy  trash.Policy
		targets []string
	)
	if opt.Meta.Debug == "" {
		policy, targets, err = ParseArgs(rest, opt.Rm.Policy())
		if err != nil {
			return err
		}
	}

	// keep records off the terminal until the configured logger is ready
	log.Discard(log.AsDefault())

	cfg, err := config.Parse(opt.Meta.Config)
	if err != nil {
		return err
	}

	closeLog, err := c.setupLogger(cfg.Logging)
	if err != nil {
		return err
	}
	defer closeLog()

	slog.Debug("main function started", "version", c.version.Version, "revision", c.version.Revision, "buildDate", c.version.BuildDate)
	defer slog.Debug("main function finished")

	switch opt.Meta.Debug {
	case "live":
		return debug.Logs(c.stdout, env.LogPath(), cfg.Logging.Enabled, true)
	case "full":
		return debug.Logs(c.stdout, env.LogPath(), cfg.Logging.Enabled, false)
	}

	trashDir, err := cfg.ResolveTrashDir(opt.Meta.TrashDir)
	if err != nil {
		return fmt.Errorf("invalid trash directory: %w", err)
	}

	return c.put(cfg, trashDir, policy, targets)
}

func (c *CLI) put(cfg config.Config, trashDir string, policy trash.Policy, targets []string) error {
	printer := ui.NewPrinter(c.version.AppName, c.stdout, c.stderr, cfg.UI.Color)

	engine, err := trash.New(trash.Config{
		TrashDir: trashDir,
		Protect:  cfg.Core.Protect.Globs,
		Prompter: ui.NewLinePrompter(c.stdin, c.stdout),
		Reporter: printer,
	})
	if err != nil {
		return err
	}

	report, err := engine.Run(policy, targets)
	if err != nil {
		slog.Error("exit", "error", fmt.Errorf("engine.run failed: %w", err))
		return err
	}
	if report.Declined {
		return nil
	}

	if cfg.Core.Summary || policy.Verbose {
		c.summary(printer, report, trashDir)
	}
	return nil
}

func (c *CLI) summary(printer *ui.Printer, report trash.Report, trashDir string) {
	deleted := len(report.Deleted())
	line := fmt.Sprintf("moved %d item(s) (%s) to %s",
		deleted, humanize.Bytes(uint64(report.DeletedSize())), trashDir)
	if n := report.Warnings(); n > 0 {
		line += fmt.Sprintf(", %d warning(s)", n)
	}
	printer.Info("%s", line)
}

func (c *CLI) printInit(sh string) error {
	exe, err := os.Executable()
	if err != nil {
		exe = c.version.AppName
	}
	script, err := shell.InitScript(sh, exe)
	if err != nil {
		return err
	}
	fmt.Fprint(c.stdout, script)
	return nil
}

// setupLogger installs the default slog logger. With logging disabled every
// record is dropped so nothing reaches the terminal.
func (c *CLI) setupLogger(cfg config.Logging) (func(), error) {
	opts := []log.Option{
		log.UseFields("run_id", c.runID),
		log.UseTimeFormat(time.DateTime),
		log.UseReportCaller(true),
		log.AsDefault(),
	}

	if !cfg.Enabled {
		log.Discard(opts...)
		return func() {}, nil
	}

	level, err := log.ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	w, err := log.NewRotateWriter(env.LogPath(), cfg.Rotation)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	log.New(append(opts, log.UseLevel(level), log.UseOutput(w))...)
	return func() { w.Close() }, nil
}
