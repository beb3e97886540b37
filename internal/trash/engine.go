package trash

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/babarot/rmtrash/internal/fs"
)

// Config holds everything the engine needs from its caller. Nothing is read
// from the environment below this point.
type Config struct {
	// TrashDir is the absolute path of the trash root.
	TrashDir string

	// Protect lists extra glob patterns that are never trashed.
	Protect []string

	FS       fs.FS
	Prompter Prompter
	Reporter Reporter
}

// Engine runs batches of targets through validation, confirmation and transfer.
type Engine struct {
	config    Config
	validator *Validator
	transfer  *Transfer
}

// New builds an engine from cfg.
func New(cfg Config) (*Engine, error) {
	if cfg.TrashDir == "" {
		return nil, ErrNoTrashDir
	}
	if !filepath.IsAbs(cfg.TrashDir) {
		return nil, fmt.Errorf("%w: %s", ErrTrashDirNotAbs, cfg.TrashDir)
	}
	if cfg.FS == nil {
		cfg.FS = fs.NewOS()
	}

	validator, err := NewValidator(cfg.FS, cfg.TrashDir, cfg.Protect)
	if err != nil {
		return nil, err
	}

	return &Engine{
		config:    cfg,
		validator: validator,
		transfer:  NewTransfer(cfg.FS, cfg.TrashDir, cfg.Reporter),
	}, nil
}

// Run processes targets in order under policy p. Every target is attempted;
// per-target problems end up in the report, never in the returned error.
// The error is reserved for conditions that make the whole batch impossible.
func (e *Engine) Run(p Policy, targets []string) (Report, error) {
	slog.Debug("engine.run started", "targets", len(targets), "policy", fmt.Sprintf("%+v", p))
	defer slog.Debug("engine.run finished")

	var report Report
	gate := NewGate(p, e.config.Prompter)

	if !gate.ConfirmBatch(len(targets)) {
		slog.Info("batch declined", "targets", len(targets))
		report.Declined = true
		return report, nil
	}

	if err := e.config.FS.MkdirAll(e.config.TrashDir, 0o700); err != nil {
		return report, fmt.Errorf("cannot create trash directory %s: %w", e.config.TrashDir, err)
	}

	for _, target := range targets {
		res := e.process(gate, p, target)
		e.emit(res)
		report.Results = append(report.Results, res)
	}

	return report, nil
}

func (e *Engine) process(gate *Gate, p Policy, target string) Result {
	res, ok := e.validator.Check(target, p)
	if !ok {
		return res
	}

	isDir := e.config.FS.IsDir(target)
	if !gate.ConfirmTarget(target, isDir) {
		res.Outcome = SkippedNotConfirmed
		return res
	}

	return e.transfer.Do(target, isDir, p.Verbose)
}

func (e *Engine) emit(res Result) {
	slog.Info("target processed", "target", res.Target, "outcome", res.Outcome.String(), "dest", res.Dest, "error", res.Err)
	if e.config.Reporter == nil {
		return
	}
	switch {
	case res.Outcome == Deleted:
		e.config.Reporter.Info("%s", res.Message())
	case res.Outcome.IsSkip():
		e.config.Reporter.Warn(res.Message())
	case res.Outcome.IsFailure():
		e.config.Reporter.Fail(res.Message())
	}
}
