package trash

import (
	"fmt"
	"log/slog"
)

// Prompter asks the user a yes/no question.
type Prompter interface {
	Ask(question string) (bool, error)
}

// Gate decides whether a target needs confirmation and obtains it. A Gate
// holds per-batch state and must not be reused across batches.
type Gate struct {
	policy   Policy
	prompter Prompter

	// dirConfirmed remembers a yes given in prompt-once mode so that only
	// the first directory of a batch is asked about
	dirConfirmed bool
}

// NewGate returns a gate for one batch.
func NewGate(p Policy, prompter Prompter) *Gate {
	return &Gate{policy: p, prompter: prompter}
}

// ConfirmBatch asks once for the whole batch when prompt-once mode is active
// and there are more than PromptOnceThreshold targets. It returns false only
// when the user declined.
func (g *Gate) ConfirmBatch(n int) bool {
	if !g.policy.PromptOnceIfMany || n <= PromptOnceThreshold {
		return true
	}
	ok := g.ask(fmt.Sprintf("Delete %d files?", n))
	g.dirConfirmed = ok
	return ok
}

// ConfirmTarget reports whether path may be transferred.
func (g *Gate) ConfirmTarget(path string, isDir bool) bool {
	switch {
	case g.policy.PromptEach:
		return g.ask(fmt.Sprintf("confirm deletion of '%s'?", path))
	case g.policy.PromptOnceIfMany && isDir && !g.dirConfirmed:
		ok := g.ask(fmt.Sprintf("confirm deletion of folder '%s' and its contents?", path))
		g.dirConfirmed = ok
		return ok
	default:
		return true
	}
}

func (g *Gate) ask(question string) bool {
	if g.prompter == nil {
		slog.Warn("no prompter configured, treating as declined", "question", question)
		return false
	}
	ok, err := g.prompter.Ask(question)
	if err != nil {
		slog.Debug("prompt failed, treating as declined", "question", question, "error", err)
		return false
	}
	return ok
}
