// Package trash implements the deletion-to-trash engine: it validates each
// target, asks for confirmation when the policy requires it, copies the target
// into the trash under a collision-free name and only then removes the original.
package trash

// PromptOnceThreshold is the number of targets above which prompt-once mode
// asks a single question for the whole batch.
const PromptOnceThreshold = 3

// Policy is the effective behavior of one invocation. It is built once by the
// argument parser and never changed while the batch runs.
//
// At most one of Force, PromptEach and PromptOnceIfMany is set; use the
// Use* methods to switch prompting mode so the other two are cleared.
type Policy struct {
	Recursive           bool
	Force               bool
	PromptEach          bool
	PromptOnceIfMany    bool
	Verbose             bool
	AllowEmptyDirDelete bool
}

// UseForce switches to force mode: never prompt.
func (p *Policy) UseForce() {
	p.Force, p.PromptEach, p.PromptOnceIfMany = true, false, false
}

// UsePromptEach switches to prompting before every removal.
func (p *Policy) UsePromptEach() {
	p.Force, p.PromptEach, p.PromptOnceIfMany = false, true, false
}

// UsePromptOnce switches to a single prompt for large batches.
func (p *Policy) UsePromptOnce() {
	p.Force, p.PromptEach, p.PromptOnceIfMany = false, false, true
}

// DirectoriesAllowed reports whether directories may be removed at all.
func (p Policy) DirectoriesAllowed() bool {
	return p.Recursive || p.AllowEmptyDirDelete
}
