package trash

import (
	"fmt"

	"github.com/samber/lo"
)

// Outcome is the final state of a single target.
type Outcome int

const (
	Deleted Outcome = iota
	SkippedProtected
	SkippedMissing
	SkippedNotConfirmed
	SkippedIsDirectory
	SkippedNotEmpty
	FailedCopy
	FailedRemoveRolledBack
	FailedRemoveOrphaned
)

func (o Outcome) String() string {
	switch o {
	case Deleted:
		return "deleted"
	case SkippedProtected:
		return "skipped-protected"
	case SkippedMissing:
		return "skipped-missing"
	case SkippedNotConfirmed:
		return "skipped-not-confirmed"
	case SkippedIsDirectory:
		return "skipped-is-directory"
	case SkippedNotEmpty:
		return "skipped-not-empty"
	case FailedCopy:
		return "failed-copy"
	case FailedRemoveRolledBack:
		return "failed-remove-rolled-back"
	case FailedRemoveOrphaned:
		return "failed-remove-orphaned"
	default:
		return "unknown"
	}
}

// IsSkip reports whether the target was left alone before any transfer began.
func (o Outcome) IsSkip() bool {
	switch o {
	case SkippedProtected, SkippedMissing, SkippedNotConfirmed, SkippedIsDirectory, SkippedNotEmpty:
		return true
	}
	return false
}

// IsFailure reports whether a transfer was attempted and did not complete.
func (o Outcome) IsFailure() bool {
	switch o {
	case FailedCopy, FailedRemoveRolledBack, FailedRemoveOrphaned:
		return true
	}
	return false
}

// Result records what happened to one target.
type Result struct {
	Target  string
	Outcome Outcome

	// Dest is the trash path the target was (or was going to be) copied to.
	Dest string

	// Size is the byte size of the target measured before the copy.
	Size int64

	// Partial is set when a directory removal failed after some of its
	// entries were already gone, so the trash copy was kept.
	Partial bool

	Err error
}

// Message renders the user-facing line for a result.
func (r Result) Message() string {
	switch r.Outcome {
	case SkippedProtected:
		return fmt.Sprintf("refusing to remove protected path '%s': skipping", r.Target)
	case SkippedMissing:
		return fmt.Sprintf("cannot remove '%s': No such file or directory", r.Target)
	case SkippedNotConfirmed:
		return fmt.Sprintf("skipped '%s': not confirmed", r.Target)
	case SkippedIsDirectory:
		return fmt.Sprintf("cannot remove '%s': Is a folder", r.Target)
	case SkippedNotEmpty:
		if r.Err != nil {
			return fmt.Sprintf("cannot remove '%s': cannot read directory: %v", r.Target, r.Err)
		}
		return fmt.Sprintf("cannot remove '%s': Directory not empty", r.Target)
	case FailedCopy:
		return fmt.Sprintf("cannot move '%s' to trash: %v", r.Target, r.Err)
	case FailedRemoveRolledBack:
		return fmt.Sprintf("cannot remove '%s': %v\nthe trash copy '%s' was removed because the original could not be removed", r.Target, r.Err, r.Dest)
	case FailedRemoveOrphaned:
		if r.Partial {
			return fmt.Sprintf("cannot remove '%s': %v\npart of the original was already removed; the trash copy '%s' was kept and holds the full contents", r.Target, r.Err, r.Dest)
		}
		return fmt.Sprintf("cannot remove '%s': %v\nboth the original and the trash copy '%s' now exist; the trash copy is orphaned", r.Target, r.Err, r.Dest)
	default:
		return fmt.Sprintf("moved '%s' to '%s'", r.Target, r.Dest)
	}
}

// Report collects the results of a batch in target order.
type Report struct {
	Results []Result

	// Declined is set when the batch-level prompt was answered no and
	// nothing was processed.
	Declined bool
}

// Deleted returns the results of targets that were moved to the trash.
func (r Report) Deleted() []Result {
	return lo.Filter(r.Results, func(res Result, _ int) bool {
		return res.Outcome == Deleted
	})
}

// Warnings returns the number of targets that produced a warning.
func (r Report) Warnings() int {
	return lo.CountBy(r.Results, func(res Result) bool {
		return res.Outcome != Deleted
	})
}

// DeletedSize returns the total byte size of the trashed targets.
func (r Report) DeletedSize() int64 {
	return lo.SumBy(r.Deleted(), func(res Result) int64 {
		return res.Size
	})
}
