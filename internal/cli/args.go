package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/babarot/rmtrash/internal/trash"
)

var (
	ErrUnknownOption  = errors.New("unknown option")
	ErrNotImplemented = errors.New("not implemented")
	ErrMissingOperand = errors.New("missing operand")
)

// OptionError reports an option that aborted argument parsing
type OptionError struct {
	Option string
	Err    error
}

func (e *OptionError) Error() string {
	return fmt.Sprintf("%v -- '%s'", e.Err, e.Option)
}

func (e *OptionError) Unwrap() error { return e.Err }

// ParseArgs resolves short flag clusters in tokens on top of base and
// collects the remaining tokens as targets, in order. A "--" token ends
// flag parsing; a lone "-" is a target.
func ParseArgs(tokens []string, base trash.Policy) (trash.Policy, []string, error) {
	p := base
	var targets []string

	for i, tok := range tokens {
		if tok == "--" {
			targets = append(targets, tokens[i+1:]...)
			break
		}
		if len(tok) < 2 || !strings.HasPrefix(tok, "-") {
			targets = append(targets, tok)
			continue
		}
		for _, c := range tok[1:] {
			if err := applyShortFlag(&p, c); err != nil {
				return base, nil, err
			}
		}
	}

	if len(targets) == 0 {
		return base, nil, ErrMissingOperand
	}
	return p, targets, nil
}

func applyShortFlag(p *trash.Policy, c rune) error {
	switch c {
	case 'r', 'R':
		p.Recursive = true
	case 'd':
		p.AllowEmptyDirDelete = true
	case 'f':
		p.UseForce()
	case 'i':
		p.UsePromptEach()
	case 'I':
		p.UsePromptOnce()
	case 'v':
		p.Verbose = true
	case 'P':
		// accepted for compatibility
	case 'x', 'W':
		return &OptionError{Option: string(c), Err: ErrNotImplemented}
	default:
		return &OptionError{Option: string(c), Err: ErrUnknownOption}
	}
	return nil
}
