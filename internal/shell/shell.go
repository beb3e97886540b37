package shell

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"al.essio.dev/pkg/shellescape"
)

// ErrUnsupportedShell is returned by InitScript for shells without a snippet
var ErrUnsupportedShell = errors.New("unsupported shell")

// Shells lists the shells InitScript knows about
var Shells = []string{"bash", "zsh", "fish"}

// InitScript returns a snippet that makes `rm` run exe instead, to be
// evaluated from the user's shell startup file.
func InitScript(shell, exe string) (string, error) {
	quoted := shellescape.Quote(exe)
	switch shell {
	case "bash", "zsh":
		return fmt.Sprintf("alias rm=%s\n", shellescape.Quote(quoted)), nil
	case "fish":
		return fmt.Sprintf("function rm --wraps rm\n    %s $argv\nend\n", quoted), nil
	default:
		return "", fmt.Errorf("%w: %q (supported: %s)", ErrUnsupportedShell, shell, strings.Join(Shells, ", "))
	}
}

// ExpandHome expands a leading "~" and any $VAR or ${VAR} references in input.
func ExpandHome(input string) (string, error) {
	result := input

	// 1. expand tilde
	if result == "~" || strings.HasPrefix(result, "~/") {
		home := os.Getenv("HOME")
		if home == "" {
			return "", fmt.Errorf("HOME environment variable is not set")
		}
		result = home + result[1:]
	}

	// 2. expand env, e.g. $HOME, ${HOME}
	if strings.Count(result, "${") > strings.Count(result, "}") {
		return "", fmt.Errorf("unclosed variable brace in input: %s", input)
	}
	return os.Expand(result, os.Getenv), nil
}
