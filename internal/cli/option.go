package cli

import (
	"errors"
	"strings"

	"github.com/babarot/rmtrash/internal/trash"
	"github.com/jessevdk/go-flags"
)

type Option struct {
	Meta MetaOption `group:"Meta Options"`
	Rm   RmOption   `group:"Compatible (rm) Options"`
}

type MetaOption struct {
	Version  bool   `long:"version" description:"Show version"`
	Config   string `long:"config" description:"Path to config file" value-name:"PATH"`
	TrashDir string `long:"trash-dir" description:"Move files into this directory instead of ~/.Trash" value-name:"PATH"`
	Debug    string `long:"debug" description:"View debug logs (default: \"full\")" optional-value:"full" optional:"yes" choice:"full" choice:"live"`
	Init     string `long:"init" description:"Print a snippet that runs rmtrash as rm" value-name:"SHELL" choice:"bash" choice:"zsh" choice:"fish"`
}

// RmOption holds the long spellings of rm flags
type RmOption struct {
	Recursive   bool `long:"recursive" description:"same as -r"`
	Force       bool `long:"force" description:"same as -f"`
	Interactive bool `long:"interactive" description:"same as -i"`
	Dir         bool `long:"dir" description:"same as -d"`
	Verbose     bool `long:"verbose" description:"same as -v"`
}

const shortHelp = `
Short Options:
  -r, -R       remove directories and their contents recursively
  -d           remove empty directories
  -f           never prompt
  -i           prompt before every removal
  -I           prompt once before removing more than three files
  -v           explain what is being done
  -P           ignored
  --           treat every following argument as a file
`

// long options that take a value in the following token
var valueOptions = []string{"--config", "--trash-dir", "--init"}

// splitArgs separates long options, which go to go-flags, from everything
// else. Nothing after a bare "--" is taken as an option.
func splitArgs(args []string) (long, rest []string) {
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "--":
			return long, append(rest, args[i:]...)
		case strings.HasPrefix(arg, "--"):
			long = append(long, arg)
			if takesValue(arg) && i+1 < len(args) {
				i++
				long = append(long, args[i])
			}
		default:
			rest = append(rest, arg)
		}
	}
	return long, rest
}

func takesValue(arg string) bool {
	for _, name := range valueOptions {
		if arg == name {
			return true
		}
	}
	return false
}

func newParser(opt *Option, appName string) *flags.Parser {
	parser := flags.NewParser(opt, flags.HelpFlag)
	parser.Name = appName
	parser.Usage = "[OPTIONS] [-rRdfiIvP] [--] FILE..."
	return parser
}

// parseMeta parses the long options in args and returns the remaining
// arguments for ParseArgs.
func parseMeta(args []string, appName string) (Option, []string, error) {
	var opt Option
	long, rest := splitArgs(args)

	leftover, err := newParser(&opt, appName).ParseArgs(long)
	if err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrUnknownFlag {
			return opt, nil, &OptionError{Option: flagName(ferr.Message), Err: ErrUnknownOption}
		}
		return opt, nil, err
	}
	return opt, append(leftover, rest...), nil
}

// flagName pulls the option name out of go-flags' "unknown flag `name'" message
func flagName(msg string) string {
	start := strings.IndexByte(msg, '`')
	end := strings.LastIndexByte(msg, '\'')
	if start < 0 || end <= start {
		return msg
	}
	return "--" + msg[start+1:end]
}

// Policy returns the policy selected by the long rm aliases
func (o RmOption) Policy() trash.Policy {
	var p trash.Policy
	p.Recursive = o.Recursive
	p.AllowEmptyDirDelete = o.Dir
	p.Verbose = o.Verbose
	switch {
	case o.Force:
		p.UseForce()
	case o.Interactive:
		p.UsePromptEach()
	}
	return p
}
