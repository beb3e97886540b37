package ui

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// LinePrompter asks yes/no questions by reading one line of input per question.
// The same LinePrompter must be used for a whole batch so that input buffered
// for later questions is not lost.
type LinePrompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewLinePrompter returns a prompter reading answers from in and writing questions to out.
func NewLinePrompter(in io.Reader, out io.Writer) *LinePrompter {
	return &LinePrompter{
		in:  bufio.NewReader(in),
		out: out,
	}
}

// Ask writes question and reads a line. Any answer starting with y or Y
// accepts; everything else, including end of input, declines.
func (p *LinePrompter) Ask(question string) (bool, error) {
	if _, err := fmt.Fprintf(p.out, "%s ", question); err != nil {
		return false, err
	}

	line, err := p.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		fmt.Fprintln(p.out)
		return false, err
	}

	return IsYes(line), nil
}

// IsYes reports whether answer is affirmative.
func IsYes(answer string) bool {
	answer = strings.TrimSpace(answer)
	return strings.HasPrefix(answer, "y") || strings.HasPrefix(answer, "Y")
}
