// Package ui handles terminal interaction: yes/no confirmations and
// styled status output.
package ui

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// NormalizeYesNo parses a yes/no answer. The second result is false when
// the input is neither.
func NormalizeYesNo(input string) (answer, ok bool) {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "y", "yes":
		return true, true
	case "n", "no":
		return false, true
	}
	return false, false
}

// Prompter asks yes/no questions on a line-oriented stream.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewPrompter reads answers from in and writes questions to out.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

// Confirm asks question and waits for an answer. An empty answer picks the
// default; anything unrecognised asks again. End of input picks the default.
func (p *Prompter) Confirm(question string, defaultYes bool) (bool, error) {
	hint := "y/N"
	if defaultYes {
		hint = "Y/n"
	}

	for {
		if _, err := fmt.Fprintf(p.out, "%s [%s] ", question, hint); err != nil {
			return false, err
		}

		line, err := p.in.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return false, fmt.Errorf("read answer: %w", err)
		}
		if strings.TrimSpace(line) == "" {
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(p.out)
			}
			return defaultYes, nil
		}
		if answer, ok := NormalizeYesNo(line); ok {
			return answer, nil
		}
		if errors.Is(err, io.EOF) {
			return defaultYes, nil
		}
		fmt.Fprintln(p.out, `Please answer "y" or "n".`)
	}
}
