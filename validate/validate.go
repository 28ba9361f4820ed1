// Package validate checks the structure of a commit message.
package validate

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Length bounds, in characters.
const (
	MinLength = 40
	MaxLength = 4000
)

// Outcome is the result of validating a message. Reason is empty when Valid.
type Outcome struct {
	Valid  bool
	Reason string
}

func invalid(format string, args ...any) Outcome {
	return Outcome{Reason: fmt.Sprintf(format, args...)}
}

// Message checks, in order and stopping at the first failure, that text is
// non-blank, within the length bounds, at least three lines long, has a
// blank second line, and that every later line is a "- " or "* " bullet.
func Message(text string) Outcome {
	if strings.TrimSpace(text) == "" {
		return invalid("message is empty")
	}

	n := utf8.RuneCountInString(text)
	if n < MinLength {
		return invalid("message is shorter than %d characters", MinLength)
	}
	if n > MaxLength {
		return invalid("message is longer than %d characters", MaxLength)
	}

	lines := SplitLines(text)
	if len(lines) < 3 {
		return invalid("message has fewer than 3 lines")
	}
	if lines[1] != "" {
		return invalid("second line must be blank")
	}
	for i, line := range lines[2:] {
		if !strings.HasPrefix(line, "- ") && !strings.HasPrefix(line, "* ") {
			return invalid("line %d must start with %q or %q", i+3, "- ", "* ")
		}
	}
	return Outcome{Valid: true}
}

// SplitLines splits on "\n", dropping the "\r" of "\r\n" line endings.
func SplitLines(text string) []string {
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

// Error describes an invalid message.
type Error struct {
	Reason string
}

func (e *Error) Error() string {
	return "invalid commit message: " + e.Reason
}

// Err returns nil for a valid outcome and an *Error otherwise.
func (o Outcome) Err() error {
	if o.Valid {
		return nil
	}
	return &Error{Reason: o.Reason}
}
