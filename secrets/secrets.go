// Package secrets scans diff text for values that look like leaked
// credentials before the diff leaves the machine.
//
// The scan walks lines bottom to top. A line ending in " not secret", or
// containing a URL, clears every token on it, so the same literal seen
// higher up in the diff is not flagged. A line ending in " # secret" or
// " // secret" is always a detection. Git's own file headers are skipped.
package secrets

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/zap"
)

// MinSuspectLength is the shortest token considered a possible secret.
const MinSuspectLength = 20

const exemptSuffix = " not secret"

var (
	markerSuffixes = []string{" # secret", " // secret"}
	headerPrefixes = []string{
		"diff --git ", "index ", "--- a/", "+++ b/", "--- /dev/null", "+++ /dev/null",
		`--- "a/`, `+++ "b/`, "new file mode ", "deleted file mode ", "old mode ", "new mode ",
		"similarity index ", "dissimilarity index ", "rename from ", "rename to ",
		"copy from ", "copy to ", "Binary files ",
	}
	allowList      = []string{"http://", "https://"}

	alnumToken = regexp.MustCompile(`[A-Za-z0-9]+`)
	token      = regexp.MustCompile(`[A-Za-z0-9/+]+`)

	plainShapes = []*regexp.Regexp{
		regexp.MustCompile(`^[A-Za-z]+$`),
		regexp.MustCompile(`^[A-Za-z]+[0-9]+$`),
		regexp.MustCompile(`^[A-Za-z]+[0-9]+[A-Za-z]+$`),
		regexp.MustCompile(`^[0-9]+$`),
	}
)

// ErrSecretDetected matches any *DetectedError.
var ErrSecretDetected = errors.New("secret detected")

// DetectedError reports a probable secret in the diff.
type DetectedError struct {
	Line  string // trimmed line the secret was found on
	Token string // suspect token, empty for explicitly marked lines
}

func (e *DetectedError) Error() string {
	if e.Token != "" {
		return fmt.Sprintf("possible secret %q in diff line: %s", e.Token, e.Line)
	}
	return fmt.Sprintf("line marked as secret in diff: %s", e.Line)
}

func (e *DetectedError) Is(target error) bool {
	return target == ErrSecretDetected
}

// Confirmer asks the user a yes/no question and blocks for the answer.
type Confirmer interface {
	Confirm(question string, defaultYes bool) (bool, error)
}

// Option configures a Scanner.
type Option func(*Scanner)

// WithConfirmer sets who is asked about suspect tokens in interactive mode.
func WithConfirmer(c Confirmer) Option {
	return func(s *Scanner) {
		s.confirm = c
	}
}

// Interactive enables asking about suspect tokens. Without it every
// suspect is reported as a secret.
func Interactive(on bool) Option {
	return func(s *Scanner) {
		s.interactive = on
	}
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Scanner) {
		s.log = l
	}
}

// Scanner finds probable secrets in diff text.
type Scanner struct {
	confirm     Confirmer
	interactive bool
	log         *zap.Logger
}

// New creates a Scanner. It is non-interactive unless configured otherwise.
func New(opts ...Option) *Scanner {
	s := &Scanner{log: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// cleared holds the tokens one scan has accepted as not secret.
type cleared map[string]struct{}

func (c cleared) add(tokens ...string) {
	for _, t := range tokens {
		c[t] = struct{}{}
	}
}

func (c cleared) has(t string) bool {
	_, ok := c[t]
	return ok
}

// Scan returns a *DetectedError for the first probable secret found,
// scanning from the last line up. Errors from the Confirmer are returned
// as-is.
func (s *Scanner) Scan(diff string) error {
	lines := strings.Split(diff, "\n")
	ok := make(cleared)

	for i := len(lines) - 1; i >= 0; i-- {
		line := strings.TrimRight(lines[i], " \t\r")
		if line == "" || isHeader(line) {
			continue
		}

		if isExempt(line) {
			body := stripDiffMarker(line)
			ok.add(alnumToken.FindAllString(body, -1)...)
			ok.add(token.FindAllString(body, -1)...)
			continue
		}
		if isMarked(line) {
			return &DetectedError{Line: strings.TrimSpace(line)}
		}

		for _, t := range token.FindAllString(stripDiffMarker(line), -1) {
			if ok.has(t) || isPlain(t) || len(t) < MinSuspectLength {
				continue
			}
			secret, err := s.judge(t, line)
			if err != nil {
				return err
			}
			if secret {
				return &DetectedError{Line: strings.TrimSpace(line), Token: t}
			}
			ok.add(t)
		}
	}
	return nil
}

// judge decides whether a suspect token is a secret.
func (s *Scanner) judge(t, line string) (bool, error) {
	if !s.interactive || s.confirm == nil {
		s.log.Debug("suspect token flagged without asking", zap.String("token", t))
		return true, nil
	}
	question := fmt.Sprintf("Possible secret %q in line:\n  %s\nIs this a secret?", t, strings.TrimSpace(line))
	yes, err := s.confirm.Confirm(question, false)
	if err != nil {
		return false, fmt.Errorf("confirming suspect token: %w", err)
	}
	return yes, nil
}

func isExempt(line string) bool {
	if strings.HasSuffix(line, exemptSuffix) {
		return true
	}
	for _, a := range allowList {
		if strings.Contains(line, a) {
			return true
		}
	}
	return false
}

func isHeader(line string) bool {
	for _, p := range headerPrefixes {
		if strings.HasPrefix(line, p) {
			return true
		}
	}
	return false
}

func isMarked(line string) bool {
	for _, m := range markerSuffixes {
		if strings.HasSuffix(line, m) {
			return true
		}
	}
	return false
}

func isPlain(t string) bool {
	for _, re := range plainShapes {
		if re.MatchString(t) {
			return true
		}
	}
	return false
}

// stripDiffMarker drops the leading "+" or "-" of an added or removed line
// so it does not fuse with the first token.
func stripDiffMarker(line string) string {
	if strings.HasPrefix(line, "+") || strings.HasPrefix(line, "-") {
		return line[1:]
	}
	return line
}
