package generate

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	ai "github.com/spetersoncode/gitscribe"
)

// CommitFields is the structured response requested from models that
// support a response schema.
type CommitFields struct {
	SummaryLine string   `json:"summary_line"`
	ExtraLines  []string `json:"extra_lines"`
}

var commitSchema = &ai.ResponseSchema{
	Name:        "commit_message",
	Description: "A Git commit message split into its summary line and detail lines",
	Schema: ai.SchemaFrom[CommitFields]().
		Desc("summary_line", "One-line summary of the change in the imperative mood").
		Desc("extra_lines", "One entry per notable detail of the change").
		Required("summary_line", "extra_lines").
		Build(),
}

// ErrEmptySummary is returned when a structured response has no summary line.
var ErrEmptySummary = errors.New("structured response has an empty summary_line")

// RenderStructured parses a structured response and renders it as a commit
// message: the summary line, a blank line, then one "- " line per detail.
func RenderStructured(raw string) (string, error) {
	var f CommitFields
	if err := json.Unmarshal([]byte(stripFences(raw)), &f); err != nil {
		return "", fmt.Errorf("invalid structured response: %w", err)
	}

	summary := strings.TrimSpace(f.SummaryLine)
	if summary == "" {
		return "", ErrEmptySummary
	}

	lines := []string{summary, ""}
	for _, l := range f.ExtraLines {
		l = strings.TrimSpace(l)
		if l == "" {
			continue
		}
		if !strings.HasPrefix(l, "- ") {
			l = "- " + l
		}
		lines = append(lines, l)
	}
	return strings.Join(lines, "\n"), nil
}

// stripFences removes a Markdown code fence some backends wrap JSON in.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[i+1:]
	}
	return strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "```"))
}
