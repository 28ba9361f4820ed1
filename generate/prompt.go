package generate

import (
	"strings"
)

const roleStatement = `You are an experienced software engineer writing a Git commit message for a set of staged changes.`

const inputFormat = `The input has two parts. The first is a diffstat: one line per changed file with the number of changed lines, followed by a summary of files changed, insertions and deletions. The second is the unified diff of the staged changes.`

const diffSyntax = `Reading the diff:
- "diff --git a/<path> b/<path>" starts the changes for one file.
- Lines starting with "@@" mark where a hunk begins in the old and new file.
- Lines starting with "+" were added and lines starting with "-" were removed.
- Lines starting with a space are unchanged context; do not describe them as changes.
- "new file mode", "deleted file mode" and "rename from/to" headers mark added, deleted and renamed files.`

const structuredFormat = `Respond with a JSON object with exactly two fields:
- "summary_line": one line summarizing the whole change.
- "extra_lines": an array of strings, each describing one notable aspect of the change. Do not start them with a dash; formatting is applied afterwards.`

const unstructuredFormat = `Respond with the commit message only, in exactly this format:
- line 1: a summary line
- line 2: empty
- every following line: a detail starting with "- "
Do not wrap the message in quotes or code fences and do not add any commentary.`

const styleGuide = `Style:
- Write the summary line in the imperative mood ("Add", "Fix", "Remove"), at most 72 characters, without a trailing period.
- Say what changed and why. Leave out how, unless it is the interesting part.
- Give each detail line a single concrete point. Prefer two to six detail lines.
- Do not mention the diffstat, line counts or file counts.
- Never reproduce credentials, tokens or other secrets that appear in the diff.`

const closingDirective = `Write the commit message for the changes below.`

// truncationNotice is appended to the user turn when the diff was cut.
const truncationNotice = "[diff truncated to fit the model context window]"

// SystemPrompt assembles the system prompt for the given output mode.
func SystemPrompt(structured bool, extra []string) string {
	parts := []string{roleStatement, inputFormat, diffSyntax}
	if structured {
		parts = append(parts, structuredFormat)
	} else {
		parts = append(parts, unstructuredFormat)
	}
	parts = append(parts, styleGuide)

	var lines []string
	for _, e := range extra {
		if e = strings.TrimSpace(e); e != "" {
			lines = append(lines, "- "+e)
		}
	}
	if len(lines) > 0 {
		parts = append(parts, "Additional instructions:\n"+strings.Join(lines, "\n"))
	}

	parts = append(parts, closingDirective)
	return strings.Join(parts, "\n\n")
}

// UserPrompt lays out the diffstat and diff as the user turn.
func UserPrompt(diffstat, diff string, truncated bool) string {
	var b strings.Builder
	b.WriteString("Diffstat:\n")
	b.WriteString(diffstat)
	b.WriteString("\n\nDiff:\n")
	b.WriteString(diff)
	if truncated {
		b.WriteString("\n")
		b.WriteString(truncationNotice)
	}
	return b.String()
}
