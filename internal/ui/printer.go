package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/spetersoncode/gitscribe/git"
)

// Palette
var (
	colorInfo    = lipgloss.Color("#0099ff")
	colorSuccess = lipgloss.Color("#00c853")
	colorWarning = lipgloss.Color("#ffaa00")
	colorMuted   = lipgloss.Color("#808080")
	colorBorder  = lipgloss.Color("#3d5a80")
)

// Printer writes styled messages for the user.
type Printer struct {
	w       io.Writer
	info    lipgloss.Style
	success lipgloss.Style
	warn    lipgloss.Style
	label   lipgloss.Style
	heading lipgloss.Style
	box     lipgloss.Style
}

// NewPrinter returns a Printer for w. Colours are dropped automatically
// when w is not a terminal.
func NewPrinter(w io.Writer) *Printer {
	r := lipgloss.NewRenderer(w)
	return &Printer{
		w:       w,
		info:    r.NewStyle().Foreground(colorInfo),
		success: r.NewStyle().Foreground(colorSuccess).Bold(true),
		warn:    r.NewStyle().Foreground(colorWarning),
		label:   r.NewStyle().Foreground(colorMuted),
		heading: r.NewStyle().Bold(true),
		box:     r.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorBorder).Padding(0, 1),
	}
}

// Info prints a neutral notice.
func (p *Printer) Info(msg string) {
	fmt.Fprintln(p.w, p.info.Render(msg))
}

// Success prints a completion notice.
func (p *Printer) Success(msg string) {
	fmt.Fprintln(p.w, p.success.Render(msg))
}

// Warn prints a warning.
func (p *Printer) Warn(msg string) {
	fmt.Fprintln(p.w, p.warn.Render("warning: "+msg))
}

// Status prints the staged files grouped by kind.
func (p *Printer) Status(changes []git.Change) {
	fmt.Fprintln(p.w, p.heading.Render("Staged changes"))
	for _, line := range FormatChanges(changes) {
		fmt.Fprintln(p.w, p.label.Render(line.Label)+line.Path)
	}
}

// Preview prints a commit message inside a box under heading.
func (p *Printer) Preview(heading, message string) {
	fmt.Fprintln(p.w, p.heading.Render(heading))
	fmt.Fprintln(p.w, p.box.Render(message))
}

// ChangeLine is one row of the staged file listing.
type ChangeLine struct {
	Label string // kind followed by padding, e.g. "  added:    "
	Path  string
}

var changeOrder = []git.ChangeKind{git.Added, git.Modified, git.Renamed, git.Deleted}

// FormatChanges orders changes added, modified, renamed, deleted and pads
// the labels so paths line up.
func FormatChanges(changes []git.Change) []ChangeLine {
	groups := git.Group(changes)

	width := 0
	for _, k := range changeOrder {
		if len(groups[k]) > 0 {
			width = max(width, len(k)+1)
		}
	}

	var lines []ChangeLine
	for _, k := range changeOrder {
		for _, c := range groups[k] {
			path := c.Path
			if c.Kind == git.Renamed && c.From != "" {
				path = c.From + " -> " + c.Path
			}
			label := string(k) + ":"
			lines = append(lines, ChangeLine{
				Label: "  " + label + strings.Repeat(" ", width-len(label)+1),
				Path:  path,
			})
		}
	}
	return lines
}
