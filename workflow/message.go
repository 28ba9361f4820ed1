package workflow

import (
	"strings"

	"github.com/spetersoncode/gitscribe/resolve"
)

// FooterKey introduces the attribution line appended to every commit.
const FooterKey = "Generated-by"

// Decorate wraps the summary line in prefix and suffix and appends the
// attribution footer naming the route that produced the message.
func Decorate(message, prefix, suffix string, route resolve.Route) string {
	summary, rest, multiline := strings.Cut(message, "\n")

	var b strings.Builder
	b.WriteString(prefix)
	b.WriteString(summary)
	b.WriteString(suffix)
	if multiline {
		b.WriteString("\n")
		b.WriteString(rest)
	}
	b.WriteString("\n\n")
	b.WriteString(FooterKey)
	b.WriteString(": ")
	b.WriteString(route.String())
	return b.String()
}
