package ops

import (
	"fmt"
	"html"
	"strings"
)

// HelpText renders the notice sent for unrecognized commands. The result is
// HTML-safe.
func HelpText(reg *Registry) string {
	all := reg.List()
	if len(all) == 0 {
		return "No commands available."
	}

	var b strings.Builder
	b.WriteString("🤖 Supported commands:")
	for _, op := range all {
		line := "/" + op.Name()
		if usage := UsageOf(op); usage != "" {
			line += " " + usage
		}
		fmt.Fprintf(&b, "\n• %s", html.EscapeString(line))
	}
	return b.String()
}
