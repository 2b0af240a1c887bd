package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// Warning represents a user-facing warning message
type Warning struct {
	Title      string   // Main warning title
	Message    string   // Detailed explanation (optional)
	Items      []string // Related inputs or paths (optional)
	Suggestion string   // Action to take (optional)
}

// Display shows a formatted warning, in yellow on a terminal
func (w Warning) Display(out io.Writer) {
	c := paint(UseColor(out), color.FgYellow)

	var b strings.Builder
	b.WriteString("Warning: ")
	b.WriteString(w.Title)
	b.WriteString("\n")

	if w.Message != "" {
		b.WriteString("    ")
		b.WriteString(w.Message)
		b.WriteString("\n")
	}

	for i, item := range w.Items {
		fmt.Fprintf(&b, "      %d. %s\n", i+1, item)
	}

	if w.Suggestion != "" {
		b.WriteString("    Suggestion:\n")
		b.WriteString("    ")
		b.WriteString(w.Suggestion)
		b.WriteString("\n")
	}

	fmt.Fprint(out, c.Sprint(b.String()))
}

// WarnNothingCreated builds the warning shown when a run produced no entries.
func WarnNothingCreated(input string, skipped int) Warning {
	w := Warning{
		Title:      "Nothing to create",
		Message:    fmt.Sprintf("No tree entries were taken from %s", input),
		Suggestion: "Check that the input contains a tree listing with ├── / └── connectors",
	}
	if skipped > 0 {
		w.Message = fmt.Sprintf("All %d entries from %s were skipped", skipped, input)
		w.Suggestion = "Raise --maxlen or review the skipped entries above"
	}
	return w
}
