package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/harrison/treegen/internal/models"
)

const (
	// DefaultSkipPreview is how many skip records the summary lists
	DefaultSkipPreview = 15
	// DefaultNameLimit is the rune length after which skipped names are cut
	DefaultNameLimit = 120
)

// Summary renders the end of run report to its writer
type Summary struct {
	SkipPreview int
	NameLimit   int
	Color       bool

	out io.Writer
}

// NewSummary returns a Summary writing to out with default limits, coloured
// when out is a terminal.
func NewSummary(out io.Writer) *Summary {
	return &Summary{
		SkipPreview: DefaultSkipPreview,
		NameLimit:   DefaultNameLimit,
		Color:       UseColor(out),
		out:         out,
	}
}

// Render writes the summary of result.
func (s *Summary) Render(result *models.Result) {
	if result == nil {
		return
	}

	header := paint(s.Color, color.Bold)
	count := paint(s.Color, color.FgGreen)
	warn := paint(s.Color, color.FgYellow)

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(header.Sprint("=== Summary ==="))
	b.WriteString("\n")
	if result.DryRun {
		b.WriteString("(dry run, nothing was written)\n")
	}
	fmt.Fprintf(&b, "Directories created: %s\n", count.Sprint(len(result.CreatedDirs)))
	fmt.Fprintf(&b, "Files created: %s\n", count.Sprint(len(result.CreatedFiles)))

	if len(result.Skipped) > 0 {
		b.WriteString("\n")
		b.WriteString(warn.Sprint("Skipped entries:"))
		b.WriteString("\n")

		shown := result.Skipped
		if s.SkipPreview >= 0 && len(shown) > s.SkipPreview {
			shown = shown[:s.SkipPreview]
		}
		for _, skip := range shown {
			fmt.Fprintf(&b, " - %s: %s\n", skip.Reason, Truncate(skip.Target, s.NameLimit))
		}
		if rest := len(result.Skipped) - len(shown); rest > 0 {
			fmt.Fprintf(&b, "  ... %d more skipped\n", rest)
		}
	}

	fmt.Fprint(s.out, b.String())
}

// Truncate cuts name to limit runes and appends "..." when it is longer.
// A limit of zero or less leaves the name untouched.
func Truncate(name string, limit int) string {
	if limit <= 0 {
		return name
	}
	runes := []rune(name)
	if len(runes) <= limit {
		return name
	}
	return string(runes[:limit]) + "..."
}
