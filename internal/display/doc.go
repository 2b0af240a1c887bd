// Package display renders the user-facing parts of a treegen run: the end of
// run summary and warning blocks.
//
// # Summary
//
//	summary := display.NewSummary(os.Stdout)
//	summary.Render(result)
//
// prints
//
//	=== Summary ===
//	Directories created: 2
//	Files created: 1
//
//	Skipped entries:
//	 - too long: aaaaaaaa...
//	  ... 3 more skipped
//
// At most SkipPreview skip records are listed and names longer than NameLimit
// runes are cut with "...".
//
// # Warnings
//
//	warning := display.Warning{
//	    Title:      "Nothing to create",
//	    Message:    "No tree entries were found in tree.txt",
//	    Suggestion: "Check that the file contains a tree listing",
//	}
//	warning.Display(os.Stderr)
//
// Colour is used only when the writer is a terminal and NO_COLOR is unset.
// All functions accept io.Writer so output can be captured in tests.
package display
