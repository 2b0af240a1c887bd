package cmd

import (
	"github.com/spf13/cobra"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// NewRootCommand creates and returns the root cobra command for treegen
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "treegen",
		Short: "Create directories and files from a tree diagram",
		Long: `Treegen reads a textual tree diagram, such as the output of the tree
command or a listing pasted from documentation, and creates the matching
directories and empty files.

Lines that do not look like tree entries are skipped and reported in the
summary. Existing files are never overwritten.`,
		Version: Version,
		// Silence usage on errors to avoid duplicate help text
		SilenceUsage: true,
	}

	cmd.AddCommand(NewBuildCommand())
	cmd.AddCommand(NewHistoryCommand())

	return cmd
}
