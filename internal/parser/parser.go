// Package parser recovers path structure from tree diagrams.
//
// The functions here are pure and line oriented: a line is filtered
// (IsIgnorable), split into prefix and name (ExtractNameAndPrefix), given a
// depth (LineDepth), vetted (CheckName), pushed onto a PathStack and turned
// into a filesystem-safe Target (Sanitize). State across lines lives in the
// caller.
package parser

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// StdinPath is the input path that selects standard input
const StdinPath = "-"

// Format represents the format of a tree input file
type Format int

const (
	// FormatText is a plain tree diagram
	FormatText Format = iota
	// FormatMarkdown is a Markdown document with the diagram in code blocks
	FormatMarkdown
)

// String returns the string representation of the Format
func (f Format) String() string {
	switch f {
	case FormatMarkdown:
		return "markdown"
	default:
		return "text"
	}
}

// DetectFormat detects the input format from the file extension.
// .md and .markdown are Markdown, everything else is plain text.
func DetectFormat(filename string) Format {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".md", ".markdown":
		return FormatMarkdown
	default:
		return FormatText
	}
}

// OpenInput opens a tree input for streaming. StdinPath reads from stdin.
// Markdown files are reduced to their tree code blocks first.
// Failing to open the input is the only fatal input error.
func OpenInput(path string, stdin io.Reader) (io.ReadCloser, error) {
	var rc io.ReadCloser
	if path == StdinPath {
		rc = io.NopCloser(stdin)
	} else {
		file, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open input: %w", err)
		}
		rc = file
	}

	if DetectFormat(path) != FormatMarkdown {
		return rc, nil
	}
	defer rc.Close()

	content, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("failed to read markdown input: %w", err)
	}
	tree, err := NewMarkdownExtractor().Extract(content)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return io.NopCloser(bytes.NewReader(tree)), nil
}
