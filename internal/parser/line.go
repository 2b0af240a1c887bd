package parser

import (
	"bufio"
	"io"
	"regexp"
	"strings"
)

var (
	// separatorRegex matches banner lines such as "----", "====" or "## ##"
	separatorRegex = regexp.MustCompile(`^[#=-]{2,}`)

	// treeReportRegex matches the closing report printed by tree(1)
	treeReportRegex = regexp.MustCompile(`^\d+ director(y|ies)(, \d+ files?)?$`)
)

// LineReader streams lines from an input with permissive decoding.
// Invalid UTF-8 sequences are dropped and a leading byte order mark is removed.
// Lines of any length are supported.
type LineReader struct {
	r    *bufio.Reader
	line string
	num  int
	err  error
}

// NewLineReader creates a LineReader over r
func NewLineReader(r io.Reader) *LineReader {
	return &LineReader{r: bufio.NewReader(r)}
}

// Scan advances to the next line. It returns false at end of input or on a read error.
func (lr *LineReader) Scan() bool {
	if lr.err != nil {
		return false
	}

	s, err := lr.r.ReadString('\n')
	if err != nil {
		lr.err = err
		if err != io.EOF || s == "" {
			return false
		}
	}

	lr.num++
	s = strings.ToValidUTF8(strings.TrimRight(s, "\r\n"), "")
	if lr.num == 1 {
		s = strings.TrimPrefix(s, "\ufeff")
	}
	lr.line = s
	return true
}

// Line returns the current line without its line terminator
func (lr *LineReader) Line() string {
	return lr.line
}

// Number returns the 1-based number of the current line
func (lr *LineReader) Number() int {
	return lr.num
}

// Err returns the first non-EOF read error
func (lr *LineReader) Err() error {
	if lr.err == io.EOF {
		return nil
	}
	return lr.err
}

// IsIgnorable reports whether a raw line carries no entry at all:
// blank lines, separator/banner lines and the "N directories, M files" report.
func IsIgnorable(line string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return true
	}
	if separatorRegex.MatchString(trimmed) {
		return true
	}
	return treeReportRegex.MatchString(trimmed)
}
