package parser

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// boxRun is the horizontal connector drawn by tree(1) after ├ and └
const boxRun = "──"

// asciiConnectors are the connectors used by tree --charset ascii and similar tools
var asciiConnectors = []string{"|--", "`--", "+--"}

// prefixChars are the characters allowed in an indentation prefix
// when a line has no connector.
const prefixChars = " \t\u00a0│├└─|-"

var inlineCommentRegex = regexp.MustCompile(`\s+#.*$`)

// ExtractNameAndPrefix splits a raw line into its cleaned entry name and the
// indentation prefix in front of it. branched is true when the name follows a
// connector run ("├── name", "└── name", "|-- name").
//
// When a line holds several connector runs the last one wins. Lines without a
// connector use their leading run of whitespace and tree-drawing characters
// as the prefix.
func ExtractNameAndPrefix(line string) (name, prefix string, branched bool) {
	if start, end := lastConnector(line); start >= 0 {
		rest := strings.TrimLeftFunc(line[end:], unicode.IsSpace)
		if rest != "" {
			return CleanName(rest), line[:start], true
		}
	}

	rest := strings.TrimLeft(line, prefixChars)
	prefix = line[:len(line)-len(rest)]
	return CleanName(rest), prefix, false
}

// lastConnector returns the byte range of the right-most connector run in line,
// or (-1, -1) if there is none.
func lastConnector(line string) (start, end int) {
	start, end = -1, -1

	if i := strings.LastIndex(line, boxRun); i >= 0 {
		s := i
		for s > 0 {
			r, size := utf8.DecodeLastRuneInString(line[:s])
			if r != '─' {
				break
			}
			s -= size
		}
		start, end = s, i+len(boxRun)
	}

	for _, c := range asciiConnectors {
		i := strings.LastIndex(line, c)
		if i < 0 || i <= start {
			continue
		}
		e := i + len(c)
		for e < len(line) && line[e] == '-' {
			e++
		}
		start, end = i, e
	}

	return start, end
}

// CleanName strips a trailing inline comment, surrounding whitespace and one
// pair of enclosing quotes.
func CleanName(s string) string {
	s = inlineCommentRegex.ReplaceAllString(s, "")
	s = strings.TrimSpace(s)

	if quoted(s, '"') || quoted(s, '\'') {
		if len(s) < 2 {
			return ""
		}
		s = strings.TrimSpace(s[1 : len(s)-1])
	}
	return s
}

func quoted(s string, q byte) bool {
	return s != "" && s[0] == q && s[len(s)-1] == q
}
