package parser

import (
	"bytes"
	"errors"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// treeLanguage is the fenced code block info string that marks a tree diagram
const treeLanguage = "tree"

// ErrNoTreeBlock is returned when a Markdown document holds no tree diagram
var ErrNoTreeBlock = errors.New("no tree code block found in markdown")

// MarkdownExtractor pulls tree diagrams out of Markdown code blocks
type MarkdownExtractor struct {
	markdown goldmark.Markdown
}

type codeBlock struct {
	language string
	content  []byte
}

// NewMarkdownExtractor creates a MarkdownExtractor
func NewMarkdownExtractor() *MarkdownExtractor {
	return &MarkdownExtractor{
		markdown: goldmark.New(),
	}
}

// Extract returns the concatenated tree diagrams found in source.
// Fenced blocks tagged "tree" take precedence; without any, every code
// block that contains a connector is used.
func (m *MarkdownExtractor) Extract(source []byte) ([]byte, error) {
	doc := m.markdown.Parser().Parse(text.NewReader(source))

	var blocks []codeBlock
	err := ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch node := n.(type) {
		case *ast.FencedCodeBlock:
			blocks = append(blocks, codeBlock{
				language: strings.ToLower(string(node.Language(source))),
				content:  blockContent(node, source),
			})
			return ast.WalkSkipChildren, nil
		case *ast.CodeBlock:
			blocks = append(blocks, codeBlock{content: blockContent(node, source)})
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		return nil, err
	}

	var tagged, connected []codeBlock
	for _, b := range blocks {
		if b.language == treeLanguage {
			tagged = append(tagged, b)
		} else if ContainsConnector(string(b.content)) {
			connected = append(connected, b)
		}
	}

	selected := tagged
	if len(selected) == 0 {
		selected = connected
	}
	if len(selected) == 0 {
		return nil, ErrNoTreeBlock
	}

	var buf bytes.Buffer
	for _, b := range selected {
		buf.Write(b.content)
		if !bytes.HasSuffix(b.content, []byte("\n")) {
			buf.WriteByte('\n')
		}
	}
	return buf.Bytes(), nil
}

// ContainsConnector reports whether s holds any tree connector
func ContainsConnector(s string) bool {
	if strings.Contains(s, boxRun) {
		return true
	}
	for _, c := range asciiConnectors {
		if strings.Contains(s, c) {
			return true
		}
	}
	return false
}

func blockContent(n ast.Node, source []byte) []byte {
	var buf bytes.Buffer
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		buf.Write(seg.Value(source))
	}
	return buf.Bytes()
}
