package parser

import "strings"

// indentUnit is the width of one indentation level drawn with spaces
const indentUnit = "    "

// DepthFromPrefix approximates the nesting depth encoded in an indentation prefix:
// one level per vertical bar, per tab and per run of four spaces (non-overlapping,
// left to right). Trees with inconsistent spacing may produce wrong depths.
func DepthFromPrefix(prefix string) int {
	prefix = strings.ReplaceAll(prefix, "\u00a0", " ")
	return strings.Count(prefix, "│") +
		strings.Count(prefix, "|") +
		strings.Count(prefix, "\t") +
		strings.Count(prefix, indentUnit)
}

// LineDepth is the depth of an entry: the prefix depth, plus one when the name
// hangs off a connector, since the connector itself opens a level below the
// line it branches from. Diagrams without a root line start at depth 1; the
// caller shifts them down.
func LineDepth(prefix string, branched bool) int {
	depth := DepthFromPrefix(prefix)
	if branched {
		depth++
	}
	return depth
}
