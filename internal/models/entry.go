package models

// Entry kind constants
const (
	KindDir  = "dir"
	KindFile = "file"
)

// Target is a sanitized path ready to be materialized
type Target struct {
	Path  string // Path relative to the output root, joined with the OS separator
	IsDir bool   // Whether the last segment carried a trailing "/" marker
}

// Kind returns KindDir or KindFile
func (t Target) Kind() string {
	if t.IsDir {
		return KindDir
	}
	return KindFile
}

// Entry is one accepted line of a tree diagram
type Entry struct {
	Line   int    // 1-based line number in the input
	Raw    string // Line as read, without the newline
	Name   string // Cleaned entry name, may still end with "/"
	Depth  int    // Nesting depth derived from the prefix
	Target Target // Sanitized path for the whole ancestor chain
}

// SkipRecord describes a line or path that was not materialized
type SkipRecord struct {
	Target string `yaml:"target" json:"target"` // Entry name or path
	Reason string `yaml:"reason" json:"reason"` // Human-readable reason
}
