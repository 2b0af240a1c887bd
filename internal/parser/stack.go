package parser

// PathStack is the chain of ancestor names leading to the most recent entry
type PathStack struct {
	segments []string
}

// Push truncates the stack to depth elements when depth is below its length,
// then appends name. A depth beyond the current length appends without
// creating placeholder ancestors. The returned slice is a copy.
func (s *PathStack) Push(depth int, name string) []string {
	if depth < 0 {
		depth = 0
	}
	if depth < len(s.segments) {
		s.segments = s.segments[:depth]
	}
	s.segments = append(s.segments, name)
	return s.Segments()
}

// Segments returns a copy of the current chain
func (s *PathStack) Segments() []string {
	out := make([]string, len(s.segments))
	copy(out, s.segments)
	return out
}

// Len returns the number of names on the stack
func (s *PathStack) Len() int {
	return len(s.segments)
}

// Reset empties the stack
func (s *PathStack) Reset() {
	s.segments = s.segments[:0]
}
