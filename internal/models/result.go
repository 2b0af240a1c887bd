package models

import "time"

// Skip reasons produced while scanning
const (
	ReasonTooLong  = "too long"
	ReasonSentence = "probable descriptive sentence"
)

// Result accumulates everything a single run produced.
// Created sets keep insertion order and never hold duplicates.
type Result struct {
	RunID        string        `yaml:"run_id"`
	Input        string        `yaml:"input"`
	OutputRoot   string        `yaml:"output_root"`
	DryRun       bool          `yaml:"dry_run"`
	CreatedDirs  []string      `yaml:"created_dirs"`
	CreatedFiles []string      `yaml:"created_files"`
	Skipped      []SkipRecord  `yaml:"skipped"`
	StartedAt    time.Time     `yaml:"started_at"`
	Duration     time.Duration `yaml:"duration"`

	dirSet  map[string]struct{}
	fileSet map[string]struct{}
}

// NewResult creates an empty Result for the given run
func NewResult(runID, input string) *Result {
	return &Result{
		RunID:        runID,
		Input:        input,
		CreatedDirs:  make([]string, 0),
		CreatedFiles: make([]string, 0),
		Skipped:      make([]SkipRecord, 0),
		StartedAt:    time.Now(),
		dirSet:       make(map[string]struct{}),
		fileSet:      make(map[string]struct{}),
	}
}

// AddDir records a created directory. Returns false if it was already recorded.
func (r *Result) AddDir(path string) bool {
	if r.dirSet == nil {
		r.dirSet = make(map[string]struct{})
	}
	if _, ok := r.dirSet[path]; ok {
		return false
	}
	r.dirSet[path] = struct{}{}
	r.CreatedDirs = append(r.CreatedDirs, path)
	return true
}

// AddFile records a created file. Returns false if it was already recorded.
func (r *Result) AddFile(path string) bool {
	if r.fileSet == nil {
		r.fileSet = make(map[string]struct{})
	}
	if _, ok := r.fileSet[path]; ok {
		return false
	}
	r.fileSet[path] = struct{}{}
	r.CreatedFiles = append(r.CreatedFiles, path)
	return true
}

// AddSkip appends a skip record
func (r *Result) AddSkip(target, reason string) SkipRecord {
	rec := SkipRecord{Target: target, Reason: reason}
	r.Skipped = append(r.Skipped, rec)
	return rec
}

// HasDir reports whether path is in the created-directories set
func (r *Result) HasDir(path string) bool {
	_, ok := r.dirSet[path]
	return ok
}

// HasFile reports whether path is in the created-files set
func (r *Result) HasFile(path string) bool {
	_, ok := r.fileSet[path]
	return ok
}

// Finish stamps the run duration
func (r *Result) Finish() {
	r.Duration = time.Since(r.StartedAt)
}
