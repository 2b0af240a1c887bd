// Package executor drives a tree diagram through the parsing pipeline and
// materializes the resulting paths.
package executor

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/harrison/treegen/internal/models"
	"github.com/harrison/treegen/internal/parser"
)

// DefaultMaxNameLen is the longest entry name accepted by default
const DefaultMaxNameLen = 120

// RunnerConfig configures a Runner
type RunnerConfig struct {
	MaxNameLen int    // Longest accepted entry name, in characters
	DryRun     bool   // Recorded in the result; the materializer decides behavior
	OutputRoot string // Recorded in the result
}

// Runner owns all state of a single pass over a tree diagram: the path
// stack, the created sets and the skip records. A Runner is not safe for
// concurrent use; Run resets its state so it can be reused sequentially.
type Runner struct {
	materializer Materializer
	logger       Logger
	cfg          RunnerConfig

	stack  parser.PathStack
	result *models.Result

	// depthOffset is 1 when the first entry of the run hangs off a
	// connector, so rootless diagrams start at depth 0.
	depthOffset int
	started     bool
}

// NewRunner creates a Runner. A nil logger discards all events.
func NewRunner(m Materializer, logger Logger, cfg RunnerConfig) *Runner {
	if cfg.MaxNameLen <= 0 {
		cfg.MaxNameLen = DefaultMaxNameLen
	}
	if logger == nil {
		logger = nopLogger{}
	}
	return &Runner{
		materializer: m,
		logger:       logger,
		cfg:          cfg,
	}
}

// Run streams src line by line, materializing every accepted entry.
// Rejected lines and failed creations become skip records; they never stop
// the run. Run returns early only when ctx is done or src cannot be read, in
// which case the partial result is returned together with the error.
func (r *Runner) Run(ctx context.Context, input string, src io.Reader) (*models.Result, error) {
	r.stack.Reset()
	r.depthOffset = 0
	r.started = false
	r.result = models.NewResult(uuid.New().String(), input)
	r.result.DryRun = r.cfg.DryRun
	r.result.OutputRoot = r.cfg.OutputRoot

	r.logger.LogInfo(fmt.Sprintf("Building tree from %s (run %s)", input, r.result.RunID))

	lines := parser.NewLineReader(src)
	for lines.Scan() {
		if err := ctx.Err(); err != nil {
			r.result.Finish()
			return r.result, fmt.Errorf("run cancelled at line %d: %w", lines.Number(), err)
		}
		r.processLine(lines.Number(), lines.Line())
	}
	if err := lines.Err(); err != nil {
		r.result.Finish()
		return r.result, fmt.Errorf("failed to read input: %w", err)
	}

	r.result.Finish()
	r.logger.LogSummary(r.result)
	return r.result, nil
}

// processLine runs one raw line through filter, extractor, validator,
// stack and sanitizer, then materializes the target.
func (r *Runner) processLine(num int, raw string) {
	if parser.IsIgnorable(raw) {
		return
	}

	name, prefix, branched := parser.ExtractNameAndPrefix(raw)
	if name == "" {
		return
	}

	if reason, ok := parser.CheckName(name, r.cfg.MaxNameLen); !ok {
		r.skip(name, reason)
		return
	}

	entry := models.Entry{
		Line:  num,
		Raw:   raw,
		Name:  name,
		Depth: r.depth(prefix, branched),
	}
	segments := r.stack.Push(entry.Depth, name)
	target, ok := parser.Sanitize(segments)
	if !ok {
		r.logger.LogDebug(fmt.Sprintf("line %d: %q names no path, ignored", num, name))
		return
	}
	entry.Target = target

	r.logger.LogDebug(fmt.Sprintf("line %d: depth %d -> %s (%s)", num, entry.Depth, entry.Target.Path, entry.Target.Kind()))
	r.materialize(entry.Target)
}

// depth returns the entry depth relative to the top of the diagram.
func (r *Runner) depth(prefix string, branched bool) int {
	if !r.started {
		r.started = true
		if branched {
			r.depthOffset = 1
		}
	}
	depth := parser.LineDepth(prefix, branched) - r.depthOffset
	if depth < 0 {
		return 0
	}
	return depth
}

// materialize creates the target. Files get their parent chain first; the
// parent is recorded as a created directory like any other.
func (r *Runner) materialize(t models.Target) {
	path := filepath.Clean(t.Path)
	if path == "." || path == string(filepath.Separator) {
		return
	}

	if t.IsDir {
		r.ensureDir(path)
		return
	}

	if parent := filepath.Dir(path); parent != "." && parent != string(filepath.Separator) {
		if !r.ensureDir(parent) {
			return
		}
	}

	if err := r.materializer.EnsureFile(path); err != nil {
		r.skip(path, createFailed(err))
		return
	}
	if r.result.AddFile(path) {
		r.logger.LogDebug("file: " + path)
	}
}

func (r *Runner) ensureDir(path string) bool {
	if err := r.materializer.EnsureDir(path); err != nil {
		r.skip(path, createFailed(err))
		return false
	}
	if r.result.AddDir(path) {
		r.logger.LogDebug("dir: " + path)
	}
	return true
}

func (r *Runner) skip(target, reason string) {
	rec := r.result.AddSkip(target, reason)
	r.logger.LogSkip(rec)
}

func createFailed(err error) string {
	return "create failed: " + err.Error()
}

// nopLogger discards all events
type nopLogger struct{}

func (nopLogger) LogDebug(string) {}
func (nopLogger) LogInfo(string) {}
func (nopLogger) LogWarn(string) {}
func (nopLogger) LogError(string) {}
func (nopLogger) LogSkip(models.SkipRecord) {}
func (nopLogger) LogSummary(*models.Result) {}
