package executor

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Default permissions for created entries
const (
	DefaultDirPerm  os.FileMode = 0o755
	DefaultFilePerm os.FileMode = 0o644
)

// Materializer turns root-relative paths into directories and files.
// Both operations must be idempotent.
type Materializer interface {
	// EnsureDir creates path and any missing parents
	EnsureDir(path string) error
	// EnsureFile creates an empty file at path unless it already exists.
	// Existing content is never modified. Parents must already exist.
	EnsureFile(path string) error
}

// FSMaterializer creates entries on disk below a root directory
type FSMaterializer struct {
	root     string
	dirPerm  os.FileMode
	filePerm os.FileMode
}

// NewFSMaterializer creates an FSMaterializer rooted at root with default permissions
func NewFSMaterializer(root string) *FSMaterializer {
	return &FSMaterializer{
		root:     root,
		dirPerm:  DefaultDirPerm,
		filePerm: DefaultFilePerm,
	}
}

// Root returns the output root
func (m *FSMaterializer) Root() string {
	return m.root
}

// EnsureDir implements Materializer
func (m *FSMaterializer) EnsureDir(path string) error {
	full, err := m.resolve(path)
	if err != nil {
		return NewEntryError("mkdir", path, err)
	}
	if err := os.MkdirAll(full, m.dirPerm); err != nil {
		return NewEntryError("mkdir", path, err)
	}
	return nil
}

// EnsureFile implements Materializer. The file is opened for appending so
// existing content survives.
func (m *FSMaterializer) EnsureFile(path string) error {
	full, err := m.resolve(path)
	if err != nil {
		return NewEntryError("touch", path, err)
	}
	f, err := os.OpenFile(full, os.O_CREATE|os.O_WRONLY|os.O_APPEND, m.filePerm)
	if err != nil {
		return NewEntryError("touch", path, err)
	}
	if err := f.Close(); err != nil {
		return NewEntryError("touch", path, err)
	}
	return nil
}

// resolve joins path to the root and checks that the result stays inside it
func (m *FSMaterializer) resolve(path string) (string, error) {
	cleanRoot := filepath.Clean(m.root)
	full := filepath.Join(cleanRoot, path)

	rel, err := filepath.Rel(cleanRoot, full)
	if err != nil {
		return "", err
	}
	relSlash := filepath.ToSlash(rel)
	if relSlash == ".." || strings.HasPrefix(relSlash, "../") {
		return "", ErrOutsideRoot
	}
	return full, nil
}

// DryRunMaterializer announces what would be created without touching the filesystem
type DryRunMaterializer struct {
	out  io.Writer
	root string
}

// NewDryRunMaterializer creates a DryRunMaterializer writing to out.
// Announced paths are shown joined to root.
func NewDryRunMaterializer(out io.Writer, root string) *DryRunMaterializer {
	return &DryRunMaterializer{out: out, root: root}
}

// EnsureDir implements Materializer
func (m *DryRunMaterializer) EnsureDir(path string) error {
	fmt.Fprintf(m.out, "[DRY] mkdir -p %s\n", m.display(path))
	return nil
}

// EnsureFile implements Materializer
func (m *DryRunMaterializer) EnsureFile(path string) error {
	fmt.Fprintf(m.out, "[DRY] touch %s\n", m.display(path))
	return nil
}

func (m *DryRunMaterializer) display(path string) string {
	if m.root == "" || m.root == "." {
		return path
	}
	return filepath.Join(m.root, path)
}
