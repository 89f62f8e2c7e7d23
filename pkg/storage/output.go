package storage

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"
)

// ErrOutputExists is returned when an output target is already present.
// Outputs are never overwritten or appended to.
var ErrOutputExists = fmt.Errorf("output already exists: %w", fs.ErrExist)

// Output creates the resources phases write their rows to.
type Output interface {
	// Create opens a new resource for writing. It fails with
	// ErrOutputExists if the resource is already present.
	Create(name string) (io.WriteCloser, error)

	// Exists reports whether the named resource is present.
	Exists(name string) (bool, error)

	// Location describes where the named resource lives.
	Location(name string) string
}

// DirOutput writes outputs as files inside a directory.
type DirOutput struct {
	dir string
}

// NewDirOutput returns an Output rooted at dir. The directory is created on
// first use.
func NewDirOutput(dir string) *DirOutput {
	return &DirOutput{dir: dir}
}

// Dir returns the output directory.
func (d *DirOutput) Dir() string { return d.dir }

func (d *DirOutput) Create(name string) (io.WriteCloser, error) {
	if err := os.MkdirAll(d.dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	path := d.Location(name)
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if errors.Is(err, fs.ErrExist) {
		return nil, fmt.Errorf("%w: %s", ErrOutputExists, path)
	}
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", path, err)
	}
	return f, nil
}

func (d *DirOutput) Exists(name string) (bool, error) {
	_, err := os.Stat(d.Location(name))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, fmt.Errorf("stat %s: %w", d.Location(name), err)
}

func (d *DirOutput) Location(name string) string {
	return filepath.Join(d.dir, name)
}

// MemoryOutput keeps outputs in memory. It is used by tests and dry runs.
type MemoryOutput struct {
	mu     sync.RWMutex
	files  map[string]*bytes.Buffer
	closed map[string]bool
}

// NewMemoryOutput creates an empty in-memory Output.
func NewMemoryOutput() *MemoryOutput {
	return &MemoryOutput{
		files:  make(map[string]*bytes.Buffer),
		closed: make(map[string]bool),
	}
}

// Seed stores content under name as if a previous run had written it.
func (m *MemoryOutput) Seed(name, content string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[name] = bytes.NewBufferString(content)
	m.closed[name] = true
}

func (m *MemoryOutput) Create(name string) (io.WriteCloser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.files[name]; exists {
		return nil, fmt.Errorf("%w: %s", ErrOutputExists, m.Location(name))
	}
	buf := &bytes.Buffer{}
	m.files[name] = buf
	return &memoryFile{owner: m, name: name, buf: buf}, nil
}

func (m *MemoryOutput) Exists(name string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.files[name]
	return ok, nil
}

func (m *MemoryOutput) Location(name string) string {
	return "memory://" + name
}

// Content returns what was written to name and whether it exists.
func (m *MemoryOutput) Content(name string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	buf, ok := m.files[name]
	if !ok {
		return "", false
	}
	return buf.String(), true
}

// Closed reports whether the handle for name has been closed.
func (m *MemoryOutput) Closed(name string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.closed[name]
}

// Names returns all stored names in sorted order.
func (m *MemoryOutput) Names() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	names := make([]string, 0, len(m.files))
	for name := range m.files {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

type memoryFile struct {
	owner *MemoryOutput
	name  string
	buf   *bytes.Buffer
}

func (f *memoryFile) Write(p []byte) (int, error) {
	f.owner.mu.Lock()
	defer f.owner.mu.Unlock()
	if f.owner.closed[f.name] {
		return 0, fs.ErrClosed
	}
	return f.buf.Write(p)
}

func (f *memoryFile) Close() error {
	f.owner.mu.Lock()
	defer f.owner.mu.Unlock()
	if f.owner.closed[f.name] {
		return fs.ErrClosed
	}
	f.owner.closed[f.name] = true
	return nil
}
