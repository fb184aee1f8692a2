// Package codebase keeps the latest analysis of every source file under a
// root directory and serves it over the language server protocol.
package codebase

import (
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"
	"sync"

	"github.com/dhamidi/ilc/lang"
)

type Codebase struct {
	mu         sync.RWMutex
	rootDir    string
	extensions []string
	trace      bool
	files      map[string]*FileInfo
}

type FileInfo struct {
	Path    string
	Content []byte
	Report  *lang.Report
}

type Option func(*Codebase)

// WithExtensions replaces the set of file extensions treated as source.
func WithExtensions(exts ...string) Option {
	return func(c *Codebase) {
		c.extensions = exts
	}
}

// WithTrace records the parse trace in every report.
func WithTrace() Option {
	return func(c *Codebase) {
		c.trace = true
	}
}

func New(rootDir string, opts ...Option) *Codebase {
	c := &Codebase{
		rootDir:    rootDir,
		extensions: []string{lang.Extension},
		files:      make(map[string]*FileInfo),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Codebase) RootDir() string {
	return c.rootDir
}

// IsSource reports whether path has one of the configured extensions.
func (c *Codebase) IsSource(path string) bool {
	return slices.Contains(c.extensions, filepath.Ext(path))
}

func (c *Codebase) ScanAll() error {
	return filepath.Walk(c.rootDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if info.IsDir() {
			if path != c.rootDir && strings.HasPrefix(info.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if c.IsSource(path) {
			c.ScanFile(path)
		}
		return nil
	})
}

func (c *Codebase) ScanFile(path string) (*FileInfo, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return c.UpdateFile(path, content), nil
}

// UpdateFile re-checks content and stores the result under path.
func (c *Codebase) UpdateFile(path string, content []byte) *FileInfo {
	info := &FileInfo{
		Path:    path,
		Content: content,
		Report:  lang.Check(content, lang.Options{Path: path, Trace: c.trace}),
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.files[path] = info
	return info
}

func (c *Codebase) RemoveFile(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.files, path)
}

func (c *Codebase) GetFile(path string) *FileInfo {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.files[path]
}

// Files returns every known file sorted by path.
func (c *Codebase) Files() []*FileInfo {
	c.mu.RLock()
	defer c.mu.RUnlock()

	files := make([]*FileInfo, 0, len(c.files))
	for _, f := range c.files {
		files = append(files, f)
	}
	sort.Slice(files, func(i, j int) bool {
		return files[i].Path < files[j].Path
	})
	return files
}

// Diagnostics collects the diagnostics of all files, ordered by path.
func (c *Codebase) Diagnostics() []lang.Diagnostic {
	var diags []lang.Diagnostic
	for _, f := range c.Files() {
		diags = append(diags, f.Report.Diagnostics()...)
	}
	return diags
}
