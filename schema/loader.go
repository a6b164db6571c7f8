// Copyright 2026 The Flatkit Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package schema

import (
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/flatkit/flatkit/internal/log"
)

// Parser parses one file's raw source text into a *Schema. The concrete
// lexer/grammar is supplied by the caller (package lexparse implements one);
// the loader only drives filesystem traversal and include resolution.
type Parser func(path, src string) (*Schema, error)

// Loader resolves `include` directives, walks the filesystem, canonicalises
// paths, parses each file exactly once, and assembles a FileTree.
type Loader struct {
	FS          afero.Fs
	IncludeDirs []string
	Parse       Parser
	logger      *log.Helper
}

// LoaderOption configures optional Loader behaviour.
type LoaderOption func(*Loader)

// WithLoaderLogger overrides the default stderr/error-level logger, the way
// an embedding CLI might pass its own verbose logger through.
func WithLoaderLogger(logger *log.Helper) LoaderOption {
	return func(l *Loader) { l.logger = logger }
}

// NewLoader builds a Loader over the real filesystem.
func NewLoader(parse Parser, includeDirs []string, opts ...LoaderOption) *Loader {
	stdLogger := log.NewStdLogger(os.Stderr)
	l := &Loader{
		FS:          afero.NewOsFs(),
		IncludeDirs: includeDirs,
		Parse:       parse,
		logger:      log.NewHelper(log.NewFilter(stdLogger, log.FilterLevel(log.LevelError))),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load parses rootPath and every file it transitively includes, returning
// the assembled FileTree. Fails with *FileNotFound if an include cannot be
// resolved, or whatever error type Parse returns (lexparse returns
// *ParseError) if a file fails to parse.
func (l *Loader) Load(rootPath string) (*FileTree[*Schema], error) {
	canonicalRoot, err := l.canonicalize(rootPath)
	if err != nil {
		return nil, err
	}
	rootSchema, err := l.parseFile(canonicalRoot)
	if err != nil {
		return nil, err
	}

	tree := NewFileTree[*Schema](canonicalRoot, rootSchema)
	if err := l.loadIncludes(rootSchema, canonicalRoot, tree); err != nil {
		return nil, err
	}
	return tree, nil
}

// loadIncludes walks from's includes depth-first, parsing and recursing
// into any not already present in tree.Files.
func (l *Loader) loadIncludes(from *Schema, fromCanonical string, tree *FileTree[*Schema]) error {
	fromDir := filepath.Dir(fromCanonical)
	for _, inc := range from.Includes() {
		resolved, err := l.resolveInclude(inc, fromDir)
		if err != nil {
			return err
		}
		if _, already := tree.Files[resolved]; already {
			continue
		}
		s, err := l.parseFile(resolved)
		if err != nil {
			return err
		}
		tree.Add(resolved, s)
		if err := l.loadIncludes(s, resolved, tree); err != nil {
			return err
		}
	}
	return nil
}

// resolveInclude searches, in order, the importing file's directory then
// every configured include directory, returning the canonical path of the
// first existing match.
func (l *Loader) resolveInclude(incPath, fromDir string) (string, error) {
	candidates := append([]string{fromDir}, l.IncludeDirs...)
	var searched []string
	for _, dir := range candidates {
		candidate := filepath.Join(dir, incPath)
		searched = append(searched, candidate)
		if ok, _ := afero.Exists(l.FS, candidate); ok {
			l.debugf("resolved include %q to %s", incPath, candidate)
			return l.canonicalize(candidate)
		}
	}
	l.errorf("include %q not found in %v", incPath, searched)
	return "", &FileNotFound{Path: incPath, SearchedDirs: searched}
}

func (l *Loader) debugf(format string, args ...interface{}) {
	if l.logger != nil {
		l.logger.Debugf(format, args...)
	}
}

func (l *Loader) errorf(format string, args ...interface{}) {
	if l.logger != nil {
		l.logger.Errorf(format, args...)
	}
}

func (l *Loader) canonicalize(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	return filepath.Clean(abs), nil
}

func (l *Loader) parseFile(canonicalPath string) (*Schema, error) {
	l.debugf("parsing %s", canonicalPath)
	data, err := afero.ReadFile(l.FS, canonicalPath)
	if err != nil {
		l.errorf("reading %s: %v", canonicalPath, err)
		return nil, &FileNotFound{Path: canonicalPath}
	}
	s, err := l.Parse(canonicalPath, string(data))
	if err != nil {
		l.errorf("parsing %s: %v", canonicalPath, err)
		return nil, err
	}
	s.Path = canonicalPath
	return s, nil
}
