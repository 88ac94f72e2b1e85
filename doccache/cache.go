// Copyright (c) 2025 Food and Agriculture Organization of the United Nations
// (FAO). All rights reserved. Use of this source code is governed by the BSD
// 3-Clause license that can be found in the LICENSE file.

package doccache

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/tunabay/go-infounit"
)

// Store represents the documents cache directory.
type Store struct {
	dir              string
	maxCacheSize     infounit.ByteCount
	resizedCacheSize infounit.ByteCount
	maxFileSize      infounit.ByteCount
	minCachedFiles   int

	opener   Opener
	notifier Notifier
	now      func() time.Time

	log      Logger
	debugLog bool
}

// New creates a Store with the default configuration, caching documents under
// the given directory.
func New(dir string) (*Store, error) {
	return NewWithConfig(&Config{Dir: dir})
}

// NewWithConfig creates a Store using the given configuration parameters.
func NewWithConfig(conf *Config) (*Store, error) {
	s := &Store{
		dir:              conf.Dir,
		maxCacheSize:     conf.MaxCacheSize,
		resizedCacheSize: conf.ResizedCacheSize,
		maxFileSize:      conf.MaxFileSize,
		minCachedFiles:   conf.MinCachedFiles,
		opener:           conf.Opener,
		notifier:         conf.Notifier,
		now:              conf.Now,
		log:              conf.Logger,
		debugLog:         conf.DebugLog,
	}
	if s.maxCacheSize == 0 {
		s.maxCacheSize = defaultMaxCacheSize
	}
	if s.resizedCacheSize == 0 {
		s.resizedCacheSize = defaultResizedCacheSize
	}
	if s.maxFileSize == 0 {
		s.maxFileSize = defaultMaxFileSize
	}
	if s.minCachedFiles == 0 {
		s.minCachedFiles = defaultMinCachedFiles
	}
	if s.now == nil {
		s.now = time.Now
	}
	switch {
	case s.minCachedFiles < 0:
		return nil, fmt.Errorf("%w: negative MinCachedFiles", ErrInvalidConfig)
	case s.maxCacheSize <= s.resizedCacheSize:
		return nil, fmt.Errorf("%w: ResizedCacheSize not less than MaxCacheSize", ErrInvalidConfig)
	}

	if s.dir == "" {
		s.dir = filepath.Base(os.Args[0])
	}
	if !filepath.IsAbs(s.dir) {
		ucd, err := os.UserCacheDir()
		if err != nil {
			return nil, fmt.Errorf("%s: can not resolve relative cache dir: %w", s.dir, err)
		}
		s.dir = filepath.Join(ucd, s.dir)
	}

	if err := os.MkdirAll(s.dir, 0o0700); err != nil {
		return nil, fmt.Errorf("%s: %w", s.dir, err)
	}
	s.logPrintf("Documents cache directory: %s", s.dir)

	return s, nil
}

// Dir returns the absolute path of the cache directory.
func (s *Store) Dir() string { return s.dir }

// EnsureDir returns the cache directory path, recreating the directory and
// any missing parents if it has been removed since the Store was created. It
// is idempotent.
func (s *Store) EnsureDir() (string, error) {
	if err := os.MkdirAll(s.dir, 0o0700); err != nil {
		return "", fmt.Errorf("%s: %w", s.dir, err)
	}
	return s.dir, nil
}

// Path returns the absolute path within the cache directory that name
// resolves to after sanitization. The file may or may not exist. A name that
// sanitizes to no usable directory entry, "", "." or "..", resolves to no
// path at all; Path returns an empty string for it.
func (s *Store) Path(name string) string {
	name = SanitizeName(name, true)
	if degenerateName(name) {
		return ""
	}
	return filepath.Join(s.dir, name)
}

// Exists reports whether a cached document with the given name is present.
// The name is sanitized the same way Write sanitizes it.
func (s *Store) Exists(name string) bool {
	finfo, err := os.Stat(s.Path(name))
	return err == nil && finfo.Mode().IsRegular()
}

// Write stores content as a cached document and returns the resolved name
// that subsequent reads must use. The name is sanitized first; an empty name,
// or one that sanitizes to no usable directory entry, is replaced with a
// random generated one. Before the document is written, old cache entries
// are evicted as needed to keep the directory within its size budget, with
// len(content) counted toward the budget.
func (s *Store) Write(content []byte, name string) (string, error) {
	return s.WriteFrom(bytes.NewReader(content), name, int64(len(content)))
}

// WriteFrom stores everything read from r as a cached document. It works
// like Write, with sizeHint, the expected number of incoming bytes, counted
// toward the eviction budget. A zero or negative sizeHint means unknown;
// eviction then only considers the files already present. If r implements
// io.Closer it is closed before return, whether the write succeeds or not.
func (s *Store) WriteFrom(r io.Reader, name string, sizeHint int64) (string, error) {
	name = SanitizeName(name, true)
	if degenerateName(name) {
		name = RandomName()
	}
	if _, err := s.EnsureDir(); err != nil {
		if c, ok := r.(io.Closer); ok {
			_ = c.Close()
		}
		return "", &WriteError{Name: name, Err: err}
	}

	if sizeHint < 0 {
		sizeHint = 0
	}
	s.maintain(infounit.ByteCount(sizeHint))

	size, err := s.writeStream(r, filepath.Join(s.dir, name))
	if err != nil {
		return "", &WriteError{Name: name, Err: err}
	}
	s.logPrintf("%s: Stored. size=%.1S", name, size)

	return name, nil
}

// Read loads the named cached document entirely into memory. It fails with
// ErrNotFound if no such document is cached, and with FileTooLargeError if
// the document exceeds the configured MaxFileSize.
func (s *Store) Read(name string) ([]byte, error) {
	name = SanitizeName(name, true)
	if degenerateName(name) {
		return nil, fmt.Errorf("%s: %w", name, ErrNotFound)
	}
	content, err := s.readFile(filepath.Join(s.dir, name), name)
	if err != nil {
		return nil, err
	}
	s.logDebugf("%s: Read. size=%.1S", name, infounit.ByteCount(len(content)))

	return content, nil
}

// Delete removes the named document from the cache. Deleting a document that
// is not cached is not an error. A name that sanitizes to no usable directory
// entry can never denote a cached document and is treated as absent.
func (s *Store) Delete(name string) error {
	name = SanitizeName(name, true)
	if degenerateName(name) {
		return nil
	}
	switch err := os.Remove(filepath.Join(s.dir, name)); {
	case err == nil:
		s.logPrintf("%s: Deleted.", name)
	case errors.Is(err, fs.ErrNotExist):
	default:
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

// WriteText stores content as a text document in the cache directory and
// returns its absolute path. Unlike Write, the name keeps its extension even
// if it is an executable one, and no eviction is performed. A name that
// sanitizes to no usable directory entry is replaced with a random generated
// one. It is intended for small generated text files that accompany cached
// documents.
func (s *Store) WriteText(name, content string) (string, error) {
	name = SanitizeName(name, false)
	if degenerateName(name) {
		name = RandomName()
	}
	if _, err := s.EnsureDir(); err != nil {
		return "", &WriteError{Name: name, Err: err}
	}

	path := filepath.Join(s.dir, name)
	size, err := s.writeStream(strings.NewReader(content), path)
	if err != nil {
		return "", &WriteError{Name: name, Err: err}
	}
	s.logPrintf("%s: Stored. size=%.1S", name, size)

	return path, nil
}

// Open opens a document for reading. The name is sanitized and looked up in
// the cache directory first; when no such cached document exists, the raw
// name is then tried as a direct filesystem path, so documents outside the
// cache can be opened with their full pathname. It fails with ErrNotFound
// when neither exists. It is the caller's responsibility to close the
// returned File.
func (s *Store) Open(name string) (*File, error) {
	fname := SanitizeName(name, true)
	path := filepath.Join(s.dir, fname)
	finfo, err := os.Stat(path)
	if err != nil || !finfo.Mode().IsRegular() {
		// not cached, try the raw name as a direct path
		fname = name
		path = name
		finfo, err = os.Stat(path)
		if err != nil || !finfo.Mode().IsRegular() {
			return nil, fmt.Errorf("%s: %w", name, ErrNotFound)
		}
	}

	osf, err := os.Open(path)
	if err != nil {
		return nil, &ReadError{Name: fname, Err: err}
	}
	finfo, err = osf.Stat()
	if err != nil {
		_ = osf.Close()
		return nil, &ReadError{Name: fname, Err: err}
	}
	s.logDebugf("%s: Opened for read. size=%.1S", fname, infounit.ByteCount(finfo.Size()))

	return &File{
		name:    fname,
		file:    osf,
		size:    finfo.Size(),
		lastMod: finfo.ModTime(),
	}, nil
}

// Status represents the cache status.
type Status struct {
	Files     int                // number of documents currently cached
	TotalSize infounit.ByteCount // total size of documents currently cached
}

// String returns the string representation of Status.
func (st Status) String() string {
	return fmt.Sprintf("files=%d, size=%.1S", st.Files, st.TotalSize)
}

// Status reports the number and total size of the regular files directly
// inside the cache directory, the same non-recursive view eviction uses.
func (s *Store) Status() (*Status, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.dir, err)
	}
	st := &Status{}
	for _, ent := range entries {
		finfo, err := ent.Info()
		if err != nil || !finfo.Mode().IsRegular() {
			continue
		}
		st.Files++
		st.TotalSize += infounit.ByteCount(finfo.Size())
	}
	return st, nil
}

// Empty removes every entry inside the cache directory, including stale
// subdirectories, keeping the directory itself.
func (s *Store) Empty() error {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return fmt.Errorf("%s: %w", s.dir, err)
	}
	for _, ent := range entries {
		if err := os.RemoveAll(filepath.Join(s.dir, ent.Name())); err != nil {
			return fmt.Errorf("%s: %w", ent.Name(), err)
		}
	}
	s.logPrintf("Documents cache emptied.")

	return nil
}

// logPrefix returns the prefix string for log messages, according to the
// current configuration.
func (s *Store) logPrefix() string {
	if !s.debugLog {
		return ""
	}
	if _, file, line, ok := runtime.Caller(2); ok {
		return fmt.Sprintf("%s:%d:", filepath.Base(file), line)
	}
	return "(unknown):"
}

// logPrintf outputs a log message according to the current configuration.
func (s *Store) logPrintf(format string, v ...any) {
	if s.log == nil {
		return
	}
	msg := make([]string, 0, 2)
	if prefix := s.logPrefix(); prefix != "" {
		msg = append(msg, prefix)
	}
	msg = append(msg, fmt.Sprintf(format, v...))

	s.log.DocCacheLog(strings.Join(msg, " "))
}

// logDebugf outputs a debug log message according to the current
// configuration.
func (s *Store) logDebugf(format string, v ...any) {
	if s.log == nil || !s.debugLog {
		return
	}

	msg := make([]string, 0, 2)
	if prefix := s.logPrefix(); prefix != "" {
		msg = append(msg, prefix)
	}
	msg = append(msg, fmt.Sprintf(format, v...))

	s.log.DocCacheLog(strings.Join(msg, " "))
}
