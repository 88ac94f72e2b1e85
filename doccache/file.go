// Copyright (c) 2025 Food and Agriculture Organization of the United Nations
// (FAO). All rights reserved. Use of this source code is governed by the BSD
// 3-Clause license that can be found in the LICENSE file.

package doccache

import (
	"io/fs"
	"os"
	"time"
)

// File represents a document opened for reading by the Open method.
type File struct {
	name    string
	file    *os.File
	size    int64
	lastMod time.Time
}

// Name returns the resolved name of the document: the sanitized cache entry
// name for a document served from the cache, otherwise the path it was
// opened from.
func (f *File) Name() string { return f.name }

// Read implements io.Reader interface.
func (f *File) Read(b []byte) (int, error) {
	return f.file.Read(b) //nolint:wrapcheck
}

// ReadAt implements io.ReaderAt interface.
func (f *File) ReadAt(b []byte, off int64) (int, error) {
	return f.file.ReadAt(b, off) //nolint:wrapcheck
}

// Seek implements io.Seeker interface.
func (f *File) Seek(offset int64, whence int) (int64, error) {
	return f.file.Seek(offset, whence) //nolint:wrapcheck
}

// Close implements io.Closer interface.
func (f *File) Close() error {
	return f.file.Close() //nolint:wrapcheck
}

// OSFile returns the underlying os.File object. Use with caution, as all
// writes will fail and operations such as deleting, renaming or closing the
// file will cause unexpected results. Only use if it is required to pass the
// file to a package that accepts only os.File or the file descriptor.
func (f *File) OSFile() *os.File { return f.file }

// Stat returns the file information.
func (f *File) Stat() (os.FileInfo, error) {
	return &FileInfo{
		name:    f.name,
		size:    f.size,
		lastMod: f.lastMod,
	}, nil
}

// FileInfo implements fs.FileInfo interface.
type FileInfo struct {
	name    string
	size    int64
	lastMod time.Time
}

// Name returns the resolved name of the document. Note that it is not
// necessarily the underlying file path.
func (i *FileInfo) Name() string { return i.name }

// Size returns the file size in byte.
func (i *FileInfo) Size() int64 { return i.size }

// Mode always returns 0400.
func (i *FileInfo) Mode() fs.FileMode { return 0o0400 }

// ModTime returns the modification time the document had when it was opened.
func (i *FileInfo) ModTime() time.Time { return i.lastMod }

// IsDir always returns false, since a directory can not be opened.
func (*FileInfo) IsDir() bool { return false }

// Sys always returns nil.
func (*FileInfo) Sys() any { return nil }
