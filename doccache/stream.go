// Copyright (c) 2025 Food and Agriculture Organization of the United Nations
// (FAO). All rights reserved. Use of this source code is governed by the BSD
// 3-Clause license that can be found in the LICENSE file.

package doccache

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/tunabay/go-infounit"
)

// writeBufSize is the chunk size for streaming writes.
const writeBufSize = 8 * 1024

// writeStream copies everything from r to a new file at path in writeBufSize
// chunks and stamps the file with the store clock's current time. Any
// pre-existing file at path is deleted first; a cached document is always
// rewritten from scratch, never appended. If r implements io.Closer it is
// closed before return, whether the copy succeeds or not. A failed copy
// leaves the partial file on disk.
func (s *Store) writeStream(r io.Reader, path string) (infounit.ByteCount, error) {
	if c, ok := r.(io.Closer); ok {
		defer c.Close()
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return 0, err
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o0644)
	if err != nil {
		return 0, err
	}
	buf := make([]byte, writeBufSize)
	written, err := io.CopyBuffer(f, r, buf)
	if err != nil {
		_ = f.Close()
		return 0, err
	}
	if err := f.Close(); err != nil {
		return 0, err
	}

	now := s.now()
	if err := os.Chtimes(path, now, now); err != nil {
		return 0, err
	}

	return infounit.ByteCount(written), nil
}

// readFull reads exactly want bytes from f. Short reads are retried; if EOF
// is reached with the buffer still short, it fails with TruncatedError.
func readFull(f *os.File, name string, want int64) ([]byte, error) {
	buf := make([]byte, want)
	n, err := io.ReadFull(f, buf)
	switch {
	case err == nil:
		return buf, nil
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		return nil, &TruncatedError{Name: name, Got: int64(n), Want: want}
	default:
		return nil, &ReadError{Name: name, Err: err}
	}
}

// readFile loads the regular file at path entirely into memory, after
// verifying that its reported length does not exceed MaxFileSize.
func (s *Store) readFile(path, name string) ([]byte, error) {
	finfo, err := os.Stat(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil, fmt.Errorf("%s: %w", name, ErrNotFound)
	case err != nil:
		return nil, &ReadError{Name: name, Err: err}
	case finfo.IsDir():
		return nil, fmt.Errorf("%s: %w", name, ErrNotFound)
	}
	if size := infounit.ByteCount(finfo.Size()); s.maxFileSize < size {
		return nil, &FileTooLargeError{Size: size, Limit: s.maxFileSize}
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, &ReadError{Name: name, Err: err}
	}
	defer f.Close()

	return readFull(f, name, finfo.Size())
}
