// Copyright (c) 2025 Food and Agriculture Organization of the United Nations
// (FAO). All rights reserved. Use of this source code is governed by the BSD
// 3-Clause license that can be found in the LICENSE file.

package doccache

import (
	"errors"
	"fmt"

	"github.com/tunabay/go-infounit"
)

// ErrInvalidConfig is the error thrown when the passed configuration parameter
// is not valid.
var ErrInvalidConfig = errors.New("invalid config")

// ErrNotFound is the error thrown when the requested document exists neither
// in the cache directory nor at the given path.
var ErrNotFound = errors.New("file not found")

// FileTooLargeError is the error thrown when a file to read exceeds the
// configured MaxFileSize. It is detected before any byte is read.
type FileTooLargeError struct {
	Size  infounit.ByteCount // actual length of the file
	Limit infounit.ByteCount // configured maximum
}

// Error returns the message with both sizes in human readable form and as
// exact byte counts.
func (e *FileTooLargeError) Error() string {
	return fmt.Sprintf("file too large: %.1S (%d bytes) exceeds the %.1S (%d bytes) limit",
		e.Size, uint64(e.Size), e.Limit, uint64(e.Limit))
}

// TruncatedError is the error thrown when a file yields fewer bytes than its
// reported length, even after short reads are retried.
type TruncatedError struct {
	Name string // name of the file
	Got  int64  // number of bytes actually obtained
	Want int64  // reported file length
}

// Error implements the error interface.
func (e *TruncatedError) Error() string {
	return fmt.Sprintf("%s: truncated read: got %d of %d bytes", e.Name, e.Got, e.Want)
}

// ReadError is the error thrown when a document can not be read from disk.
type ReadError struct {
	Name string // name of the file
	Err  error  // underlying cause
}

// Error implements the error interface.
func (e *ReadError) Error() string {
	return fmt.Sprintf("%s: read failed: %v", e.Name, e.Err)
}

// Unwrap returns the underlying cause.
func (e *ReadError) Unwrap() error { return e.Err }

// WriteError is the error thrown when a document can not be written to disk.
type WriteError struct {
	Name string // name of the file
	Err  error  // underlying cause
}

// Error implements the error interface.
func (e *WriteError) Error() string {
	return fmt.Sprintf("%s: write failed: %v", e.Name, e.Err)
}

// Unwrap returns the underlying cause.
func (e *WriteError) Unwrap() error { return e.Err }
