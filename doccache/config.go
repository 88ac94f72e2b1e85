// Copyright (c) 2025 Food and Agriculture Organization of the United Nations
// (FAO). All rights reserved. Use of this source code is governed by the BSD
// 3-Clause license that can be found in the LICENSE file.

package doccache

import (
	"time"

	"github.com/tunabay/go-infounit"
)

// Config represents the parameters to configure Store creation.
type Config struct {
	// The path to the directory for cached documents. It should be a
	// dedicated directory used exclusively for this cache. The directory
	// will be automatically created if it does not exist. Both absolute
	// and relative paths are allowed. A relative path is treated as
	// relative from the user-specific cache directory returned by
	// os.UserCacheDir(). If it is empty, use the program name directory.
	Dir string

	// The size of the cache directory above which a write triggers
	// eviction. Only regular files directly inside the directory count
	// toward it. Zero value means the 200 MiB default. Note that the
	// cache may exceed this size temporarily, and stays above it whenever
	// eviction is stopped by the MinCachedFiles floor.
	MaxCacheSize infounit.ByteCount

	// The target size eviction shrinks the cache to once triggered,
	// keeping eviction from firing on every subsequent write. Must be
	// less than MaxCacheSize. Zero value means the 120 MiB default.
	ResizedCacheSize infounit.ByteCount

	// The minimum number of directory entries eviction leaves in place,
	// even if the cache is still over its size budget. Zero value means
	// the default of 10.
	MinCachedFiles int

	// The maximum size of a single file Read will load into memory.
	// Larger files fail with FileTooLargeError before any byte is read.
	// Zero value means the 100 MiB default.
	MaxFileSize infounit.ByteCount

	// If not nil, OpenFile uses this Opener to open documents with the
	// platform default application.
	Opener Opener

	// If not nil, the Store reports user-facing conditions, such as a
	// document that could not be opened, to this Notifier.
	Notifier Notifier

	// If not nil, Store outputs log messages to this Logger object.
	Logger Logger

	// If true, Store outputs debug log messages. Only effective if
	// Logger is not nil.
	DebugLog bool

	// If not nil, the Store uses this clock instead of time.Now to stamp
	// written files. Intended for tests that need deterministic
	// modification times.
	Now func() time.Time
}

// Default limits applied by NewWithConfig for zero Config fields.
const (
	defaultMaxCacheSize     = infounit.Mebibyte * 200
	defaultResizedCacheSize = infounit.Mebibyte * 120
	defaultMaxFileSize      = infounit.Mebibyte * 100
	defaultMinCachedFiles   = 10
)

// Logger is the interface implemented to receive log messages from the running
// Store instance.
type Logger interface {
	DocCacheLog(string)
}
