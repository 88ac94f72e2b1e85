// Copyright (c) 2025 Food and Agriculture Organization of the United Nations
// (FAO). All rights reserved. Use of this source code is governed by the BSD
// 3-Clause license that can be found in the LICENSE file.

package doccache

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// namePrefix starts every generated file name.
const namePrefix = "sola"

// separatorReplacer substitutes every path separator character with a neutral
// one, so that a name can never escape the cache directory.
var separatorReplacer = strings.NewReplacer("/", "#", "\\", "#")

// executableExts lists the file extensions considered executable.
var executableExts = map[string]bool{
	"exe": true,
	"msi": true,
	"bat": true,
	"cmd": true,
}

// SanitizeName turns an arbitrary requested file name into one that is safe
// to create inside the cache directory. Every path separator character is
// replaced with "#", guaranteeing the result denotes a single path segment.
// If replaceExecutable is true and the name then has an executable extension
// (exe, msi, bat or cmd, case-insensitive), every dot is additionally
// replaced with "_" and a ".tmp" extension is appended, so "file.exe"
// becomes "file_exe.tmp". The requested name stays recoverable by
// inspection.
//
// SanitizeName is idempotent: applying it to its own output returns the
// output unchanged.
func SanitizeName(name string, replaceExecutable bool) string {
	name = separatorReplacer.Replace(name)
	if replaceExecutable && isExecutable(name) {
		name = strings.ReplaceAll(name, ".", "_") + ".tmp"
	}
	return name
}

// RandomName generates a universally unique file name with the extension
// "tmp". It is used whenever no caller-supplied name is available.
func RandomName() string {
	return VersionedName(uuid.NewString(), 0, "tmp")
}

// VersionedName builds the file name for a stored document version, in the
// form "sola_<id>_<version>.<ext>", and sanitizes it. It falls back to
// RandomName if id or ext is empty.
func VersionedName(id string, version int, ext string) string {
	if id == "" || ext == "" {
		return RandomName()
	}
	return SanitizeName(fmt.Sprintf("%s_%s_%d.%s", namePrefix, id, version, ext), true)
}

// degenerateName reports whether a sanitized name can not denote an entry
// inside the cache directory. The empty name, "." and ".." resolve to the
// directory itself or its parent rather than a file within it.
func degenerateName(name string) bool {
	return name == "" || name == "." || name == ".."
}

// fileExt returns the lowercased extension of name, without the dot. A name
// without an extension, a name ending in a dot, and a dot file like ".exe"
// all yield the empty string.
func fileExt(name string) string {
	i := strings.LastIndexByte(name, '.')
	if i <= 0 || i == len(name)-1 {
		return ""
	}
	return strings.ToLower(name[i+1:])
}

// isExecutable reports whether name has an executable file extension.
func isExecutable(name string) bool {
	return executableExts[fileExt(name)]
}
