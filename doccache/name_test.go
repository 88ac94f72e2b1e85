// Copyright (c) 2025 Food and Agriculture Organization of the United Nations
// (FAO). All rights reserved. Use of this source code is governed by the BSD
// 3-Clause license that can be found in the LICENSE file.

package doccache

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeName_separators(t *testing.T) {
	t.Parallel()

	tests := []struct{ in, want string }{
		{"report.pdf", "report.pdf"},
		{"a/b/c.pdf", "a#b#c.pdf"},
		{`a\b\c.pdf`, "a#b#c.pdf"},
		{"../../etc/passwd", "..#..#etc#passwd"},
		{`..\..\boot.ini`, "..#..#boot.ini"},
		{"/leading", "#leading"},
		{"trailing/", "trailing#"},
	}
	for _, tc := range tests {
		got := SanitizeName(tc.in, true)
		assert.Equal(t, tc.want, got, "SanitizeName(%q, true)", tc.in)
		assert.NotContains(t, got, "/")
		assert.NotContains(t, got, `\`)
	}
}

func TestSanitizeName_executable(t *testing.T) {
	t.Parallel()

	tests := []struct{ in, want string }{
		{"file.exe", "file_exe.tmp"},
		{"file.EXE", "file_EXE.tmp"},
		{"setup.msi", "setup_msi.tmp"},
		{"run.bat", "run_bat.tmp"},
		{"do.cmd", "do_cmd.tmp"},
		{"a/b.exe", "a#b_exe.tmp"},
		{"archive.tar.exe", "archive_tar_exe.tmp"},
		{"file.txt", "file.txt"},
		{"file.exe.txt", "file.exe.txt"},
		{".exe", ".exe"}, // a dot file, not an extension
		{"file.", "file."},
		{"exe", "exe"},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, SanitizeName(tc.in, true), "SanitizeName(%q, true)", tc.in)
	}
}

func TestSanitizeName_keepExecutable(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "run.bat", SanitizeName("run.bat", false))
	assert.Equal(t, "a#run.exe", SanitizeName(`a\run.exe`, false))
}

func TestSanitizeName_idempotent(t *testing.T) {
	t.Parallel()

	names := []string{
		"report.pdf",
		"a/b/c.exe",
		`dir\file.BAT`,
		"file.exe",
		"..",
		".exe",
		"sola_42_1.msi",
		"no-extension",
		"file.tar.gz",
	}
	for _, name := range names {
		once := SanitizeName(name, true)
		assert.Equal(t, once, SanitizeName(once, true), "SanitizeName(%q, true)", name)
	}
}

func TestRandomName(t *testing.T) {
	t.Parallel()

	name := RandomName()
	require.True(t, strings.HasPrefix(name, "sola_"), "prefix: %q", name)
	require.True(t, strings.HasSuffix(name, "_0.tmp"), "suffix: %q", name)

	token := strings.TrimSuffix(strings.TrimPrefix(name, "sola_"), "_0.tmp")
	_, err := uuid.Parse(token)
	require.NoError(t, err, "token in %q", name)

	assert.NotEqual(t, name, RandomName())
}

func TestVersionedName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "sola_doc42_3.pdf", VersionedName("doc42", 3, "pdf"))
	assert.Equal(t, "sola_doc42_0_exe.tmp", VersionedName("doc42", 0, "exe"))
	assert.Equal(t, "sola_a#b_1.png", VersionedName("a/b", 1, "png"))
}

func TestVersionedName_fallback(t *testing.T) {
	t.Parallel()

	for _, name := range []string{
		VersionedName("", 1, "pdf"),
		VersionedName("doc42", 1, ""),
	} {
		assert.True(t, strings.HasPrefix(name, "sola_"), "name: %q", name)
		assert.True(t, strings.HasSuffix(name, "_0.tmp"), "name: %q", name)
	}
}

func TestDegenerateName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want bool
	}{
		{"", true},
		{".", true},
		{"..", true},
		{"...", false},
		{"#", false},
		{".hidden", false},
		{"doc.pdf", false},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, degenerateName(tc.in), "degenerateName(%q)", tc.in)
	}
}

func TestFileExt(t *testing.T) {
	t.Parallel()

	tests := []struct{ in, want string }{
		{"file.txt", "txt"},
		{"file.TXT", "txt"},
		{"archive.tar.gz", "gz"},
		{"file", ""},
		{"file.", ""},
		{".bashrc", ""},
		{"", ""},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, fileExt(tc.in), "fileExt(%q)", tc.in)
	}
}
