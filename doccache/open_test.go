// Copyright (c) 2025 Food and Agriculture Organization of the United Nations
// (FAO). All rights reserved. Use of this source code is governed by the BSD
// 3-Clause license that can be found in the LICENSE file.

package doccache

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeOpener records open requests and answers them with a fixed result.
type fakeOpener struct {
	supported bool
	err       error
	opened    []string
}

func (o *fakeOpener) Supported() bool { return o.supported }

func (o *fakeOpener) Open(path string) error {
	o.opened = append(o.opened, path)
	return o.err
}

// fakeNotifier records the notifications it receives.
type fakeNotifier struct {
	kinds  []string
	params [][]string
}

func (n *fakeNotifier) Notify(kind string, params ...string) {
	n.kinds = append(n.kinds, kind)
	n.params = append(n.params, params)
}

func TestOpenFile_success(t *testing.T) {
	t.Parallel()

	opener := &fakeOpener{supported: true}
	notifier := &fakeNotifier{}
	s := newTestStore(t, &Config{Opener: opener, Notifier: notifier})

	_, err := s.Write([]byte("x"), "doc.pdf")
	require.NoError(t, err)

	s.OpenFile("doc.pdf")

	require.Len(t, opener.opened, 1)
	assert.Equal(t, s.Path("doc.pdf"), opener.opened[0])
	assert.Empty(t, notifier.kinds, "no notification on success")
}

func TestOpenFile_openerFails(t *testing.T) {
	t.Parallel()

	opener := &fakeOpener{supported: true, err: errors.New("no handler registered")}
	notifier := &fakeNotifier{}
	s := newTestStore(t, &Config{Opener: opener, Notifier: notifier})

	s.OpenFile("doc.pdf")

	require.Equal(t, []string{NoticeOpenFailed}, notifier.kinds)
	require.Len(t, notifier.params[0], 1)
	assert.Equal(t, s.Path("doc.pdf"), notifier.params[0][0])
}

func TestOpenFile_unsupported(t *testing.T) {
	t.Parallel()

	opener := &fakeOpener{supported: false}
	notifier := &fakeNotifier{}
	s := newTestStore(t, &Config{Opener: opener, Notifier: notifier})

	s.OpenFile("doc.pdf")

	assert.Empty(t, opener.opened, "unsupported opener must not be invoked")
	assert.Equal(t, []string{NoticeOpenFailed}, notifier.kinds)
}

func TestOpenFile_nilOpener(t *testing.T) {
	t.Parallel()

	notifier := &fakeNotifier{}
	s := newTestStore(t, &Config{Notifier: notifier})

	s.OpenFile("doc.pdf")

	assert.Equal(t, []string{NoticeOpenFailed}, notifier.kinds)
}

func TestOpenFile_nilNotifier(t *testing.T) {
	t.Parallel()

	s := newTestStore(t, nil)

	// must not panic without opener and notifier
	s.OpenFile("doc.pdf")
}

func TestOpenBytes(t *testing.T) {
	t.Parallel()

	opener := &fakeOpener{supported: true}
	s := newTestStore(t, &Config{Opener: opener})

	name, err := s.OpenBytes([]byte("content"), "view.pdf")
	require.NoError(t, err)
	assert.Equal(t, "view.pdf", name)

	require.Len(t, opener.opened, 1)
	assert.Equal(t, s.Path("view.pdf"), opener.opened[0])

	got, err := s.Read("view.pdf")
	require.NoError(t, err)
	assert.Equal(t, "content", string(got))
}

func TestOpenBytes_defusesExecutable(t *testing.T) {
	t.Parallel()

	opener := &fakeOpener{supported: true}
	s := newTestStore(t, &Config{Opener: opener})

	name, err := s.OpenBytes([]byte("MZ"), "setup.exe")
	require.NoError(t, err)
	assert.Equal(t, "setup_exe.tmp", name)

	require.Len(t, opener.opened, 1)
	assert.Equal(t, s.Path("setup_exe.tmp"), opener.opened[0])
}
