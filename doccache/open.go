// Copyright (c) 2025 Food and Agriculture Organization of the United Nations
// (FAO). All rights reserved. Use of this source code is governed by the BSD
// 3-Clause license that can be found in the LICENSE file.

package doccache

// NoticeOpenFailed is the notification kind reported to the Notifier when a
// document could not be opened with the platform default application. The
// single parameter is the absolute path of the document, so the user can be
// told to open it manually.
const NoticeOpenFailed = "doccache.open-failed"

// Opener is the interface wrapping the platform "open with the default
// application" capability. Supported reports whether the capability is
// available on the running platform at all. Open launches the default
// application for the file at the given absolute path.
type Opener interface {
	Supported() bool
	Open(path string) error
}

// Notifier is the interface implemented to receive user-facing notifications
// from the Store. The kind is one of the Notice constants, params are
// kind-specific details.
type Notifier interface {
	Notify(kind string, params ...string)
}

// OpenFile opens the named cached document with the platform default
// application. A failed or unsupported open never propagates as an error:
// the Notifier is informed with the failed path instead.
func (s *Store) OpenFile(name string) {
	path := s.Path(name)
	switch {
	case s.opener == nil || !s.opener.Supported():
		s.logPrintf("%s: No opener available on this platform.", path)

	default:
		err := s.opener.Open(path)
		if err == nil {
			s.logDebugf("%s: Opened.", path)
			return
		}
		s.logPrintf("%s: Failed to open: %v", path, err)
	}

	if s.notifier != nil {
		s.notifier.Notify(NoticeOpenFailed, path)
	}
}

// OpenBytes stores content as a cached document like Write, then opens it
// with the platform default application like OpenFile. It returns the
// resolved document name. Only the write can fail; open failures degrade to
// a notification.
func (s *Store) OpenBytes(content []byte, name string) (string, error) {
	name, err := s.Write(content, name)
	if err != nil {
		return "", err
	}
	s.OpenFile(name)

	return name, nil
}
