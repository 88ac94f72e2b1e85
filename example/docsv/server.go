// Copyright (c) 2025 Food and Agriculture Organization of the United Nations
// (FAO). All rights reserved. Use of this source code is governed by the BSD
// 3-Clause license that can be found in the LICENSE file.

package main

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/SOLA-WA-FAO/common/doccache"
	"github.com/sirupsen/logrus"
	"github.com/tunabay/go-infounit"
)

// server represents the example document server. It holds one doccache.Store
// instance shared by all requests.
type server struct {
	store *doccache.Store
	log   *logrus.Logger
}

// newServer creates a document server staging its uploads under cacheDir.
func newServer(cacheDir string) (*server, error) {
	sv := &server{log: logrus.New()}

	conf := &doccache.Config{
		Dir:              cacheDir,
		MaxCacheSize:     infounit.Megabyte * 50,
		ResizedCacheSize: infounit.Megabyte * 30,
		MinCachedFiles:   4,
		MaxFileSize:      infounit.Megabyte * 10,
		Opener:           newHostOpener(),
		Notifier:         sv,
		Logger:           sv,
		DebugLog:         true,
	}
	store, err := doccache.NewWithConfig(conf)
	if err != nil {
		return nil, fmt.Errorf("failed to create store: %w", err)
	}
	sv.store = store

	return sv, nil
}

// DocCacheLog implements doccache.Logger, forwarding cache log messages to
// the server logger.
func (sv *server) DocCacheLog(line string) {
	sv.log.Info(line)
}

// Notify implements doccache.Notifier. Notifications meant for a desktop
// user are logged instead.
func (sv *server) Notify(kind string, params ...string) {
	sv.log.WithField("params", params).Warn(kind)
}

// ServeHTTP responds to incoming HTTP requests.
//
//	GET    /             cache status
//	POST   /docs         multipart upload, field name "file"
//	GET    /docs/<name>  download a stored document
//	DELETE /docs/<name>  remove a stored document
//	POST   /open/<name>  open a document with the host application
func (sv *server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch {
	case r.URL.Path == "/" && r.Method == http.MethodGet:
		sv.serveStatus(w)

	case r.URL.Path == "/docs" && r.Method == http.MethodPost:
		sv.serveUpload(w, r)

	case strings.HasPrefix(r.URL.Path, "/docs/"):
		name := strings.TrimPrefix(r.URL.Path, "/docs/")
		switch r.Method {
		case http.MethodGet:
			sv.serveDownload(w, name)
		case http.MethodDelete:
			sv.serveDelete(w, name)
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}

	case strings.HasPrefix(r.URL.Path, "/open/") && r.Method == http.MethodPost:
		sv.serveOpen(w, strings.TrimPrefix(r.URL.Path, "/open/"))

	default:
		http.Error(w, "not found", http.StatusNotFound)
	}
}

// serveStatus responds with the number of cached documents and their total
// size.
func (sv *server) serveStatus(w http.ResponseWriter) {
	st, err := sv.store.Status()
	if err != nil {
		http.Error(w, fmt.Sprintf("status: %v", err), http.StatusInternalServerError)
		return
	}
	w.Header().Add("Content-Type", "text/plain")
	fmt.Fprintln(w, st)
}

// serveUpload stores one uploaded document and responds with the name it is
// stored under.
func (sv *server) serveUpload(w http.ResponseWriter, r *http.Request) {
	file, hdr, err := r.FormFile("file")
	if err != nil {
		http.Error(w, fmt.Sprintf("bad upload: %v", err), http.StatusBadRequest)
		return
	}

	// WriteFrom takes ownership of the upload stream and closes it.
	name, err := sv.store.WriteFrom(file, hdr.Filename, hdr.Size)
	if err != nil {
		http.Error(w, fmt.Sprintf("store: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Add("Content-Type", "text/plain")
	w.WriteHeader(http.StatusCreated)
	fmt.Fprintln(w, name)
}

// serveDownload responds with the contents of one stored document.
func (sv *server) serveDownload(w http.ResponseWriter, name string) {
	f, err := sv.store.Open(name)
	switch {
	case errors.Is(err, doccache.ErrNotFound):
		http.Error(w, "document not found", http.StatusNotFound)
		return
	case err != nil:
		http.Error(w, fmt.Sprintf("open: %v", err), http.StatusInternalServerError)
		return
	}
	defer func() {
		if err := f.Close(); err != nil {
			sv.log.WithError(err).Warn("close failed")
		}
	}()

	finfo, err := f.Stat()
	if err == nil {
		w.Header().Add("Content-Length", strconv.FormatInt(finfo.Size(), 10))
	}
	w.Header().Add("Content-Type", "application/octet-stream")
	if _, err := io.Copy(w, f); err != nil {
		sv.log.WithError(err).Warn("download aborted")
	}
}

// serveDelete removes one stored document.
func (sv *server) serveDelete(w http.ResponseWriter, name string) {
	if err := sv.store.Delete(name); err != nil {
		http.Error(w, fmt.Sprintf("delete: %v", err), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// serveOpen asks the host platform to open one stored document.
func (sv *server) serveOpen(w http.ResponseWriter, name string) {
	if !sv.store.Exists(name) {
		http.Error(w, "document not found", http.StatusNotFound)
		return
	}
	sv.store.OpenFile(name)
	w.WriteHeader(http.StatusAccepted)
}
