// Copyright (c) 2025 Food and Agriculture Organization of the United Nations
// (FAO). All rights reserved. Use of this source code is governed by the BSD
// 3-Clause license that can be found in the LICENSE file.

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
)

// main is the main function of this example program. A small document
// drop-box server: files uploaded over HTTP are staged in a doccache.Store
// with a deliberately small budget, so eviction can be observed in the logs
// after a handful of uploads.
func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	// Parse command parameters.
	listenAddr := ":8080"
	cacheDir := "/tmp/doccache-example"
	switch {
	case len(os.Args) == 1:
		// use default addr and dir

	case 3 < len(os.Args), strings.HasPrefix(strings.TrimLeft(os.Args[1], "-"), "h"):
		fmt.Fprintf(os.Stderr, "USAGE: %s [ [host]:port [cache-dir] ]\n", os.Args[0])
		return

	default:
		listenAddr = os.Args[1]
		if 2 < len(os.Args) {
			cacheDir = os.Args[2]
		}
	}

	// Create the document server.
	sv, err := newServer(cacheDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: server: %v\n", err)
		os.Exit(1)
	}

	// Run the HTTP server until interrupted.
	httpd := &http.Server{
		Addr:           listenAddr,
		Handler:        sv,
		ReadTimeout:    time.Minute,
		WriteTimeout:   time.Minute,
		MaxHeaderBytes: 4096,
	}
	eg, egctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		if err := httpd.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("httpd: %w", err)
		}
		return nil
	})
	eg.Go(func() error {
		<-egctx.Done()
		sdctx, sdcancel := context.WithTimeout(context.Background(), time.Second*5)
		defer sdcancel()
		if err := httpd.Shutdown(sdctx); err != nil { //nolint:contextcheck
			return fmt.Errorf("httpd shutdown: %w", err)
		}
		return nil
	})
	if err := eg.Wait(); err != nil {
		sv.log.WithError(err).Fatal("server stopped")
	}
}
