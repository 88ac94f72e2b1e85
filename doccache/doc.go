// Copyright (c) 2025 Food and Agriculture Organization of the United Nations
// (FAO). All rights reserved. Use of this source code is governed by the BSD
// 3-Clause license that can be found in the LICENSE file.

/*
Package doccache provides a disk-backed staging cache for document files. It
stores files under a bounded-size directory, evicts the oldest entries when a
size threshold is crossed, produces safe on-disk names from untrusted input,
and streams file content to and from disk.

The store performs no internal locking. A write first lists the directory to
decide evictions and only then creates the file, so concurrent writers may
each observe the cache as over budget and evict more than necessary, or leave
it temporarily over budget. Eviction is best-effort housekeeping rather than
a consistency guarantee. All operations block on disk I/O with no cancellation
mechanism; callers that need timeouts must wrap calls externally.
*/
package doccache
