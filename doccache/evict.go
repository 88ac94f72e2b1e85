// Copyright (c) 2025 Food and Agriculture Organization of the United Nations
// (FAO). All rights reserved. Use of this source code is governed by the BSD
// 3-Clause license that can be found in the LICENSE file.

package doccache

import (
	"os"
	"path/filepath"
	"time"

	"github.com/petar/GoLLRB/llrb"
	"github.com/tunabay/go-infounit"
)

// candidate represents a directory entry considered for eviction. Among these
// candidates, regular files with the oldest lastMod are deleted in order.
type candidate struct {
	name    string
	path    string
	size    infounit.ByteCount
	lastMod time.Time
	regular bool
}

// Less orders candidates by lastMod, oldest first. Entries with identical
// modification times are ordered by name, so that eviction is deterministic.
func (c *candidate) Less(xif llrb.Item) bool {
	x := xif.(*candidate) //nolint:forcetypeassert
	if c.lastMod.Equal(x.lastMod) {
		return c.name < x.name
	}
	return c.lastMod.Before(x.lastMod)
}

// maintain keeps the cache directory within its size budget before a write
// adds incoming more bytes. When the non-recursive sum of regular file sizes
// plus incoming exceeds MaxCacheSize, the oldest entries are deleted until
// the total drops below ResizedCacheSize. The walk stops before it would
// leave fewer than MinCachedFiles entries behind: the floor wins over the
// size cap, even if the cache stays over budget. Subdirectories are never
// deleted, but every entry walked, directory or not, consumes the floor
// budget. A candidate that can not be deleted is logged and skipped;
// eviction never aborts the write that triggered it.
func (s *Store) maintain(incoming infounit.ByteCount) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		s.logPrintf("%s: Failed to read the cache dir: %v", s.dir, err)
		return
	}

	total := incoming
	tree := llrb.New()
	for _, ent := range entries {
		finfo, err := ent.Info()
		if err != nil {
			s.logPrintf("%s: Failed to stat: %v", ent.Name(), err)
			continue
		}
		cand := &candidate{
			name:    ent.Name(),
			path:    filepath.Join(s.dir, ent.Name()),
			lastMod: finfo.ModTime(),
			regular: finfo.Mode().IsRegular(),
		}
		if cand.regular {
			cand.size = infounit.ByteCount(finfo.Size())
			total += cand.size
		}
		tree.InsertNoReplace(cand)
	}
	if total <= s.maxCacheSize {
		return
	}
	s.logPrintf("Resizing the documents cache. size=%.1S, max=%.1S", total, s.maxCacheSize)

	candList := make([]*candidate, tree.Len())
	n := 0
	iterator := func(iif llrb.Item) bool {
		candList[n] = iif.(*candidate) //nolint:forcetypeassert
		n++
		return true
	}
	tree.AscendGreaterOrEqual(&candidate{}, iterator)

	remaining := len(candList)
	for _, cand := range candList {
		if remaining <= s.minCachedFiles {
			s.logDebugf("Eviction stopped at the %d entry floor. size=%.1S", s.minCachedFiles, total)
			break
		}
		if cand.regular {
			total -= cand.size
			if err := os.Remove(cand.path); err != nil {
				s.logPrintf("%s: Failed to evict: %v", cand.name, err)
			} else {
				s.logPrintf("%s: Evicted. size=%.1S", cand.name, cand.size)
			}
			if total < s.resizedCacheSize {
				break
			}
		}
		remaining--
	}
}
