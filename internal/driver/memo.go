package driver

import (
	"strings"
	"sync"

	"numlit/internal/diag"
	"numlit/internal/project"
)

// memoEntry is what one evaluated file leaves behind.
type memoEntry struct {
	path     string
	name     string
	outcomes []CaseOutcome
	diags    []diag.Diagnostic
}

// MemoCache is a per-process cache of file outcomes keyed by content digest,
// so byte-identical scenarios are evaluated once per batch.
type MemoCache struct {
	mu        sync.RWMutex
	byContent map[project.Digest]memoEntry
}

// NewMemoCache creates a MemoCache with the given capacity hint.
func NewMemoCache(capHint int) *MemoCache {
	return &MemoCache{byContent: make(map[project.Digest]memoEntry, capHint)}
}

// Get returns the outcomes recorded for key, with diagnostic subjects moved
// onto path. A nil cache always misses.
func (c *MemoCache) Get(key project.Digest, path string) (name string, outcomes []CaseOutcome, diags []diag.Diagnostic, ok bool) {
	if c == nil {
		return "", nil, nil, false
	}
	c.mu.RLock()
	rec, ok := c.byContent[key]
	c.mu.RUnlock()
	if !ok {
		return "", nil, nil, false
	}
	return rec.name, append([]CaseOutcome(nil), rec.outcomes...), rebaseSubjects(rec.diags, rec.path, path), true
}

// Put records the outcome of one file.
func (c *MemoCache) Put(key project.Digest, fr *FileResult) {
	if c == nil {
		return
	}
	entry := memoEntry{
		path:     fr.Path,
		name:     fr.Name,
		outcomes: append([]CaseOutcome(nil), fr.Outcomes...),
		diags:    cacheableDiags(fr.Bag),
	}
	c.mu.Lock()
	c.byContent[key] = entry
	c.mu.Unlock()
}

// rebaseSubjects rewrites subjects recorded for file from onto file to.
// Subjects are either the file path or "path#case".
func rebaseSubjects(diags []diag.Diagnostic, from, to string) []diag.Diagnostic {
	out := make([]diag.Diagnostic, len(diags))
	for i, d := range diags {
		d.Subject = rebase(d.Subject, from, to)
		if len(d.Notes) > 0 {
			notes := make([]diag.Note, len(d.Notes))
			for j, n := range d.Notes {
				n.Subject = rebase(n.Subject, from, to)
				notes[j] = n
			}
			d.Notes = notes
		}
		out[i] = d
	}
	return out
}

func rebase(subject, from, to string) string {
	if from == to || from == "" {
		return subject
	}
	if subject == from {
		return to
	}
	if rest, ok := strings.CutPrefix(subject, from+"#"); ok {
		return to + "#" + rest
	}
	return subject
}
