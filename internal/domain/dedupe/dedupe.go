// Package dedupe collapses report candidates that share an identifier.
package dedupe

import (
	"strings"
	"sync"

	"github.com/okian/swingsheet/internal/domain/model"
)

// Deduper records seen report identifiers.
type Deduper interface {
	// SeenAndRecord atomically checks if id was seen and records it if not.
	// Returns true if id was already seen, false if it was newly recorded.
	SeenAndRecord(id string) bool

	Size() int
}

// inMemoryDeduper implements Deduper with a map. Identifiers compare
// case-insensitively.
type inMemoryDeduper struct {
	mu       sync.Mutex
	seen     map[string]struct{}
	capacity int
}

// NewInMemoryDeduper creates a new in-memory deduper with configuration options.
func NewInMemoryDeduper(opts ...Option) Deduper {
	d := &inMemoryDeduper{}
	for _, opt := range opts {
		opt(d)
	}
	d.seen = make(map[string]struct{}, d.capacity)
	return d
}

func (d *inMemoryDeduper) SeenAndRecord(id string) bool {
	key := strings.ToLower(id)

	d.mu.Lock()
	defer d.mu.Unlock()

	if _, exists := d.seen[key]; exists {
		return true
	}
	d.seen[key] = struct{}{}
	return false
}

func (d *inMemoryDeduper) Size() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.seen)
}

// Candidates keeps the first occurrence of every identifier, preserving
// input order. Discovery yields newest visits first, so the kept entry is
// the most recent one.
func Candidates(in []model.ReportCandidate) []model.ReportCandidate {
	d := NewInMemoryDeduper(WithCapacity(len(in)))
	out := make([]model.ReportCandidate, 0, len(in))
	for _, c := range in {
		if d.SeenAndRecord(c.ID) {
			continue
		}
		out = append(out, c)
	}
	return out
}
