package diag

import (
	"cmp"
	"math"
	"slices"

	"fortio.org/safecast"

	"csclean/internal/source"
)

// Bag collects the diagnostics of one document up to a limit. Everything
// past the limit is only counted.
type Bag struct {
	items   []Diagnostic
	max     uint16
	dropped int
}

// NewBag creates a bag holding at most max diagnostics; max is clamped to
// [0, 65535].
func NewBag(max int) *Bag {
	limit, err := safecast.Conv[uint16](max)
	if err != nil {
		limit = 0
		if max > 0 {
			limit = math.MaxUint16
		}
	}
	return &Bag{max: limit}
}

// Add stores d unless the bag is full; it reports whether d was kept.
func (b *Bag) Add(d Diagnostic) bool {
	if len(b.items) >= int(b.max) {
		b.dropped++
		return false
	}
	b.items = append(b.items, d)
	return true
}

func (b *Bag) Cap() uint16 { return b.max }

func (b *Bag) Len() int { return len(b.items) }

// Dropped is the number of diagnostics rejected by the limit.
func (b *Bag) Dropped() int { return b.dropped }

// Items returns the stored diagnostics. The slice is shared with the bag.
func (b *Bag) Items() []Diagnostic { return b.items }

func (b *Bag) HasErrors() bool { return b.has(SevError) }

func (b *Bag) HasWarnings() bool { return b.has(SevWarning) }

func (b *Bag) has(sev Severity) bool {
	return slices.ContainsFunc(b.items, func(d Diagnostic) bool { return d.Severity >= sev })
}

// Sort orders by file and position, then by severity (errors first) and code.
func (b *Bag) Sort() {
	slices.SortStableFunc(b.items, func(x, y Diagnostic) int {
		return cmp.Or(
			cmp.Compare(x.Primary.File, y.Primary.File),
			cmp.Compare(x.Primary.Start, y.Primary.Start),
			cmp.Compare(x.Primary.End, y.Primary.End),
			cmp.Compare(y.Severity, x.Severity),
			cmp.Compare(x.Code, y.Code),
		)
	})
}

// Dedup drops repeated diagnostics with the same code and span, keeping the
// first one.
func (b *Bag) Dedup() {
	type key struct {
		code Code
		span source.Span
	}
	seen := make(map[key]struct{}, len(b.items))
	b.items = slices.DeleteFunc(b.items, func(d Diagnostic) bool {
		k := key{d.Code, d.Primary}
		if _, dup := seen[k]; dup {
			return true
		}
		seen[k] = struct{}{}
		return false
	})
}
