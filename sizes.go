// ═══════════════════════════════════════════════════════════════════════════════
// IN-MEMORY SIZES TABLE
// ═══════════════════════════════════════════════════════════════════════════════
// A concrete SizesTable backed by a plain slice indexed by document id.
// Golomb, skewed-Golomb, and interpolative position codecs need a
// document's length to bound or parametrize the code; this is the same
// per-document length bookkeeping the teacher index kept for BM25 scoring,
// adapted here to the one thing this package actually needs it for.
// ═══════════════════════════════════════════════════════════════════════════════

package invindex

import "fmt"

// InMemorySizes is a SizesTable over a dense slice of document lengths,
// indexed 0..N-1.
type InMemorySizes struct {
	lengths []int32
}

// NewInMemorySizes wraps lengths as a SizesTable. The slice is not copied;
// callers must not mutate it afterward.
func NewInMemorySizes(lengths []int32) *InMemorySizes {
	return &InMemorySizes{lengths: lengths}
}

func (s *InMemorySizes) Size(doc int64) (int32, error) {
	if doc < 0 || doc >= int64(len(s.lengths)) {
		return 0, fmt.Errorf("%w: document %d out of range [0,%d)", ErrCorruptStream, doc, len(s.lengths))
	}
	return s.lengths[doc], nil
}
