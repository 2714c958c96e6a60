// ═══════════════════════════════════════════════════════════════════════════════
// ERROR TAXONOMY
// ═══════════════════════════════════════════════════════════════════════════════
// Package-level sentinels, one per distinguishable failure kind, so callers
// can branch with errors.Is instead of string-matching. Mirrors the
// teacher's ErrNoPostingList / ErrNoNextElement / ErrNoPrevElement style.
// ═══════════════════════════════════════════════════════════════════════════════

package invindex

import "errors"

var (
	// ErrUnsupportedCodecFeature is returned when a Descriptor requests a
	// coding, payload shape, or HP/non-HP combination this package does not
	// implement (e.g. a codec value outside the known enum).
	ErrUnsupportedCodecFeature = errors.New("invindex: unsupported codec feature")

	// ErrMissingOffsets is returned by Position when the Descriptor has no
	// OffsetsTable but one is required to resolve a term to a bit offset.
	ErrMissingOffsets = errors.New("invindex: offsets table required but not configured")

	// ErrMissingTermMap is returned by PositionByName when no TermMap
	// collaborator was supplied to translate the string to an ordinal, or
	// when the TermMap has no ordinal for the string.
	ErrMissingTermMap = errors.New("invindex: term map required but not configured")

	// ErrMissingSizes is returned when a position codec that needs the
	// current document's length (Golomb, skewed-Golomb, interpolative) is
	// selected but the Descriptor has no SizesTable.
	ErrMissingSizes = errors.New("invindex: sizes table required but not configured")

	// ErrCursorClosed is returned by any Cursor method invoked after Close.
	ErrCursorClosed = errors.New("invindex: cursor is closed")

	// ErrCorruptStream is returned when the bitstream contains a value
	// that cannot correspond to a well-formed encoding: a negative bit
	// skip, or a document id outside the InMemorySizes table.
	ErrCorruptStream = errors.New("invindex: corrupt bitstream")
)
