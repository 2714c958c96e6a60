// ═══════════════════════════════════════════════════════════════════════════════
// LIST CURSOR
// ═══════════════════════════════════════════════════════════════════════════════
// Cursor is the state machine that walks one inverted list at a time: it
// positions on a term, then lazily emits (doc, count, positions, payload)
// tuples in ascending document order, decoding only as much of the
// bitstream as each call requires. A fresh Cursor can be repositioned onto
// another term at any time via Position or Advance; it is not safe for
// concurrent use, matching the single-threaded, single-owner model every
// bitstream handle in this package follows.
// ═══════════════════════════════════════════════════════════════════════════════

package invindex

import (
	"log/slog"
	"math"
)

// EndOfList is returned by NextDocument/SkipTo once a list is exhausted.
// It is deliberately not -1: -1 already means "cursor not yet started" for
// currentDocument, and a sentinel must be distinguishable from both a real
// document id and that initial state.
const EndOfList int64 = math.MaxInt64

// EndOfPositions is returned by NextPosition once a document's positions
// are exhausted.
const EndOfPositions int32 = math.MaxInt32

type cursorState int

const (
	beforeTower cursorState = iota
	beforePayload
	beforeCount
	beforePositions // non-HP only; HP defers positions entirely
	beforePointer
)

// Cursor is bound to one open index and one pair of bitstream handles (a
// document stream and, for the split-positions layout, a positions
// stream). Callers obtain postings via Position/Advance followed by
// NextDocument.
type Cursor struct {
	desc *Descriptor
	doc  *BitReader
	pos  *BitReader // non-nil only when desc.SplitPositions

	log *slog.Logger

	closed bool

	currentTerm            int64
	frequency               int64
	hasPointers             bool
	currentDocument         int64
	numberOfDocumentRecord  int64
	count                   int64
	positionCache           []int32
	currentPosition         int
	state                   cursorState
	payloadCache            *Payload

	quantum int64
	height  int // usable tower height for the current list

	cp *codeParams

	pointerSkip      []int64
	bitSkip          []int64
	positionsBitSkip []int64 // HP only

	levelOriginDoc           []int64
	levelOriginBits          []int64
	levelOriginPositionsBits []int64 // HP only

	readBitsAtLastSkipTower int64
	pointerAtLastSkipTower  int64
	lastK                   int64
	lastTowerTop            int
	lastTowerDefective      bool

	quantumBitLength          int64
	entryBitLength            int64
	positionsQuantumBitLength int64 // HP only
	haveBlockLengths          bool

	// HP-only bookkeeping (§4.4), otherwise left at zero.
	positionsBitsOffset                   int64
	positionsToReadToReachCurrentPosition int64
	lastPositionsIncrement                int64
	lastPositionsOffset                   int64

	// Resolved once per cursor (not re-dispatched per record) per the
	// monomorphizing-dispatch design note: codec family is fixed for the
	// whole index, so the branch on Coding happens here, not inside
	// NextDocument's hot loop.
	readGap       func(*BitReader) (int64, error)
	readCountCode func(*BitReader) (int64, error)
	readFreqCode  func(*BitReader) (int64, error)
}

// NewCursor opens a cursor over desc using doc as the document stream and,
// for the split-positions layout, positions as the positions stream.
// Neither stream is read until Position or Advance is called.
func NewCursor(desc *Descriptor, doc []byte, positions []byte) *Cursor {
	c := &Cursor{
		desc:                     desc,
		doc:                      NewBitReader(doc),
		log:                      slog.Default(),
		currentTerm:              -1,
		currentDocument:          -1,
		numberOfDocumentRecord:   -1,
		count:                    -1,
		cp:                       newCodeParams(desc.Height),
		pointerSkip:              make([]int64, desc.Height+2),
		bitSkip:                  make([]int64, desc.Height+2),
		levelOriginDoc:           make([]int64, desc.Height+2),
		levelOriginBits:          make([]int64, desc.Height+2),
		readGap:                  codingReader(desc.PointerCoding),
		readCountCode:            codingReader(desc.CountCoding),
		readFreqCode:             codingReader(desc.FrequencyCoding),
	}
	if desc.SplitPositions {
		c.pos = NewBitReader(positions)
		c.positionsBitSkip = make([]int64, desc.Height+2)
		c.levelOriginPositionsBits = make([]int64, desc.Height+2)
	}
	return c
}

// codingReader resolves a Coding to the matching fixed (non-parametrized)
// BitReader primitive. Golomb and skewed-Golomb are parametrized per list
// and are dispatched separately by their callers (readGap's closure for
// Golomb pointer coding is installed by readFrequency, not here).
func codingReader(c Coding) func(*BitReader) (int64, error) {
	switch c {
	case CodingUnary:
		return (*BitReader).ReadUnary
	case CodingGamma, CodingShiftedGamma:
		return (*BitReader).ReadGamma
	case CodingDelta:
		return (*BitReader).ReadDelta
	default:
		// Golomb/skewed-Golomb pointer coding is installed lazily once the
		// per-list modulus is known; see readFrequency.
		return nil
	}
}

// TermNumber returns the ordinal of the term currently positioned on, or
// -1 if none.
func (c *Cursor) TermNumber() int64 { return c.currentTerm }

// Frequency returns the number of postings in the current list.
func (c *Cursor) Frequency() int64 { return c.frequency }

// Document returns the most recently decoded document id.
func (c *Cursor) Document() int64 { return c.currentDocument }

// AlwaysMatchingInterval reports whether this list's positional semantics
// degenerate to a plain document-level match: true when payloads are
// present but positions are not, mirroring the original's surprising
// "always true" interval iterator for that combination (§9 Open Question
// b). Exposed explicitly rather than silently implied.
func (c *Cursor) AlwaysMatchingInterval() bool {
	return c.desc.HasPayloads && !c.desc.HasPositions
}

// Close releases the cursor. After it, every method with an error result
// (Position, PositionByName, Advance, NextDocument, Count, Payload,
// NextPosition, SkipTo) fails with ErrCursorClosed. The plain accessors
// (TermNumber, Frequency, Document, MayHaveNext, AlwaysMatchingInterval)
// have no error result and keep returning the cursor's last state.
func (c *Cursor) Close() error {
	c.closed = true
	return nil
}

// Position seeks to term's list (by ordinal) and decodes its frequency
// header, per §4.2.
func (c *Cursor) Position(term int64) error {
	if c.closed {
		return ErrCursorClosed
	}
	var bitOffset int64
	if term == 0 {
		bitOffset = 0
	} else {
		if c.desc.Offsets == nil {
			return ErrMissingOffsets
		}
		off, ok := c.desc.Offsets.Offset(term)
		if !ok {
			return ErrMissingOffsets
		}
		bitOffset = off
	}
	c.doc.SeekBit(bitOffset)
	c.currentTerm = term
	if err := c.openPositionsPrefix(); err != nil {
		return err
	}
	if err := c.readFrequency(); err != nil {
		return err
	}
	c.log.Debug("position", "term", term, "frequency", c.frequency)
	return nil
}

// PositionByName resolves term via the configured TermMap and positions on
// it.
func (c *Cursor) PositionByName(term string) error {
	if c.closed {
		return ErrCursorClosed
	}
	if c.desc.Terms == nil {
		return ErrMissingTermMap
	}
	ord, ok := c.desc.Terms.Ordinal(term)
	if !ok {
		return ErrMissingTermMap
	}
	return c.Position(ord)
}

// Advance moves the cursor to the next term in ordinal order by exhausting
// the current list, then reading the next list's header. Returns false
// once positioned past the last term.
func (c *Cursor) Advance() (bool, error) {
	if c.closed {
		return false, ErrCursorClosed
	}
	if c.currentTerm < 0 {
		if err := c.Position(0); err != nil {
			return false, err
		}
		return true, nil
	}
	if _, err := c.SkipTo(EndOfList); err != nil {
		return false, err
	}
	if c.currentDocument != EndOfList {
		if _, err := c.NextDocument(); err != nil {
			return false, err
		}
	}
	next := c.currentTerm + 1
	if next >= c.desc.T {
		return false, nil
	}
	c.currentTerm = next
	if err := c.openPositionsPrefix(); err != nil {
		return false, err
	}
	if err := c.readFrequency(); err != nil {
		return false, err
	}
	c.log.Debug("advance", "term", next, "frequency", c.frequency)
	return true, nil
}

// readFrequency decodes the list header: frequency, pointer-coding
// parameters, quantum geometry, and per-level tower parameters. Invoked by
// Position and Advance only, never per record.
func (c *Cursor) readFrequency() error {
	c.readBitsAtLastSkipTower = c.doc.Position()
	c.pointerAtLastSkipTower = -1
	c.lastK = 0
	c.haveBlockLengths = false
	c.quantumBitLength = 0
	c.entryBitLength = 0
	c.positionsQuantumBitLength = 0
	c.positionsBitsOffset = 0
	c.positionsToReadToReachCurrentPosition = 0
	c.lastPositionsIncrement = 0

	freqMinusOne, err := c.readFreqCode(c.doc)
	if err != nil {
		return err
	}
	c.frequency = freqMinusOne + 1
	c.hasPointers = c.frequency < c.desc.N

	if c.desc.Quantum == 0 {
		raw, err := c.doc.ReadGamma()
		if err != nil {
			return err
		}
		var shift int64
		if raw == 0 {
			if c.frequency == 1 {
				shift = -1
			} else {
				shift = int64(mostSignificantBit(c.frequency-1)+1) + 1
			}
		} else {
			shift = raw - 1
		}
		if shift < 0 {
			c.quantum = 0
		} else {
			c.quantum = int64(1) << uint(shift)
		}
	} else {
		c.quantum = int64(c.desc.Quantum)
	}

	c.height = 0
	if c.desc.HasSkips && c.quantum > 0 {
		c.height = c.desc.Height
		if maxUsable := mostSignificantBit(c.frequency / c.quantum); maxUsable < c.height {
			if maxUsable < 0 {
				maxUsable = 0
			}
			c.height = maxUsable
		}
	}
	c.cp.derive(c.frequency, c.desc.N, c.quantum, c.height, c.desc.PointerCoding)
	if c.desc.PointerCoding == CodingGolomb {
		b, log2b := c.cp.golombB, c.cp.golombLog2B
		c.readGap = func(br *BitReader) (int64, error) { return br.ReadGolomb(b, log2b) }
	} else if c.desc.PointerCoding == CodingSkewedGolomb {
		b := c.cp.golombB
		c.readGap = func(br *BitReader) (int64, error) { return br.ReadSkewedGolomb(b) }
	}

	c.state = beforePointer
	c.numberOfDocumentRecord = -1
	c.currentDocument = -1
	c.count = -1
	c.positionCache = nil
	c.currentPosition = 0
	c.payloadCache = nil
	return nil
}

// MayHaveNext reports whether a further NextDocument call could yield a
// real document id (as opposed to EndOfList).
func (c *Cursor) MayHaveNext() bool {
	return c.numberOfDocumentRecord < c.frequency-1
}

// NextDocument advances to the next posting, per the eight steps of §4.2.
func (c *Cursor) NextDocument() (int64, error) {
	if c.closed {
		return 0, ErrCursorClosed
	}
	if c.currentDocument == EndOfList {
		return EndOfList, nil
	}
	// A count already read by Count whose positions were never
	// materialized still occupies the positions stream.
	if c.desc.SplitPositions && c.desc.HasPositions && c.state == beforePointer &&
		c.count > 0 && c.positionCache == nil {
		c.positionsToReadToReachCurrentPosition += c.count
	}

	if c.state == beforeTower {
		if err := c.readTower(); err != nil {
			return 0, err
		}
	}
	if c.state == beforePayload {
		if err := c.decodePayload(); err != nil {
			return 0, err
		}
		c.state = beforeCount
	}
	if c.state == beforeCount {
		if c.desc.HasCounts {
			cnt, err := c.readCountCode(c.doc)
			if err != nil {
				return 0, err
			}
			c.count = cnt + 1
		}
		if c.desc.SplitPositions && c.desc.HasPositions && c.count > 0 {
			c.positionsToReadToReachCurrentPosition += c.count
		}
		if c.desc.HasPositions && !c.desc.SplitPositions {
			c.state = beforePositions
		} else {
			c.state = beforePointer
		}
	}
	if c.state == beforePositions {
		if err := c.skipPositionBlock(); err != nil {
			return 0, err
		}
		c.state = beforePointer
	}

	c.numberOfDocumentRecord++
	if c.numberOfDocumentRecord == c.frequency {
		c.currentDocument = EndOfList
		return EndOfList, nil
	}

	if c.hasPointers {
		gap, err := c.readGap(c.doc)
		if err != nil {
			return 0, err
		}
		c.currentDocument += gap + 1
	} else {
		c.currentDocument++
	}
	c.positionCache = nil
	c.currentPosition = 0
	c.count = -1
	c.payloadCache = nil

	switch {
	case c.desc.HasPayloads:
		c.state = beforePayload
	case c.desc.HasCounts:
		c.state = beforeCount
	default:
		c.state = beforePointer
	}
	if c.desc.HasSkips && c.quantum > 0 &&
		c.numberOfDocumentRecord%c.quantum == 0 &&
		c.numberOfDocumentRecord < c.frequency {
		c.state = beforeTower
	}
	return c.currentDocument, nil
}

// Count returns the cached posting count for the current document,
// decoding it on first use.
func (c *Cursor) Count() (int64, error) {
	if c.closed {
		return 0, ErrCursorClosed
	}
	if !c.desc.HasCounts {
		return 0, ErrUnsupportedCodecFeature
	}
	if c.count >= 0 {
		return c.count, nil
	}
	if err := c.fastForwardTo(beforeCount); err != nil {
		return 0, err
	}
	cnt, err := c.readCountCode(c.doc)
	if err != nil {
		return 0, err
	}
	c.count = cnt + 1
	if c.desc.HasPositions && !c.desc.SplitPositions {
		c.state = beforePositions
	} else {
		c.state = beforePointer
	}
	return c.count, nil
}

// Payload returns the cached payload for the current document, decoding
// it on first use.
func (c *Cursor) Payload() (*Payload, error) {
	if c.closed {
		return nil, ErrCursorClosed
	}
	if !c.desc.HasPayloads {
		return nil, ErrUnsupportedCodecFeature
	}
	if c.payloadCache != nil {
		return c.payloadCache, nil
	}
	if err := c.fastForwardTo(beforePayload); err != nil {
		return nil, err
	}
	if err := c.decodePayload(); err != nil {
		return nil, err
	}
	c.state = beforeCount
	return c.payloadCache, nil
}

func (c *Cursor) decodePayload() error {
	if c.desc.Payload == nil {
		c.payloadCache = &Payload{}
		return nil
	}
	v, err := c.doc.ReadBits(c.desc.Payload.BitWidth)
	if err != nil {
		return err
	}
	c.payloadCache = &Payload{Raw: v}
	return nil
}

// fastForwardTo runs the state machine's intervening decode steps (tower,
// payload) until state reaches target, without yet consuming target's own
// field. Used by Count/Payload to support being called before the other.
func (c *Cursor) fastForwardTo(target cursorState) error {
	if c.state == beforeTower {
		if err := c.readTower(); err != nil {
			return err
		}
	}
	if target == beforePayload {
		return nil
	}
	if c.state == beforePayload {
		if err := c.decodePayload(); err != nil {
			return err
		}
		c.state = beforeCount
	}
	return nil
}
