// ═══════════════════════════════════════════════════════════════════════════════
// HIGH-PERFORMANCE (SPLIT-STREAM POSITIONS) VARIANT
// ═══════════════════════════════════════════════════════════════════════════════
// When Descriptor.SplitPositions is set, document-level data (gaps,
// towers, counts) lives in the document stream and every position list
// lives in a second positions stream, reached via a per-list starting bit
// offset stored in the document stream. This file holds the handful of
// extra operations that layout needs: opening/advancing the positions
// prefix on position()/advance(), and materializing a document's position
// block by seeking and bulk-skipping ahead in the positions stream rather
// than reading it inline.
// ═══════════════════════════════════════════════════════════════════════════════

package invindex

// openPositionsPrefix reads the delta-coded positions-stream bit offset
// that precedes every list in the split-positions layout and seeks the
// positions stream to it. A no-op for the interleaved (non-HP) layout.
func (c *Cursor) openPositionsPrefix() error {
	if !c.desc.SplitPositions {
		return nil
	}
	off, err := c.doc.ReadDelta()
	if err != nil {
		return err
	}
	c.lastPositionsOffset = off
	c.pos.SeekBit(off)
	return nil
}

// materializePositionsHP decodes the current document's position block
// out of the positions stream: it seeks forward to the bit offset of the
// current quantum (positionsBitsOffset), skips over whatever positions
// belong to earlier documents in the same quantum
// (positionsToReadToReachCurrentPosition of them), then bulk-decodes this
// document's count gaps and prefix-sums them into absolute positions.
func (c *Cursor) materializePositionsHP() error {
	if c.pos.Position() < c.positionsBitsOffset {
		c.pos.SeekBit(c.positionsBitsOffset)
	}
	if err := c.skipResidualPositions(); err != nil {
		return err
	}

	n := int(c.count)
	occ := make([]int32, n)
	var docSize int32
	if c.desc.needsSizes() {
		if c.desc.Sizes == nil {
			return ErrMissingSizes
		}
		sz, err := c.desc.Sizes.Size(c.currentDocument)
		if err != nil {
			return err
		}
		docSize = sz
	}
	if err := decodePositionBlock(c.pos, c.desc.PositionCoding, occ, docSize); err != nil {
		return err
	}
	c.positionCache = occ
	c.currentPosition = 0
	c.state = beforePointer
	return nil
}

// skipResidualPositions discards the position blocks of any documents in
// the current quantum that precede the current one, advancing the
// positions stream without materializing them.
func (c *Cursor) skipResidualPositions() error {
	remaining := c.positionsToReadToReachCurrentPosition
	c.positionsToReadToReachCurrentPosition = 0
	if remaining <= 0 {
		return nil
	}
	n := int(remaining)
	switch c.desc.PositionCoding {
	case CodingGamma:
		return c.pos.SkipGammas(n)
	case CodingShiftedGamma:
		return c.pos.SkipShiftedGammas(n)
	case CodingDelta:
		return c.pos.SkipDeltas(n)
	default:
		// Golomb/skewed-Golomb/interpolative residual skips require a
		// per-document size and so cannot be skipped generically in bulk
		// across document boundaries; this layout restricts those codecs
		// to the non-split (inline) variant.
		return ErrUnsupportedCodecFeature
	}
}
