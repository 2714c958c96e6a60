// ═══════════════════════════════════════════════════════════════════════════════
// POSITION CODECS (non-HP variant)
// ═══════════════════════════════════════════════════════════════════════════════
// Positions for a document are a gap sequence of length count; absolute
// positions are the prefix sum plus the running index. §4.5 names six
// codecs; Golomb, skewed-Golomb and interpolative additionally need the
// document's length (from the sizes table) to bound or parametrize the
// code. The codec family is fixed for the whole index (Descriptor.
// PositionCoding), so the switch below runs once per document, never once
// per posting inside it.
// ═══════════════════════════════════════════════════════════════════════════════

package invindex

// NextPosition returns the next absolute position for the current
// document, decoding and caching the full position list on first use, and
// EndOfPositions once exhausted.
func (c *Cursor) NextPosition() (int32, error) {
	if c.closed {
		return 0, ErrCursorClosed
	}
	if !c.desc.HasPositions {
		return 0, ErrUnsupportedCodecFeature
	}
	if c.positionCache == nil {
		if _, err := c.Count(); err != nil {
			return 0, err
		}
		if err := c.materializePositions(); err != nil {
			return 0, err
		}
	}
	if c.currentPosition >= len(c.positionCache) {
		return EndOfPositions, nil
	}
	p := c.positionCache[c.currentPosition]
	c.currentPosition++
	return p, nil
}

// materializePositions decodes every position for the current document in
// one pass and leaves the cursor positioned at BEFORE_POINTER (non-HP) or
// ready for the next tower/count record (HP, see hpcursor.go).
func (c *Cursor) materializePositions() error {
	if c.desc.SplitPositions {
		return c.materializePositionsHP()
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
	if err := decodePositionBlock(c.doc, c.desc.PositionCoding, occ, docSize); err != nil {
		return err
	}
	c.positionCache = occ
	c.currentPosition = 0
	c.state = beforePointer
	return nil
}

// skipPositionBlock discards (without materializing) the current
// document's position block, used by NextDocument when the caller never
// asked for positions.
func (c *Cursor) skipPositionBlock() error {
	n := int(c.count)
	if n == 0 {
		return nil
	}
	switch c.desc.PositionCoding {
	case CodingGamma:
		return c.doc.SkipGammas(n)
	case CodingShiftedGamma:
		return c.doc.SkipShiftedGammas(n)
	case CodingDelta:
		return c.doc.SkipDeltas(n)
	case CodingGolomb, CodingSkewedGolomb, CodingInterpolative:
		// These all depend on document size and gap-prefix structure in
		// ways that are no cheaper to skip than to decode, so fall back
		// to a full (discarded) decode.
		if c.desc.Sizes == nil {
			return ErrMissingSizes
		}
		docSize, err := c.desc.Sizes.Size(c.currentDocument)
		if err != nil {
			return err
		}
		scratch := make([]int32, n)
		return decodePositionBlock(c.doc, c.desc.PositionCoding, scratch, docSize)
	default:
		return ErrUnsupportedCodecFeature
	}
}

// decodePositionBlock decodes count (= len(occ)) positions of the given
// coding into occ, reconstructing absolute positions from gaps.
func decodePositionBlock(r *BitReader, coding Coding, occ []int32, docSize int32) error {
	n := len(occ)
	if n == 0 {
		return nil
	}
	switch coding {
	case CodingGamma:
		if err := r.ReadGammas(occ, n); err != nil {
			return err
		}
		return prefixSum(occ)
	case CodingShiftedGamma:
		if err := r.ReadShiftedGammas(occ, n); err != nil {
			return err
		}
		return prefixSum(occ)
	case CodingDelta:
		if err := r.ReadDeltas(occ, n); err != nil {
			return err
		}
		return prefixSum(occ)
	case CodingGolomb:
		return decodeGolombPositions(r, occ, docSize, false)
	case CodingSkewedGolomb:
		return decodeGolombPositions(r, occ, docSize, true)
	case CodingInterpolative:
		return r.ReadInterpolative(occ, 0, n, 0, int64(docSize)-1)
	default:
		return ErrUnsupportedCodecFeature
	}
}

// prefixSum turns a decoded gap sequence (each gap already the true
// difference minus one, per universal-code convention) into absolute,
// strictly increasing positions: absolute[i] = prefixSum(gaps[0..i]) + i.
func prefixSum(occ []int32) error {
	var sum int64
	for i, gap := range occ {
		sum += int64(gap) + 1
		occ[i] = int32(sum - 1)
	}
	return nil
}

// decodeGolombPositions implements §4.5's Golomb/skewed-Golomb position
// block: for fewer than three positions each is minimal-binary coded
// directly within [0, docSize); otherwise a Golomb parameter derived from
// (count, docSize) codes the gap sequence (skewed variant prepends its own
// minimal-binary-coded per-document parameter).
func decodeGolombPositions(r *BitReader, occ []int32, docSize int32, skewed bool) error {
	n := len(occ)
	if n < 3 {
		for i := 0; i < n; i++ {
			v, err := r.ReadMinimalBinary(int64(docSize))
			if err != nil {
				return err
			}
			occ[i] = int32(v)
		}
		return nil
	}
	b := positionGolombModulus(int64(n), int64(docSize))
	if skewed {
		param, err := r.ReadMinimalBinary(int64(docSize))
		if err != nil {
			return err
		}
		b = param + 1
	}
	log2b := mostSignificantBit(b)
	var sum int64
	for i := 0; i < n; i++ {
		var v int64
		var err error
		if skewed {
			v, err = r.ReadSkewedGolomb(b)
		} else {
			v, err = r.ReadGolomb(b, log2b)
		}
		if err != nil {
			return err
		}
		sum += v + 1
		occ[i] = int32(sum - 1)
	}
	return nil
}

// positionGolombModulus derives the Golomb parameter for a position gap
// sequence of count values spread across a document of size docSize, by
// the same Bernoulli-gap approximation used for pointer gaps.
func positionGolombModulus(count, docSize int64) int64 {
	return golombModulus(count, docSize)
}
