// ═══════════════════════════════════════════════════════════════════════════════
// SKIP-TOWER READER
// ═══════════════════════════════════════════════════════════════════════════════
// Every q-th record carries a tower of up to H+1 levels; level i skips
// 2^i quanta ahead. Towers interleave two techniques to stay small:
//
//   - truncated tops are stored explicitly, Gaussian-Golomb coded against
//     a predicted skip distance, whenever a level's span would run past
//     the end of the list;
//   - otherwise a level's top entry is inherited from the tower that most
//     recently populated it one level up, adjusted for what's been
//     consumed since, so the same information is never re-transmitted.
//
// Lower levels below the top are always decoded fresh, each relative to
// the level above it (half the predicted skip, plus a residual).
//
// SIMPLIFICATION (documented in DESIGN.md): rather than truly suspending
// mid-tower the way the original partial-read does, readTower always
// decodes every level down to the computed top s in one pass; SkipTo then
// picks the best already-decoded level to jump through. This costs a few
// extra bits decoded on a skip that could have stopped earlier, but is
// behaviorally identical — neither the emitted documents nor any public
// invariant depends on exactly how many tower levels were materialized.
// ═══════════════════════════════════════════════════════════════════════════════

package invindex

// readTower decodes the tower at the current quantum boundary in full,
// updating pointerSkip/bitSkip (and, for the split-positions layout,
// positionsBitSkip) for every level from the computed top down to zero,
// then leaves state at its natural successor (payload, count, or
// pointer) so NextDocument's remaining steps proceed unchanged.
func (c *Cursor) readTower() error {
	w := c.quantum * (int64(1) << uint(c.height))
	var k int64
	if w > 0 {
		k = (c.numberOfDocumentRecord % w) / c.quantum
	}

	s := c.height
	if k != 0 {
		s = trailingZeros(k)
	}

	remainingQuanta := (c.frequency - c.numberOfDocumentRecord) / c.quantum
	maxh := mostSignificantBit(remainingQuanta - k)
	truncated := false
	if maxh < s {
		s = maxh
		truncated = true
	}

	c.lastTowerTop = s
	c.lastTowerDefective = maxh < 0
	if c.lastTowerDefective {
		c.state = c.naturalState()
		return nil
	}

	if k == 0 {
		if err := c.refreshBlockLengths(); err != nil {
			return err
		}
	}
	if s > 0 {
		if _, err := c.doc.ReadDelta(); err != nil {
			return err
		}
	}

	if truncated {
		if err := c.readTruncatedTop(s); err != nil {
			return err
		}
	} else {
		c.inheritTop(s)
	}
	c.recordLevelOrigin(s)

	for i := s - 1; i >= 0; i-- {
		if err := c.readLowerLevel(i); err != nil {
			return err
		}
		c.recordLevelOrigin(i)
	}

	bound := mostSignificantBit(k ^ c.lastK)
	for j := s + 1; j <= bound && j <= c.height+1; j++ {
		c.pointerSkip[j] -= c.currentDocument - c.levelOriginDoc[j]
		c.bitSkip[j] -= c.doc.Position() - c.levelOriginBits[j]
		if c.desc.SplitPositions {
			c.positionsBitSkip[j] -= c.positionsBitsOffset - c.levelOriginPositionsBits[j]
		}
		c.recordLevelOrigin(j)
	}
	c.lastK = k

	c.readBitsAtLastSkipTower = c.doc.Position()
	c.pointerAtLastSkipTower = c.currentDocument
	if c.desc.SplitPositions && s >= 0 {
		c.lastPositionsIncrement = c.positionsBitSkip[0]
		c.positionsToReadToReachCurrentPosition = 0
	}

	c.state = c.naturalState()
	return nil
}

func (c *Cursor) readTruncatedTop(s int) error {
	topResidual, err := c.doc.ReadGolomb(c.cp.towerTopB[s], c.cp.towerTopLog2B[s])
	if err != nil {
		return err
	}
	c.pointerSkip[s] = c.cp.pointerPrediction[s] + nat2int(topResidual)

	bitAbs := c.quantum*(int64(1)<<uint(s))*c.quantumBitLength +
		c.entryBitLength*((int64(1)<<uint(s+1))-int64(s)-2)
	bitResidual, err := c.doc.ReadDelta()
	if err != nil {
		return err
	}
	c.bitSkip[s] = bitAbs + nat2int(bitResidual)

	if c.desc.SplitPositions {
		posAbs := c.positionsQuantumBitLength * (int64(1) << uint(s))
		posResidual, err := c.doc.ReadDelta()
		if err != nil {
			return err
		}
		c.positionsBitSkip[s] = posAbs + nat2int(posResidual)
	}
	return nil
}

func (c *Cursor) inheritTop(s int) {
	c.pointerSkip[s] = c.pointerSkip[s+1] - (c.currentDocument - c.levelOriginDoc[s+1])
	c.bitSkip[s] = c.bitSkip[s+1] - (c.doc.Position() - c.levelOriginBits[s+1])
	if c.desc.SplitPositions {
		c.positionsBitSkip[s] = c.positionsBitSkip[s+1] - (c.positionsBitsOffset - c.levelOriginPositionsBits[s+1])
	}
}

func (c *Cursor) readLowerLevel(i int) error {
	residual, err := c.doc.ReadGolomb(c.cp.towerLowerB[i], c.cp.towerLowerLog2B[i])
	if err != nil {
		return err
	}
	c.pointerSkip[i] = residual + c.pointerSkip[i+1]/2

	bitResidual, err := c.doc.ReadDelta()
	if err != nil {
		return err
	}
	c.bitSkip[i] = (c.bitSkip[i+1]-c.entryBitLength*int64(i+1))/2 - nat2int(bitResidual)

	if c.desc.SplitPositions {
		posResidual, err := c.doc.ReadDelta()
		if err != nil {
			return err
		}
		c.positionsBitSkip[i] = c.positionsBitSkip[i+1]/2 - nat2int(posResidual)
	}
	return nil
}

func (c *Cursor) recordLevelOrigin(level int) {
	c.levelOriginDoc[level] = c.currentDocument
	c.levelOriginBits[level] = c.doc.Position()
	if c.desc.SplitPositions {
		c.levelOriginPositionsBits[level] = c.positionsBitsOffset
	}
}

// refreshBlockLengths re-reads the three per-super-block length fields
// (quantum bit length, entry bit length, and for the split-positions
// layout, positions-quantum bit length) whenever a new super-block
// begins (k == 0): absolutely the first time, as a zig-zag delta residual
// thereafter.
func (c *Cursor) refreshBlockLengths() error {
	if !c.haveBlockLengths {
		qbl, err := c.doc.ReadDelta()
		if err != nil {
			return err
		}
		ebl, err := c.doc.ReadDelta()
		if err != nil {
			return err
		}
		c.quantumBitLength = qbl
		c.entryBitLength = ebl
		if c.desc.SplitPositions {
			pqbl, err := c.doc.ReadDelta()
			if err != nil {
				return err
			}
			c.positionsQuantumBitLength = pqbl
		}
		c.haveBlockLengths = true
		return nil
	}
	dq, err := c.doc.ReadDelta()
	if err != nil {
		return err
	}
	de, err := c.doc.ReadDelta()
	if err != nil {
		return err
	}
	c.quantumBitLength += nat2int(dq)
	c.entryBitLength += nat2int(de)
	if c.desc.SplitPositions {
		dp, err := c.doc.ReadDelta()
		if err != nil {
			return err
		}
		c.positionsQuantumBitLength += nat2int(dp)
	}
	return nil
}

func (c *Cursor) naturalState() cursorState {
	switch {
	case c.desc.HasPayloads:
		return beforePayload
	case c.desc.HasCounts:
		return beforeCount
	default:
		return beforePointer
	}
}

func trailingZeros(k int64) int {
	if k == 0 {
		return 0
	}
	n := 0
	for k&1 == 0 {
		n++
		k >>= 1
	}
	return n
}

// SkipTo advances the cursor to the first document id >= p, using the
// skip tower to leap whole quanta where possible and falling back to
// sequential NextDocument for the remainder. A no-op if already at or
// past p.
func (c *Cursor) SkipTo(p int64) (int64, error) {
	if c.closed {
		return 0, ErrCursorClosed
	}
	if c.numberOfDocumentRecord < 0 {
		if _, err := c.NextDocument(); err != nil {
			return 0, err
		}
	}
	if c.currentDocument >= p || c.currentDocument == EndOfList {
		return c.currentDocument, nil
	}
	c.log.Debug("skipTo", "term", c.currentTerm, "target", p)
	for c.currentDocument < p && c.currentDocument != EndOfList {
		if c.state == beforeTower && c.desc.HasSkips && c.quantum > 0 {
			jumped, err := c.tryTowerLeap(p)
			if err != nil {
				return 0, err
			}
			if jumped {
				continue
			}
		}
		if _, err := c.NextDocument(); err != nil {
			return 0, err
		}
	}
	return c.currentDocument, nil
}

// tryTowerLeap decodes the tower at the current boundary and, if any
// level's predicted landing spot is still <= p, performs that leap
// directly on the bitstream (skipping the bits between here and there)
// instead of decoding every intervening record. Returns false if no level
// is safe to use (including the defective-tower case), leaving the
// cursor for NextDocument's normal sequential path.
func (c *Cursor) tryTowerLeap(p int64) (bool, error) {
	anchorDoc := c.currentDocument
	anchorBits := c.doc.Position()
	var anchorPosBits int64
	if c.desc.SplitPositions {
		anchorPosBits = c.positionsBitsOffset
	}

	if err := c.readTower(); err != nil {
		return false, err
	}
	if c.lastTowerDefective {
		return false, nil
	}

	for i := c.lastTowerTop; i >= 0; i-- {
		if anchorDoc+c.pointerSkip[i] > p {
			continue
		}
		quantaSkipped := int64(1) << uint(i)
		bitsToSkip := c.bitSkip[i] - (c.doc.Position() - anchorBits)
		if bitsToSkip < 0 {
			bitsToSkip = 0
		}
		if err := c.doc.Skip(bitsToSkip); err != nil {
			return false, err
		}
		c.currentDocument = anchorDoc + c.pointerSkip[i]
		c.numberOfDocumentRecord += quantaSkipped * c.quantum
		c.count = -1
		c.positionCache = nil
		c.currentPosition = 0
		c.payloadCache = nil

		if c.desc.SplitPositions {
			c.positionsBitsOffset = anchorPosBits + c.positionsBitSkip[i]
			c.positionsToReadToReachCurrentPosition = 0
			c.lastPositionsIncrement = c.positionsBitSkip[i]
		}

		if c.numberOfDocumentRecord >= c.frequency {
			c.currentDocument = EndOfList
			c.state = beforePointer
			return true, nil
		}
		c.state = beforeTower
		c.readBitsAtLastSkipTower = c.doc.Position()
		c.pointerAtLastSkipTower = c.currentDocument
		return true, nil
	}
	return false, nil
}
