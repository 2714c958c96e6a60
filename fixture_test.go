// ═══════════════════════════════════════════════════════════════════════════════
// TEST FIXTURE ENCODER
// ═══════════════════════════════════════════════════════════════════════════════
// Index construction (the writer side) is out of scope for this package —
// but exercising a cursor end to end needs *some* bitstream to decode. This
// file is a small, test-only encoder mirroring the universal-code and
// per-record decode steps in bitstream.go / cursor.go, used only to build
// fixtures for the tests in this package. It deliberately does not emit
// skip towers: reproducing their bit layout in a second, independent
// writer isn't worth the risk of the two sides silently agreeing with
// each other on a wrong answer. Only the tower reader's pure helpers and
// the skip-free SkipTo fallback have direct unit tests (see
// skiptower_test.go); tower decoding itself is not exercised by any test.
// See DESIGN.md.
// ═══════════════════════════════════════════════════════════════════════════════

package invindex

type bitWriter struct {
	buf    []byte
	bitLen int64
}

func (w *bitWriter) WriteBit(b int) {
	byteIdx := int(w.bitLen >> 3)
	for byteIdx >= len(w.buf) {
		w.buf = append(w.buf, 0)
	}
	if b != 0 {
		shift := uint(7 - (w.bitLen & 7))
		w.buf[byteIdx] |= 1 << shift
	}
	w.bitLen++
}

func (w *bitWriter) WriteBits(n int, v uint64) {
	for i := n - 1; i >= 0; i-- {
		w.WriteBit(int((v >> uint(i)) & 1))
	}
}

func (w *bitWriter) WriteUnary(n int64) {
	for i := int64(0); i < n; i++ {
		w.WriteBit(0)
	}
	w.WriteBit(1)
}

func (w *bitWriter) WriteGamma(x int64) {
	v := uint64(x + 1)
	l := mostSignificantBit(int64(v))
	w.WriteUnary(int64(l))
	if l > 0 {
		w.WriteBits(l, v-(uint64(1)<<uint(l)))
	}
}

func (w *bitWriter) WriteDelta(x int64) {
	v := uint64(x + 1)
	l := mostSignificantBit(int64(v))
	w.WriteGamma(int64(l))
	if l > 0 {
		w.WriteBits(l, v-(uint64(1)<<uint(l)))
	}
}

func (w *bitWriter) WriteMinimalBinary(n, r int64) {
	if n <= 1 {
		return
	}
	log2n := mostSignificantBit(n)
	if n == int64(1)<<uint(log2n) {
		w.WriteBits(log2n, uint64(r))
		return
	}
	u := (int64(1) << uint(log2n+1)) - n
	if r < u {
		w.WriteBits(log2n, uint64(r))
		return
	}
	w.WriteBits(log2n+1, uint64(r+u))
}

func (w *bitWriter) WriteGolomb(b int64, v int64) {
	q := v / b
	r := v % b
	w.WriteUnary(q)
	if b > 1 {
		w.WriteMinimalBinary(b, r)
	}
}

func (w *bitWriter) WriteSkewedGolomb(sb int64, v int64) {
	var q int64
	for {
		m := sb >> uint(minInt64(q, 62))
		if m < 1 {
			m = 1
		}
		rem := v - q*m
		if rem >= 0 && rem < m {
			w.WriteUnary(q)
			w.WriteMinimalBinary(m, rem)
			return
		}
		q++
	}
}

func (w *bitWriter) writeByCoding(c Coding, b int64, x int64) {
	switch c {
	case CodingUnary:
		w.WriteUnary(x)
	case CodingGamma, CodingShiftedGamma:
		w.WriteGamma(x)
	case CodingDelta:
		w.WriteDelta(x)
	case CodingGolomb:
		w.WriteGolomb(b, x)
	case CodingSkewedGolomb:
		w.WriteSkewedGolomb(b, x)
	}
}

func (w *bitWriter) Bytes() []byte { return w.buf }

// fixtureDoc is one posting to encode: doc id, optional count, optional
// positions (already absolute, strictly increasing, zero-based within
// the document).
type fixtureDoc struct {
	Doc       int64
	Count     int64
	Positions []int32
}

// encodeList writes one complete skip-free list for docs in order, using
// desc's codec choices. desc.HasSkips must be false; towers are covered
// separately. docSizes is consulted only when the position coding needs
// a document length (Golomb, skewed-Golomb, interpolative).
func encodeList(desc *Descriptor, docs []fixtureDoc, docSizes map[int64]int32) []byte {
	w := &bitWriter{}
	encodeListInto(w, desc, docs, docSizes)
	return w.Bytes()
}

// encodeListInto appends one list's encoding onto an existing bitWriter,
// returning the bit offset the list started at; used to build multi-term
// fixtures where Advance must read consecutive list headers back to back.
func encodeListInto(w *bitWriter, desc *Descriptor, docs []fixtureDoc, docSizes map[int64]int32) int64 {
	if desc.HasSkips {
		panic("encodeListInto: fixture encoder does not emit skip towers")
	}
	start := w.bitLen
	frequency := int64(len(docs))
	hasPointers := frequency < desc.N

	w.writeByCoding(desc.FrequencyCoding, 0, frequency-1)

	cp := newCodeParams(desc.Height)
	cp.derive(frequency, desc.N, int64(desc.Quantum), 0, desc.PointerCoding)

	prev := int64(-1)
	for r := int64(0); r < frequency; r++ {
		doc := docs[r].Doc
		if hasPointers {
			gap := doc - prev - 1
			w.writeByCoding(desc.PointerCoding, cp.golombB, gap)
		}
		prev = doc
		if desc.HasCounts {
			w.writeByCoding(desc.CountCoding, 0, docs[r].Count-1)
		}
		if desc.HasPositions && !desc.SplitPositions {
			encodePositions(w, desc.PositionCoding, docs[r].Positions, docSizes[doc])
		}
	}
	return start
}

func encodePositions(w *bitWriter, coding Coding, positions []int32, docSize int32) {
	n := len(positions)
	if n == 0 {
		return
	}
	switch coding {
	case CodingGamma, CodingShiftedGamma, CodingDelta:
		prev := int32(-1)
		for _, p := range positions {
			gap := int64(p-prev) - 1
			if coding == CodingDelta {
				w.WriteDelta(gap)
			} else {
				w.WriteGamma(gap)
			}
			prev = p
		}
	case CodingGolomb, CodingSkewedGolomb:
		if n < 3 {
			for _, p := range positions {
				w.WriteMinimalBinary(int64(docSize), int64(p))
			}
			return
		}
		b := positionGolombModulus(int64(n), int64(docSize))
		if coding == CodingSkewedGolomb {
			w.WriteMinimalBinary(int64(docSize), b-1)
		}
		prev := int32(-1)
		for _, p := range positions {
			gap := int64(p-prev) - 1
			if coding == CodingSkewedGolomb {
				w.WriteSkewedGolomb(b, gap)
			} else {
				w.WriteGolomb(b, gap)
			}
			prev = p
		}
	case CodingInterpolative:
		writeInterpolative(w, positions, 0, int64(docSize)-1)
	}
}

// encodeListHP writes one split-positions list: a delta-coded positions
// offset prefix, then a document stream with no inline positions, and a
// separate positions stream holding every document's gap-coded position
// block back to back in document order. Returns (docStream, posStream).
func encodeListHP(desc *Descriptor, docs []fixtureDoc, docSizes map[int64]int32, posStreamStart int64) ([]byte, []byte) {
	if !desc.SplitPositions {
		panic("encodeListHP: desc.SplitPositions must be set")
	}
	dw := &bitWriter{}
	dw.WriteDelta(posStreamStart)

	frequency := int64(len(docs))
	hasPointers := frequency < desc.N
	dw.writeByCoding(desc.FrequencyCoding, 0, frequency-1)

	cp := newCodeParams(desc.Height)
	cp.derive(frequency, desc.N, int64(desc.Quantum), 0, desc.PointerCoding)

	pw := &bitWriter{}
	for i := int64(0); i < posStreamStart; i++ {
		pw.WriteBit(0)
	}

	prev := int64(-1)
	for r := int64(0); r < frequency; r++ {
		doc := docs[r].Doc
		if hasPointers {
			gap := doc - prev - 1
			dw.writeByCoding(desc.PointerCoding, cp.golombB, gap)
		}
		prev = doc
		if desc.HasCounts {
			dw.writeByCoding(desc.CountCoding, 0, docs[r].Count-1)
		}
		encodePositions(pw, desc.PositionCoding, docs[r].Positions, docSizes[doc])
	}
	return dw.Bytes(), pw.Bytes()
}

func writeInterpolative(w *bitWriter, values []int32, low, high int64) {
	count := len(values)
	if count == 0 {
		return
	}
	mid := count / 2
	lo := low + int64(mid)
	hi := high - int64(count-mid-1)
	width := hi - lo + 1
	w.WriteMinimalBinary(width, int64(values[mid])-lo)
	writeInterpolative(w, values[:mid], low, int64(values[mid])-1)
	writeInterpolative(w, values[mid+1:], int64(values[mid])+1, high)
}
