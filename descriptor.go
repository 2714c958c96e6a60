// ═══════════════════════════════════════════════════════════════════════════════
// INDEX DESCRIPTOR
// ═══════════════════════════════════════════════════════════════════════════════
// Descriptor holds everything about an index that is fixed once the index is
// built: codec choices, skip-tower geometry, document count, and the
// boundary collaborators (offsets, sizes, term map) a cursor needs to make
// sense of the bitstream. It is immutable after construction and may be
// shared read-only across many cursors.
// ═══════════════════════════════════════════════════════════════════════════════

package invindex

// Coding names one of the universal integer codes a field in the stream
// format may be written with.
type Coding int

const (
	CodingUnary Coding = iota
	CodingGamma
	CodingShiftedGamma
	CodingDelta
	CodingGolomb
	CodingSkewedGolomb
	CodingInterpolative
)

func (c Coding) String() string {
	switch c {
	case CodingUnary:
		return "unary"
	case CodingGamma:
		return "gamma"
	case CodingShiftedGamma:
		return "shifted-gamma"
	case CodingDelta:
		return "delta"
	case CodingGolomb:
		return "golomb"
	case CodingSkewedGolomb:
		return "skewed-golomb"
	case CodingInterpolative:
		return "interpolative"
	default:
		return "unknown"
	}
}

// OffsetsTable maps a term ordinal to the bit offset of its list's start in
// the document stream. Absent (nil on the Descriptor) means only term 0 can
// be positioned on directly.
type OffsetsTable interface {
	// Offset returns the bit position of term's list in the document
	// stream, and false if term is out of range.
	Offset(term int64) (bitOffset int64, ok bool)
}

// SizesTable maps a document id to its length, in whatever unit the
// position codec measures (typically token count). Required only by the
// Golomb, skewed-Golomb, and interpolative position codecs.
type SizesTable interface {
	Size(doc int64) (int32, error)
}

// TermMap maps a term string to its ordinal, for the documents(string)
// convenience entry point. Not required if callers always position by
// ordinal.
type TermMap interface {
	Ordinal(term string) (int64, bool)
}

// PayloadSchema describes the fixed-width payload attached to every
// posting when Descriptor.HasPayloads is set. Variable-shaped payloads are
// out of scope; a fixed bit width covers the common case (e.g. a packed
// per-posting score or field mask).
type PayloadSchema struct {
	BitWidth int
}

// Payload is a single decoded payload value.
type Payload struct {
	Raw uint64
}

// Descriptor is the static configuration of one index, built once via
// DefaultDescriptor and shared by every cursor opened against it.
type Descriptor struct {
	N int64 // total documents
	T int64 // total terms

	FrequencyCoding Coding
	PointerCoding   Coding
	CountCoding     Coding
	PositionCoding  Coding

	HasCounts    bool
	HasPositions bool
	HasPayloads  bool
	HasSkips     bool

	// SplitPositions selects the high-performance layout: positions live
	// in a second stream instead of being interleaved into the document
	// stream. The original format never combines this with payloads.
	SplitPositions bool

	Quantum int // q; 0 means variable, derived per list from the stream
	Height  int // H

	Offsets OffsetsTable
	Sizes   SizesTable
	Terms   TermMap

	Payload *PayloadSchema
}

// Option configures a Descriptor via DefaultDescriptor, mirroring the
// functional-option constructors the rest of this package's ancestry uses
// for its own configuration types.
type Option func(*Descriptor)

// DefaultDescriptor returns a Descriptor for N documents and T terms with
// the most common codec combination (delta frequencies, gamma gaps/counts/
// positions, height-2 skip towers with quantum 16), then applies opts.
func DefaultDescriptor(n, t int64, opts ...Option) *Descriptor {
	d := &Descriptor{
		N:               n,
		T:               t,
		FrequencyCoding: CodingDelta,
		PointerCoding:   CodingGamma,
		CountCoding:     CodingGamma,
		PositionCoding:  CodingGamma,
		HasCounts:       true,
		HasPositions:    true,
		HasSkips:        true,
		Quantum:         16,
		Height:          2,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func WithPointerCoding(c Coding) Option { return func(d *Descriptor) { d.PointerCoding = c } }
func WithCountCoding(c Coding) Option   { return func(d *Descriptor) { d.CountCoding = c } }
func WithPositionCoding(c Coding) Option {
	return func(d *Descriptor) { d.PositionCoding = c }
}
func WithFrequencyCoding(c Coding) Option {
	return func(d *Descriptor) { d.FrequencyCoding = c }
}
func WithSkips(quantum, height int) Option {
	return func(d *Descriptor) {
		d.HasSkips = quantum > 0 || height > 0
		d.Quantum = quantum
		d.Height = height
	}
}
func WithoutSkips() Option {
	return func(d *Descriptor) { d.HasSkips = false }
}
func WithPayloads(schema PayloadSchema) Option {
	return func(d *Descriptor) {
		d.HasPayloads = true
		d.Payload = &schema
	}
}
func WithoutPositions() Option {
	return func(d *Descriptor) { d.HasPositions = false }
}
func WithoutCounts() Option {
	return func(d *Descriptor) { d.HasCounts = false }
}
func WithSplitPositions() Option {
	return func(d *Descriptor) { d.SplitPositions = true }
}
func WithOffsets(o OffsetsTable) Option { return func(d *Descriptor) { d.Offsets = o } }
func WithSizes(s SizesTable) Option     { return func(d *Descriptor) { d.Sizes = s } }
func WithTermMap(m TermMap) Option      { return func(d *Descriptor) { d.Terms = m } }

// needsSizes reports whether the configured position codec requires a
// SizesTable to decode (§4.5: Golomb, skewed-Golomb, and interpolative all
// bound positions to a document's length).
func (d *Descriptor) needsSizes() bool {
	if !d.HasPositions {
		return false
	}
	switch d.PositionCoding {
	case CodingGolomb, CodingSkewedGolomb, CodingInterpolative:
		return true
	default:
		return false
	}
}
