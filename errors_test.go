package invindex

import (
	"errors"
	"testing"
)

func TestPositionMissingOffsets(t *testing.T) {
	desc := DefaultDescriptor(1000, 5, WithoutSkips())
	cur := NewCursor(desc, []byte{0}, nil)
	if err := cur.Position(1); !errors.Is(err, ErrMissingOffsets) {
		t.Errorf("Position(1) without an offsets table: %v, want ErrMissingOffsets", err)
	}
}

func TestPositionByNameMissingTermMap(t *testing.T) {
	desc := DefaultDescriptor(1000, 5, WithoutSkips())
	cur := NewCursor(desc, []byte{0}, nil)
	if err := cur.PositionByName("fox"); !errors.Is(err, ErrMissingTermMap) {
		t.Errorf("PositionByName without a term map: %v, want ErrMissingTermMap", err)
	}
}

func TestMaterializePositionsMissingSizes(t *testing.T) {
	desc := DefaultDescriptor(1000, 1, WithoutSkips(), WithPositionCoding(CodingGolomb))
	docs := []fixtureDoc{{Doc: 1, Count: 3, Positions: []int32{1, 2, 3}}}
	data := encodeList(desc, docs, map[int64]int32{1: 10})

	cur := NewCursor(desc, data, nil)
	if err := cur.Position(0); err != nil {
		t.Fatalf("Position: %v", err)
	}
	if _, err := cur.NextDocument(); err != nil {
		t.Fatalf("NextDocument: %v", err)
	}
	if _, err := cur.NextPosition(); !errors.Is(err, ErrMissingSizes) {
		t.Errorf("NextPosition with a Golomb position coding and no sizes table: %v, want ErrMissingSizes", err)
	}
}

func TestCountAndPayloadUnsupportedWhenAbsent(t *testing.T) {
	desc := DefaultDescriptor(1000, 1, WithoutSkips(), WithoutCounts(), WithoutPositions())
	data := encodeList(desc, []fixtureDoc{{Doc: 1}}, nil)
	cur := NewCursor(desc, data, nil)
	if err := cur.Position(0); err != nil {
		t.Fatalf("Position: %v", err)
	}
	if _, err := cur.NextDocument(); err != nil {
		t.Fatalf("NextDocument: %v", err)
	}
	if _, err := cur.Count(); !errors.Is(err, ErrUnsupportedCodecFeature) {
		t.Errorf("Count() without HasCounts: %v, want ErrUnsupportedCodecFeature", err)
	}
	if _, err := cur.Payload(); !errors.Is(err, ErrUnsupportedCodecFeature) {
		t.Errorf("Payload() without HasPayloads: %v, want ErrUnsupportedCodecFeature", err)
	}
	if _, err := cur.NextPosition(); !errors.Is(err, ErrUnsupportedCodecFeature) {
		t.Errorf("NextPosition() without HasPositions: %v, want ErrUnsupportedCodecFeature", err)
	}
}
