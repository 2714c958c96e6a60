package invindex

import "testing"

func TestDefaultDescriptor(t *testing.T) {
	d := DefaultDescriptor(1000, 50)
	if d.N != 1000 || d.T != 50 {
		t.Fatalf("N/T = %d/%d, want 1000/50", d.N, d.T)
	}
	if d.FrequencyCoding != CodingDelta {
		t.Errorf("FrequencyCoding = %v, want delta", d.FrequencyCoding)
	}
	if d.PointerCoding != CodingGamma || d.CountCoding != CodingGamma || d.PositionCoding != CodingGamma {
		t.Errorf("default gap/count/position coding should all be gamma")
	}
	if !d.HasCounts || !d.HasPositions || !d.HasSkips {
		t.Errorf("defaults should enable counts, positions and skips")
	}
	if d.Quantum != 16 || d.Height != 2 {
		t.Errorf("Quantum/Height = %d/%d, want 16/2", d.Quantum, d.Height)
	}
}

func TestDescriptorOptions(t *testing.T) {
	d := DefaultDescriptor(1000, 50,
		WithPointerCoding(CodingGolomb),
		WithCountCoding(CodingUnary),
		WithPositionCoding(CodingInterpolative),
		WithFrequencyCoding(CodingGamma),
		WithoutSkips(),
		WithoutCounts(),
		WithSplitPositions(),
	)
	if d.PointerCoding != CodingGolomb {
		t.Errorf("PointerCoding = %v, want golomb", d.PointerCoding)
	}
	if d.CountCoding != CodingUnary {
		t.Errorf("CountCoding = %v, want unary", d.CountCoding)
	}
	if d.PositionCoding != CodingInterpolative {
		t.Errorf("PositionCoding = %v, want interpolative", d.PositionCoding)
	}
	if d.HasSkips {
		t.Error("WithoutSkips should clear HasSkips")
	}
	if d.HasCounts {
		t.Error("WithoutCounts should clear HasCounts")
	}
	if !d.SplitPositions {
		t.Error("WithSplitPositions should set SplitPositions")
	}
}

func TestWithSkipsQuantumHeight(t *testing.T) {
	d := DefaultDescriptor(1000, 50, WithSkips(32, 3))
	if !d.HasSkips {
		t.Error("WithSkips(32,3) should enable HasSkips")
	}
	if d.Quantum != 32 || d.Height != 3 {
		t.Errorf("Quantum/Height = %d/%d, want 32/3", d.Quantum, d.Height)
	}
	d2 := DefaultDescriptor(1000, 50, WithSkips(0, 0))
	if d2.HasSkips {
		t.Error("WithSkips(0,0) should leave HasSkips false")
	}
}

func TestNeedsSizes(t *testing.T) {
	cases := []struct {
		coding Coding
		want   bool
	}{
		{CodingGamma, false},
		{CodingShiftedGamma, false},
		{CodingDelta, false},
		{CodingGolomb, true},
		{CodingSkewedGolomb, true},
		{CodingInterpolative, true},
	}
	for _, c := range cases {
		d := DefaultDescriptor(1000, 50, WithPositionCoding(c.coding))
		if got := d.needsSizes(); got != c.want {
			t.Errorf("needsSizes() for %v = %v, want %v", c.coding, got, c.want)
		}
	}
	without := DefaultDescriptor(1000, 50, WithPositionCoding(CodingGolomb), WithoutPositions())
	if without.needsSizes() {
		t.Error("needsSizes() should be false when HasPositions is false regardless of coding")
	}
}

func TestPayloadSchemaOption(t *testing.T) {
	d := DefaultDescriptor(1000, 50, WithPayloads(PayloadSchema{BitWidth: 8}))
	if !d.HasPayloads {
		t.Error("WithPayloads should set HasPayloads")
	}
	if d.Payload == nil || d.Payload.BitWidth != 8 {
		t.Errorf("Payload = %+v, want BitWidth 8", d.Payload)
	}
}
