package wire_test

import (
	"testing"

	"github.jpl.nasa.gov/bdube/ptp/wire"
)

func TestDecodeFormNone(t *testing.T) {
	r := wire.NewReader([]byte{0x00})
	f, err := wire.DecodeFormData(wire.UInt16, r)
	if err != nil {
		t.Fatalf("DecodeFormData: %v", err)
	}
	if f.Flag != wire.FormNone {
		t.Errorf("expected FormNone, got %d", f.Flag)
	}
}

func TestDecodeFormRange(t *testing.T) {
	// UInt16 range: min 100, max 6400, step 100
	buf := []byte{0x01, 0x64, 0x00, 0x00, 0x19, 0x64, 0x00}
	r := wire.NewReader(buf)
	f, err := wire.DecodeFormData(wire.UInt16, r)
	if err != nil {
		t.Fatalf("DecodeFormData: %v", err)
	}
	if f.Flag != wire.FormRange {
		t.Fatalf("expected FormRange, got %d", f.Flag)
	}
	if f.Range.Min.Scalar != 100 || f.Range.Max.Scalar != 6400 || f.Range.Step.Scalar != 100 {
		t.Errorf("range: got min=%d max=%d step=%d", f.Range.Min.Scalar, f.Range.Max.Scalar, f.Range.Step.Scalar)
	}
	if err := r.ExpectEnd(); err != nil {
		t.Errorf("ExpectEnd: %v", err)
	}
}

func TestDecodeFormEnumeration(t *testing.T) {
	// UInt8 enumeration of {1, 2, 4}
	buf := []byte{0x02, 0x03, 0x00, 0x01, 0x02, 0x04}
	r := wire.NewReader(buf)
	f, err := wire.DecodeFormData(wire.UInt8, r)
	if err != nil {
		t.Fatalf("DecodeFormData: %v", err)
	}
	if f.Flag != wire.FormEnumeration {
		t.Fatalf("expected FormEnumeration, got %d", f.Flag)
	}
	if len(f.Enumeration.Items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(f.Enumeration.Items))
	}
	for i, want := range []int64{1, 2, 4} {
		if f.Enumeration.Items[i].Scalar != want {
			t.Errorf("item %d: got %d, want %d", i, f.Enumeration.Items[i].Scalar, want)
		}
	}
}

func TestDecodeFormUnknownFlagIsNone(t *testing.T) {
	// private vendor form flags decode as "no constraint" rather than
	// failing the enclosing PropInfo
	r := wire.NewReader([]byte{0x07})
	f, err := wire.DecodeFormData(wire.UInt16, r)
	if err != nil {
		t.Fatalf("DecodeFormData: %v", err)
	}
	if f.Flag != wire.FormNone {
		t.Errorf("expected FormNone, got %d", f.Flag)
	}
}

func TestRangeClamp(t *testing.T) {
	rf := wire.RangeForm{
		Min:  wire.Value{Type: wire.UInt16, Scalar: 100},
		Max:  wire.Value{Type: wire.UInt16, Scalar: 6400},
		Step: wire.Value{Type: wire.UInt16, Scalar: 100},
	}
	cases := []struct {
		in, want int64
	}{
		{50, 100},
		{100, 100},
		{150, 100},  // snapped down to a step multiple above Min
		{6400, 6400},
		{9999, 6400},
	}
	for _, tc := range cases {
		if got := rf.Clamp(tc.in); got != tc.want {
			t.Errorf("Clamp(%d): got %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestRangeCheck(t *testing.T) {
	rf := wire.RangeForm{
		Min: wire.Value{Type: wire.Int16, Scalar: -3},
		Max: wire.Value{Type: wire.Int16, Scalar: 3},
	}
	if !rf.Check(0) || !rf.Check(-3) || !rf.Check(3) {
		t.Error("in-range values rejected")
	}
	if rf.Check(-4) || rf.Check(4) {
		t.Error("out-of-range values accepted")
	}
}
