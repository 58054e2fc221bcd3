package codec

import (
	"bytes"
	"testing"
	"time"

	"github.com/sandialabs/tracktable-go/internal/tracktable/geodomain/flat2d"
	"github.com/sandialabs/tracktable-go/internal/tracktable/point"
	"github.com/sandialabs/tracktable-go/internal/tracktable/property"
	"github.com/sandialabs/tracktable-go/internal/tracktable/trajectory"
)

func TestValueRoundTrip(t *testing.T) {
	cases := []property.Value{
		property.Null(),
		property.FromInt64(-42),
		property.FromFloat64(3.5),
		property.FromString("hello, world"),
		property.FromTimestamp(time.Date(2026, 7, 30, 12, 0, 0, 0, time.UTC)),
	}
	for _, v := range cases {
		var buf bytes.Buffer
		if err := EncodeValue(&buf, v); err != nil {
			t.Fatalf("encode %v: %v", v, err)
		}
		got, err := DecodeValue(&buf)
		if err != nil {
			t.Fatalf("decode %v: %v", v, err)
		}
		if v.IsNull() {
			if !got.IsNull() {
				t.Errorf("expected null round trip, got %v", got)
			}
			continue
		}
		if !v.Equal(got) {
			t.Errorf("round trip mismatch: got %v, want %v", got, v)
		}
	}
}

func TestMapRoundTrip(t *testing.T) {
	m := property.NewMap()
	m.Set("altitude", property.FromFloat64(120.5))
	m.Set("label", property.FromString("track-7"))
	m.Set("count", property.FromInt64(3))

	var buf bytes.Buffer
	if err := EncodeMap(&buf, m); err != nil {
		t.Fatalf("encode: %v", err)
	}
	got, err := DecodeMap(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !m.Equal(got) {
		t.Fatalf("round trip mismatch: got %v, want %v", got, m)
	}
	if !stringsEqual(got.Keys(), []string{"altitude", "label", "count"}) {
		t.Errorf("key order not preserved: %v", got.Keys())
	}
}

func TestPointRoundTrip(t *testing.T) {
	p := point.New(-106.65, 35.08)
	var buf bytes.Buffer
	if err := EncodePoint(&buf, p); err != nil {
		t.Fatalf("encode: %v", err)
	}
	got, err := DecodePoint(&buf, p.Dim())
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !p.Equal(got) {
		t.Errorf("round trip mismatch: got %v, want %v", got, p)
	}
}

func TestTrajectoryPointRoundTrip(t *testing.T) {
	d := flat2d.Default
	props := property.NewMap()
	props.Set("speed", property.FromFloat64(12.0))
	tp := trajectory.Point{
		Point:         point.New(1, 2),
		ObjectID:      "obj-1",
		Timestamp:     time.Date(2026, 1, 2, 3, 4, 5, 6000, time.UTC),
		CurrentLength: 7.25,
		Props:         props,
	}

	var buf bytes.Buffer
	if err := EncodeTrajectoryPoint(&buf, d, tp); err != nil {
		t.Fatalf("encode: %v", err)
	}
	got, err := DecodeTrajectoryPoint(&buf, d)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !got.Point.Equal(tp.Point) || got.ObjectID != tp.ObjectID || got.CurrentLength != tp.CurrentLength {
		t.Errorf("round trip mismatch: got %+v, want %+v", got, tp)
	}
	if !got.Timestamp.Equal(tp.Timestamp) {
		t.Errorf("timestamp mismatch: got %v, want %v", got.Timestamp, tp.Timestamp)
	}
	if !got.Props.Equal(tp.Props) {
		t.Errorf("props mismatch: got %v, want %v", got.Props, tp.Props)
	}
}

func TestTrajectoryRoundTrip(t *testing.T) {
	d := flat2d.Default
	tr := trajectory.New(d)
	tr.Properties().Set("mission", property.FromString("survey"))

	base := time.Date(2026, 7, 30, 8, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		p := trajectory.Point{
			Point:     point.New(float64(i), float64(i)*2),
			ObjectID:  "vehicle-9",
			Timestamp: base.Add(time.Duration(i) * time.Second),
		}
		if err := tr.Append(p); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	var buf bytes.Buffer
	if err := EncodeTrajectory(&buf, tr); err != nil {
		t.Fatalf("encode: %v", err)
	}
	got, err := DecodeTrajectory(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !got.Equal(tr) {
		t.Fatalf("round trip mismatch")
	}
	if got.UUID() != tr.UUID() {
		t.Errorf("UUID not preserved: got %v, want %v", got.UUID(), tr.UUID())
	}
	if got.Domain().Name() != tr.Domain().Name() {
		t.Errorf("domain not preserved: got %q, want %q", got.Domain().Name(), tr.Domain().Name())
	}
}

func TestReadHeader_BadMagic(t *testing.T) {
	buf := bytes.NewBufferString("XXXX\x01\x00")
	if _, err := ReadHeader(buf); err != ErrBadMagic {
		t.Errorf("got %v, want ErrBadMagic", err)
	}
}

func TestReadHeader_FutureVersionRejected(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteString(Magic)
	if err := writeUint16(&buf, CurrentVersion+1); err != nil {
		t.Fatalf("setup: %v", err)
	}
	if _, err := ReadHeader(&buf); err != ErrUnsupportedVersion {
		t.Errorf("got %v, want ErrUnsupportedVersion", err)
	}
}

func TestDecodeTrajectory_UnknownDomain(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteHeader(&buf); err != nil {
		t.Fatalf("setup: %v", err)
	}
	if err := writeString(&buf, "nonexistent-domain"); err != nil {
		t.Fatalf("setup: %v", err)
	}
	if _, err := DecodeTrajectory(&buf); err == nil {
		t.Fatalf("expected an error for an unregistered domain name")
	}
}

func stringsEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
