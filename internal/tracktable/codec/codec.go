// Package codec implements the deterministic, versioned binary wire format
// for property values, property maps, points, trajectory points, and
// trajectories. Every entity is wrapped in a small envelope (magic,
// version) the way the teacher's recorder.go prefixes its index entries
// with fixed-width little-endian fields and length-prefixes variable data
// (internal/lidar/recorder/recorder.go), but trajectories get a single
// self-describing envelope instead of the teacher's header.json/index.bin
// split — there is no seek index here, so one envelope per entity is
// simpler and sufficient.
package codec

import (
	"errors"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/sandialabs/tracktable-go/internal/tracktable/geodomain"
	"github.com/sandialabs/tracktable-go/internal/tracktable/geodomain/flat2d"
	"github.com/sandialabs/tracktable-go/internal/tracktable/geodomain/flat3d"
	"github.com/sandialabs/tracktable-go/internal/tracktable/geodomain/spherical"
	"github.com/sandialabs/tracktable-go/internal/tracktable/point"
	"github.com/sandialabs/tracktable-go/internal/tracktable/property"
	"github.com/sandialabs/tracktable-go/internal/tracktable/trajectory"
)

// Magic identifies a tracktable wire payload; CurrentVersion decoders must
// also read every version <= CurrentVersion (the stability requirement
// from spec.md §4.G).
const (
	Magic          = "TT01"
	CurrentVersion = uint16(1)
)

var (
	// ErrBadMagic is returned by ReadHeader when the stream doesn't start
	// with Magic.
	ErrBadMagic = errors.New("codec: bad magic")

	// ErrUnsupportedVersion is returned by ReadHeader when the stream's
	// version is newer than CurrentVersion.
	ErrUnsupportedVersion = errors.New("codec: unsupported version")

	// ErrUnknownDomain is returned by DecodeTrajectory when the encoded
	// domain name doesn't match any registered domain.
	ErrUnknownDomain = errors.New("codec: unknown domain name")

	// ErrBadTag is returned by DecodeValue on an unrecognized property
	// value discriminant.
	ErrBadTag = errors.New("codec: bad property value tag")
)

// Header is the 6-byte envelope prefixing every top-level encoded entity:
// 4-byte magic, 2-byte little-endian version.
type Header struct {
	Version uint16
}

// WriteHeader writes the envelope for CurrentVersion.
func WriteHeader(w io.Writer) error {
	if _, err := io.WriteString(w, Magic); err != nil {
		return fmt.Errorf("codec: write magic: %w", err)
	}
	return writeUint16(w, CurrentVersion)
}

// ReadHeader validates the magic and returns the stream's version. Callers
// decoding a specific entity type should reject versions they don't know
// how to read; DecodeTrajectory accepts any version <= CurrentVersion.
func ReadHeader(r io.Reader) (Header, error) {
	magic := make([]byte, len(Magic))
	if _, err := io.ReadFull(r, magic); err != nil {
		return Header{}, fmt.Errorf("codec: read magic: %w", err)
	}
	if string(magic) != Magic {
		return Header{}, ErrBadMagic
	}
	version, err := readUint16(r)
	if err != nil {
		return Header{}, fmt.Errorf("codec: read version: %w", err)
	}
	if version > CurrentVersion {
		return Header{}, ErrUnsupportedVersion
	}
	return Header{Version: version}, nil
}

// domainsByName is the registry DecodeTrajectory uses to reconstruct a
// geodomain.Domain from the name carried on the wire (geodomain.Domain.Name,
// per spec.md §4.B's codec-discriminant supplement).
var domainsByName = map[string]geodomain.Domain{
	spherical.Default.Name(): spherical.Default,
	flat2d.Default.Name():    flat2d.Default,
	flat3d.Default.Name():    flat3d.Default,
}

// DomainByName looks up a registered domain by its Name(). Used by
// DecodeTrajectory and available to callers decoding a domain name field
// on their own (e.g. storage metadata).
func DomainByName(name string) (geodomain.Domain, bool) {
	d, ok := domainsByName[name]
	return d, ok
}

// ---- property.Value ----

const (
	tagNull Type = iota
	tagInt64
	tagFloat64
	tagString
	tagTimestamp
)

// Type is the one-byte property value discriminant from spec.md §6.
type Type = byte

// EncodeValue writes v's one-byte tag followed by its variant payload.
func EncodeValue(w io.Writer, v property.Value) error {
	switch v.Type() {
	case property.TypeNull:
		return writeByte(w, tagNull)
	case property.TypeInt64:
		if err := writeByte(w, tagInt64); err != nil {
			return err
		}
		n, _ := v.Int64()
		return writeUint64(w, uint64(n))
	case property.TypeFloat64:
		if err := writeByte(w, tagFloat64); err != nil {
			return err
		}
		f, _ := v.Float64()
		return writeUint64(w, math.Float64bits(f))
	case property.TypeString:
		if err := writeByte(w, tagString); err != nil {
			return err
		}
		s, _ := v.String()
		return writeString(w, s)
	case property.TypeTimestamp:
		if err := writeByte(w, tagTimestamp); err != nil {
			return err
		}
		ts, _ := v.Timestamp()
		return writeUint64(w, uint64(ts.UnixMicro()))
	default:
		return fmt.Errorf("codec: encode value: %w", ErrBadTag)
	}
}

// DecodeValue reads a property value written by EncodeValue.
func DecodeValue(r io.Reader) (property.Value, error) {
	tag, err := readByte(r)
	if err != nil {
		return property.Value{}, fmt.Errorf("codec: read value tag: %w", err)
	}
	switch tag {
	case tagNull:
		return property.Null(), nil
	case tagInt64:
		u, err := readUint64(r)
		if err != nil {
			return property.Value{}, err
		}
		return property.FromInt64(int64(u)), nil
	case tagFloat64:
		u, err := readUint64(r)
		if err != nil {
			return property.Value{}, err
		}
		return property.FromFloat64(math.Float64frombits(u)), nil
	case tagString:
		s, err := readString(r)
		if err != nil {
			return property.Value{}, err
		}
		return property.FromString(s), nil
	case tagTimestamp:
		u, err := readUint64(r)
		if err != nil {
			return property.Value{}, err
		}
		return property.FromTimestamp(time.UnixMicro(int64(u)).UTC()), nil
	default:
		return property.Value{}, ErrBadTag
	}
}

// ---- property.Map ----

// EncodeMap writes m's entry count followed by each (key, value) pair in
// insertion order.
func EncodeMap(w io.Writer, m property.Map) error {
	keys := m.Keys()
	if err := writeUint32(w, uint32(len(keys))); err != nil {
		return err
	}
	for _, k := range keys {
		if err := writeString(w, k); err != nil {
			return err
		}
		v, _ := m.Get(k)
		if err := EncodeValue(w, v); err != nil {
			return err
		}
	}
	return nil
}

// DecodeMap reads a property map written by EncodeMap, preserving
// insertion order.
func DecodeMap(r io.Reader) (property.Map, error) {
	count, err := readUint32(r)
	if err != nil {
		return property.Map{}, fmt.Errorf("codec: read map count: %w", err)
	}
	m := property.NewMap()
	for i := uint32(0); i < count; i++ {
		k, err := readString(r)
		if err != nil {
			return property.Map{}, err
		}
		v, err := DecodeValue(r)
		if err != nil {
			return property.Map{}, err
		}
		m.Set(k, v)
	}
	return m, nil
}

// ---- point.Point ----

// EncodePoint writes p's coordinates as IEEE-754 doubles, with no count
// prefix: the number of coordinates is implied by the domain the caller
// already knows (spec.md §6's "N x double" base point form).
func EncodePoint(w io.Writer, p point.Point) error {
	for i := 0; i < p.Dim(); i++ {
		if err := writeUint64(w, math.Float64bits(p.At(i))); err != nil {
			return err
		}
	}
	return nil
}

// DecodePoint reads dim coordinates written by EncodePoint.
func DecodePoint(r io.Reader, dim int) (point.Point, error) {
	coords := make([]float64, dim)
	for i := range coords {
		u, err := readUint64(r)
		if err != nil {
			return point.Point{}, err
		}
		coords[i] = math.Float64frombits(u)
	}
	return point.Point{V: coords}, nil
}

// ---- trajectory.Point ----

// EncodeTrajectoryPoint writes a base point (domain.Dimension() doubles),
// the length-prefixed object id, a u64-microsecond timestamp, the
// current-length accumulator, and the property map, per spec.md §6.
func EncodeTrajectoryPoint(w io.Writer, domain geodomain.Domain, tp trajectory.Point) error {
	if err := EncodePoint(w, tp.Point); err != nil {
		return err
	}
	if err := writeString(w, tp.ObjectID); err != nil {
		return err
	}
	if err := writeUint64(w, uint64(tp.Timestamp.UnixMicro())); err != nil {
		return err
	}
	if err := writeUint64(w, math.Float64bits(tp.CurrentLength)); err != nil {
		return err
	}
	return EncodeMap(w, tp.Props)
}

// DecodeTrajectoryPoint reads a trajectory point written by
// EncodeTrajectoryPoint.
func DecodeTrajectoryPoint(r io.Reader, domain geodomain.Domain) (trajectory.Point, error) {
	base, err := DecodePoint(r, domain.Dimension())
	if err != nil {
		return trajectory.Point{}, err
	}
	objectID, err := readString(r)
	if err != nil {
		return trajectory.Point{}, err
	}
	tsMicros, err := readUint64(r)
	if err != nil {
		return trajectory.Point{}, err
	}
	lengthBits, err := readUint64(r)
	if err != nil {
		return trajectory.Point{}, err
	}
	props, err := DecodeMap(r)
	if err != nil {
		return trajectory.Point{}, err
	}
	return trajectory.Point{
		Point:         base,
		ObjectID:      objectID,
		Timestamp:     time.UnixMicro(int64(tsMicros)).UTC(),
		CurrentLength: math.Float64frombits(lengthBits),
		Props:         props,
	}, nil
}

// ---- trajectory.Trajectory ----

// EncodeTrajectory writes the envelope header, the domain name (a
// supplement needed to reconstruct the trajectory's domain on decode —
// see DESIGN.md), the trajectory's property map, its 16-byte UUID, a point
// count, and each point in order.
func EncodeTrajectory(w io.Writer, t *trajectory.Trajectory) error {
	if err := WriteHeader(w); err != nil {
		return err
	}
	if err := writeString(w, t.Domain().Name()); err != nil {
		return err
	}
	if err := EncodeMap(w, *t.Properties()); err != nil {
		return err
	}
	id := t.UUID()
	if _, err := w.Write(id[:]); err != nil {
		return fmt.Errorf("codec: write uuid: %w", err)
	}
	if err := writeUint32(w, uint32(t.Len())); err != nil {
		return err
	}
	for i := 0; i < t.Len(); i++ {
		if err := EncodeTrajectoryPoint(w, t.Domain(), t.At(i)); err != nil {
			return err
		}
	}
	return nil
}

// DecodeTrajectory reads the envelope and reconstructs the trajectory
// EncodeTrajectory wrote, restoring its UUID exactly (never regenerating
// it), per spec.md §4.G's round-trip requirement.
func DecodeTrajectory(r io.Reader) (*trajectory.Trajectory, error) {
	if _, err := ReadHeader(r); err != nil {
		return nil, err
	}
	domainName, err := readString(r)
	if err != nil {
		return nil, err
	}
	domain, ok := DomainByName(domainName)
	if !ok {
		return nil, fmt.Errorf("codec: domain %q: %w", domainName, ErrUnknownDomain)
	}
	props, err := DecodeMap(r)
	if err != nil {
		return nil, err
	}
	var rawID [16]byte
	if _, err := io.ReadFull(r, rawID[:]); err != nil {
		return nil, fmt.Errorf("codec: read uuid: %w", err)
	}
	count, err := readUint32(r)
	if err != nil {
		return nil, fmt.Errorf("codec: read point count: %w", err)
	}

	out := trajectory.NewNoUUID(domain)
	*out.Properties() = props
	for i := uint32(0); i < count; i++ {
		tp, err := DecodeTrajectoryPoint(r, domain)
		if err != nil {
			return nil, err
		}
		if err := out.Append(tp); err != nil {
			return nil, fmt.Errorf("codec: decoded point %d: %w", i, err)
		}
	}
	out.SetUUID(uuid.UUID(rawID))
	return out, nil
}
