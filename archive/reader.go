package archive

import (
	"encoding/binary"
	"math"
)

// Reader gives random-access access to an archive buffer laid out by
// Builder, without copying the buffer itself; each string read copies
// its bytes out of the pool into a new Go string. Field offsets are the caller's
// responsibility: a Reader only knows how to decode a scalar at a given
// byte offset, not the record schema built on top of it.
type Reader struct {
	body []byte
	pool []byte
}

// NewReader validates the archive header against want and wraps data
// (which may be a memory-mapped file) for random access. data is not
// copied.
func NewReader(path string, data []byte, want Schema) (*Reader, error) {
	if err := readHeader(path, data, want); err != nil {
		return nil, err
	}
	rest := data[headerSize:]
	if len(rest) < 4 {
		return nil, &ErrTruncated{Path: path}
	}
	bodyLen := binary.LittleEndian.Uint32(rest[:4])
	rest = rest[4:]
	if uint64(len(rest)) < uint64(bodyLen) {
		return nil, &ErrTruncated{Path: path}
	}
	return &Reader{body: rest[:bodyLen], pool: rest[bodyLen:]}, nil
}

// Len reports the size of the record body in bytes, for bounds checks by
// table-aware callers.
func (r *Reader) Len() int { return len(r.body) }

func (r *Reader) Byte(off int) byte { return r.body[off] }

func (r *Reader) Bool(off int) bool { return r.body[off] != 0 }

func (r *Reader) Uint16(off int) uint16 {
	return binary.LittleEndian.Uint16(r.body[off : off+2])
}

func (r *Reader) Int16(off int) int16 {
	return int16(r.Uint16(off))
}

func (r *Reader) Uint32(off int) uint32 {
	return binary.LittleEndian.Uint32(r.body[off : off+4])
}

func (r *Reader) Float64(off int) float64 {
	return math.Float64frombits(binary.LittleEndian.Uint64(r.body[off : off+8]))
}

// OptUint32 reads a sentinel-encoded optional uint32 field.
func (r *Reader) OptUint32(off int) *uint32 {
	v := r.Uint32(off)
	if v == noneU32 {
		return nil
	}
	return &v
}

// OptFloat64 reads a presence-byte-encoded optional float64 field. The
// presence byte sits immediately before the 8-byte value.
func (r *Reader) OptFloat64(off int) *float64 {
	if r.body[off] == 0 {
		return nil
	}
	v := r.Float64(off + 1)
	return &v
}

// String reads a required (offset, length) string reference at off.
func (r *Reader) String(off int) string {
	poolOff := r.Uint32(off)
	length := r.Uint32(off + 4)
	return string(r.pool[poolOff : poolOff+length])
}

// OptString reads an optional (offset, length) string reference, where
// an absent value is signaled by the sentinel length written by
// Builder.PutOptString.
func (r *Reader) OptString(off int) *string {
	length := r.Uint32(off + 4)
	if length == noneU32 {
		return nil
	}
	poolOff := r.Uint32(off)
	s := string(r.pool[poolOff : poolOff+length])
	return &s
}
