package archive

import (
	"encoding/binary"
	"math"
)

// noneU32 marks an absent optional uint32 field (e.g. a missing
// arrival/departure time). Real GTFS times never approach this value.
const noneU32 = ^uint32(0)

// Builder accumulates a fixed-size record body plus a shared pool of
// variable-length string payloads, and finishes into a single
// position-independent byte buffer: header, body length, body, pool.
//
// Callers lay out their own record schema by calling the Put* methods in
// a fixed, known order; the matching Reader methods are called at the
// same field offsets to read values back out.
type Builder struct {
	schema Schema
	body   []byte
	pool   []byte
}

func NewBuilder(schema Schema) *Builder {
	return &Builder{schema: schema}
}

func (b *Builder) Offset() int { return len(b.body) }

func (b *Builder) PutByte(v byte) {
	b.body = append(b.body, v)
}

func (b *Builder) PutBool(v bool) {
	if v {
		b.body = append(b.body, 1)
	} else {
		b.body = append(b.body, 0)
	}
}

func (b *Builder) PutUint16(v uint16) {
	var tmp [2]byte
	binary.LittleEndian.PutUint16(tmp[:], v)
	b.body = append(b.body, tmp[:]...)
}

func (b *Builder) PutUint32(v uint32) {
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], v)
	b.body = append(b.body, tmp[:]...)
}

func (b *Builder) PutInt16(v int16) {
	b.PutUint16(uint16(v))
}

func (b *Builder) PutFloat64(v float64) {
	var tmp [8]byte
	binary.LittleEndian.PutUint64(tmp[:], math.Float64bits(v))
	b.body = append(b.body, tmp[:]...)
}

// PutOptUint32 encodes an optional seconds-since-midnight value using a
// sentinel rather than a presence byte, keeping stop_time records dense.
func (b *Builder) PutOptUint32(v *uint32) {
	if v == nil {
		b.PutUint32(noneU32)
		return
	}
	b.PutUint32(*v)
}

// PutOptFloat64 encodes an optional coordinate as a presence byte
// followed by 8 bytes (zeroed when absent).
func (b *Builder) PutOptFloat64(v *float64) {
	if v == nil {
		b.PutByte(0)
		b.PutFloat64(0)
		return
	}
	b.PutByte(1)
	b.PutFloat64(*v)
}

// PutString interns s into the shared string pool and records an
// (offset, length) reference in the body.
func (b *Builder) PutString(s string) {
	off := uint32(len(b.pool))
	b.pool = append(b.pool, s...)
	b.PutUint32(off)
	b.PutUint32(uint32(len(s)))
}

// PutOptString is PutString generalized to an absent string, signaled by
// a sentinel length rather than a presence byte (offsets are otherwise
// indistinguishable from a zero-length present string).
func (b *Builder) PutOptString(s *string) {
	if s == nil {
		b.PutUint32(0)
		b.PutUint32(noneU32)
		return
	}
	b.PutString(*s)
}

// Finish assembles the final archive buffer: header, body length, body,
// string pool.
func (b *Builder) Finish() []byte {
	out := make([]byte, 0, headerSize+4+len(b.body)+len(b.pool))
	out = writeHeader(out, b.schema)
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], uint32(len(b.body)))
	out = append(out, tmp[:]...)
	out = append(out, b.body...)
	out = append(out, b.pool...)
	return out
}
