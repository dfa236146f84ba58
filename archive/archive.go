// Package archive implements the self-describing binary archive format
// shared by the GTFS normalizer and the direct-connection builder.
//
// An archive is a length-prefixed, little-endian, position-independent
// byte buffer: fixed-size record tables support O(1) indexed access, and
// string/blob payloads are referenced by (offset, length) into a shared
// pool so the whole file can be read back via a read-only memory mapping
// with no upfront parsing pass.
package archive

import (
	"encoding/binary"
	"fmt"
)

// Magic identifies a trip-atlas archive file. It is checked before the
// schema tag so an unrelated file is rejected with a clear error rather
// than a confusing decode failure further in.
var Magic = [4]byte{'T', 'R', 'P', 'A'}

// FormatVersion is bumped whenever the on-disk layout changes in a way
// that is not backward compatible. Readers reject any other version.
const FormatVersion uint16 = 1

// Schema identifies which root record a given archive file holds.
type Schema uint16

const (
	SchemaGTFS        Schema = 1
	SchemaConnections Schema = 2
)

// headerSize is magic (4) + version (2) + schema (2).
const headerSize = 4 + 2 + 2

// ErrSchemaMismatch is returned when an archive's header does not match
// the schema the caller asked to open. Per the archive store's error
// contract, this is always fatal: callers must delete the file and
// rebuild it from its upstream input.
type ErrSchemaMismatch struct {
	Path     string
	Expected Schema
	Got      Schema
}

func (e *ErrSchemaMismatch) Error() string {
	return fmt.Sprintf("archive %q: expected schema %d, found %d (rebuild required)", e.Path, e.Expected, e.Got)
}

// ErrBadMagic is returned when a file does not look like a trip-atlas
// archive at all.
type ErrBadMagic struct {
	Path string
}

func (e *ErrBadMagic) Error() string {
	return fmt.Sprintf("archive %q: missing or invalid magic header", e.Path)
}

// ErrTruncated is returned when the file is shorter than its header or
// than the body length recorded after the header.
type ErrTruncated struct {
	Path string
}

func (e *ErrTruncated) Error() string {
	return fmt.Sprintf("archive %q: truncated archive", e.Path)
}

// ErrVersionMismatch is returned when an archive was written by an
// incompatible, older or newer, build of this package.
type ErrVersionMismatch struct {
	Path string
	Got  uint16
}

func (e *ErrVersionMismatch) Error() string {
	return fmt.Sprintf("archive %q: unsupported format version %d (want %d)", e.Path, e.Got, FormatVersion)
}

func writeHeader(buf []byte, schema Schema) []byte {
	buf = append(buf, Magic[:]...)
	var tmp [2]byte
	binary.LittleEndian.PutUint16(tmp[:], FormatVersion)
	buf = append(buf, tmp[:]...)
	binary.LittleEndian.PutUint16(tmp[:], uint16(schema))
	buf = append(buf, tmp[:]...)
	return buf
}

func readHeader(path string, data []byte, want Schema) error {
	if len(data) < headerSize {
		return &ErrTruncated{Path: path}
	}
	if data[0] != Magic[0] || data[1] != Magic[1] || data[2] != Magic[2] || data[3] != Magic[3] {
		return &ErrBadMagic{Path: path}
	}
	version := binary.LittleEndian.Uint16(data[4:6])
	if version != FormatVersion {
		return &ErrVersionMismatch{Path: path, Got: version}
	}
	got := Schema(binary.LittleEndian.Uint16(data[6:8]))
	if got != want {
		return &ErrSchemaMismatch{Path: path, Expected: want, Got: got}
	}
	return nil
}
