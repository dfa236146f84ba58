package archive

import (
	"os"
	"path/filepath"

	"github.com/edsrzf/mmap-go"
	"github.com/pkg/errors"
)

// Mapped is an archive backed by a read-only memory mapping: opening one
// costs a single mmap syscall, not a parse pass over the file.
type Mapped struct {
	*Reader

	file *os.File
	mm   mmap.MMap
}

// Open memory-maps path and validates it against want. The returned
// Mapped must be closed to release the mapping and file descriptor.
func Open(path string, want Schema) (*Mapped, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "archive: open")
	}
	mm, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		f.Close()
		return nil, errors.Wrap(err, "archive: mmap")
	}
	r, err := NewReader(path, []byte(mm), want)
	if err != nil {
		mm.Unmap()
		f.Close()
		return nil, err
	}
	return &Mapped{Reader: r, file: f, mm: mm}, nil
}

func (m *Mapped) Close() error {
	if err := m.mm.Unmap(); err != nil {
		m.file.Close()
		return errors.Wrap(err, "archive: munmap")
	}
	return m.file.Close()
}

// WriteFile writes data to path atomically: it is built in a sibling
// temp file and renamed into place, so a reader never observes a
// partially written archive and a crash mid-build never corrupts the
// previous good one.
func WriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return errors.Wrap(err, "archive: create temp file")
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return errors.Wrap(err, "archive: write temp file")
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return errors.Wrap(err, "archive: sync temp file")
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return errors.Wrap(err, "archive: close temp file")
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return errors.Wrap(err, "archive: rename into place")
	}
	return nil
}
