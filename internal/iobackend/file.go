package iobackend

import (
	"os"
	"path/filepath"
	"sync/atomic"

	litedberrors "github.com/iamNilotpal/litedb/pkg/errors"
)

// FileBackend is a Backend over a plain os.File: positioned reads and
// writes with an independently tracked write offset, used for the active
// segment that is still being appended to.
type FileBackend struct {
	file *os.File
	size atomic.Int64
}

// OpenFile opens (creating if necessary) path for positioned reads and
// appends.
func OpenFile(path string) (*FileBackend, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return nil, litedberrors.ClassifyFileOpenError(err, path, filepath.Base(path))
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, litedberrors.NewIOError(err, "failed to stat segment file")
	}

	fb := &FileBackend{file: f}
	fb.size.Store(info.Size())
	return fb, nil
}

func (b *FileBackend) ReadAt(p []byte, off int64) (int, error) {
	return b.file.ReadAt(p, off)
}

// Append writes p at the backend's current size rather than relying on
// O_APPEND, so the offset handed back to the caller (via size-before-write)
// always matches where the bytes actually landed.
func (b *FileBackend) Append(p []byte) (int, error) {
	off := b.size.Load()
	n, err := b.file.WriteAt(p, off)
	if n > 0 {
		b.size.Add(int64(n))
	}
	return n, err
}

func (b *FileBackend) Sync() error {
	return b.file.Sync()
}

func (b *FileBackend) Size() int64 {
	return b.size.Load()
}

func (b *FileBackend) Close() error {
	return b.file.Close()
}
