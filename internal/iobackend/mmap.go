package iobackend

import (
	"io"
	"os"

	"github.com/tysonmote/gommap"
)

// growthChunk is how much extra room MMapBackend reserves past the
// requested length each time it has to grow the mapping.
const growthChunk = 1 << 20 // 1MiB

// MMapBackend maps a segment file into memory. It is used for older,
// read-only segments when the engine opens with MmapAtStartup set.
// gommap's mapping is fixed-length once created, so growth (relevant only
// while a segment still receives hint writes) truncates the file and
// remaps it.
type MMapBackend struct {
	file   *os.File
	mapped gommap.MMap
	size   int64
}

// OpenMMap opens path and maps it into memory, first growing the file to
// one growth chunk if it is smaller than that; Close truncates it back to
// its written size.
func OpenMMap(path string) (*MMapBackend, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return nil, err
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}

	b := &MMapBackend{file: f, size: info.Size()}
	if err := b.remap(max64(info.Size(), growthChunk)); err != nil {
		f.Close()
		return nil, err
	}
	return b, nil
}

func (b *MMapBackend) remap(length int64) error {
	if b.mapped != nil {
		if err := b.mapped.UnsafeUnmap(); err != nil {
			return err
		}
	}
	if err := b.file.Truncate(length); err != nil {
		return err
	}
	m, err := gommap.Map(b.file.Fd(), gommap.PROT_READ|gommap.PROT_WRITE, gommap.MAP_SHARED)
	if err != nil {
		return err
	}
	b.mapped = m
	return nil
}

func (b *MMapBackend) ReadAt(p []byte, off int64) (int, error) {
	if off >= b.size {
		return 0, io.EOF
	}
	end := off + int64(len(p))
	if end > b.size {
		end = b.size
	}
	n := copy(p, b.mapped[off:end])
	if int64(n) < int64(len(p)) {
		return n, io.EOF
	}
	return n, nil
}

func (b *MMapBackend) Append(p []byte) (int, error) {
	need := b.size + int64(len(p))
	if need > int64(len(b.mapped)) {
		if err := b.remap(need + growthChunk); err != nil {
			return 0, err
		}
	}
	n := copy(b.mapped[b.size:need], p)
	b.size = need
	return n, nil
}

func (b *MMapBackend) Sync() error {
	return b.mapped.Sync(gommap.MS_SYNC)
}

func (b *MMapBackend) Size() int64 {
	return b.size
}

func (b *MMapBackend) Close() error {
	if b.mapped != nil {
		if err := b.mapped.UnsafeUnmap(); err != nil {
			b.file.Close()
			return err
		}
	}
	if err := b.file.Truncate(b.size); err != nil {
		b.file.Close()
		return err
	}
	return b.file.Close()
}

func max64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}
