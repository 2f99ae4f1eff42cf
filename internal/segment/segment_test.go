package segment

import (
	"path/filepath"
	"testing"

	"github.com/iamNilotpal/litedb/internal/iobackend"
	"github.com/iamNilotpal/litedb/internal/record"
)

func newTestSegment(t *testing.T) *Segment {
	t.Helper()
	backend, err := iobackend.OpenFile(filepath.Join(t.TempDir(), "000000001.data"))
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	return New(1, backend)
}

func TestAppendThenReadAt(t *testing.T) {
	seg := newTestSegment(t)
	defer seg.Close()

	rec := &record.Record{Kind: record.KindNormal, Key: []byte("k1"), Value: []byte("v1")}
	pos, err := seg.Append(rec)
	if err != nil {
		t.Fatalf("Append: %v", err)
	}
	if pos.FileID != 1 || pos.Offset != 0 {
		t.Fatalf("unexpected position: %+v", pos)
	}

	got, size, err := seg.ReadAt(pos.Offset)
	if err != nil {
		t.Fatalf("ReadAt: %v", err)
	}
	if size != pos.Size {
		t.Fatalf("size mismatch: got %d want %d", size, pos.Size)
	}
	if string(got.Key) != "k1" || string(got.Value) != "v1" || got.Kind != record.KindNormal {
		t.Fatalf("decoded record mismatch: %+v", got)
	}
}

func TestReadAtReturnsEOFPastEnd(t *testing.T) {
	seg := newTestSegment(t)
	defer seg.Close()

	if _, _, err := seg.ReadAt(0); err != ErrEOF {
		t.Fatalf("expected ErrEOF on empty segment, got %v", err)
	}

	pos, err := seg.Append(&record.Record{Kind: record.KindNormal, Key: []byte("a"), Value: []byte("b")})
	if err != nil {
		t.Fatalf("Append: %v", err)
	}

	if _, _, err := seg.ReadAt(pos.Offset + int64(pos.Size)); err != ErrEOF {
		t.Fatalf("expected ErrEOF at end of segment, got %v", err)
	}
}

func TestReadAtDetectsCorruptedCRC(t *testing.T) {
	seg := newTestSegment(t)
	defer seg.Close()

	encoded := record.Encode(&record.Record{Kind: record.KindNormal, Key: []byte("k"), Value: []byte("value")})
	encoded[len(encoded)-1] ^= 0xFF // flip a CRC byte without touching the header lengths
	if _, err := seg.AppendRaw(encoded); err != nil {
		t.Fatalf("AppendRaw: %v", err)
	}

	if _, _, err := seg.ReadAt(0); err == nil {
		t.Fatal("expected CRC verification to fail")
	}
}

func TestAppendMultipleRecordsSequentialOffsets(t *testing.T) {
	seg := newTestSegment(t)
	defer seg.Close()

	var positions []record.Position
	for i := 0; i < 3; i++ {
		pos, err := seg.Append(&record.Record{Kind: record.KindNormal, Key: []byte("k"), Value: []byte("v")})
		if err != nil {
			t.Fatalf("Append %d: %v", i, err)
		}
		positions = append(positions, pos)
	}

	for i, pos := range positions {
		if i == 0 {
			continue
		}
		prev := positions[i-1]
		if pos.Offset != prev.Offset+int64(prev.Size) {
			t.Fatalf("record %d offset %d does not follow record %d (offset %d size %d)",
				i, pos.Offset, i-1, prev.Offset, prev.Size)
		}
	}
}
