// Package segment implements one append-only log file: a numbered
// (or well-known, fixed-name) data file that owns an iobackend.Backend and
// knows how to append and decode record.Record values within itself.
package segment

import (
	"encoding/binary"
	stdErrors "errors"
	"io"

	"github.com/iamNilotpal/litedb/internal/iobackend"
	"github.com/iamNilotpal/litedb/internal/record"
	litedberrors "github.com/iamNilotpal/litedb/pkg/errors"
)

// ErrEOF is returned by ReadAt once off has reached the end of the
// segment's written bytes — the recovery scan's signal to stop.
var ErrEOF = stdErrors.New("segment: no more records")

// Segment is one append-only log file identified by FileID.
type Segment struct {
	FileID  uint32
	backend iobackend.Backend
}

// New wraps backend as the segment identified by fileID.
func New(fileID uint32, backend iobackend.Backend) *Segment {
	return &Segment{FileID: fileID, backend: backend}
}

// Size reports the current length of the segment file.
func (s *Segment) Size() int64 {
	return s.backend.Size()
}

// Append encodes rec, appends it to the segment, and returns its Position.
func (s *Segment) Append(rec *record.Record) (record.Position, error) {
	offset := s.backend.Size()
	encoded := record.Encode(rec)

	if _, err := s.backend.Append(encoded); err != nil {
		return record.Position{}, litedberrors.NewIOError(err, "failed to append record to segment").
			WithSegmentID(int(s.FileID)).WithOffset(int(offset))
	}

	return record.Position{FileID: s.FileID, Offset: offset, Size: uint32(len(encoded))}, nil
}

// AppendRaw appends already-encoded bytes as they are, without passing them
// through the record codec, and returns the offset they were written at.
func (s *Segment) AppendRaw(encoded []byte) (int64, error) {
	offset := s.backend.Size()
	if _, err := s.backend.Append(encoded); err != nil {
		return 0, litedberrors.NewIOError(err, "failed to append to segment").
			WithSegmentID(int(s.FileID)).WithOffset(int(offset))
	}
	return offset, nil
}

// maxHeaderProbe is large enough to hold kind + two MaxVarintLen32
// lengths; it bounds the first read used to discover a record's true size.
const maxHeaderProbe = 1 + binary.MaxVarintLen32*2

// ReadAt decodes the record stored at byte offset off within this segment.
// It returns ErrEOF once off is at or past the segment's current size.
func (s *Segment) ReadAt(off int64) (*record.Record, uint32, error) {
	size := s.backend.Size()
	if off >= size {
		return nil, 0, ErrEOF
	}

	probeLen := int64(maxHeaderProbe)
	if remain := size - off; remain < probeLen {
		probeLen = remain
	}
	probe := make([]byte, probeLen)
	if _, err := s.backend.ReadAt(probe, off); err != nil && err != io.EOF {
		return nil, 0, litedberrors.NewIOError(err, "failed to read record header").
			WithSegmentID(int(s.FileID)).WithOffset(int(off))
	}

	if len(probe) < 1 {
		return nil, 0, litedberrors.NewStorageError(
			nil, litedberrors.ErrorCodeSegmentCorrupted, "empty record header",
		).WithSegmentID(int(s.FileID)).WithOffset(int(off))
	}

	kind := probe[0]
	keyLen, hn := binary.Uvarint(probe[1:])
	valLen, hn2 := binary.Uvarint(probe[1+hn:])
	headerLen := 1 + hn + hn2

	total := headerLen + int(keyLen) + int(valLen) + 4
	if int64(total) > size-off {
		return nil, 0, litedberrors.NewStorageError(
			nil, litedberrors.ErrorCodeSegmentCorrupted, "record extends past end of segment",
		).WithSegmentID(int(s.FileID)).WithOffset(int(off))
	}

	buf := make([]byte, total)
	if _, err := s.backend.ReadAt(buf, off); err != nil && err != io.EOF {
		return nil, 0, litedberrors.NewStorageError(
			err, litedberrors.ErrorCodePayloadReadFailure, "failed to read record payload",
		).WithSegmentID(int(s.FileID)).WithOffset(int(off))
	}

	if !record.VerifyCRC(buf) {
		return nil, 0, litedberrors.NewInvalidRecordCRCError(int(s.FileID), int(off))
	}

	key := append([]byte(nil), buf[headerLen:headerLen+int(keyLen)]...)
	value := append([]byte(nil), buf[headerLen+int(keyLen):headerLen+int(keyLen)+int(valLen)]...)

	return &record.Record{Kind: kind, Key: key, Value: value}, uint32(total), nil
}

// Sync flushes the segment to stable storage.
func (s *Segment) Sync() error {
	return s.backend.Sync()
}

// Close releases the segment's underlying backend.
func (s *Segment) Close() error {
	return s.backend.Close()
}
