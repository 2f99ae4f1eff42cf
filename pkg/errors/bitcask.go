package errors

// Helper constructors mapping litedb's error kinds onto the base error
// hierarchy above. Each one names the kind it represents so callers can
// construct the right shape without re-deriving error codes inline.

// NewNotFindKeyError reports a read of a key with no live entry in the
// index (absent, or resolved to a tombstone).
func NewNotFindKeyError(key string) *IndexError {
	return NewKeyNotFoundError(key)
}

// NewInvalidParameterError reports a caller-supplied argument that
// violates an operation's preconditions, such as an empty key on Put.
func NewInvalidParameterError(field string, provided any) *ValidationError {
	return NewValidationError(nil, ErrorCodeInvalidInput, "invalid parameter").
		WithField(field).
		WithRule("non_empty").
		WithProvided(provided)
}

// NewInvalidBatchError reports a batch that violates its admission policy:
// too many staged operations, reuse after Commit, or a commit while
// batching is disabled for lack of a seq-no marker.
func NewInvalidBatchError(reason string) *ValidationError {
	return NewValidationError(nil, ErrorCodeInvalidBatch, reason).
		WithRule("batch_policy")
}

// NewInvalidRecordCRCError reports a record whose trailing checksum does
// not match its recomputed CRC, the signature of a write torn by a crash.
func NewInvalidRecordCRCError(segmentID int, offset int) *StorageError {
	return NewStorageError(nil, ErrorCodeInvalidRecordCRC, "record failed crc verification").
		WithSegmentID(segmentID).
		WithOffset(offset)
}

// NewIOError wraps an underlying I/O failure encountered while touching a
// segment, hint, or marker file.
func NewIOError(cause error, msg string) *StorageError {
	return NewStorageError(cause, ErrorCodeIO, msg)
}

// NewParseIntError wraps a strconv failure encountered while parsing a
// filename, sequence number, or other on-disk decimal value.
func NewParseIntError(cause error, what string) *ValidationError {
	return NewValidationError(cause, ErrorCodeParseInt, "failed to parse integer").
		WithField(what).
		WithRule("integer")
}
