package errors

// StorageError carries the segment/file context for a storage-layer
// failure: which segment, what byte offset, which file and path.
type StorageError struct {
	*baseError
	segmentId int
	offset    int
	fileName  string
	path      string
}

// NewStorageError creates a new storage-specific error.
func NewStorageError(err error, code ErrorCode, msg string) *StorageError {
	return &StorageError{baseError: NewBaseError(err, code, msg)}
}

// WithSegmentID sets which storage segment was involved in the error.
func (se *StorageError) WithSegmentID(id int) *StorageError {
	se.segmentId = id
	return se
}

// WithOffset records the byte position where the error occurred.
func (se *StorageError) WithOffset(offset int) *StorageError {
	se.offset = offset
	return se
}

// WithFileName captures which file was being processed when the error occurred.
func (se *StorageError) WithFileName(fileName string) *StorageError {
	se.fileName = fileName
	return se
}

// WithPath captures which path was being processed when the error occurred.
func (se *StorageError) WithPath(path string) *StorageError {
	se.path = path
	return se
}

func (se *StorageError) SegmentId() int {
	return se.segmentId
}

func (se *StorageError) Offset() int {
	return se.offset
}

func (se *StorageError) FileName() string {
	return se.fileName
}

func (se *StorageError) Path() string {
	return se.path
}
