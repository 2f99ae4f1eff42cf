package options

const (
	// DefaultDataDir is used when no directory is supplied at all.
	DefaultDataDir = "/var/lib/litedb"

	// MinSegmentCap and MaxSegmentCap name a suggested range for SegmentCap.
	// Neither WithSegmentCap nor Validate enforces them; both only require a
	// positive value.
	MinSegmentCap int64 = 1 * 1024 * 1024
	MaxSegmentCap int64 = 4 * 1024 * 1024 * 1024

	// DefaultSegmentCap is the target size for a new active segment.
	DefaultSegmentCap int64 = 256 * 1024 * 1024

	// DefaultBytesPerSync disables the byte-count fsync trigger by default.
	DefaultBytesPerSync int64 = 0

	// DefaultMergeRatio is the reclaimable-bytes threshold suggested to
	// an external merge driver.
	DefaultMergeRatio = 0.5
)

var defaultOptions = Options{
	DataDir:       DefaultDataDir,
	SegmentCap:    DefaultSegmentCap,
	SyncWrites:    false,
	BytesPerSync:  DefaultBytesPerSync,
	IndexType:     IndexTypeMemory,
	MmapAtStartup: false,
	MergeRatio:    DefaultMergeRatio,
}

// NewDefaultOptions returns a copy of litedb's default configuration.
func NewDefaultOptions() Options {
	return defaultOptions
}

// WriteBatchOptions configures a batch's admission and durability policy.
type WriteBatchOptions struct {
	// MaxBatchNum is the maximum number of staged operations a single
	// batch may hold; Put rejects staging a new key once the batch holds
	// this many.
	MaxBatchNum uint
	// SyncWrites forces an fsync as part of Commit.
	SyncWrites bool
}

// DefaultWriteBatchOptions gives a generous batch ceiling and durable
// commits (Commit syncs the active segment).
var DefaultWriteBatchOptions = WriteBatchOptions{
	MaxBatchNum: 10000,
	SyncWrites:  true,
}
