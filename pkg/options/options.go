// Package options defines litedb's configuration surface and the
// functional-options pattern used to build it.
package options

import "strings"

// IndexType selects the keydir backend an engine uses.
type IndexType int

const (
	// IndexTypeMemory keeps the keydir in a plain Go map, rebuilt by
	// replaying the log (or a hint file) on every Open.
	IndexTypeMemory IndexType = iota
	// IndexTypeBTree persists the keydir in a bbolt-backed B+tree file,
	// skipping log replay on Open in favor of the seq-no file.
	IndexTypeBTree
)

// Options configures a litedb engine instance.
type Options struct {
	// DataDir is the directory holding every segment, hint, and marker
	// file for this database.
	DataDir string `json:"dataDir"`

	// SegmentCap is the maximum size, in bytes, an active segment may
	// reach before the engine rotates to a new one.
	SegmentCap int64 `json:"segmentCap"`

	// SyncWrites forces an fsync after every write when true. When
	// false, durability is instead governed by BytesPerSync.
	SyncWrites bool `json:"syncWrites"`

	// BytesPerSync triggers an fsync once this many bytes have been
	// written to the active segment since the last sync. Zero disables
	// the byte-count trigger.
	BytesPerSync int64 `json:"bytesPerSync"`

	// IndexType selects the keydir backend.
	IndexType IndexType `json:"indexType"`

	// MmapAtStartup opens older (read-only) segments via mmap at Open
	// instead of using positioned reads; they stay mapped until Close.
	MmapAtStartup bool `json:"mmapAtStartup"`

	// MergeRatio is the minimum reclaimable-to-total-bytes ratio an
	// external merge driver should require before merging. The engine
	// only exposes the ratio and the byte counters behind it; it does
	// not run a merge loop itself.
	MergeRatio float64 `json:"mergeRatio"`
}

// OptionFunc mutates an Options value.
type OptionFunc func(*Options)

// WithDataDir sets the database directory.
func WithDataDir(dir string) OptionFunc {
	return func(o *Options) {
		dir = strings.TrimSpace(dir)
		if dir != "" {
			o.DataDir = dir
		}
	}
}

// WithSegmentCap sets the maximum active segment size in bytes.
func WithSegmentCap(cap int64) OptionFunc {
	return func(o *Options) {
		if cap > 0 {
			o.SegmentCap = cap
		}
	}
}

// WithSyncWrites toggles fsync-on-every-write.
func WithSyncWrites(sync bool) OptionFunc {
	return func(o *Options) {
		o.SyncWrites = sync
	}
}

// WithBytesPerSync sets the byte-count fsync trigger.
func WithBytesPerSync(n int64) OptionFunc {
	return func(o *Options) {
		if n >= 0 {
			o.BytesPerSync = n
		}
	}
}

// WithIndexType selects the keydir backend.
func WithIndexType(t IndexType) OptionFunc {
	return func(o *Options) {
		o.IndexType = t
	}
}

// WithMmapAtStartup toggles memory-mapped reads of older segments at Open.
func WithMmapAtStartup(enabled bool) OptionFunc {
	return func(o *Options) {
		o.MmapAtStartup = enabled
	}
}

// WithMergeRatio sets the merge-worthiness threshold an external merge
// driver should honor.
func WithMergeRatio(ratio float64) OptionFunc {
	return func(o *Options) {
		if ratio >= 0 && ratio <= 1 {
			o.MergeRatio = ratio
		}
	}
}
