// Package seginfo translates between numeric segment file IDs and the
// fixed-width filenames they are stored under on disk: {id:09}.data.
package seginfo

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	litedberrors "github.com/iamNilotpal/litedb/pkg/errors"
)

// DataFileSuffix is the extension every numbered log segment carries.
const DataFileSuffix = ".data"

// GenerateDataFileName formats id as the fixed 9-digit zero-padded segment
// filename, e.g. id=7 -> "000000007.data".
func GenerateDataFileName(id uint32) string {
	return fmt.Sprintf("%09d%s", id, DataFileSuffix)
}

// ParseFileID extracts the numeric file ID from a segment filename
// previously produced by GenerateDataFileName.
func ParseFileID(name string) (uint32, error) {
	base := strings.TrimSuffix(filepath.Base(name), DataFileSuffix)
	id, err := strconv.ParseUint(base, 10, 32)
	if err != nil {
		return 0, litedberrors.NewFileIDParseError(name, err)
	}
	return uint32(id), nil
}

// ListDataFileIDs returns every numbered segment's file ID found in dir,
// sorted ascending (oldest segment first). A missing directory yields an
// empty, non-error result — callers create it before first use.
func ListDataFileIDs(dir string) ([]uint32, error) {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, litedberrors.NewIOError(err, "failed to list segment directory").WithPath(dir)
	}

	var ids []uint32
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), DataFileSuffix) {
			continue
		}
		id, err := ParseFileID(e.Name())
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}

	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

// DataFilePath joins dir and the filename for id.
func DataFilePath(dir string, id uint32) string {
	return filepath.Join(dir, GenerateDataFileName(id))
}
