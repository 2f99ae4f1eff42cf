package engine

import (
	"os"
	"path/filepath"

	litedberrors "github.com/iamNilotpal/litedb/pkg/errors"
	"golang.org/x/sys/unix"
)

// lockFileName is the sentinel an exclusive advisory lock is taken on to
// enforce single-writer access to a data directory across processes.
const lockFileName = "___lite_db_file_lock_name___"

// dirLock holds the flock acquired on a data directory for the lifetime
// of an open Engine.
type dirLock struct {
	file *os.File
}

func acquireDirLock(dataDir string) (*dirLock, error) {
	path := filepath.Join(dataDir, lockFileName)

	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return nil, litedberrors.ClassifyFileOpenError(err, path, lockFileName)
	}

	if err := unix.Flock(int(f.Fd()), unix.LOCK_EX|unix.LOCK_NB); err != nil {
		f.Close()
		return nil, litedberrors.NewIOError(err, "database directory is already in use by another process").
			WithPath(dataDir)
	}

	return &dirLock{file: f}, nil
}

func (l *dirLock) release() error {
	if err := unix.Flock(int(l.file.Fd()), unix.LOCK_UN); err != nil {
		l.file.Close()
		return err
	}
	return l.file.Close()
}
