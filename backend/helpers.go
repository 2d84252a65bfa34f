package backend

import (
	"fmt"
	"io"

	"github.com/blobfs/blobfs"
)

// ValidateCopySeekPosition validates that a file's seek position is at 0,0 before a copy is attempted.
func ValidateCopySeekPosition(f blobfs.File) error {
	offset, err := f.Seek(0, io.SeekCurrent)
	if err != nil {
		return fmt.Errorf("failed to determine current cursor offset: %w", err)
	}
	if offset != 0 {
		return blobfs.CopyToNotPossible
	}

	return nil
}
