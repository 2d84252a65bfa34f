package os

import (
	"errors"
	"io"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/blobfs/blobfs"
	"github.com/blobfs/blobfs/backend"
	"github.com/blobfs/blobfs/options"
	"github.com/blobfs/blobfs/utils"
)

// File implements the blobfs.File interface for the local filesystem.
type File struct {
	location *Location
	name     string
	opts     []options.NewFileOption
	file     *os.File
	readOnly bool
}

// openFile lazily opens the backing os.File.  Opening for write creates the file (and any missing parent
// directories) and truncates it; opening for read requires the file to exist.  A handle first opened for
// reading is upgraded in place when a write follows, so the read-then-write transition works on one File.
func (f *File) openFile(forWrite bool) error {
	if f.file != nil {
		if forWrite && f.readOnly {
			return f.reopenWritable()
		}
		return nil
	}

	if forWrite {
		if err := os.MkdirAll(filepath.Dir(f.name), 0750); err != nil {
			return err
		}
		file, err := os.OpenFile(f.name, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0640)
		if err != nil {
			return err
		}
		f.file = file
		f.readOnly = false
		return nil
	}

	file, err := os.Open(f.name)
	if err != nil {
		if os.IsNotExist(err) {
			return blobfs.ErrNotExist
		}
		return err
	}
	f.file = file
	f.readOnly = true
	return nil
}

// reopenWritable swaps a read-only handle for a read-write one at the same cursor position,
// without truncating the file.
func (f *File) reopenWritable() error {
	offset, err := f.file.Seek(0, io.SeekCurrent)
	if err != nil {
		return err
	}
	if err := f.file.Close(); err != nil {
		return err
	}
	f.file = nil

	file, err := os.OpenFile(f.name, os.O_RDWR, 0640)
	if err != nil {
		return err
	}
	if _, err := file.Seek(offset, io.SeekStart); err != nil {
		_ = file.Close()
		return err
	}
	f.file = file
	f.readOnly = false
	return nil
}

// Close closes the underlying os.File.
func (f *File) Close() error {
	if f.file == nil {
		return nil
	}

	err := f.file.Close()
	f.file = nil
	if err != nil {
		return utils.WrapCloseError(err)
	}
	return nil
}

// Read implements the io.Reader interface.
func (f *File) Read(p []byte) (int, error) {
	if err := f.openFile(false); err != nil {
		return 0, utils.WrapReadError(err)
	}
	read, err := f.file.Read(p)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return read, io.EOF
		}
		return read, utils.WrapReadError(err)
	}
	return read, nil
}

// Seek implements the io.Seeker interface.
func (f *File) Seek(offset int64, whence int) (int64, error) {
	if err := f.openFile(false); err != nil {
		return 0, utils.WrapSeekError(err)
	}
	pos, err := f.file.Seek(offset, whence)
	if err != nil {
		return 0, utils.WrapSeekError(err)
	}
	return pos, nil
}

// Write implements the io.Writer interface.
func (f *File) Write(p []byte) (int, error) {
	if err := f.openFile(true); err != nil {
		return 0, utils.WrapWriteError(err)
	}
	n, err := f.file.Write(p)
	if err != nil {
		return 0, utils.WrapWriteError(err)
	}
	return n, nil
}

// String returns the file URI
func (f *File) String() string {
	return f.URI()
}

// Exists returns true if the file exists on the local filesystem.
func (f *File) Exists() (bool, error) {
	_, err := os.Stat(f.name)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, utils.WrapExistsError(err)
	}
	return true, nil
}

// Location returns a Location instance for the file's current location
func (f *File) Location() blobfs.Location {
	return f.location
}

// CopyToLocation creates a copy of *File, using the file's current name as the new file's name at the given
// location.
func (f *File) CopyToLocation(location blobfs.Location) (blobfs.File, error) {
	newFile, err := location.NewFile(f.Name(), f.opts...)
	if err != nil {
		return nil, utils.WrapCopyToLocationError(err)
	}

	if err := f.CopyToFile(newFile); err != nil {
		return nil, utils.WrapCopyToLocationError(err)
	}

	return newFile, nil
}

// CopyToFile puts the contents of the receiver (f *File) into the passed blobfs.File parameter.
func (f *File) CopyToFile(file blobfs.File) (err error) {
	defer func() {
		wErr := file.Close()
		rErr := f.Close()
		if err == nil {
			if wErr != nil {
				err = utils.WrapCopyToFileError(wErr)
			} else if rErr != nil {
				err = utils.WrapCopyToFileError(rErr)
			}
		}
	}()

	if verr := backend.ValidateCopySeekPosition(f); verr != nil {
		return utils.WrapCopyToFileError(verr)
	}

	if terr := utils.TouchCopyBuffered(file, f, 0); terr != nil {
		return utils.WrapCopyToFileError(terr)
	}

	if cerr := file.Close(); cerr != nil {
		return utils.WrapCopyToFileError(cerr)
	}

	return nil
}

// MoveToLocation moves the receiver to the passed location.
func (f *File) MoveToLocation(location blobfs.Location) (blobfs.File, error) {
	newFile, err := f.CopyToLocation(location)
	if err != nil {
		return nil, utils.WrapMoveToLocationError(err)
	}

	return newFile, f.Delete()
}

// MoveToFile moves the receiver to the specified file and deletes the original file.
func (f *File) MoveToFile(file blobfs.File) error {
	if err := f.CopyToFile(file); err != nil {
		return utils.WrapMoveToFileError(err)
	}

	return f.Delete()
}

// Delete removes the file from the local filesystem.  Delete options are accepted for interface parity and
// are ignored.
func (f *File) Delete(_ ...options.DeleteOption) error {
	if err := f.Close(); err != nil {
		return utils.WrapDeleteError(err)
	}

	if err := os.Remove(f.name); err != nil {
		if os.IsNotExist(err) {
			return utils.WrapDeleteError(blobfs.ErrNotExist)
		}
		return utils.WrapDeleteError(err)
	}
	return nil
}

// LastModified returns the last modified time as a time.Time
func (f *File) LastModified() (*time.Time, error) {
	info, err := os.Stat(f.name)
	if err != nil {
		return nil, utils.WrapLastModifiedError(err)
	}
	t := info.ModTime()
	return &t, nil
}

// Size returns the size of the file
func (f *File) Size() (uint64, error) {
	info, err := os.Stat(f.name)
	if err != nil {
		return 0, utils.WrapSizeError(err)
	}
	return uint64(info.Size()), nil
}

// Path returns full path with leading slash.
func (f *File) Path() string {
	return utils.EnsureLeadingSlash(f.name)
}

// Name returns the name of the file
func (f *File) Name() string {
	return path.Base(f.name)
}

// Touch creates a zero-length file if it does not exist, otherwise it updates the file's modification time.
func (f *File) Touch() error {
	exists, err := f.Exists()
	if err != nil {
		return utils.WrapTouchError(err)
	}

	if !exists {
		if err := f.openFile(true); err != nil {
			return utils.WrapTouchError(err)
		}
		return f.Close()
	}

	now := time.Now()
	if err := os.Chtimes(f.name, now, now); err != nil {
		return utils.WrapTouchError(err)
	}
	return nil
}

// URI returns the File's URI as a string.
func (f *File) URI() string {
	return utils.GetFileURI(f)
}
