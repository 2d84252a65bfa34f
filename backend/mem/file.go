package mem

import (
	"io"
	"path"
	"time"

	"github.com/blobfs/blobfs"
	"github.com/blobfs/blobfs/backend"
	"github.com/blobfs/blobfs/options"
	"github.com/blobfs/blobfs/utils"
)

// File implements the blobfs.File interface for the mem filesystem. Reads and writes are
// staged against an in-process buffer which is committed to the filesystem map on Close.
type File struct {
	fileSystem *FileSystem
	volume     string
	name       string // absolute path with leading slash
	opts       []options.NewFileOption

	buffer  []byte
	cursor  int64
	loaded  bool
	isDirty bool
}

// Close commits any staged writes and resets the file's cursor.
func (f *File) Close() error {
	if f.isDirty {
		f.fileSystem.store(f.volume, f.name, f.buffer)
	}
	f.buffer = nil
	f.cursor = 0
	f.loaded = false
	f.isDirty = false
	return nil
}

// Read implements the io.Reader interface.
func (f *File) Read(p []byte) (n int, err error) {
	if err := f.stage(false); err != nil {
		return 0, utils.WrapReadError(err)
	}
	if f.cursor >= int64(len(f.buffer)) {
		return 0, io.EOF
	}
	n = copy(p, f.buffer[f.cursor:])
	f.cursor += int64(n)
	return n, nil
}

// Seek implements the io.Seeker interface.
func (f *File) Seek(offset int64, whence int) (int64, error) {
	if err := f.stage(true); err != nil {
		return 0, utils.WrapSeekError(err)
	}
	pos, err := utils.SeekTo(int64(len(f.buffer)), f.cursor, offset, whence)
	if err != nil {
		return 0, utils.WrapSeekError(err)
	}
	f.cursor = pos
	return pos, nil
}

// Write implements the io.Writer interface. Contents are staged until Close.
func (f *File) Write(p []byte) (int, error) {
	if err := f.stage(true); err != nil {
		return 0, utils.WrapWriteError(err)
	}

	end := f.cursor + int64(len(p))
	if end > int64(len(f.buffer)) {
		grown := make([]byte, end)
		copy(grown, f.buffer)
		f.buffer = grown
	}
	copy(f.buffer[f.cursor:end], p)
	f.cursor = end
	f.isDirty = true
	return len(p), nil
}

// String returns the file URI
func (f *File) String() string {
	return f.URI()
}

// Exists returns whether the file has been committed to the filesystem.
func (f *File) Exists() (bool, error) {
	_, _, ok := f.fileSystem.lookup(f.volume, f.name)
	return ok, nil
}

// Location returns the blobfs.Location for the file.
func (f *File) Location() blobfs.Location {
	return &Location{
		fileSystem: f.fileSystem,
		volume:     f.volume,
		name:       utils.EnsureTrailingSlash(path.Dir(f.name)),
	}
}

// CopyToLocation copies the file to the given location using the file's base name.
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

// CopyToFile puts the contents of the receiver into the passed blobfs.File.
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

	return nil
}

// MoveToLocation copies the receiver to the passed location, then deletes the original.
func (f *File) MoveToLocation(location blobfs.Location) (blobfs.File, error) {
	newFile, err := f.CopyToLocation(location)
	if err != nil {
		return nil, utils.WrapMoveToLocationError(err)
	}

	return newFile, f.Delete()
}

// MoveToFile copies the receiver to the specified file, then deletes the original.
func (f *File) MoveToFile(file blobfs.File) error {
	if err := f.CopyToFile(file); err != nil {
		return utils.WrapMoveToFileError(err)
	}

	return f.Delete()
}

// Delete removes the file from the filesystem. The mem filesystem has no versioning so
// delete options are accepted and ignored.
func (f *File) Delete(_ ...options.DeleteOption) error {
	if err := f.Close(); err != nil {
		return utils.WrapDeleteError(err)
	}
	if !f.fileSystem.remove(f.volume, f.name) {
		return utils.WrapDeleteError(blobfs.ErrNotExist)
	}
	return nil
}

// LastModified returns the timestamp of the last commit.
func (f *File) LastModified() (*time.Time, error) {
	_, modified, ok := f.fileSystem.lookup(f.volume, f.name)
	if !ok {
		return nil, utils.WrapLastModifiedError(blobfs.ErrNotExist)
	}
	return &modified, nil
}

// Size returns the size of the committed file in bytes.
func (f *File) Size() (uint64, error) {
	contents, _, ok := f.fileSystem.lookup(f.volume, f.name)
	if !ok {
		return 0, utils.WrapSizeError(blobfs.ErrNotExist)
	}
	return uint64(len(contents)), nil
}

// Path returns the absolute path, including filename.
func (f *File) Path() string {
	return f.name
}

// Name returns the base name of the file path.
func (f *File) Name() string {
	return path.Base(f.name)
}

// Touch creates a zero-length file if none exists, otherwise updates the last modified
// timestamp.
func (f *File) Touch() error {
	contents, _, ok := f.fileSystem.lookup(f.volume, f.name)
	if !ok {
		contents = []byte{}
	}
	f.fileSystem.store(f.volume, f.name, contents)
	return nil
}

// URI returns the file's URI as a string.
func (f *File) URI() string {
	return utils.GetFileURI(f)
}

// stage prepares the in-process buffer. When forWrite is false the file must already
// exist on the filesystem.
func (f *File) stage(forWrite bool) error {
	if f.loaded {
		return nil
	}
	contents, _, ok := f.fileSystem.lookup(f.volume, f.name)
	if !ok {
		if !forWrite {
			return blobfs.ErrNotExist
		}
		contents = []byte{}
	}
	f.buffer = contents
	f.loaded = true
	return nil
}
