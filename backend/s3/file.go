package s3

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"strings"
	"time"

	"github.com/blobfs/blobfs"
	"github.com/blobfs/blobfs/backend"
	"github.com/blobfs/blobfs/options"
	"github.com/blobfs/blobfs/options/newfile"
	"github.com/blobfs/blobfs/utils"
)

// File implements the blobfs.File interface for AWS S3
type File struct {
	location *Location
	name     string
	opts     []options.NewFileOption
	tempFile *os.File
	isDirty  bool
}

// Close cleans up all the backing data structures used for reading/writing files.  This includes closing the
// temp file and uploading the contents of the temp file to S3 (if necessary).
func (f *File) Close() error {
	if f.tempFile != nil {
		defer func() {
			_ = f.tempFile.Close()
			f.tempFile = nil
			f.isDirty = false
		}()

		client, err := f.location.fileSystem.Client()
		if err != nil {
			return utils.WrapCloseError(err)
		}

		if _, err := f.Seek(0, 0); err != nil {
			return utils.WrapCloseError(err)
		}

		if f.isDirty {
			if err := client.Upload(f, f.tempFile, f.contentType()); err != nil {
				return utils.WrapCloseError(err)
			}
		}
	}
	return nil
}

// Read implements the io.Reader interface.  Reads are performed against a temporary local copy of the file.
func (f *File) Read(p []byte) (n int, err error) {
	if err := f.checkTempFile(false); err != nil {
		return 0, utils.WrapReadError(err)
	}
	read, err := f.tempFile.Read(p)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return read, io.EOF
		}
		return read, utils.WrapReadError(err)
	}

	return read, nil
}

// Seek implements the io.Seeker interface.  Seeks are performed against the temporary local copy of the file.
func (f *File) Seek(offset int64, whence int) (int64, error) {
	if err := f.checkTempFile(false); err != nil {
		return 0, utils.WrapSeekError(err)
	}
	pos, err := f.tempFile.Seek(offset, whence)
	if err != nil {
		return 0, utils.WrapSeekError(err)
	}
	return pos, nil
}

// Write implements the io.Writer interface.  Writes are performed against a temporary local file.  The temp file is
// closed and flushed to S3 when f.Close() is called.
func (f *File) Write(p []byte) (int, error) {
	if err := f.checkTempFile(true); err != nil {
		return 0, utils.WrapWriteError(err)
	}

	n, err := f.tempFile.Write(p)
	if err != nil {
		return 0, utils.WrapWriteError(err)
	}

	f.isDirty = true

	return n, nil
}

// String returns the file URI
func (f *File) String() string {
	return f.URI()
}

// Exists returns true/false if the file exists/does not exist on S3
func (f *File) Exists() (bool, error) {
	client, err := f.location.fileSystem.Client()
	if err != nil {
		return false, utils.WrapExistsError(err)
	}
	_, err = client.Properties(f.location.Volume(), f.Path())
	if err != nil {
		if !IsNotFound(err) {
			return false, utils.WrapExistsError(err)
		}
		return false, nil
	}
	return true, nil
}

// Location returns a Location instance for the file's current location
func (f *File) Location() blobfs.Location {
	return f.location
}

// CopyToLocation creates a copy of *File, using the file's current name as the new file's name at the given
// location.  If the given location is also s3, the s3 API for copying objects will be utilized, otherwise,
// standard io.Copy will be done to the new file.
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
	// Close both files regardless of an error
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

	// validate seek is at 0,0 before doing copy
	if verr := backend.ValidateCopySeekPosition(f); verr != nil {
		return utils.WrapCopyToFileError(verr)
	}

	if s3File, ok := file.(*File); ok {
		client, err := f.location.fileSystem.Client()
		if err != nil {
			return utils.WrapCopyToFileError(err)
		}
		return client.Copy(f, s3File)
	}

	fileBufferSize := 0
	if opts := f.location.fileSystem.options; opts != nil && opts.FileBufferSize > 0 {
		fileBufferSize = opts.FileBufferSize
	}

	if terr := utils.TouchCopyBuffered(file, f, fileBufferSize); terr != nil {
		return utils.WrapCopyToFileError(terr)
	}

	if cerr := file.Close(); cerr != nil {
		return utils.WrapCopyToFileError(cerr)
	}

	return nil
}

// MoveToLocation copies the receiver to the passed location.  After the copy succeeds, the original is deleted.
func (f *File) MoveToLocation(location blobfs.Location) (blobfs.File, error) {
	newFile, err := f.CopyToLocation(location)
	if err != nil {
		return nil, utils.WrapMoveToLocationError(err)
	}

	return newFile, f.Delete()
}

// MoveToFile copies the receiver to the specified file and deletes the original file.
func (f *File) MoveToFile(file blobfs.File) error {
	if err := f.CopyToFile(file); err != nil {
		return utils.WrapMoveToFileError(err)
	}

	return f.Delete()
}

// Delete deletes the file.  Delete options are accepted for interface parity but S3 object versions are not
// managed here, so they are ignored.
func (f *File) Delete(_ ...options.DeleteOption) error {
	if err := f.Close(); err != nil {
		return utils.WrapDeleteError(err)
	}

	client, err := f.location.fileSystem.Client()
	if err != nil {
		return utils.WrapDeleteError(err)
	}

	if err := client.Delete(f); err != nil {
		return utils.WrapDeleteError(err)
	}

	return nil
}

// LastModified returns the last modified time as a time.Time
func (f *File) LastModified() (*time.Time, error) {
	client, err := f.location.fileSystem.Client()
	if err != nil {
		return nil, utils.WrapLastModifiedError(err)
	}
	props, err := client.Properties(f.location.Volume(), f.Path())
	if err != nil {
		return nil, utils.WrapLastModifiedError(err)
	}
	return props.LastModified, nil
}

// Size returns the size of the object
func (f *File) Size() (uint64, error) {
	client, err := f.location.fileSystem.Client()
	if err != nil {
		return 0, utils.WrapSizeError(err)
	}
	props, err := client.Properties(f.location.Volume(), f.Path())
	if err != nil {
		return 0, utils.WrapSizeError(err)
	}
	return uint64(*props.Size), nil
}

// Path returns full path with leading slash.
func (f *File) Path() string {
	return f.name
}

// Name returns the name of the file
func (f *File) Name() string {
	return path.Base(f.name)
}

// Touch creates a zero-length file if the file does not exist.  If the file exists, Touch re-uploads its
// contents to refresh the last modified time.
func (f *File) Touch() error {
	exists, err := f.Exists()
	if err != nil {
		return utils.WrapTouchError(err)
	}

	client, err := f.location.fileSystem.Client()
	if err != nil {
		return utils.WrapTouchError(err)
	}

	if !exists {
		return client.Upload(f, strings.NewReader(""), f.contentType())
	}

	reader, err := client.Download(f)
	if err != nil {
		return utils.WrapTouchError(err)
	}
	defer func() { _ = reader.Close() }()

	if err := client.Upload(f, reader, f.contentType()); err != nil {
		return utils.WrapTouchError(err)
	}

	return nil
}

// SignedURL returns a presigned GET URL for the object that expires after validFor.
func (f *File) SignedURL(validFor time.Duration) (string, error) {
	client, err := f.location.fileSystem.Client()
	if err != nil {
		return "", utils.WrapSignedURLError(err)
	}

	u, err := client.SignedURL(f, validFor)
	if err != nil {
		return "", utils.WrapSignedURLError(err)
	}
	return u, nil
}

// URI returns the File's URI as a string.
func (f *File) URI() string {
	return utils.GetFileURI(f)
}

func (f *File) contentType() string {
	var contentType string
	for _, o := range f.opts {
		if ct, ok := o.(*newfile.ContentType); ok {
			contentType = *(*string)(ct)
		}
	}
	return contentType
}

func (f *File) checkTempFile(isWrite bool) error {
	if f.tempFile == nil {
		client, err := f.location.fileSystem.Client()
		if err != nil {
			return err
		}

		exists, err := f.Exists()
		if err != nil {
			return err
		}

		tf, tfErr := os.CreateTemp("", fmt.Sprintf("%s.%d", path.Base(f.Name()), time.Now().UnixNano()))
		if tfErr != nil {
			return tfErr
		}
		f.tempFile = tf

		if !isWrite {
			if !exists {
				return blobfs.ErrNotExist
			}

			reader, dlErr := client.Download(f)
			if dlErr != nil {
				return dlErr
			}

			buffer := make([]byte, utils.TouchCopyMinBufferSize)
			if _, err := io.CopyBuffer(tf, reader, buffer); err != nil {
				return err
			}

			if _, err := tf.Seek(0, 0); err != nil {
				return err
			}
		}
	}
	return nil
}
