package gs

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"time"

	"cloud.google.com/go/storage"

	"github.com/blobfs/blobfs"
	"github.com/blobfs/blobfs/backend"
	"github.com/blobfs/blobfs/options"
	"github.com/blobfs/blobfs/options/newfile"
	"github.com/blobfs/blobfs/utils"
)

// File implements the blobfs.File interface for Google Cloud Storage
type File struct {
	location *Location
	name     string
	opts     []options.NewFileOption
	tempFile *os.File
	isDirty  bool
}

// object returns the storage object handle for the file
func (f *File) object() (*storage.ObjectHandle, error) {
	client, err := f.location.fileSystem.Client()
	if err != nil {
		return nil, err
	}
	return client.Bucket(f.location.bucket).Object(utils.RemoveLeadingSlash(f.name)), nil
}

// Close cleans up all the backing data structures used for reading/writing files.  This includes closing the
// temp file and flushing the contents of the temp file to Google Cloud Storage (if necessary).
func (f *File) Close() error {
	if f.tempFile != nil {
		defer func() {
			_ = f.tempFile.Close()
			f.tempFile = nil
			f.isDirty = false
		}()

		if _, err := f.Seek(0, 0); err != nil {
			return utils.WrapCloseError(err)
		}

		if f.isDirty {
			if err := f.upload(f.tempFile); err != nil {
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
// closed and flushed to Google Cloud Storage when f.Close() is called.
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

// Exists returns true/false if the file exists/does not exist on Google Cloud Storage
func (f *File) Exists() (bool, error) {
	obj, err := f.object()
	if err != nil {
		return false, utils.WrapExistsError(err)
	}

	if _, err := obj.Attrs(f.location.fileSystem.ctx); err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) || errors.Is(err, storage.ErrBucketNotExist) {
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
// location.  If the given location is also gs, the gs API for copying objects will be utilized, otherwise,
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

	if gsFile, ok := file.(*File); ok {
		srcObj, err := f.object()
		if err != nil {
			return utils.WrapCopyToFileError(err)
		}
		tgtObj, err := gsFile.object()
		if err != nil {
			return utils.WrapCopyToFileError(err)
		}
		_, err = tgtObj.CopierFrom(srcObj).Run(f.location.fileSystem.ctx)
		if err != nil {
			return utils.WrapCopyToFileError(err)
		}
		return nil
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

// Delete deletes the file.  Delete options are accepted for interface parity but object generations are not
// managed here, so they are ignored.
func (f *File) Delete(_ ...options.DeleteOption) error {
	if err := f.Close(); err != nil {
		return utils.WrapDeleteError(err)
	}

	obj, err := f.object()
	if err != nil {
		return utils.WrapDeleteError(err)
	}

	if err := obj.Delete(f.location.fileSystem.ctx); err != nil {
		return utils.WrapDeleteError(err)
	}

	return nil
}

// LastModified returns the last modified time as a time.Time
func (f *File) LastModified() (*time.Time, error) {
	obj, err := f.object()
	if err != nil {
		return nil, utils.WrapLastModifiedError(err)
	}

	attrs, err := obj.Attrs(f.location.fileSystem.ctx)
	if err != nil {
		return nil, utils.WrapLastModifiedError(err)
	}
	return &attrs.Updated, nil
}

// Size returns the size of the object
func (f *File) Size() (uint64, error) {
	obj, err := f.object()
	if err != nil {
		return 0, utils.WrapSizeError(err)
	}

	attrs, err := obj.Attrs(f.location.fileSystem.ctx)
	if err != nil {
		return 0, utils.WrapSizeError(err)
	}
	return uint64(attrs.Size), nil
}

// Path returns full path with leading slash.
func (f *File) Path() string {
	return f.name
}

// Name returns the name of the file
func (f *File) Name() string {
	return path.Base(f.name)
}

// Touch creates a zero-length file if the file does not exist.  If the file exists, Touch rewrites the object
// onto itself to refresh the updated time.
func (f *File) Touch() error {
	exists, err := f.Exists()
	if err != nil {
		return utils.WrapTouchError(err)
	}

	if !exists {
		if err := f.upload(nil); err != nil {
			return utils.WrapTouchError(err)
		}
		return nil
	}

	obj, err := f.object()
	if err != nil {
		return utils.WrapTouchError(err)
	}

	if _, err := obj.CopierFrom(obj).Run(f.location.fileSystem.ctx); err != nil {
		return utils.WrapTouchError(err)
	}

	return nil
}

// SignedURL returns a signed GET URL for the object that expires after validFor.  The underlying client must
// carry credentials capable of signing.
func (f *File) SignedURL(validFor time.Duration) (string, error) {
	client, err := f.location.fileSystem.Client()
	if err != nil {
		return "", utils.WrapSignedURLError(err)
	}

	u, err := client.Bucket(f.location.bucket).SignedURL(utils.RemoveLeadingSlash(f.name), &storage.SignedURLOptions{
		Scheme:  storage.SigningSchemeV4,
		Method:  "GET",
		Expires: time.Now().UTC().Add(validFor),
	})
	if err != nil {
		return "", utils.WrapSignedURLError(err)
	}
	return u, nil
}

// URI returns the File's URI as a string.
func (f *File) URI() string {
	return utils.GetFileURI(f)
}

// upload writes content to the backing object.  A nil content writes a zero-length object.
func (f *File) upload(content io.Reader) error {
	obj, err := f.object()
	if err != nil {
		return err
	}

	w := obj.NewWriter(f.location.fileSystem.ctx)
	for _, o := range f.opts {
		if ct, ok := o.(*newfile.ContentType); ok {
			w.ContentType = *(*string)(ct)
		}
	}

	if content != nil {
		if _, err := io.Copy(w, content); err != nil {
			_ = w.Close()
			return err
		}
	}
	return w.Close()
}

func (f *File) checkTempFile(isWrite bool) error {
	if f.tempFile == nil {
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

			obj, err := f.object()
			if err != nil {
				return err
			}

			reader, dlErr := obj.NewReader(f.location.fileSystem.ctx)
			if dlErr != nil {
				return dlErr
			}
			defer func() { _ = reader.Close() }()

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
