package blobfs

import (
	"fmt"
	"io"
	"regexp"
	"time"

	"github.com/blobfs/blobfs/options"
)

// FileSystem represents a filesystem with any authentication accounted for.
type FileSystem interface {
	// NewFile initializes a File on the specified volume at path 'absFilePath'. On error, nil is returned
	// for the file.
	//
	// Note that not all filesystems will have a "volume" and will therefore be "":
	//   file:///path/to/file has a volume of "" and name /path/to/file
	// whereas
	//   s3://mybucket/path/to/file has a volume of "mybucket" and name /path/to/file
	NewFile(volume, absFilePath string, opts ...options.NewFileOption) (File, error)

	// NewLocation initializes a Location on the specified volume with the given path. On error, nil is returned
	// for the location.
	//
	// See NewFile for note on volume.
	NewLocation(volume, absLocPath string) (Location, error)

	// Name returns the name of the FileSystem ie: Azure Blob Storage, S3, disk, etc.
	Name() string

	// Scheme returns the uri scheme used by the FileSystem: s3, file, gs, etc.
	Scheme() string
}

// Location represents a filesystem path which serves as a start point for directory-like functionality. A location may
// or may not actually exist on the filesystem.
type Location interface {
	fmt.Stringer

	// List returns a slice of strings representing the base names of the files found at the Location. All
	// implementations are expected to return ([]string{}, nil) in the case of a non-existent directory/prefix/location.
	// If the user cares about the distinction between an empty location and a non-existent one, Location.Exists()
	// should be checked first.
	List() ([]string, error)

	// ListByPrefix returns a slice of strings representing the base names of the files found in Location whose
	// filenames match the given prefix. An empty slice will be returned even for locations that don't exist.
	ListByPrefix(prefix string) ([]string, error)

	// ListByRegex returns a slice of strings representing the base names of the files found in Location that
	// matched the given regular expression. An empty slice will be returned even for locations that don't exist.
	ListByRegex(regex *regexp.Regexp) ([]string, error)

	// Volume returns the volume as string. Some filesystems may not have a volume and will return "". In URI parlance,
	// volume equates to authority. For example s3://mybucket/path/to/file.txt, volume would return "mybucket".
	Volume() string

	// Path returns absolute path to the Location with leading and trailing slashes, ie /some/path/to/
	Path() string

	// Exists returns boolean if the location exists on the file system. Returns an error if any.
	Exists() (bool, error)

	// NewLocation is an initializer for a new Location relative to the existing one. For instance, for location:
	// file:///some/path/to/, calling NewLocation("../../") would return a new Location representing
	// file:///some/. The new location instance should be on the same file system volume as the location it
	// originated from.
	NewLocation(relLocPath string) (Location, error)

	// FileSystem returns the underlying FileSystem struct for Location.
	FileSystem() FileSystem

	// NewFile will instantiate a File instance at or relative to the current location's path. In the case of an
	// error, nil will be returned.
	NewFile(relFilePath string, opts ...options.NewFileOption) (File, error)

	// DeleteFile deletes the file of the given name at the location. This is meant to be a short cut for
	// instantiating a new file and calling delete on that, with all the necessary error handling overhead.
	DeleteFile(relFilePath string, opts ...options.DeleteOption) error

	// URI returns the fully qualified absolute URI for the Location. IE, s3://bucket/some/path/
	URI() string
}

// File represents a file on a filesystem. A File may or may not actually exist on the filesystem.
type File interface {
	io.Closer
	io.Reader
	io.Seeker
	io.Writer
	fmt.Stringer

	// Exists returns boolean if the file exists on the file system. Returns an error if any.
	Exists() (bool, error)

	// Location returns the Location for the File.
	Location() Location

	// CopyToLocation will copy the current file to the provided location. If the file already exists at the location,
	// the contents will be overwritten with the current file's contents. In the case of an error, nil is returned
	// for the file.
	CopyToLocation(location Location) (File, error)

	// CopyToFile will copy the current file to the provided file instance. If the file already exists,
	// the contents will be overwritten with the current file's contents.
	CopyToFile(file File) error

	// MoveToLocation will move the current file to the provided location. After the copy succeeds, the original
	// is deleted.
	MoveToLocation(location Location) (File, error)

	// MoveToFile will move the current file to the provided file instance. After the copy succeeds, the original
	// is deleted.
	MoveToFile(file File) error

	// Delete unlinks the File on the filesystem.
	Delete(opts ...options.DeleteOption) error

	// LastModified returns the timestamp the file was last modified (as *time.Time).
	LastModified() (*time.Time, error)

	// Size returns the size of the file in bytes.
	Size() (uint64, error)

	// Path returns absolute path, including filename, ie /some/path/to/file.txt
	Path() string

	// Name returns the base name of the file path. For file:///some/path/to/file.txt, it would return file.txt
	Name() string

	// Touch creates a zero-length file on the File if no File exists. If the file exists, Touch updates the
	// file's last modified timestamp.
	Touch() error

	// URI returns the fully qualified absolute URI for the File. IE, s3://bucket/some/path/to/file.txt
	URI() string
}

// AllFileLister is implemented by backend Locations that can enumerate every file under their
// path tree, not just immediate children. Returned paths are relative to the location, without a
// leading slash.
type AllFileLister interface {
	// ListAll returns the relative paths of all files under the location's path.
	ListAll() ([]string, error)
}

// URLSigner is implemented by backend Files that can mint a time-limited, capability-scoped URL
// (SAS URL on Azure, presigned URL on S3, signed URL on GCS) granting read access to the blob
// without further credentials.
type URLSigner interface {
	// SignedURL returns a URL granting read access to the file for the given duration.
	SignedURL(validFor time.Duration) (string, error)
}
