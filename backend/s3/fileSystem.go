package s3

import (
	"errors"
	"path"

	"github.com/blobfs/blobfs"
	"github.com/blobfs/blobfs/backend"
	"github.com/blobfs/blobfs/options"
	"github.com/blobfs/blobfs/utils"
)

// Scheme defines the scheme used in the URI for S3.
const Scheme = "s3"

// Name defines the name for the s3 implementation
const Name = "AWS S3"

// FileSystem implements the blobfs.FileSystem interface for AWS S3
type FileSystem struct {
	options *Options
	client  Client
}

// NewFileSystem creates a new FileSystem.  The optional functional options wire in an explicit Client (handy for
// testing) or an Options struct.  Otherwise options are read from the environment the first time Client() is called.
func NewFileSystem(opts ...options.NewFileSystemOption[FileSystem]) *FileSystem {
	fs := &FileSystem{}
	for _, o := range opts {
		o.Apply(fs)
	}
	return fs
}

var errEmptyReference = errors.New("non-empty strings for bucket and path are required")

// NewFile returns the s3 implementation of blobfs.File
func (fs *FileSystem) NewFile(volume, absFilePath string, opts ...options.NewFileOption) (blobfs.File, error) {
	if volume == "" || absFilePath == "" {
		return nil, errEmptyReference
	}

	if err := utils.ValidateAbsoluteFilePath(absFilePath); err != nil {
		return nil, err
	}

	return &File{
		location: &Location{
			fileSystem: fs,
			bucket:     volume,
			path:       utils.EnsureTrailingSlash(path.Dir(absFilePath)),
		},
		name: absFilePath,
		opts: opts,
	}, nil
}

// NewLocation returns the s3 implementation of blobfs.Location
func (fs *FileSystem) NewLocation(volume, absLocPath string) (blobfs.Location, error) {
	if volume == "" || absLocPath == "" {
		return nil, errEmptyReference
	}

	if err := utils.ValidateAbsoluteLocationPath(absLocPath); err != nil {
		return nil, err
	}

	return &Location{
		fileSystem: fs,
		bucket:     volume,
		path:       utils.EnsureTrailingSlash(utils.EnsureLeadingSlash(absLocPath)),
	}, nil
}

// Name returns "AWS S3"
func (fs *FileSystem) Name() string {
	return Name
}

// Scheme returns "s3" as the initial part of the URI i.e. s3://
func (fs *FileSystem) Scheme() string {
	return Scheme
}

// Client returns a Client to perform operations against S3, creating it lazily from the filesystem's options
// (or the environment) on first use.
func (fs *FileSystem) Client() (Client, error) {
	if fs.client == nil {
		if fs.options == nil {
			fs.options = NewOptions()
		}

		client, err := NewClient(fs.options)
		if err != nil {
			return nil, err
		}
		fs.client = client
	}
	return fs.client, nil
}

func init() {
	backend.Register(Scheme, NewFileSystem())
}
