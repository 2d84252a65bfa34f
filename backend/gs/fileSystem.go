package gs

import (
	"context"
	"errors"
	"path"

	"cloud.google.com/go/storage"

	"github.com/blobfs/blobfs"
	"github.com/blobfs/blobfs/backend"
	"github.com/blobfs/blobfs/options"
	"github.com/blobfs/blobfs/utils"
)

// Scheme defines the scheme used in the URI for Google Cloud Storage.
const Scheme = "gs"

// Name defines the name for the gs implementation
const Name = "Google Cloud Storage"

// FileSystem implements the blobfs.FileSystem interface for Google Cloud Storage
type FileSystem struct {
	client  *storage.Client
	ctx     context.Context
	options *Options
}

// NewFileSystem creates a new FileSystem.  The optional functional options wire in an explicit storage client
// (handy for testing against fake-gcs-server) or an Options struct.
func NewFileSystem(opts ...options.NewFileSystemOption[FileSystem]) *FileSystem {
	fs := &FileSystem{ctx: context.Background()}
	for _, o := range opts {
		o.Apply(fs)
	}
	return fs
}

var errEmptyReference = errors.New("non-empty strings for bucket and path are required")

// NewFile returns the gs implementation of blobfs.File
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

// NewLocation returns the gs implementation of blobfs.Location
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

// Name returns "Google Cloud Storage"
func (fs *FileSystem) Name() string {
	return Name
}

// Scheme returns "gs" as the initial part of the URI i.e. gs://
func (fs *FileSystem) Scheme() string {
	return Scheme
}

// Client returns the underlying google storage client, creating it lazily if necessary.
// See the package Overview for authentication resolution.
func (fs *FileSystem) Client() (*storage.Client, error) {
	if fs.client == nil {
		client, err := storage.NewClient(fs.ctx, fs.options.clientOptions()...)
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
