package os

import (
	"errors"
	"path"

	"github.com/mitchellh/go-homedir"

	"github.com/blobfs/blobfs"
	"github.com/blobfs/blobfs/backend"
	"github.com/blobfs/blobfs/options"
	"github.com/blobfs/blobfs/utils"
)

// Scheme defines the scheme used in the URI for the local filesystem.
const Scheme = "file"

// Name defines the name for the os implementation
const Name = "os"

// FileSystem implements the blobfs.FileSystem interface for the local filesystem.
type FileSystem struct{}

// NewFileSystem creates a new FileSystem.
func NewFileSystem(opts ...options.NewFileSystemOption[FileSystem]) *FileSystem {
	fs := &FileSystem{}
	for _, o := range opts {
		o.Apply(fs)
	}
	return fs
}

// NewFile returns the os implementation of blobfs.File.  The volume is ignored on non-Windows platforms.
// A leading tilde is expanded to the current user's home directory.
func (fs *FileSystem) NewFile(volume, absFilePath string, opts ...options.NewFileOption) (blobfs.File, error) {
	if absFilePath == "" {
		return nil, errors.New("non-empty string for path is required")
	}

	expanded, err := homedir.Expand(absFilePath)
	if err != nil {
		return nil, err
	}

	if err := utils.ValidateAbsoluteFilePath(expanded); err != nil {
		return nil, err
	}

	return &File{
		location: &Location{
			fileSystem: fs,
			volume:     volume,
			name:       utils.EnsureTrailingSlash(path.Dir(expanded)),
		},
		name: expanded,
		opts: opts,
	}, nil
}

// NewLocation returns the os implementation of blobfs.Location.  A leading tilde is expanded to the current
// user's home directory.
func (fs *FileSystem) NewLocation(volume, absLocPath string) (blobfs.Location, error) {
	if absLocPath == "" {
		return nil, errors.New("non-empty string for path is required")
	}

	expanded, err := homedir.Expand(absLocPath)
	if err != nil {
		return nil, err
	}

	if err := utils.ValidateAbsoluteLocationPath(expanded); err != nil {
		return nil, err
	}

	return &Location{
		fileSystem: fs,
		volume:     volume,
		name:       utils.EnsureTrailingSlash(utils.EnsureLeadingSlash(expanded)),
	}, nil
}

// Name returns "os"
func (fs *FileSystem) Name() string {
	return Name
}

// Scheme returns "file" as the initial part of the URI i.e. file://
func (fs *FileSystem) Scheme() string {
	return Scheme
}

func init() {
	backend.Register(Scheme, NewFileSystem())
}
