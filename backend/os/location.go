package os

import (
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/blobfs/blobfs"
	"github.com/blobfs/blobfs/options"
	"github.com/blobfs/blobfs/utils"
)

// Location implements the blobfs.Location interface for the local filesystem.
type Location struct {
	fileSystem *FileSystem
	volume     string
	name       string
}

// String returns the location's URI
func (l *Location) String() string {
	return l.URI()
}

type fileTest func(fileName string) bool

// List returns the file names found directly at the location.  Subdirectories are not included.
func (l *Location) List() ([]string, error) {
	return l.fileList(func(string) bool { return true })
}

// ListByPrefix returns the file names at the location whose names begin with the given prefix
func (l *Location) ListByPrefix(prefix string) ([]string, error) {
	return l.fileList(func(name string) bool {
		return strings.HasPrefix(name, prefix)
	})
}

// ListByRegex returns the file names at the location that match the given regular expression
func (l *Location) ListByRegex(regex *regexp.Regexp) ([]string, error) {
	return l.fileList(func(name string) bool {
		return regex.MatchString(name)
	})
}

// fileList returns an empty slice if the directory doesn't exist.  This matches the behavior of the remote
// backends, where an unwritten prefix simply has no blobs.
func (l *Location) fileList(testEval fileTest) ([]string, error) {
	files := []string{}
	exists, err := l.Exists()
	if err != nil {
		return files, utils.WrapListError(err)
	}
	if !exists {
		return files, nil
	}

	entries, err := os.ReadDir(l.Path())
	if err != nil {
		return files, utils.WrapListError(err)
	}

	for _, entry := range entries {
		if !entry.IsDir() && testEval(entry.Name()) {
			files = append(files, entry.Name())
		}
	}
	return files, nil
}

// ListAll returns every file name under the location, relative to the location's path, including files in
// subdirectories.
func (l *Location) ListAll() ([]string, error) {
	files := []string{}
	exists, err := l.Exists()
	if err != nil {
		return files, utils.WrapListError(err)
	}
	if !exists {
		return files, nil
	}

	root := l.Path()
	err = filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, utils.WrapListError(err)
	}
	return files, nil
}

// Volume returns the volume, if any, of the location.  On non-Windows platforms this is an empty string.
func (l *Location) Volume() string {
	return l.volume
}

// Path returns the location path with leading and trailing slashes.
func (l *Location) Path() string {
	return utils.EnsureLeadingSlash(utils.EnsureTrailingSlash(l.name))
}

// Exists returns true if the location exists and the calling user has the appropriate permissions.
func (l *Location) Exists() (bool, error) {
	info, err := os.Stat(l.Path())
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, utils.WrapExistsError(err)
	}
	return info.IsDir(), nil
}

// NewLocation creates a new location relative to the current one with the given relative path
func (l *Location) NewLocation(relLocPath string) (blobfs.Location, error) {
	if err := utils.ValidateRelativeLocationPath(relLocPath); err != nil {
		return nil, err
	}

	return &Location{
		fileSystem: l.fileSystem,
		volume:     l.volume,
		name:       utils.EnsureTrailingSlash(path.Join(l.name, relLocPath)),
	}, nil
}

// FileSystem returns the os FileSystem instance
func (l *Location) FileSystem() blobfs.FileSystem {
	return l.fileSystem
}

// NewFile returns a new file whose path is relative to the current location
func (l *Location) NewFile(relFilePath string, opts ...options.NewFileOption) (blobfs.File, error) {
	if err := utils.ValidateRelativeFilePath(relFilePath); err != nil {
		return nil, err
	}

	return l.fileSystem.NewFile(l.volume, path.Join(l.name, relFilePath), opts...)
}

// DeleteFile deletes the file at the given path relative to the current location
func (l *Location) DeleteFile(relFilePath string, opts ...options.DeleteOption) error {
	file, err := l.NewFile(relFilePath)
	if err != nil {
		return utils.WrapDeleteError(err)
	}
	return file.Delete(opts...)
}

// URI returns the location's URI as a string
func (l *Location) URI() string {
	return utils.GetLocationURI(l)
}
