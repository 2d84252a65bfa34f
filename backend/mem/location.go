package mem

import (
	"path"
	"regexp"
	"strings"

	"github.com/blobfs/blobfs"
	"github.com/blobfs/blobfs/options"
	"github.com/blobfs/blobfs/utils"
)

// Location implements the blobfs.Location interface for the mem filesystem.
type Location struct {
	fileSystem *FileSystem
	volume     string
	name       string // absolute path with leading and trailing slashes
}

// String implements io.Stringer by returning the location's URI as a string
func (l *Location) String() string {
	return l.URI()
}

// List returns the base names of the files found directly at the Location.
func (l *Location) List() ([]string, error) {
	return l.ListByPrefix("")
}

// ListByPrefix returns the base names of the files found at the Location whose filenames
// match the given prefix. The prefix may span subdirectories, ie "some/path/filePre".
func (l *Location) ListByPrefix(prefix string) ([]string, error) {
	fullPrefix := l.name + prefix
	list := make([]string, 0)
	for _, key := range l.fileSystem.keysWithPrefix(l.volume, fullPrefix) {
		if strings.Contains(key[len(fullPrefix):], "/") {
			// deeper than the prefix's directory; not an immediate match
			continue
		}
		list = append(list, path.Base(key))
	}
	return list, nil
}

// ListByRegex returns the base names of the files found directly at the Location that
// matched the given regular expression.
func (l *Location) ListByRegex(regex *regexp.Regexp) ([]string, error) {
	names, err := l.List()
	if err != nil {
		return nil, err
	}
	list := make([]string, 0)
	for _, name := range names {
		if regex.MatchString(name) {
			list = append(list, name)
		}
	}
	return list, nil
}

// ListAll returns the relative paths of every file under the location's path tree.
func (l *Location) ListAll() ([]string, error) {
	keys := l.fileSystem.keysWithPrefix(l.volume, l.name)
	list := make([]string, 0, len(keys))
	for _, key := range keys {
		list = append(list, key[len(l.name):])
	}
	return list, nil
}

// Volume returns the volume the location resides on.
func (l *Location) Volume() string {
	return l.volume
}

// Path returns the absolute path with leading and trailing slashes.
func (l *Location) Path() string {
	return l.name
}

// Exists returns true if the location holds at least one file. The root location
// always exists.
func (l *Location) Exists() (bool, error) {
	if l.name == "/" {
		return true, nil
	}
	return len(l.fileSystem.keysWithPrefix(l.volume, l.name)) > 0, nil
}

// NewLocation creates a new location instance relative to the current one.
func (l *Location) NewLocation(relLocPath string) (blobfs.Location, error) {
	if err := utils.ValidateRelativeLocationPath(relLocPath); err != nil {
		return nil, err
	}

	return l.fileSystem.NewLocation(l.volume, utils.EnsureTrailingSlash(path.Join(l.name, relLocPath)))
}

// FileSystem returns the underlying blobfs.FileSystem for the Location.
func (l *Location) FileSystem() blobfs.FileSystem {
	return l.fileSystem
}

// NewFile returns a new file instance at the given relative file path.
func (l *Location) NewFile(relFilePath string, opts ...options.NewFileOption) (blobfs.File, error) {
	if err := utils.ValidateRelativeFilePath(relFilePath); err != nil {
		return nil, err
	}

	return l.fileSystem.NewFile(l.volume, path.Join(l.name, relFilePath), opts...)
}

// DeleteFile deletes the file of the given name at the location.
func (l *Location) DeleteFile(relFilePath string, opts ...options.DeleteOption) error {
	f, err := l.NewFile(relFilePath)
	if err != nil {
		return err
	}
	return f.Delete(opts...)
}

// URI returns the fully qualified absolute URI for the Location.
func (l *Location) URI() string {
	return utils.GetLocationURI(l)
}
