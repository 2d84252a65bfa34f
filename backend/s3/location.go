package s3

import (
	"path"
	"regexp"

	"github.com/blobfs/blobfs"
	"github.com/blobfs/blobfs/options"
	"github.com/blobfs/blobfs/utils"
)

// Location implements the blobfs.Location interface for AWS S3
type Location struct {
	fileSystem *FileSystem
	bucket     string
	path       string
}

// String returns the location's URI
func (l *Location) String() string {
	return l.URI()
}

// List returns the file names found directly at the location.  Virtual subdirectories are not included.
func (l *Location) List() ([]string, error) {
	return l.ListByPrefix("")
}

// ListByPrefix returns the file names at the location whose names begin with the given prefix
func (l *Location) ListByPrefix(prefix string) ([]string, error) {
	client, err := l.fileSystem.Client()
	if err != nil {
		return nil, utils.WrapListByPrefixError(err)
	}

	list, err := client.List(l, prefix)
	if err != nil {
		if IsNotFound(err) {
			return []string{}, nil
		}
		return nil, utils.WrapListByPrefixError(err)
	}
	return list, nil
}

// ListByRegex returns the file names at the location that match the given regular expression
func (l *Location) ListByRegex(regex *regexp.Regexp) ([]string, error) {
	names, err := l.List()
	if err != nil {
		return nil, utils.WrapListByRegexError(err)
	}

	filtered := []string{}
	for _, name := range names {
		if regex.MatchString(name) {
			filtered = append(filtered, name)
		}
	}
	return filtered, nil
}

// ListAll returns every file name under the location, relative to the location's path, including files in
// virtual subdirectories.
func (l *Location) ListAll() ([]string, error) {
	client, err := l.fileSystem.Client()
	if err != nil {
		return nil, utils.WrapListError(err)
	}

	list, err := client.ListAll(l)
	if err != nil {
		if IsNotFound(err) {
			return []string{}, nil
		}
		return nil, utils.WrapListError(err)
	}
	return list, nil
}

// Volume returns the bucket name
func (l *Location) Volume() string {
	return l.bucket
}

// Path returns the absolute path for the location, with both leading and trailing slashes
func (l *Location) Path() string {
	return l.path
}

// Exists returns true if the location's bucket exists
func (l *Location) Exists() (bool, error) {
	client, err := l.fileSystem.Client()
	if err != nil {
		return false, utils.WrapExistsError(err)
	}

	if _, err := client.Properties(l.bucket, ""); err != nil {
		if IsNotFound(err) {
			return false, nil
		}
		return false, utils.WrapExistsError(err)
	}
	return true, nil
}

// NewLocation creates a new location relative to the current one with the given relative path
func (l *Location) NewLocation(relLocPath string) (blobfs.Location, error) {
	if err := utils.ValidateRelativeLocationPath(relLocPath); err != nil {
		return nil, err
	}

	return &Location{
		fileSystem: l.fileSystem,
		bucket:     l.bucket,
		path:       utils.EnsureTrailingSlash(path.Join(l.path, relLocPath)),
	}, nil
}

// FileSystem returns the s3 FileSystem instance
func (l *Location) FileSystem() blobfs.FileSystem {
	return l.fileSystem
}

// NewFile returns a new file whose path is relative to the current location
func (l *Location) NewFile(relFilePath string, opts ...options.NewFileOption) (blobfs.File, error) {
	if err := utils.ValidateRelativeFilePath(relFilePath); err != nil {
		return nil, err
	}

	return l.fileSystem.NewFile(l.bucket, path.Join(l.path, relFilePath), opts...)
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
