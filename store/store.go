// Package store provides a name-safe storage surface over any blobfs.Location.
//
// A Store normalizes user-supplied file names into safe blob paths, avoids
// collisions with existing blobs by appending a short random token, and exposes
// the handful of operations a web application needs: save, open, existence,
// deletion, size, modification time, signed URLs and listings.
package store

import (
	"errors"
	"io"
	"mime"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/blobfs/blobfs"
	"github.com/blobfs/blobfs/blobname"
	"github.com/blobfs/blobfs/options"
	"github.com/blobfs/blobfs/options/newfile"
	"github.com/blobfs/blobfs/utils"
)

// ErrListNotSupported is returned when the backing location cannot enumerate
// blobs recursively.
const ErrListNotSupported = blobfs.Error("recursive listing is not supported by this backend")

// Store wraps a blobfs.Location with name normalization and collision avoidance.
type Store struct {
	location blobfs.Location
	resolver blobname.Resolver
}

// Option configures a Store.
type Option func(*Store)

// WithMaxNameLength caps normalized blob names.  Zero means the default limit.
func WithMaxNameLength(n int) Option {
	return func(s *Store) {
		s.resolver.MaxLength = n
	}
}

// WithOverwrite disables collision avoidance: saving a name that already exists
// replaces the blob instead of picking an alternative name.
func WithOverwrite() Option {
	return func(s *Store) {
		s.resolver.Overwrite = true
	}
}

// WithTokenFunc replaces the random token generator used for alternative names.
func WithTokenFunc(fn blobname.TokenFunc) Option {
	return func(s *Store) {
		s.resolver.Token = fn
	}
}

// New creates a Store over the given location.
func New(location blobfs.Location, opts ...Option) *Store {
	s := &Store{location: location}
	for _, o := range opts {
		o(s)
	}
	return s
}

// file returns a blobfs.File for the already-normalized name.
func (s *Store) file(name string, opts ...options.NewFileOption) (blobfs.File, error) {
	return s.location.NewFile(name, opts...)
}

// normalize maps a raw name to its safe blob path.
func (s *Store) normalize(name string) (string, error) {
	maxLength := s.resolver.MaxLength
	if maxLength <= 0 {
		maxLength = blobname.DefaultMaxLength
	}
	return blobname.NormalizeWithLimit(name, maxLength)
}

// exists is the existence oracle handed to the resolver.
func (s *Store) exists(name string) (bool, error) {
	f, err := s.file(name)
	if err != nil {
		return false, err
	}
	return f.Exists()
}

// Save writes the content of reader under the given name and returns the name
// actually used.  The name is normalized first; when a blob with the normalized
// name already exists (and overwrite is off) a variant with a short random
// token before the extension is used instead.  The blob's content type is
// guessed from the resolved name's extension.
//
// There is no locking between the existence probe and the write, so a
// concurrent Save of the same name can still end up writing to the same blob.
func (s *Store) Save(name string, reader io.Reader) (string, error) {
	resolved, err := s.resolver.Resolve(name, s.exists)
	if err != nil {
		return "", err
	}

	var opts []options.NewFileOption
	if contentType := mime.TypeByExtension(path.Ext(resolved)); contentType != "" {
		opts = append(opts, newfile.WithContentType(contentType))
	}

	f, err := s.file(resolved, opts...)
	if err != nil {
		return "", err
	}

	if _, err := io.Copy(f, reader); err != nil {
		_ = f.Close()
		return "", utils.WrapWriteError(err)
	}
	if err := f.Close(); err != nil {
		return "", err
	}

	return resolved, nil
}

// Open returns a blobfs.File for reading the named blob.  The caller is
// responsible for closing it.
func (s *Store) Open(name string) (blobfs.File, error) {
	normalized, err := s.normalize(name)
	if err != nil {
		return nil, err
	}
	return s.file(normalized)
}

// Exists reports whether a blob with the given name exists.
func (s *Store) Exists(name string) (bool, error) {
	normalized, err := s.normalize(name)
	if err != nil {
		return false, err
	}
	return s.exists(normalized)
}

// Delete removes the named blob.  Deleting a blob that does not exist is not
// an error.
func (s *Store) Delete(name string) error {
	normalized, err := s.normalize(name)
	if err != nil {
		return err
	}

	f, err := s.file(normalized)
	if err != nil {
		return err
	}

	if err := f.Delete(); err != nil {
		if errors.Is(err, blobfs.ErrNotExist) {
			return nil
		}
		exists, exErr := f.Exists()
		if exErr == nil && !exists {
			return nil
		}
		return err
	}
	return nil
}

// Size returns the size of the named blob in bytes.
func (s *Store) Size(name string) (uint64, error) {
	normalized, err := s.normalize(name)
	if err != nil {
		return 0, err
	}

	f, err := s.file(normalized)
	if err != nil {
		return 0, err
	}
	return f.Size()
}

// LastModified returns the last modified time of the named blob.
func (s *Store) LastModified(name string) (*time.Time, error) {
	normalized, err := s.normalize(name)
	if err != nil {
		return nil, err
	}

	f, err := s.file(normalized)
	if err != nil {
		return nil, err
	}
	return f.LastModified()
}

// URL returns a signed, time-limited URL for the named blob.  The backing
// backend must support URL signing (SAS on azure, presigned GET on s3, signed
// URLs on gs); otherwise blobfs.ErrSignedURLNotSupported is returned.
func (s *Store) URL(name string, validFor time.Duration) (string, error) {
	normalized, err := s.normalize(name)
	if err != nil {
		return "", err
	}

	f, err := s.file(normalized)
	if err != nil {
		return "", err
	}

	signer, ok := f.(blobfs.URLSigner)
	if !ok {
		return "", blobfs.ErrSignedURLNotSupported
	}
	return signer.SignedURL(validFor)
}

// ListAll returns the names of every blob under the given prefix, relative to
// the prefix.  An empty prefix lists the whole location.
func (s *Store) ListAll(prefix string) ([]string, error) {
	loc, err := s.locationFor(prefix)
	if err != nil {
		return nil, err
	}

	lister, ok := loc.(blobfs.AllFileLister)
	if !ok {
		return nil, ErrListNotSupported
	}
	return lister.ListAll()
}

// ListDir returns the immediate subdirectories and files under the given
// prefix, both sorted.  An empty prefix lists the top of the location.
func (s *Store) ListDir(prefix string) (dirs, files []string, err error) {
	names, err := s.ListAll(prefix)
	if err != nil {
		return nil, nil, err
	}

	dirSet := map[string]struct{}{}
	files = []string{}
	for _, name := range names {
		if i := strings.Index(name, "/"); i >= 0 {
			dirSet[name[:i]] = struct{}{}
			continue
		}
		files = append(files, name)
	}

	dirs = make([]string, 0, len(dirSet))
	for dir := range dirSet {
		dirs = append(dirs, dir)
	}
	sort.Strings(dirs)
	sort.Strings(files)
	return dirs, files, nil
}

// Location returns the underlying blobfs.Location.
func (s *Store) Location() blobfs.Location {
	return s.location
}

func (s *Store) locationFor(prefix string) (blobfs.Location, error) {
	if prefix == "" {
		return s.location, nil
	}

	normalized, err := s.normalize(prefix)
	if err != nil {
		return nil, err
	}
	return s.location.NewLocation(utils.EnsureTrailingSlash(normalized))
}
