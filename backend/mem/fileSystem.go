package mem

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/blobfs/blobfs"
	"github.com/blobfs/blobfs/backend"
	"github.com/blobfs/blobfs/options"
	"github.com/blobfs/blobfs/utils"
)

// Scheme defines the filesystem type.
const Scheme = "mem"
const name = "In-Memory Filesystem"

// memObject is a stored blob. A copy of the contents is kept, never a live buffer,
// so open files can't mutate committed state.
type memObject struct {
	contents     []byte
	lastModified time.Time
}

// FileSystem implements blobfs.FileSystem for an in-memory filesystem. It is safe for
// concurrent use. Its primary role is to act as a deterministic stand-in for a cloud
// blob store in tests.
type FileSystem struct {
	mu    sync.RWMutex
	fsMap map[string]map[string]*memObject // volume -> absolute file path -> object
}

// NewFileSystem initializer for FileSystem struct.
func NewFileSystem(opts ...options.NewFileSystemOption[FileSystem]) *FileSystem {
	fs := &FileSystem{
		fsMap: make(map[string]map[string]*memObject),
	}

	for _, opt := range opts {
		opt.Apply(fs)
	}

	return fs
}

// NewFile function returns the mem implementation of blobfs.File.
func (fs *FileSystem) NewFile(volume, absFilePath string, opts ...options.NewFileOption) (blobfs.File, error) {
	if err := utils.ValidateAbsoluteFilePath(absFilePath); err != nil {
		return nil, err
	}

	return &File{
		fileSystem: fs,
		volume:     volume,
		name:       absFilePath,
		opts:       opts,
	}, nil
}

// NewLocation function returns the mem implementation of blobfs.Location.
func (fs *FileSystem) NewLocation(volume, absLocPath string) (blobfs.Location, error) {
	if err := utils.ValidateAbsoluteLocationPath(absLocPath); err != nil {
		return nil, err
	}

	return &Location{
		fileSystem: fs,
		volume:     volume,
		name:       absLocPath,
	}, nil
}

// Name returns "In-Memory Filesystem"
func (fs *FileSystem) Name() string {
	return name
}

// Scheme returns "mem"
func (fs *FileSystem) Scheme() string {
	return Scheme
}

func (fs *FileSystem) lookup(volume, name string) ([]byte, time.Time, bool) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	obj, ok := fs.fsMap[volume][name]
	if !ok {
		return nil, time.Time{}, false
	}
	contents := make([]byte, len(obj.contents))
	copy(contents, obj.contents)
	return contents, obj.lastModified, true
}

func (fs *FileSystem) store(volume, name string, contents []byte) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	if fs.fsMap[volume] == nil {
		fs.fsMap[volume] = make(map[string]*memObject)
	}
	stored := make([]byte, len(contents))
	copy(stored, contents)
	fs.fsMap[volume][name] = &memObject{contents: stored, lastModified: time.Now()}
}

func (fs *FileSystem) remove(volume, name string) bool {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	if _, ok := fs.fsMap[volume][name]; !ok {
		return false
	}
	delete(fs.fsMap[volume], name)
	return true
}

// keysWithPrefix returns the sorted absolute paths on volume that begin with prefix.
func (fs *FileSystem) keysWithPrefix(volume, prefix string) []string {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	var keys []string
	for k := range fs.fsMap[volume] {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}

func init() {
	backend.Register(Scheme, NewFileSystem())
}
