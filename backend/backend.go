package backend

import (
	"sort"
	"sync"

	"github.com/blobfs/blobfs"
)

var mmu sync.RWMutex
var m map[string]blobfs.FileSystem

// Register a new filesystem in backend map
func Register(name string, v blobfs.FileSystem) {
	mmu.Lock()
	defer mmu.Unlock()
	if m == nil {
		m = make(map[string]blobfs.FileSystem)
	}
	m[name] = v
}

// Unregister unregisters a filesystem from backend map
func Unregister(name string) {
	mmu.Lock()
	defer mmu.Unlock()
	delete(m, name)
}

// UnregisterAll unregisters all filesystems from backend map
func UnregisterAll() {
	// mainly for tests
	mmu.Lock()
	defer mmu.Unlock()
	m = make(map[string]blobfs.FileSystem)
}

// Backend returns the backend filesystem by name
func Backend(name string) blobfs.FileSystem {
	mmu.RLock()
	defer mmu.RUnlock()
	return m[name]
}

// RegisteredBackends returns an array of backend names
func RegisteredBackends() []string {
	mmu.RLock()
	defer mmu.RUnlock()
	var f []string
	for k := range m {
		f = append(f, k)
	}
	sort.Strings(f)
	return f
}
