/*
Package mem built-in in-memory backend. Useful for tests that need a deterministic, dependency-free
stand-in for a blob store.

# Usage

Rely on github.com/blobfs/blobfs/backend:

	import (
	    "github.com/blobfs/blobfs/backend"
	    "github.com/blobfs/blobfs/backend/mem"
	)

	func UseFs() error {
	    fs := backend.Backend(mem.Scheme)
	    ...
	}

Or call directly:

	import "github.com/blobfs/blobfs/backend/mem"

	func DoSomething() {
	    fs := mem.NewFileSystem()
	    ...
	}
*/
package mem
