/*
Package os built-in local filesystem blobfs implementation

# Usage

Rely on github.com/blobfs/blobfs/backend

	import(
	    "github.com/blobfs/blobfs/backend"
	    _ "github.com/blobfs/blobfs/backend/os"
	)

	func UseFs() error {
	    fs := backend.Backend("file")
	    ...
	}

Paths beginning with a tilde are expanded to the current user's home directory.  The volume argument is
ignored on non-Windows platforms.
*/
package os
