// Package all imports all blobfs backend implementations, registering each with the backend registry.
package all

import (
	_ "github.com/blobfs/blobfs/backend/azure" // register azure backend
	_ "github.com/blobfs/blobfs/backend/gs"    // register gs backend
	_ "github.com/blobfs/blobfs/backend/mem"   // register mem backend
	_ "github.com/blobfs/blobfs/backend/os"    // register os backend
	_ "github.com/blobfs/blobfs/backend/s3"    // register s3 backend
)
