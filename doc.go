/*
Package blobfs provides a platform-independent, generalized set of file storage functionality
across a number of storage types such as Azure Blob Storage, S3, GCS, the local disk, and an
in-memory store.

The blobfs interfaces are self-contained handles: a File or Location struct can be passed around
like a file or directory handle, may represent an existing or nonexistent object, and exposes
only functionality common to every backend so that calling code stays agnostic of the underlying
storage.  Files implement io.Reader, io.Writer, io.Seeker, and io.Closer directly, and native
server-side operations (like blob-to-blob copy within an account) are preferred where the
backend supports them.

# Usage

The simple package is the easiest way to initialize files and locations from complete URIs (see
each backend's docs for authentication):

	azFile, err := simple.NewFile("az://container/prefix/file.txt")
	s3File, err := simple.NewFile("s3://bucket/prefix/file.txt")
	osLocation, err := simple.NewLocation("file:///tmp/")

Locations act as prefix handles for listing and relative addressing:

	files, err := osLocation.List()
	subLoc, err := osLocation.NewLocation("subdir/")

The store package layers name normalization and collision-safe saves on top of a Location.

# Third-party backends

Backend implementations register themselves with the backend package on import.  To add a
custom backend, implement the FileSystem, Location, and File interfaces and call
backend.Register in an init function.  The backend/all package imports every built-in backend
for convenience.

# See also

  - [github.com/blobfs/blobfs/simple]
  - [github.com/blobfs/blobfs/store]
  - [github.com/blobfs/blobfs/backend]
*/
package blobfs
