/*
Package backend provides a means of allowing backend filesystems to self-register on load via an init() call to
backend.Register("some name", blobfs.FileSystem).

In this way, a caller of blobfs backends can simply load the backend filesystem (and ONLY those needed) and begin
using it:

	package main

	// import backend and each backend you intend to use
	import (
	    "github.com/blobfs/blobfs/backend"
	    "github.com/blobfs/blobfs/backend/azure"
	    "github.com/blobfs/blobfs/backend/os"
	)

	func main() {
	    osfile, err := backend.Backend(os.Scheme).NewFile("", "/path/to/file.txt")
	    if err != nil {
	        panic(err)
	    }

	    azfile, err := backend.Backend(azure.Scheme).NewFile("mycontainer", "/some/file.txt")
	    if err != nil {
	        panic(err)
	    }

	    if err := osfile.CopyToFile(azfile); err != nil {
	        panic(err)
	    }
	}

To create your own backend, create a package that implements the interfaces: blobfs.FileSystem, blobfs.Location,
and blobfs.File, then ensure it registers itself on load:

	func init() {
	    backend.Register("exfs", &MyExoticFileSystem{})
	}
*/
package backend
