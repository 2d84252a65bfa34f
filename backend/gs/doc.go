/*
Package gs Google Cloud Storage blobfs implementation

# Usage

Rely on github.com/blobfs/blobfs/backend

	import(
	    "github.com/blobfs/blobfs/backend"
	    "github.com/blobfs/blobfs/backend/gs"
	)

	func UseFs() error {
	    fs := backend.Backend(gs.Scheme)
	    ...
	}

Or call directly:

	import "github.com/blobfs/blobfs/backend/gs"

	func DoSomething() {
	    fs := gs.NewFileSystem()
	    ...
	}

# Authentication

Authentication, by default, occurs automatically when Client() is called using Application Default
Credentials.  An API key, credentials file, endpoint or scopes can be set explicitly:

	fs := gs.NewFileSystem(
	    gs.WithOptions(gs.Options{CredentialFile: "/path/to/creds.json"}),
	)

A fully constructed *storage.Client (for instance from fake-gcs-server) can be injected with gs.WithClient.
*/
package gs
