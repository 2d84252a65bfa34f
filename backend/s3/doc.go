/*
Package s3 AWS S3 blobfs implementation

# Usage

Rely on github.com/blobfs/blobfs/backend

	import(
	    "github.com/blobfs/blobfs/backend"
	    "github.com/blobfs/blobfs/backend/s3"
	)

	func UseFs() error {
	    fs := backend.Backend(s3.Scheme)
	    ...
	}

Or call directly:

	import "github.com/blobfs/blobfs/backend/s3"

	func DoSomething() {
	    fs := s3.NewFileSystem(
	        s3.WithOptions(
	            s3.Options{
	                Region: "us-west-2",
	            },
	        ),
	    )
	    ...
	}

# Authentication

Authentication, by default, occurs automatically when Client() is called.  Static credentials are read from
the env vars BLOBFS_S3_ACCESS_KEY_ID and BLOBFS_S3_SECRET_ACCESS_KEY when set; otherwise the standard AWS
credential chain applies (env, shared config, IAM role).  The env var BLOBFS_S3_ENDPOINT overrides the
endpoint, which is how MinIO and localstack are targeted.
*/
package s3
