/*
Package azure Microsoft Azure Blob Storage blobfs implementation

# Usage

Rely on github.com/blobfs/blobfs/backend

	import(
	    "github.com/blobfs/blobfs/backend"
	    "github.com/blobfs/blobfs/backend/azure"
	)

	func UseFs() error {
	    fs := backend.Backend(azure.Scheme)
	    ...
	}

Or call directly:

	import "github.com/blobfs/blobfs/backend/azure"

	func DoSomething() {
	    fs := azure.NewFileSystem()
	    ...
	}

azure can be augmented with the following functional options:

	func DoSomething() {

	    // to pass in account options
	    fs := azure.NewFileSystem(
	        azure.WithOptions(
	            azure.Options{
	                AccountName: "...",
	                AccountKey:  "...",
	            },
	        ),
	    )

	    // to pass a specific client, for instance a mock client
	    fs = azure.NewFileSystem(azure.WithClient(&azure.MockAzureClient{}))
	}

# Authentication

Authentication, by default, occurs automatically when Client() is called.  It looks for credentials in the
following places, preferring the first location found:

 1. The env vars BLOBFS_AZURE_STORAGE_ACCOUNT and BLOBFS_AZURE_STORAGE_ACCESS_KEY (shared key)
 2. The env vars BLOBFS_AZURE_TENANT_ID, BLOBFS_AZURE_CLIENT_ID and BLOBFS_AZURE_CLIENT_SECRET (service principal)
 3. The azidentity default credential chain (environment, managed identity, Azure CLI)

The env var BLOBFS_AZURE_SERVICE_URL overrides the storage endpoint, which is how Azurite is targeted.
*/
package azure
