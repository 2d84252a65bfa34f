// Package delete consists of custom delete options.
//
// Currently we have the AllVersions option that can be used to remove all the versions of a file upon delete.
// This is supported for all filesystems that have file versioning (e.g. Azure Blob Storage, S3, GS).
package delete

import "github.com/blobfs/blobfs/options"

const optionNameDeleteAllVersions = "deleteAllVersions"

// WithAllVersions returns AllVersions implementation of DeleteOption
func WithAllVersions() options.DeleteOption {
	return AllVersions{}
}

// AllVersions represents the DeleteOption that is used to remove all versions of files when deleted.
// This will remove all versions of files for the filesystems that support file versioning.
type AllVersions struct{}

// DeleteOptionName returns the name of AllVersions option
func (w AllVersions) DeleteOptionName() string {
	return optionNameDeleteAllVersions
}
