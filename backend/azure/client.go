package azure

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/streaming"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/blob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/blockblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/container"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/sas"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/service"

	"github.com/blobfs/blobfs"
	"github.com/blobfs/blobfs/utils"
)

// The Client interface contains methods that perform specific operations to Azure Blob Storage.  This interface is
// here so we can write mocks over the actual functionality.
type Client interface {
	Properties(containerName, filePath string) (*BlobProperties, error)
	SetMetadata(file blobfs.File, metadata map[string]*string) error
	Upload(file blobfs.File, content io.ReadSeeker, contentType string) error
	Download(file blobfs.File) (io.ReadCloser, error)
	Copy(srcFile, tgtFile blobfs.File) error
	List(l blobfs.Location, prefix string) ([]string, error)
	ListAll(l blobfs.Location) ([]string, error)
	Delete(file blobfs.File) error
	DeleteAllVersions(file blobfs.File) error
	SignedURL(file blobfs.File, validFor time.Duration) (string, error)
}

// DefaultClient is the main implementation that actually makes the calls to Azure Blob Storage
type DefaultClient struct {
	serviceClient *service.Client
}

// NewClient initializes a new DefaultClient using the credentials found in the given Options.
func NewClient(options *Options) (*DefaultClient, error) {
	svc, err := options.serviceClient()
	if err != nil {
		return nil, err
	}
	return &DefaultClient{serviceClient: svc}, nil
}

func (a *DefaultClient) containerClient(containerName string) *container.Client {
	return a.serviceClient.NewContainerClient(containerName)
}

func (a *DefaultClient) blobClient(containerName, filePath string) *blob.Client {
	return a.containerClient(containerName).NewBlobClient(utils.RemoveLeadingSlash(filePath))
}

// Properties fetches the properties for the blob specified by the parameters containerName and filePath.  When
// filePath is empty only the existence of the container is checked.
func (a *DefaultClient) Properties(containerName, filePath string) (*BlobProperties, error) {
	if filePath == "" {
		// this is only used to check for the existence of a container so we don't care about
		// anything but the error
		_, err := a.containerClient(containerName).GetProperties(context.Background(), nil)
		if err != nil {
			return nil, err
		}
		return nil, nil
	}

	resp, err := a.blobClient(containerName, filePath).GetProperties(context.Background(), nil)
	if err != nil {
		return nil, err
	}
	return NewBlobProperties(resp), nil
}

// SetMetadata sets the given metadata for the blob
func (a *DefaultClient) SetMetadata(file blobfs.File, metadata map[string]*string) error {
	_, err := a.blobClient(file.Location().Volume(), file.Path()).SetMetadata(context.Background(), metadata, nil)
	return err
}

// Upload uploads a new file to Azure Blob Storage
func (a *DefaultClient) Upload(file blobfs.File, content io.ReadSeeker, contentType string) error {
	blockBlobClient := a.containerClient(file.Location().Volume()).
		NewBlockBlobClient(utils.RemoveLeadingSlash(file.Path()))

	var opts *blockblob.UploadOptions
	if contentType != "" {
		opts = &blockblob.UploadOptions{
			HTTPHeaders: &blob.HTTPHeaders{BlobContentType: &contentType},
		}
	}

	_, err := blockBlobClient.Upload(context.Background(), streaming.NopCloser(content), opts)
	return err
}

// Download returns an io.ReadCloser for the given blobfs.File
func (a *DefaultClient) Download(file blobfs.File) (io.ReadCloser, error) {
	resp, err := a.blobClient(file.Location().Volume(), file.Path()).DownloadStream(context.Background(), nil)
	if err != nil {
		return nil, err
	}
	return resp.Body, nil
}

// Copy copies srcFile to the destination tgtFile within Azure Blob Storage.  Note that in the case where we get
// encoded spaces in the file name (i.e. %20) the '%' must be encoded or the copy command will return a not found
// error.
func (a *DefaultClient) Copy(srcFile, tgtFile blobfs.File) error {
	// Can't use url.PathEscape here since that will escape everything (even the directory separators)
	srcURL := utils.EnsureTrailingSlash(a.serviceClient.URL()) +
		srcFile.Location().Volume() +
		strings.ReplaceAll(srcFile.Path(), "%", "%25")

	tgtBlob := a.blobClient(tgtFile.Location().Volume(), tgtFile.Path())
	ctx := context.Background()
	if _, err := tgtBlob.StartCopyFromURL(ctx, srcURL, nil); err != nil {
		return err
	}

	for {
		props, err := tgtBlob.GetProperties(ctx, nil)
		if err != nil {
			return err
		}
		if props.CopyStatus == nil || *props.CopyStatus != blob.CopyStatusTypePending {
			if props.CopyStatus != nil && *props.CopyStatus != blob.CopyStatusTypeSuccess {
				return fmt.Errorf("copy failed with status %q", *props.CopyStatus)
			}
			return nil
		}
		time.Sleep(500 * time.Millisecond)
	}
}

// List returns the blob names directly under the given location, relative to the location's path.  The given
// prefix narrows the listing to names beginning with it.  Virtual directories are skipped.
func (a *DefaultClient) List(l blobfs.Location, prefix string) ([]string, error) {
	fullPrefix := utils.RemoveLeadingSlash(l.Path()) + prefix
	pager := a.containerClient(l.Volume()).NewListBlobsHierarchyPager("/", &container.ListBlobsHierarchyOptions{
		Prefix: &fullPrefix,
	})

	var list []string
	ctx := context.Background()
	for pager.More() {
		resp, err := pager.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, item := range resp.Segment.BlobItems {
			if item.Name == nil {
				continue
			}
			list = append(list, strings.TrimPrefix(*item.Name, utils.RemoveLeadingSlash(l.Path())))
		}
	}
	return list, nil
}

// ListAll returns every blob name under the given location, relative to the location's path, including blobs in
// virtual subdirectories.
func (a *DefaultClient) ListAll(l blobfs.Location) ([]string, error) {
	fullPrefix := utils.RemoveLeadingSlash(l.Path())
	pager := a.containerClient(l.Volume()).NewListBlobsFlatPager(&container.ListBlobsFlatOptions{
		Prefix: &fullPrefix,
	})

	var list []string
	ctx := context.Background()
	for pager.More() {
		resp, err := pager.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, item := range resp.Segment.BlobItems {
			if item.Name == nil {
				continue
			}
			list = append(list, strings.TrimPrefix(*item.Name, fullPrefix))
		}
	}
	return list, nil
}

// Delete deletes the given file from Azure Blob Storage.
func (a *DefaultClient) Delete(file blobfs.File) error {
	_, err := a.blobClient(file.Location().Volume(), file.Path()).Delete(context.Background(), nil)
	return err
}

// DeleteAllVersions lists the non-current versions of the given file and deletes each one.  The current version
// is left alone so Delete remains responsible for it.
func (a *DefaultClient) DeleteAllVersions(file blobfs.File) error {
	key := utils.RemoveLeadingSlash(file.Path())
	pager := a.containerClient(file.Location().Volume()).NewListBlobsFlatPager(&container.ListBlobsFlatOptions{
		Prefix:  &key,
		Include: container.ListBlobsInclude{Versions: true},
	})

	ctx := context.Background()
	for pager.More() {
		resp, err := pager.NextPage(ctx)
		if err != nil {
			return err
		}
		for _, item := range resp.Segment.BlobItems {
			if item.Name == nil || *item.Name != key || item.VersionID == nil {
				continue
			}
			if item.IsCurrentVersion != nil && *item.IsCurrentVersion {
				continue
			}
			versionClient, err := a.blobClient(file.Location().Volume(), file.Path()).WithVersionID(*item.VersionID)
			if err != nil {
				return err
			}
			if _, err := versionClient.Delete(ctx, nil); err != nil {
				return err
			}
		}
	}
	return nil
}

// SignedURL returns a read-only SAS URL for the given file that expires after validFor.  The underlying service
// client must have been built with shared key credentials.
func (a *DefaultClient) SignedURL(file blobfs.File, validFor time.Duration) (string, error) {
	expiry := time.Now().UTC().Add(validFor)
	return a.blobClient(file.Location().Volume(), file.Path()).
		GetSASURL(sas.BlobPermissions{Read: true}, expiry, nil)
}
