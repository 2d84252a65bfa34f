package azure

import (
	"io"
	"time"

	"github.com/blobfs/blobfs"
)

// MockAzureClient is a mock implementation of azure.Client.
type MockAzureClient struct {
	PropertiesError     error
	PropertiesResult    *BlobProperties
	SignedURLResult     string
	ExpectedError       error
	ExpectedResult      interface{}
	UploadedContent     []byte
	UploadedContentType string
	Deleted             []string
}

// Properties returns PropertiesResult if it exists, otherwise it will return the value of PropertiesError
func (a *MockAzureClient) Properties(containerName, filePath string) (*BlobProperties, error) {
	if a.PropertiesResult == nil {
		return nil, a.PropertiesError
	}
	return a.PropertiesResult, a.PropertiesError
}

// SetMetadata returns the value of ExpectedError
func (a *MockAzureClient) SetMetadata(file blobfs.File, metadata map[string]*string) error {
	return a.ExpectedError
}

// Upload records the uploaded content and content type, and returns the value of ExpectedError
func (a *MockAzureClient) Upload(file blobfs.File, content io.ReadSeeker, contentType string) error {
	if a.ExpectedError != nil {
		return a.ExpectedError
	}
	b, err := io.ReadAll(content)
	if err != nil {
		return err
	}
	a.UploadedContent = b
	a.UploadedContentType = contentType
	return nil
}

// Download returns ExpectedResult if it exists, otherwise it returns ExpectedError
func (a *MockAzureClient) Download(file blobfs.File) (io.ReadCloser, error) {
	if a.ExpectedResult != nil {
		return a.ExpectedResult.(io.ReadCloser), nil
	}
	return nil, a.ExpectedError
}

// Copy returns the value of ExpectedError
func (a *MockAzureClient) Copy(srcFile, tgtFile blobfs.File) error {
	return a.ExpectedError
}

// List returns the value of ExpectedResult if it exists, otherwise it returns ExpectedError.
func (a *MockAzureClient) List(l blobfs.Location, prefix string) ([]string, error) {
	if a.ExpectedResult != nil {
		return a.ExpectedResult.([]string), nil
	}
	return nil, a.ExpectedError
}

// ListAll returns the value of ExpectedResult if it exists, otherwise it returns ExpectedError.
func (a *MockAzureClient) ListAll(l blobfs.Location) ([]string, error) {
	if a.ExpectedResult != nil {
		return a.ExpectedResult.([]string), nil
	}
	return nil, a.ExpectedError
}

// Delete records the deleted path and returns the value of ExpectedError
func (a *MockAzureClient) Delete(file blobfs.File) error {
	if a.ExpectedError != nil {
		return a.ExpectedError
	}
	a.Deleted = append(a.Deleted, file.Path())
	return nil
}

// DeleteAllVersions returns the value of ExpectedError
func (a *MockAzureClient) DeleteAllVersions(file blobfs.File) error {
	return a.ExpectedError
}

// SignedURL returns SignedURLResult if it is set, otherwise it returns ExpectedError
func (a *MockAzureClient) SignedURL(file blobfs.File, validFor time.Duration) (string, error) {
	if a.SignedURLResult != "" {
		return a.SignedURLResult, nil
	}
	return "", a.ExpectedError
}
