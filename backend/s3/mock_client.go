package s3

import (
	"io"
	"time"

	"github.com/blobfs/blobfs"
)

// MockS3Client is a mock implementation of s3.Client.
type MockS3Client struct {
	PropertiesError  error
	PropertiesResult *ObjectProperties
	SignedURLResult  string
	ExpectedError    error
	ExpectedResult   interface{}
	UploadedContent  []byte
	Deleted          []string
}

// Properties returns PropertiesResult if it exists, otherwise it will return the value of PropertiesError
func (c *MockS3Client) Properties(bucket, key string) (*ObjectProperties, error) {
	if c.PropertiesResult == nil {
		return nil, c.PropertiesError
	}
	return c.PropertiesResult, c.PropertiesError
}

// Upload records the uploaded content and returns the value of ExpectedError
func (c *MockS3Client) Upload(file blobfs.File, content io.Reader, contentType string) error {
	if c.ExpectedError != nil {
		return c.ExpectedError
	}
	b, err := io.ReadAll(content)
	if err != nil {
		return err
	}
	c.UploadedContent = b
	return nil
}

// Download returns ExpectedResult if it exists, otherwise it returns ExpectedError
func (c *MockS3Client) Download(file blobfs.File) (io.ReadCloser, error) {
	if c.ExpectedResult != nil {
		return c.ExpectedResult.(io.ReadCloser), nil
	}
	return nil, c.ExpectedError
}

// Copy returns the value of ExpectedError
func (c *MockS3Client) Copy(srcFile, tgtFile blobfs.File) error {
	return c.ExpectedError
}

// List returns the value of ExpectedResult if it exists, otherwise it returns ExpectedError.
func (c *MockS3Client) List(l blobfs.Location, prefix string) ([]string, error) {
	if c.ExpectedResult != nil {
		return c.ExpectedResult.([]string), nil
	}
	return nil, c.ExpectedError
}

// ListAll returns the value of ExpectedResult if it exists, otherwise it returns ExpectedError.
func (c *MockS3Client) ListAll(l blobfs.Location) ([]string, error) {
	if c.ExpectedResult != nil {
		return c.ExpectedResult.([]string), nil
	}
	return nil, c.ExpectedError
}

// Delete records the deleted path and returns the value of ExpectedError
func (c *MockS3Client) Delete(file blobfs.File) error {
	if c.ExpectedError != nil {
		return c.ExpectedError
	}
	c.Deleted = append(c.Deleted, file.Path())
	return nil
}

// SignedURL returns SignedURLResult if it is set, otherwise it returns ExpectedError
func (c *MockS3Client) SignedURL(file blobfs.File, validFor time.Duration) (string, error) {
	if c.SignedURLResult != "" {
		return c.SignedURLResult, nil
	}
	return "", c.ExpectedError
}
