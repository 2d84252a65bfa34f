package azure

import (
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/bloberror"
	"github.com/stretchr/testify/suite"

	"github.com/blobfs/blobfs"
	"github.com/blobfs/blobfs/options/delete"
	"github.com/blobfs/blobfs/utils"
)

// blobNotFoundErr simulates the service response for a missing blob.
func blobNotFoundErr() error {
	return &azcore.ResponseError{ErrorCode: string(bloberror.BlobNotFound)}
}

// containerNotFoundErr simulates the service response for a missing container.
func containerNotFoundErr() error {
	return &azcore.ResponseError{ErrorCode: string(bloberror.ContainerNotFound)}
}

type FileTestSuite struct {
	suite.Suite
}

func (s *FileTestSuite) TestBlobfsFileImplementor() {
	f := File{}
	s.Implements((*blobfs.File)(nil), &f, "Does not implement the blobfs.File interface")
	s.Implements((*blobfs.URLSigner)(nil), &f, "Does not implement the blobfs.URLSigner interface")
}

func (s *FileTestSuite) TestClose() {
	client := MockAzureClient{}
	fs := NewFileSystem(WithClient(&client))
	f, _ := fs.NewFile("test-container", "/foo.txt")
	s.NoError(f.Close())
}

func (s *FileTestSuite) TestClose_FlushTempFile() {
	client := MockAzureClient{PropertiesError: blobNotFoundErr()}
	fs := NewFileSystem(WithClient(&client))
	f, _ := fs.NewFile("test-container", "/foo.txt")

	_, _ = f.Write([]byte("Hello, World!"))
	s.NoError(f.Close())
	s.Equal("Hello, World!", string(client.UploadedContent))
}

func (s *FileTestSuite) TestRead() {
	client := MockAzureClient{
		PropertiesResult: &BlobProperties{},
		ExpectedResult:   io.NopCloser(strings.NewReader("Hello World!")),
	}
	fs := NewFileSystem(WithClient(&client))

	f, err := fs.NewFile("test-container", "/foo.txt")
	s.NoError(err)
	contents := make([]byte, 12)
	n, err := f.Read(contents)
	s.NoError(err)
	s.Equal(12, n)
	s.Equal("Hello World!", string(contents))
}

func (s *FileTestSuite) TestRead_NonExistentFile() {
	client := MockAzureClient{PropertiesError: blobNotFoundErr()}
	fs := NewFileSystem(WithClient(&client))

	f, err := fs.NewFile("test-container", "/foo.txt")
	s.NoError(err)
	_, err = f.Read(make([]byte, 1))
	s.Error(err)
	s.ErrorIs(err, blobfs.ErrNotExist)
}

func (s *FileTestSuite) TestSeek() {
	client := MockAzureClient{
		PropertiesResult: &BlobProperties{},
		ExpectedResult:   io.NopCloser(strings.NewReader("Hello World!")),
	}
	fs := NewFileSystem(WithClient(&client))

	f, err := fs.NewFile("test-container", "/foo.txt")
	s.NoError(err)
	newOffset, err := f.Seek(6, io.SeekStart)
	s.NoError(err)
	s.Equal(int64(6), newOffset)
	contents := make([]byte, 6)
	n, err := f.Read(contents)
	s.NoError(err)
	s.Equal(6, n)
	s.Equal("World!", string(contents))
}

func (s *FileTestSuite) TestWrite() {
	client := MockAzureClient{PropertiesError: blobNotFoundErr()}
	fs := NewFileSystem(WithClient(&client))

	f, err := fs.NewFile("test-container", "/foo.txt")
	s.NotNil(f)
	s.NoError(err)
	n, err := f.Write([]byte("Hello, World!"))
	s.NoError(err)
	s.Equal(13, n)
}

func (s *FileTestSuite) TestString() {
	fs := NewFileSystem(WithOptions(Options{AccountName: "test-account"}))
	l, _ := fs.NewLocation("temp", "/foo/bar/")
	f, _ := l.NewFile("blah.txt")
	s.Equal("az://temp/foo/bar/blah.txt", f.String())
}

func (s *FileTestSuite) TestExists() {
	client := MockAzureClient{PropertiesResult: &BlobProperties{}}
	fs := NewFileSystem(WithClient(&client))

	f, err := fs.NewFile("test-container", "/foo.txt")
	s.NoError(err)
	exists, err := f.Exists()
	s.NoError(err)
	s.True(exists)
}

func (s *FileTestSuite) TestExists_NonExistentFile() {
	client := MockAzureClient{PropertiesError: blobNotFoundErr()}
	fs := NewFileSystem(WithClient(&client))

	f, err := fs.NewFile("test-container", "/foo.txt")
	s.NoError(err)
	exists, err := f.Exists()
	s.NoError(err, "no error is returned when the file does not exist")
	s.False(exists)
}

func (s *FileTestSuite) TestExists_ClientError() {
	client := MockAzureClient{PropertiesError: errors.New("blammo")}
	fs := NewFileSystem(WithClient(&client))

	f, _ := fs.NewFile("test-container", "/foo.txt")
	_, err := f.Exists()
	s.Error(err, "unexpected client errors are not swallowed")
}

func (s *FileTestSuite) TestLocation() {
	fs := NewFileSystem(WithOptions(Options{AccountName: "test-account"}))
	f, _ := fs.NewFile("test-container", "/dir/file.txt")
	l := f.Location()
	s.Equal("test-container", l.Volume())
	s.Equal("/dir/", l.Path())
}

func (s *FileTestSuite) TestCopyToLocation() {
	client := MockAzureClient{
		PropertiesResult: &BlobProperties{},
		ExpectedResult:   io.NopCloser(strings.NewReader("contents")),
	}
	fs := NewFileSystem(WithClient(&client))

	f, _ := fs.NewFile("test-container", "/foo.txt")
	loc, _ := fs.NewLocation("test-container", "/new/folder/")

	copied, err := f.CopyToLocation(loc)
	s.NoError(err)
	s.Equal("/new/folder/foo.txt", copied.Path())
}

func (s *FileTestSuite) TestDelete() {
	client := MockAzureClient{PropertiesResult: &BlobProperties{}}
	fs := NewFileSystem(WithClient(&client))

	f, _ := fs.NewFile("test-container", "/foo.txt")
	s.NoError(f.Delete())
	s.Equal([]string{"/foo.txt"}, client.Deleted)
}

func (s *FileTestSuite) TestDelete_AllVersions() {
	client := MockAzureClient{PropertiesResult: &BlobProperties{}}
	fs := NewFileSystem(WithClient(&client))

	f, _ := fs.NewFile("test-container", "/foo.txt")
	s.NoError(f.Delete(delete.WithAllVersions()))
}

func (s *FileTestSuite) TestDelete_ClientError() {
	client := MockAzureClient{ExpectedError: errors.New("i always error")}
	fs := NewFileSystem(WithClient(&client))

	f, _ := fs.NewFile("test-container", "/foo.txt")
	s.Error(f.Delete())
}

func (s *FileTestSuite) TestLastModified() {
	now := time.Now()
	client := MockAzureClient{PropertiesResult: &BlobProperties{LastModified: &now}}
	fs := NewFileSystem(WithClient(&client))

	f, _ := fs.NewFile("test-container", "/foo.txt")
	t, err := f.LastModified()
	s.NoError(err)
	s.Equal(now, *t)
}

func (s *FileTestSuite) TestSize() {
	client := MockAzureClient{PropertiesResult: &BlobProperties{Size: utils.Ptr(int64(5))}}
	fs := NewFileSystem(WithClient(&client))

	f, _ := fs.NewFile("test-container", "/foo.txt")
	size, err := f.Size()
	s.NoError(err)
	s.Equal(uint64(5), size)
}

func (s *FileTestSuite) TestPathNameURI() {
	fs := NewFileSystem(WithOptions(Options{AccountName: "test-account"}))
	f, _ := fs.NewFile("test-container", "/foo/bar/blah.txt")
	s.Equal("/foo/bar/blah.txt", f.Path())
	s.Equal("blah.txt", f.Name())
	s.Equal("az://test-container/foo/bar/blah.txt", f.URI())
}

func (s *FileTestSuite) TestTouch_NonExistentFile() {
	client := MockAzureClient{PropertiesError: blobNotFoundErr()}
	fs := NewFileSystem(WithClient(&client))

	f, _ := fs.NewFile("test-container", "/foo.txt")
	s.NoError(f.Touch())
	s.Empty(client.UploadedContent)
}

func (s *FileTestSuite) TestSignedURL() {
	client := MockAzureClient{SignedURLResult: "https://test-account.blob.core.windows.net/test-container/foo.txt?sig=abc"}
	fs := NewFileSystem(WithClient(&client))

	f, _ := fs.NewFile("test-container", "/foo.txt")
	signer, ok := f.(blobfs.URLSigner)
	s.Require().True(ok)

	u, err := signer.SignedURL(time.Hour)
	s.NoError(err)
	s.Contains(u, "sig=")
}

func TestAzureFile(t *testing.T) {
	suite.Run(t, new(FileTestSuite))
}
