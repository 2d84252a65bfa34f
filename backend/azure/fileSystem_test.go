package azure

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/blobfs/blobfs"
)

type FileSystemTestSuite struct {
	suite.Suite
}

func (s *FileSystemTestSuite) TestBlobfsFileSystemImplementor() {
	fs := FileSystem{}
	s.Implements((*blobfs.FileSystem)(nil), &fs, "Does not implement the blobfs.FileSystem interface")
}

func (s *FileSystemTestSuite) TestNameAndScheme() {
	fs := NewFileSystem()
	s.Equal("azure", fs.Name())
	s.Equal("az", fs.Scheme())
}

func (s *FileSystemTestSuite) TestNewFile() {
	fs := NewFileSystem()

	f, err := fs.NewFile("test-container", "/dir/file.txt")
	s.NoError(err)
	s.Equal("/dir/file.txt", f.Path())

	_, err = fs.NewFile("", "/file.txt")
	s.Error(err, "volume is required")

	_, err = fs.NewFile("test-container", "")
	s.Error(err, "path is required")

	_, err = fs.NewFile("test-container", "relative.txt")
	s.Error(err, "file paths must be absolute")

	_, err = fs.NewFile("test-container", "/ends/with/slash/")
	s.Error(err, "file paths must not end with a slash")
}

func (s *FileSystemTestSuite) TestNewLocation() {
	fs := NewFileSystem()

	l, err := fs.NewLocation("test-container", "/dir/")
	s.NoError(err)
	s.Equal("/dir/", l.Path())

	_, err = fs.NewLocation("", "/dir/")
	s.Error(err, "volume is required")

	_, err = fs.NewLocation("test-container", "/file.txt")
	s.Error(err, "location paths must end with a slash")
}

func (s *FileSystemTestSuite) TestClient_ExplicitClient() {
	client := &MockAzureClient{}
	fs := NewFileSystem(WithClient(client))

	got, err := fs.Client()
	s.NoError(err)
	s.Same(client, got)
}

func TestAzureFileSystem(t *testing.T) {
	suite.Run(t, new(FileSystemTestSuite))
}
