package gs

import (
	"io"
	"testing"

	"github.com/fsouza/fake-gcs-server/fakestorage"
	"github.com/stretchr/testify/suite"

	"github.com/blobfs/blobfs"
)

type FileTestSuite struct {
	suite.Suite
	server     *fakestorage.Server
	fileSystem *FileSystem
}

func (s *FileTestSuite) SetupTest() {
	s.server = fakestorage.NewServer([]fakestorage.Object{
		{
			ObjectAttrs: fakestorage.ObjectAttrs{
				BucketName: "test-bucket",
				Name:       "existing.txt",
			},
			Content: []byte("Hello World!"),
		},
		{
			ObjectAttrs: fakestorage.ObjectAttrs{
				BucketName: "test-bucket",
				Name:       "dir/nested.txt",
			},
			Content: []byte("nested contents"),
		},
	})
	s.fileSystem = NewFileSystem(WithClient(s.server.Client()))
}

func (s *FileTestSuite) TearDownTest() {
	s.server.Stop()
}

func (s *FileTestSuite) TestBlobfsFileImplementor() {
	f := File{}
	s.Implements((*blobfs.File)(nil), &f, "Does not implement the blobfs.File interface")
	s.Implements((*blobfs.URLSigner)(nil), &f, "Does not implement the blobfs.URLSigner interface")
}

func (s *FileTestSuite) TestRead() {
	f, err := s.fileSystem.NewFile("test-bucket", "/existing.txt")
	s.NoError(err)

	contents, err := io.ReadAll(f)
	s.NoError(err)
	s.Equal("Hello World!", string(contents))
	s.NoError(f.Close())
}

func (s *FileTestSuite) TestRead_NonExistentFile() {
	f, _ := s.fileSystem.NewFile("test-bucket", "/missing.txt")
	_, err := f.Read(make([]byte, 1))
	s.Error(err)
	s.ErrorIs(err, blobfs.ErrNotExist)
}

func (s *FileTestSuite) TestWriteReadRoundTrip() {
	f, _ := s.fileSystem.NewFile("test-bucket", "/new.txt")
	_, err := f.Write([]byte("fresh contents"))
	s.NoError(err)
	s.NoError(f.Close())

	exists, err := f.Exists()
	s.NoError(err)
	s.True(exists)

	contents, err := io.ReadAll(f)
	s.NoError(err)
	s.Equal("fresh contents", string(contents))
	s.NoError(f.Close())
}

func (s *FileTestSuite) TestSeek() {
	f, _ := s.fileSystem.NewFile("test-bucket", "/existing.txt")

	pos, err := f.Seek(6, io.SeekStart)
	s.NoError(err)
	s.Equal(int64(6), pos)

	contents, err := io.ReadAll(f)
	s.NoError(err)
	s.Equal("World!", string(contents))
	s.NoError(f.Close())
}

func (s *FileTestSuite) TestExists() {
	f, _ := s.fileSystem.NewFile("test-bucket", "/existing.txt")
	exists, err := f.Exists()
	s.NoError(err)
	s.True(exists)

	missing, _ := s.fileSystem.NewFile("test-bucket", "/missing.txt")
	exists, err = missing.Exists()
	s.NoError(err)
	s.False(exists)
}

func (s *FileTestSuite) TestCopyToFile() {
	src, _ := s.fileSystem.NewFile("test-bucket", "/existing.txt")
	tgt, _ := s.fileSystem.NewFile("test-bucket", "/copied.txt")

	s.NoError(src.CopyToFile(tgt))

	contents, err := io.ReadAll(tgt)
	s.NoError(err)
	s.Equal("Hello World!", string(contents))
}

func (s *FileTestSuite) TestCopyToLocation() {
	src, _ := s.fileSystem.NewFile("test-bucket", "/existing.txt")
	loc, _ := s.fileSystem.NewLocation("test-bucket", "/archive/")

	copied, err := src.CopyToLocation(loc)
	s.NoError(err)
	s.Equal("/archive/existing.txt", copied.Path())

	exists, err := copied.Exists()
	s.NoError(err)
	s.True(exists)
}

func (s *FileTestSuite) TestMoveToFile() {
	src, _ := s.fileSystem.NewFile("test-bucket", "/existing.txt")
	tgt, _ := s.fileSystem.NewFile("test-bucket", "/moved.txt")

	s.NoError(src.MoveToFile(tgt))

	exists, err := src.Exists()
	s.NoError(err)
	s.False(exists)

	exists, err = tgt.Exists()
	s.NoError(err)
	s.True(exists)
}

func (s *FileTestSuite) TestDelete() {
	f, _ := s.fileSystem.NewFile("test-bucket", "/existing.txt")
	s.NoError(f.Delete())

	exists, err := f.Exists()
	s.NoError(err)
	s.False(exists)
}

func (s *FileTestSuite) TestSizeAndLastModified() {
	f, _ := s.fileSystem.NewFile("test-bucket", "/existing.txt")

	size, err := f.Size()
	s.NoError(err)
	s.Equal(uint64(12), size)

	t, err := f.LastModified()
	s.NoError(err)
	s.NotNil(t)
}

func (s *FileTestSuite) TestTouch() {
	f, _ := s.fileSystem.NewFile("test-bucket", "/touched.txt")
	s.NoError(f.Touch())

	size, err := f.Size()
	s.NoError(err)
	s.Zero(size)
}

func (s *FileTestSuite) TestPathNameURI() {
	f, _ := s.fileSystem.NewFile("test-bucket", "/dir/nested.txt")
	s.Equal("/dir/nested.txt", f.Path())
	s.Equal("nested.txt", f.Name())
	s.Equal("gs://test-bucket/dir/nested.txt", f.URI())
}

func TestGSFile(t *testing.T) {
	suite.Run(t, new(FileTestSuite))
}
