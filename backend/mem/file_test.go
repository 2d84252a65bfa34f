package mem

import (
	"io"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/blobfs/blobfs"
)

type FileTestSuite struct {
	suite.Suite
	fileSystem *FileSystem
}

func (s *FileTestSuite) SetupTest() {
	s.fileSystem = NewFileSystem()
}

func (s *FileTestSuite) TestBlobfsFileImplementor() {
	f := File{}
	s.Implements((*blobfs.File)(nil), &f, "Does not implement the blobfs.File interface")
}

func (s *FileTestSuite) TestWriteReadRoundTrip() {
	f, err := s.fileSystem.NewFile("vol", "/foo.txt")
	s.NoError(err)

	n, err := f.Write([]byte("Hello World!"))
	s.NoError(err)
	s.Equal(12, n)
	s.NoError(f.Close())

	exists, err := f.Exists()
	s.NoError(err)
	s.True(exists)

	contents, err := io.ReadAll(f)
	s.NoError(err)
	s.Equal("Hello World!", string(contents))
	s.NoError(f.Close())
}

func (s *FileTestSuite) TestRead_NonExistentFile() {
	f, err := s.fileSystem.NewFile("vol", "/foo.txt")
	s.NoError(err)

	_, err = f.Read(make([]byte, 1))
	s.Error(err, "reading a file that was never committed should error")
	s.ErrorIs(err, blobfs.ErrNotExist)
}

func (s *FileTestSuite) TestWrite_NotCommittedUntilClose() {
	f, _ := s.fileSystem.NewFile("vol", "/foo.txt")
	_, err := f.Write([]byte("staged"))
	s.NoError(err)

	exists, err := f.Exists()
	s.NoError(err)
	s.False(exists, "writes are staged until Close")

	s.NoError(f.Close())
	exists, err = f.Exists()
	s.NoError(err)
	s.True(exists)
}

func (s *FileTestSuite) TestSeek() {
	f, _ := s.fileSystem.NewFile("vol", "/foo.txt")
	_, _ = f.Write([]byte("Hello World!"))
	s.NoError(f.Close())

	pos, err := f.Seek(6, io.SeekStart)
	s.NoError(err)
	s.Equal(int64(6), pos)

	contents, err := io.ReadAll(f)
	s.NoError(err)
	s.Equal("World!", string(contents))

	_, err = f.Seek(-1, io.SeekStart)
	s.Error(err)

	_, err = f.Seek(0, 42)
	s.Error(err)
}

func (s *FileTestSuite) TestCopyToFile() {
	src, _ := s.fileSystem.NewFile("vol", "/src.txt")
	_, _ = src.Write([]byte("contents"))
	s.NoError(src.Close())

	tgt, _ := s.fileSystem.NewFile("vol", "/tgt.txt")
	s.NoError(src.CopyToFile(tgt))

	contents, err := io.ReadAll(tgt)
	s.NoError(err)
	s.Equal("contents", string(contents))
}

func (s *FileTestSuite) TestCopyToLocation() {
	src, _ := s.fileSystem.NewFile("vol", "/src.txt")
	_, _ = src.Write([]byte("contents"))
	s.NoError(src.Close())

	loc, _ := s.fileSystem.NewLocation("vol", "/new/folder/")
	copied, err := src.CopyToLocation(loc)
	s.NoError(err)
	s.Equal("/new/folder/src.txt", copied.Path())

	exists, err := copied.Exists()
	s.NoError(err)
	s.True(exists)
}

func (s *FileTestSuite) TestMoveToFile() {
	src, _ := s.fileSystem.NewFile("vol", "/src.txt")
	_, _ = src.Write([]byte("contents"))
	s.NoError(src.Close())

	tgt, _ := s.fileSystem.NewFile("vol", "/tgt.txt")
	s.NoError(src.MoveToFile(tgt))

	exists, err := src.Exists()
	s.NoError(err)
	s.False(exists, "the original should be deleted after a move")

	exists, err = tgt.Exists()
	s.NoError(err)
	s.True(exists)
}

func (s *FileTestSuite) TestDelete() {
	f, _ := s.fileSystem.NewFile("vol", "/foo.txt")
	_, _ = f.Write([]byte("x"))
	s.NoError(f.Close())

	s.NoError(f.Delete())

	exists, err := f.Exists()
	s.NoError(err)
	s.False(exists)
}

func (s *FileTestSuite) TestDelete_NonExistentFile() {
	f, _ := s.fileSystem.NewFile("vol", "/foo.txt")
	s.Error(f.Delete())
}

func (s *FileTestSuite) TestTouch() {
	f, _ := s.fileSystem.NewFile("vol", "/foo.txt")
	s.NoError(f.Touch())

	size, err := f.Size()
	s.NoError(err)
	s.Zero(size)

	first, err := f.LastModified()
	s.NoError(err)

	s.NoError(f.Touch())
	second, err := f.LastModified()
	s.NoError(err)
	s.False(second.Before(*first))
}

func (s *FileTestSuite) TestSizeAndLastModified_NonExistentFile() {
	f, _ := s.fileSystem.NewFile("vol", "/foo.txt")

	_, err := f.Size()
	s.Error(err)

	_, err = f.LastModified()
	s.Error(err)
}

func (s *FileTestSuite) TestPathNameURI() {
	f, _ := s.fileSystem.NewFile("vol", "/foo/bar/blah.txt")
	s.Equal("/foo/bar/blah.txt", f.Path())
	s.Equal("blah.txt", f.Name())
	s.Equal("mem://vol/foo/bar/blah.txt", f.URI())
	s.Equal("/foo/bar/", f.Location().Path())
}

func TestMemFile(t *testing.T) {
	suite.Run(t, new(FileTestSuite))
}
