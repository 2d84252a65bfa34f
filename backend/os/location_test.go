package os

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/blobfs/blobfs"
	"github.com/blobfs/blobfs/utils"
)

type LocationTestSuite struct {
	suite.Suite
	fileSystem *FileSystem
	tmpDir     string
}

func (s *LocationTestSuite) SetupTest() {
	s.fileSystem = NewFileSystem()
	s.tmpDir = utils.EnsureTrailingSlash(s.T().TempDir())
}

func (s *LocationTestSuite) writeFile(name, contents string) {
	f, err := s.fileSystem.NewFile("", s.tmpDir+name)
	s.Require().NoError(err)
	_, err = f.Write([]byte(contents))
	s.Require().NoError(err)
	s.Require().NoError(f.Close())
}

func (s *LocationTestSuite) TestBlobfsLocationImplementor() {
	l := Location{}
	s.Implements((*blobfs.Location)(nil), &l, "Does not implement the blobfs.Location interface")
	s.Implements((*blobfs.AllFileLister)(nil), &l, "Does not implement the blobfs.AllFileLister interface")
}

func (s *LocationTestSuite) TestList() {
	s.writeFile("foo.txt", "a")
	s.writeFile("bar.txt", "b")
	s.writeFile("sub/baz.txt", "c")

	l, err := s.fileSystem.NewLocation("", s.tmpDir)
	s.NoError(err)

	listing, err := l.List()
	s.NoError(err)
	s.ElementsMatch([]string{"foo.txt", "bar.txt"}, listing, "subdirectories are not listed")
}

func (s *LocationTestSuite) TestList_NonExistentDir() {
	l, err := s.fileSystem.NewLocation("", s.tmpDir+"missing/")
	s.NoError(err)

	listing, err := l.List()
	s.NoError(err)
	s.Empty(listing)
}

func (s *LocationTestSuite) TestListByPrefix() {
	s.writeFile("foo.txt", "a")
	s.writeFile("foam.txt", "b")
	s.writeFile("bar.txt", "c")

	l, _ := s.fileSystem.NewLocation("", s.tmpDir)
	listing, err := l.ListByPrefix("fo")
	s.NoError(err)
	s.ElementsMatch([]string{"foo.txt", "foam.txt"}, listing)
}

func (s *LocationTestSuite) TestListByRegex() {
	s.writeFile("foo.txt", "a")
	s.writeFile("bar.csv", "b")

	l, _ := s.fileSystem.NewLocation("", s.tmpDir)
	listing, err := l.ListByRegex(regexp.MustCompile(`\.txt$`))
	s.NoError(err)
	s.Equal([]string{"foo.txt"}, listing)
}

func (s *LocationTestSuite) TestListAll() {
	s.writeFile("foo.txt", "a")
	s.writeFile("sub/bar.txt", "b")
	s.writeFile("sub/deeper/baz.txt", "c")

	l, _ := s.fileSystem.NewLocation("", s.tmpDir)
	lister, ok := l.(blobfs.AllFileLister)
	s.Require().True(ok)

	listing, err := lister.ListAll()
	s.NoError(err)
	s.ElementsMatch([]string{"foo.txt", "sub/bar.txt", "sub/deeper/baz.txt"}, listing)
}

func (s *LocationTestSuite) TestExists() {
	l, _ := s.fileSystem.NewLocation("", s.tmpDir)
	exists, err := l.Exists()
	s.NoError(err)
	s.True(exists)

	missing, _ := s.fileSystem.NewLocation("", s.tmpDir+"missing/")
	exists, err = missing.Exists()
	s.NoError(err)
	s.False(exists)
}

func (s *LocationTestSuite) TestNewLocationAndNewFile() {
	l, _ := s.fileSystem.NewLocation("", s.tmpDir)

	rel, err := l.NewLocation("sub/")
	s.NoError(err)
	s.Equal(s.tmpDir+"sub/", rel.Path())

	f, err := l.NewFile("foo.txt")
	s.NoError(err)
	s.Equal(s.tmpDir+"foo.txt", f.Path())

	_, err = l.NewFile("/abs.txt")
	s.Error(err)
}

func (s *LocationTestSuite) TestDeleteFile() {
	s.writeFile("foo.txt", "a")

	l, _ := s.fileSystem.NewLocation("", s.tmpDir)
	s.NoError(l.DeleteFile("foo.txt"))
	s.Error(l.DeleteFile("foo.txt"))
}

func (s *LocationTestSuite) TestPathURI() {
	l, _ := s.fileSystem.NewLocation("", "/foo/bar/")
	s.Equal("/foo/bar/", l.Path())
	s.Equal("file:///foo/bar/", l.URI())
}

func TestOSLocation(t *testing.T) {
	suite.Run(t, new(LocationTestSuite))
}
