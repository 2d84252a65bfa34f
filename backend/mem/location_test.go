package mem

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/blobfs/blobfs"
)

type LocationTestSuite struct {
	suite.Suite
	fileSystem *FileSystem
}

func (s *LocationTestSuite) SetupTest() {
	s.fileSystem = NewFileSystem()
}

func (s *LocationTestSuite) writeFile(volume, name, contents string) {
	f, err := s.fileSystem.NewFile(volume, name)
	s.Require().NoError(err)
	_, err = f.Write([]byte(contents))
	s.Require().NoError(err)
	s.Require().NoError(f.Close())
}

func (s *LocationTestSuite) TestBlobfsLocationImplementor() {
	l := Location{}
	s.Implements((*blobfs.Location)(nil), &l, "Does not implement the blobfs.Location interface")
}

func (s *LocationTestSuite) TestList() {
	s.writeFile("vol", "/foo.txt", "a")
	s.writeFile("vol", "/bar.txt", "b")
	s.writeFile("vol", "/nested/baz.txt", "c")

	loc, err := s.fileSystem.NewLocation("vol", "/")
	s.NoError(err)

	names, err := loc.List()
	s.NoError(err)
	s.Equal([]string{"bar.txt", "foo.txt"}, names, "nested files are not listed")
}

func (s *LocationTestSuite) TestListByPrefix() {
	s.writeFile("vol", "/dir/foo.txt", "a")
	s.writeFile("vol", "/dir/foam.txt", "b")
	s.writeFile("vol", "/dir/bar.txt", "c")

	loc, err := s.fileSystem.NewLocation("vol", "/dir/")
	s.NoError(err)

	names, err := loc.ListByPrefix("fo")
	s.NoError(err)
	s.Equal([]string{"foam.txt", "foo.txt"}, names)
}

func (s *LocationTestSuite) TestListByRegex() {
	s.writeFile("vol", "/foo.txt", "a")
	s.writeFile("vol", "/bar.csv", "b")

	loc, err := s.fileSystem.NewLocation("vol", "/")
	s.NoError(err)

	names, err := loc.ListByRegex(regexp.MustCompile(`\.txt$`))
	s.NoError(err)
	s.Equal([]string{"foo.txt"}, names)
}

func (s *LocationTestSuite) TestListAll() {
	s.writeFile("vol", "/dir/foo.txt", "a")
	s.writeFile("vol", "/dir/sub/bar.txt", "b")
	s.writeFile("vol", "/other/baz.txt", "c")

	loc, err := s.fileSystem.NewLocation("vol", "/dir/")
	s.NoError(err)

	lister, ok := loc.(blobfs.AllFileLister)
	s.Require().True(ok, "mem locations support recursive listing")

	names, err := lister.ListAll()
	s.NoError(err)
	s.Equal([]string{"foo.txt", "sub/bar.txt"}, names)
}

func (s *LocationTestSuite) TestExists() {
	loc, err := s.fileSystem.NewLocation("vol", "/dir/")
	s.NoError(err)

	exists, err := loc.Exists()
	s.NoError(err)
	s.False(exists)

	s.writeFile("vol", "/dir/foo.txt", "a")
	exists, err = loc.Exists()
	s.NoError(err)
	s.True(exists)

	root, err := s.fileSystem.NewLocation("vol", "/")
	s.NoError(err)
	exists, err = root.Exists()
	s.NoError(err)
	s.True(exists, "the root location always exists")
}

func (s *LocationTestSuite) TestNewLocation() {
	loc, err := s.fileSystem.NewLocation("vol", "/dir/")
	s.NoError(err)

	rel, err := loc.NewLocation("sub/deeper/")
	s.NoError(err)
	s.Equal("/dir/sub/deeper/", rel.Path())

	_, err = loc.NewLocation("/abs/")
	s.Error(err, "relative location paths must not begin with a slash")
}

func (s *LocationTestSuite) TestNewFile() {
	loc, err := s.fileSystem.NewLocation("vol", "/dir/")
	s.NoError(err)

	f, err := loc.NewFile("sub/foo.txt")
	s.NoError(err)
	s.Equal("/dir/sub/foo.txt", f.Path())

	_, err = loc.NewFile("/abs.txt")
	s.Error(err, "relative file paths must not begin with a slash")
}

func (s *LocationTestSuite) TestDeleteFile() {
	s.writeFile("vol", "/dir/foo.txt", "a")

	loc, err := s.fileSystem.NewLocation("vol", "/dir/")
	s.NoError(err)

	s.NoError(loc.DeleteFile("foo.txt"))
	s.Error(loc.DeleteFile("foo.txt"))
}

func (s *LocationTestSuite) TestVolumePathURIString() {
	loc, err := s.fileSystem.NewLocation("vol", "/foo/bar/")
	s.NoError(err)
	s.Equal("vol", loc.Volume())
	s.Equal("/foo/bar/", loc.Path())
	s.Equal("mem://vol/foo/bar/", loc.URI())
	s.Equal("mem://vol/foo/bar/", loc.String())
}

func TestMemLocation(t *testing.T) {
	suite.Run(t, new(LocationTestSuite))
}
