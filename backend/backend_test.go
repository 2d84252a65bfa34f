package backend

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/blobfs/blobfs"
	"github.com/blobfs/blobfs/options"
)

type stubFileSystem struct {
	name string
}

func (fs *stubFileSystem) NewFile(volume, absFilePath string, opts ...options.NewFileOption) (blobfs.File, error) {
	return nil, nil
}
func (fs *stubFileSystem) NewLocation(volume, absLocPath string) (blobfs.Location, error) {
	return nil, nil
}
func (fs *stubFileSystem) Name() string   { return fs.name }
func (fs *stubFileSystem) Scheme() string { return "stub" }

type BackendTestSuite struct {
	suite.Suite
}

func (s *BackendTestSuite) SetupTest() {
	UnregisterAll()
}

func (s *BackendTestSuite) TestRegister() {
	Register("stub", &stubFileSystem{name: "first"})
	s.NotNil(Backend("stub"))
	s.Equal("first", Backend("stub").Name())

	// registering the same name replaces
	Register("stub", &stubFileSystem{name: "second"})
	s.Equal("second", Backend("stub").Name())
}

func (s *BackendTestSuite) TestUnregister() {
	Register("stub", &stubFileSystem{})
	Unregister("stub")
	s.Nil(Backend("stub"))
}

func (s *BackendTestSuite) TestRegisteredBackends() {
	s.Empty(RegisteredBackends())

	Register("b", &stubFileSystem{})
	Register("a", &stubFileSystem{})
	s.Equal([]string{"a", "b"}, RegisteredBackends())
}

func TestBackend(t *testing.T) {
	suite.Run(t, new(BackendTestSuite))
}
