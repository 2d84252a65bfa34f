package azure

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type OptionsTestSuite struct {
	suite.Suite
}

func (s *OptionsTestSuite) TestNewOptions_FromEnv() {
	s.T().Setenv("BLOBFS_AZURE_STORAGE_ACCOUNT", "foo-account")
	s.T().Setenv("BLOBFS_AZURE_STORAGE_ACCESS_KEY", "foo-key")
	s.T().Setenv("BLOBFS_AZURE_TENANT_ID", "foo-tenant")
	s.T().Setenv("BLOBFS_AZURE_CLIENT_ID", "foo-client")
	s.T().Setenv("BLOBFS_AZURE_CLIENT_SECRET", "foo-secret")
	s.T().Setenv("BLOBFS_AZURE_SERVICE_URL", "http://127.0.0.1:10000/devstoreaccount1")

	opts := NewOptions()
	s.Equal("foo-account", opts.AccountName)
	s.Equal("foo-key", opts.AccountKey)
	s.Equal("foo-tenant", opts.TenantID)
	s.Equal("foo-client", opts.ClientID)
	s.Equal("foo-secret", opts.ClientSecret)
	s.Equal("http://127.0.0.1:10000/devstoreaccount1", opts.ServiceURL)
}

func (s *OptionsTestSuite) TestServiceURL() {
	opts := &Options{AccountName: "test-account"}
	s.Equal("https://test-account.blob.core.windows.net", opts.serviceURL())

	opts.ServiceURL = "http://127.0.0.1:10000/devstoreaccount1"
	s.Equal("http://127.0.0.1:10000/devstoreaccount1", opts.serviceURL())
}

func TestAzureOptions(t *testing.T) {
	suite.Run(t, new(OptionsTestSuite))
}
