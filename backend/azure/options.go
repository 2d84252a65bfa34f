package azure

import (
	"fmt"
	"os"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/service"
)

// Options contains options necessary for the azure blobfs implementation
type Options struct {
	// AccountName holds the Azure Blob Storage account name for authentication
	AccountName string

	// AccountKey holds the Azure Blob Storage account key for authentication
	AccountKey string

	// TenantID holds the Azure Service Account tenant id for authentication
	TenantID string

	// ClientID holds the Azure Service Account client id for authentication
	ClientID string

	// ClientSecret holds the Azure Service Account client secret for authentication
	ClientSecret string

	// ServiceURL overrides the storage endpoint.  When empty, the standard
	// https://<account>.blob.core.windows.net endpoint is used.  Set this to
	// target Azurite or a sovereign cloud.
	ServiceURL string

	// MaxNameLength caps normalized blob names produced through this filesystem.
	// Zero means the default limit.
	MaxNameLength int

	// Overwrite disables collision avoidance when saving through a store; an
	// existing blob with the same name is replaced.
	Overwrite bool

	// FileBufferSize sets the buffer size used when copying between backends.
	FileBufferSize int
}

// NewOptions creates a new Options struct, pulling defaults from the environment.
func NewOptions() *Options {
	return &Options{
		AccountName:  os.Getenv("BLOBFS_AZURE_STORAGE_ACCOUNT"),
		AccountKey:   os.Getenv("BLOBFS_AZURE_STORAGE_ACCESS_KEY"),
		TenantID:     os.Getenv("BLOBFS_AZURE_TENANT_ID"),
		ClientID:     os.Getenv("BLOBFS_AZURE_CLIENT_ID"),
		ClientSecret: os.Getenv("BLOBFS_AZURE_CLIENT_SECRET"),
		ServiceURL:   os.Getenv("BLOBFS_AZURE_SERVICE_URL"),
	}
}

// serviceURL returns the configured endpoint or the standard endpoint for the account.
func (o *Options) serviceURL() string {
	if o.ServiceURL != "" {
		return o.ServiceURL
	}
	return fmt.Sprintf("https://%s.blob.core.windows.net", o.AccountName)
}

// serviceClient builds a service.Client using the first credential the options
// can satisfy: shared key, then service principal, then the ambient credential
// chain (env, managed identity, CLI).
func (o *Options) serviceClient() (*service.Client, error) {
	if o.AccountName != "" && o.AccountKey != "" {
		cred, err := service.NewSharedKeyCredential(o.AccountName, o.AccountKey)
		if err != nil {
			return nil, err
		}
		return service.NewClientWithSharedKeyCredential(o.serviceURL(), cred, nil)
	}

	var cred azcore.TokenCredential
	var err error
	if o.TenantID != "" && o.ClientID != "" && o.ClientSecret != "" {
		cred, err = azidentity.NewClientSecretCredential(o.TenantID, o.ClientID, o.ClientSecret, nil)
	} else {
		cred, err = azidentity.NewDefaultAzureCredential(nil)
	}
	if err != nil {
		return nil, err
	}

	return service.NewClient(o.serviceURL(), cred, nil)
}
