package gs

import (
	"google.golang.org/api/option"
)

// Options holds Google Cloud Storage specific options.  Currently only client options are used.
type Options struct {
	APIKey         string   `json:"apiKey,omitempty"`
	CredentialFile string   `json:"credentialFilePath,omitempty"`
	Endpoint       string   `json:"endpoint,omitempty"`
	Scopes         []string `json:"scopes,omitempty"`

	// FileBufferSize sets the buffer size used when copying between backends.
	FileBufferSize int `json:"fileBufferSize,omitempty"`
}

func (o *Options) clientOptions() []option.ClientOption {
	googleClientOpts := []option.ClientOption{}
	if o == nil {
		return googleClientOpts
	}

	switch {
	case o.APIKey != "":
		googleClientOpts = append(googleClientOpts, option.WithAPIKey(o.APIKey))
	case o.CredentialFile != "":
		googleClientOpts = append(googleClientOpts, option.WithCredentialsFile(o.CredentialFile))
	case o.Endpoint != "":
		googleClientOpts = append(googleClientOpts, option.WithEndpoint(o.Endpoint), option.WithoutAuthentication())
	case len(o.Scopes) > 0:
		googleClientOpts = append(googleClientOpts, option.WithScopes(o.Scopes...))
	}
	return googleClientOpts
}
