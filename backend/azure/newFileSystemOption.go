package azure

import (
	"github.com/blobfs/blobfs/options"
)

const (
	optionNameClient  = "client"
	optionNameOptions = "options"
)

// WithClient returns a clientSetter implementation of NewFileSystemOption
//
// WithClient is used to explicitly specify a Client to use for the filesystem.
// The client is used to interact with the Azure service.
func WithClient(c Client) options.NewFileSystemOption[FileSystem] {
	return &clientOpt{
		client: c,
	}
}

type clientOpt struct {
	client Client
}

// Apply applies the client to the filesystem
func (ct *clientOpt) Apply(fs *FileSystem) {
	fs.client = ct.client
}

// NewFileSystemOptionName returns the name of the option
func (ct *clientOpt) NewFileSystemOptionName() string {
	return optionNameClient
}

// WithOptions returns an optionsSetter implementation of NewFileSystemOption
//
// WithOptions is used to specify options for the filesystem.
// The options are used to configure the filesystem.
func WithOptions(opts Options) options.NewFileSystemOption[FileSystem] {
	return &optionsOpt{
		options: opts,
	}
}

type optionsOpt struct {
	options Options
}

// Apply applies the options to the filesystem
func (o *optionsOpt) Apply(fs *FileSystem) {
	fs.options = &o.options
}

// NewFileSystemOptionName returns the name of the option
func (o *optionsOpt) NewFileSystemOptionName() string {
	return optionNameOptions
}
