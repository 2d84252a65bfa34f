package gs

import (
	"context"

	"cloud.google.com/go/storage"

	"github.com/blobfs/blobfs/options"
)

const (
	optionNameClient  = "client"
	optionNameOptions = "options"
	optionNameContext = "context"
)

// WithClient returns a clientSetter implementation of NewFileSystemOption
//
// WithClient is used to explicitly specify a storage client to use for the filesystem, for instance one
// produced by a fake-gcs-server.
func WithClient(c *storage.Client) options.NewFileSystemOption[FileSystem] {
	return &clientOpt{
		client: c,
	}
}

type clientOpt struct {
	client *storage.Client
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

// WithContext returns a context option implementation of NewFileSystemOption
//
// The context is used when the lazy storage client is created.
func WithContext(ctx context.Context) options.NewFileSystemOption[FileSystem] {
	return &contextOpt{
		ctx: ctx,
	}
}

type contextOpt struct {
	ctx context.Context
}

// Apply applies the context to the filesystem
func (c *contextOpt) Apply(fs *FileSystem) {
	fs.ctx = c.ctx
}

// NewFileSystemOptionName returns the name of the option
func (c *contextOpt) NewFileSystemOptionName() string {
	return optionNameContext
}
