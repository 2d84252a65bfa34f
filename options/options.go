// Package options provides option interfaces used across backend implementations.
package options

// NewFileOption interface contains the function that should be implemented by any custom option to qualify as
// an option usable by FileSystem.NewFile or Location.NewFile.
type NewFileOption interface {
	NewFileOptionName() string
}

// DeleteOption interface contains the function that should be implemented by any custom option to qualify as a
// delete option.
type DeleteOption interface {
	DeleteOptionName() string
}

// NewFileSystemOption interface contains the functions that should be implemented by any custom option to
// qualify as an option usable by a backend's NewFileSystem constructor.
type NewFileSystemOption[T any] interface {
	// Apply applies the option to the given filesystem
	Apply(fs *T)

	// NewFileSystemOptionName returns the name of the option
	NewFileSystemOptionName() string
}
