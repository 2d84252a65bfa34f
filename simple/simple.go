// Package simple provides a convenience layer for instantiating blobfs files and
// locations from URI strings, using whichever backend is registered for the
// URI's scheme.
package simple

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/blobfs/blobfs"
	"github.com/blobfs/blobfs/backend"
	_ "github.com/blobfs/blobfs/backend/all" // register all backends
)

var (
	// ErrMissingAuthority is returned when a network-based URI carries no host.
	ErrMissingAuthority = errors.New("unable to determine uri authority (host) for network-based scheme")

	// ErrMissingScheme is returned when a URI carries no scheme.
	ErrMissingScheme = errors.New("unable to determine uri scheme")

	// ErrRegFsNotFound is returned when no registered backend matches the URI.
	ErrRegFsNotFound = errors.New("no matching registered filesystem found")

	// ErrBlankURI is returned when the URI is empty.
	ErrBlankURI = errors.New("uri is blank")
)

// NewLocation is a convenience function that allows for instantiating a location based on a uri string.
// Any backend filesystem is supported, though some may require prior configuration.  See the docs for
// specific requirements of each.
func NewLocation(uri string) (blobfs.Location, error) {
	fs, host, path, err := parseSupportedURI(uri)
	if err != nil {
		return nil, fmt.Errorf("unable to create blobfs.Location for uri %q: %w", uri, err)
	}

	return fs.NewLocation(host, path)
}

// NewFile is a convenience function that allows for instantiating a file based on a uri string.  Any
// backend filesystem is supported, though some may require prior configuration.  See the docs for
// specific requirements of each.
func NewFile(uri string) (blobfs.File, error) {
	fs, host, path, err := parseSupportedURI(uri)
	if err != nil {
		return nil, fmt.Errorf("unable to create blobfs.File for uri %q: %w", uri, err)
	}

	return fs.NewFile(host, path)
}

// parseURI attempts to parse a URI and validate that it returns required results
func parseURI(uri string) (scheme, authority, path string, err error) {
	if uri == "" {
		err = ErrBlankURI
		return
	}

	var u *url.URL
	u, err = url.Parse(uri)
	if err != nil {
		err = fmt.Errorf("unknown url.Parse error: %w", err)
		return
	}

	scheme = u.Scheme
	if u.Scheme == "" {
		err = ErrMissingScheme
		return
	}

	authority = u.Host
	path = u.Path

	// network-based schemes require an authority, but not file://
	if authority == "" && scheme != "file" {
		return "", "", "", ErrMissingAuthority
	}

	return
}

// parseSupportedURI checks if the URI scheme matches any registered backend name, capturing the longest
// (most specific) match found.  Backends may be registered under a bare scheme ("s3") or a more specific
// prefix ("s3://somebucket/").
func parseSupportedURI(uri string) (blobfs.FileSystem, string, string, error) {
	_, authority, path, err := parseURI(uri)
	if err != nil {
		return nil, "", "", err
	}

	var longest string
	for _, backendName := range backend.RegisteredBackends() {
		if strings.HasPrefix(uri, backendName) {
			if len(backendName) > len(longest) {
				longest = backendName
			}
		}
	}

	if longest == "" {
		return nil, "", "", ErrRegFsNotFound
	}

	return backend.Backend(longest), authority, path, nil
}
