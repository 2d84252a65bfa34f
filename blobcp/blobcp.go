// blobcp copies a file from one place to another, even between supported remote systems.
//
// Usage:
//
//	blobcp <source> <target>
//
// Arguments are URIs (az://container/path, s3://bucket/key, gs://bucket/key, mem://vol/path,
// file:///path).  Arguments without a scheme are treated as local paths.  Remote backends read
// their credentials from the environment; see the backend package docs.
package main

import (
	"errors"
	"flag"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"github.com/fatih/color"

	"github.com/blobfs/blobfs/simple"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s <source> <target>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if err := run(flag.Arg(0), flag.Arg(1)); err != nil {
		color.Red("error: %s", err)
		os.Exit(1)
	}
}

func run(src, tgt string) error {
	if src == "" || tgt == "" {
		return errors.New("blobcp requires 2 non-empty arguments")
	}

	srcURI, err := normalizeURI(src)
	if err != nil {
		return err
	}
	tgtURI, err := normalizeURI(tgt)
	if err != nil {
		return err
	}

	fmt.Printf("Copying %s to %s\n", color.CyanString(srcURI), color.CyanString(tgtURI))

	srcFile, err := simple.NewFile(srcURI)
	if err != nil {
		return err
	}
	tgtFile, err := simple.NewFile(tgtURI)
	if err != nil {
		return err
	}

	if err := srcFile.CopyToFile(tgtFile); err != nil {
		return err
	}

	color.Green("done")
	return nil
}

// normalizeURI turns scheme-less arguments into file:// URIs with absolute paths.
func normalizeURI(arg string) (string, error) {
	u, err := url.Parse(arg)
	if err != nil {
		return "", err
	}
	if u.IsAbs() {
		return arg, nil
	}

	absPath, err := filepath.Abs(arg)
	if err != nil {
		return "", err
	}
	return "file://" + absPath, nil
}
