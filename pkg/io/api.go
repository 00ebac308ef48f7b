package io

import (
	"io/fs"
	"os"

	"github.com/kasuboski/mediaindex/pkg/media"
)

// FileIO is an interface for the file io operations the scanner needs outside of an fs.FS
type FileIO interface {
	Stat(target string) (os.FileInfo, error)
	DirFS(root string) fs.FS
	Identity(root, rel string) (media.FileIdentity, error)
	FileExists(path string) bool
}
