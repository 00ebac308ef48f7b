package io

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/kasuboski/mediaindex/pkg/media"
)

var (
	_ FileIO = (*MediaFileSystem)(nil)
)

// MediaFileSystem is the default implementation of file io using the os package
type MediaFileSystem struct{}

// Stat is a wrapper around os.Stat
func (o *MediaFileSystem) Stat(target string) (os.FileInfo, error) {
	return os.Stat(target)
}

// DirFS is a wrapper around os.DirFS
func (o *MediaFileSystem) DirFS(root string) fs.FS {
	return os.DirFS(root)
}

// Identity stats rel below root and returns its identity with the path kept relative
func (o *MediaFileSystem) Identity(root, rel string) (media.FileIdentity, error) {
	info, err := o.Stat(filepath.Join(root, filepath.FromSlash(rel)))
	if err != nil {
		return media.FileIdentity{}, fmt.Errorf("failed to stat %s: %w", rel, err)
	}

	return media.IdentityFromInfo(rel, info), nil
}

// FileExists reports whether path can be stat'd
func (o *MediaFileSystem) FileExists(path string) bool {
	_, err := o.Stat(path)
	return err == nil
}
