package media

import (
	"io/fs"
	"syscall"
	"time"
)

// FileIdentity is the cheap change-detection key for a file: if all four fields match the
// file is treated as unchanged since the last scan.
type FileIdentity struct {
	Path    string    `json:"path"`
	Inode   uint64    `json:"inode"`
	Size    int64     `json:"size"`
	ModTime time.Time `json:"modTime"`
}

// Equal reports whether two identities describe the same file content
func (f FileIdentity) Equal(other FileIdentity) bool {
	return f.Path == other.Path &&
		f.Inode == other.Inode &&
		f.Size == other.Size &&
		f.ModTime.Equal(other.ModTime)
}

// IsZero reports whether the identity is unset
func (f FileIdentity) IsZero() bool {
	return f.Path == "" && f.Inode == 0 && f.Size == 0 && f.ModTime.IsZero()
}

// IdentityFromInfo builds an identity for the file at path. The inode is only known when the
// underlying filesystem exposes a syscall.Stat_t.
func IdentityFromInfo(path string, info fs.FileInfo) FileIdentity {
	id := FileIdentity{
		Path:    path,
		Size:    info.Size(),
		ModTime: info.ModTime(),
	}

	if st, ok := info.Sys().(*syscall.Stat_t); ok && st != nil {
		id.Inode = uint64(st.Ino)
	}

	return id
}
