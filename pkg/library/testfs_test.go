package library

import (
	"io/fs"
	"syscall"
	"testing"
	"testing/fstest"
	"time"

	"github.com/kasuboski/mediaindex/pkg/media"
	"github.com/stretchr/testify/require"
)

var (
	day1 = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	day2 = time.Date(2024, 1, 2, 12, 0, 0, 0, time.UTC)
	day3 = time.Date(2024, 1, 3, 12, 0, 0, 0, time.UTC)
)

// testFS builds collection trees with stable inodes and modification times
type testFS struct {
	fsys fstest.MapFS
	ino  uint64
}

func newTestFS() *testFS {
	return &testFS{fsys: fstest.MapFS{}, ino: 100}
}

func (f *testFS) dir(name string, mtime time.Time) *testFS {
	f.ino++
	f.fsys[name] = &fstest.MapFile{Mode: fs.ModeDir | 0o755, ModTime: mtime, Sys: &syscall.Stat_t{Ino: f.ino}}
	return f
}

func (f *testFS) file(name string, mtime time.Time, data string) *testFS {
	f.ino++
	f.fsys[name] = &fstest.MapFile{Data: []byte(data), ModTime: mtime, Sys: &syscall.Stat_t{Ino: f.ino}}
	return f
}

func (f *testFS) touch(name string, mtime time.Time) *testFS {
	f.fsys[name].ModTime = mtime
	return f
}

func (f *testFS) rename(from, to string) *testFS {
	for name, file := range f.fsys {
		switch {
		case name == from:
			f.fsys[to] = file
			delete(f.fsys, name)
		case len(name) > len(from) && name[:len(from)+1] == from+"/":
			f.fsys[to+name[len(from):]] = file
			delete(f.fsys, name)
		}
	}
	return f
}

func (f *testFS) source(t *testing.T, dir string) Source {
	t.Helper()

	info, err := fs.Stat(f.fsys, dir)
	require.NoError(t, err)

	return Source{
		FS:           f.fsys,
		Root:         "/media",
		CollectionID: 1,
		Dir:          media.IdentityFromInfo(dir, info),
	}
}
