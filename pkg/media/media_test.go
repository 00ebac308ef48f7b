package media

import (
	"syscall"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileIdentity_Equal(t *testing.T) {
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	base := FileIdentity{Path: "movie.mkv", Inode: 12, Size: 100, ModTime: now}

	tests := []struct {
		name  string
		other FileIdentity
		want  bool
	}{
		{"identical", base, true},
		{"same instant other zone", FileIdentity{Path: "movie.mkv", Inode: 12, Size: 100, ModTime: now.In(time.FixedZone("x", 3600))}, true},
		{"path", FileIdentity{Path: "other.mkv", Inode: 12, Size: 100, ModTime: now}, false},
		{"inode", FileIdentity{Path: "movie.mkv", Inode: 13, Size: 100, ModTime: now}, false},
		{"size", FileIdentity{Path: "movie.mkv", Inode: 12, Size: 101, ModTime: now}, false},
		{"mtime", FileIdentity{Path: "movie.mkv", Inode: 12, Size: 100, ModTime: now.Add(time.Second)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, base.Equal(tt.other))
		})
	}
}

func TestIdentityFromInfo(t *testing.T) {
	mtime := time.Date(2023, 1, 2, 3, 4, 5, 0, time.UTC)
	fsys := fstest.MapFS{
		"a.mkv": {Data: []byte("abcd"), ModTime: mtime, Sys: &syscall.Stat_t{Ino: 42}},
		"b.mkv": {Data: []byte("ab"), ModTime: mtime},
	}

	info, err := fsys.Stat("a.mkv")
	require.NoError(t, err)
	id := IdentityFromInfo("a.mkv", info)
	assert.Equal(t, FileIdentity{Path: "a.mkv", Inode: 42, Size: 4, ModTime: mtime}, id)

	info, err = fsys.Stat("b.mkv")
	require.NoError(t, err)
	id = IdentityFromInfo("b.mkv", info)
	assert.Equal(t, uint64(0), id.Inode)
	assert.Equal(t, int64(2), id.Size)
	assert.False(t, id.IsZero())
	assert.True(t, FileIdentity{}.IsZero())
}

func TestLifecycle_Machine(t *testing.T) {
	t.Run("deleted can be proven alive", func(t *testing.T) {
		m := LifecycleDeleted.Machine()
		require.NoError(t, m.ToState(LifecycleUnchanged))
		assert.Equal(t, LifecycleUnchanged, m.Current())
	})

	t.Run("new can be dropped", func(t *testing.T) {
		m := LifecycleNew.Machine()
		require.NoError(t, m.ToState(LifecycleDeleted))
	})

	t.Run("new never becomes unchanged", func(t *testing.T) {
		m := LifecycleNew.Machine()
		assert.Error(t, m.ToState(LifecycleUnchanged))
		assert.Equal(t, LifecycleNew, m.Current())
	})

	t.Run("deleted never becomes new", func(t *testing.T) {
		m := LifecycleDeleted.Machine()
		assert.Error(t, m.ToState(LifecycleNew))
	})
}

func TestThumbnail_Path(t *testing.T) {
	thumbs := []Thumbnail{
		{ImageID: 1, File: FileIdentity{Path: "poster.jpg"}},
		{ImageID: 2, File: FileIdentity{Path: "movie.TBN"}},
		{ImageID: 3, File: FileIdentity{Path: "S01/show.s01e01-thumb.png"}},
	}

	AssignPaths(thumbs, 3, 17)

	assert.Equal(t, "/api/image/3/17/1.jpg", thumbs[0].Path)
	assert.Equal(t, "/api/image/3/17/2.jpg", thumbs[1].Path)
	assert.Equal(t, "/api/image/3/17/3.png", thumbs[2].Path)
}

func TestTVShow_Episodes(t *testing.T) {
	show := TVShow{Seasons: []Season{
		{Number: 1, Episodes: []Episode{{EpisodeNumber: 1}, {EpisodeNumber: 2}}},
		{Number: 2, Episodes: []Episode{{EpisodeNumber: 1}}},
	}}

	assert.Equal(t, 3, show.EpisodeCount())
	for _, ep := range show.Episodes() {
		ep.TVShowID = 9
	}
	assert.Equal(t, int64(9), show.Seasons[1].Episodes[0].TVShowID)
}

func TestTVShow_Live(t *testing.T) {
	show := &TVShow{
		MediaItem: MediaItem{ID: 3, Title: "The Show"},
		Seasons: []Season{
			{Number: 1, Episodes: []Episode{
				{ID: 1, EpisodeNumber: 1, Deleted: true, Video: FileIdentity{Path: "S01/old.s01e01.mkv"}},
				{ID: 2, EpisodeNumber: 1, Video: FileIdentity{Path: "S01/new.s01e01.mkv"}},
			}},
			{Number: 2, Episodes: []Episode{{ID: 3, EpisodeNumber: 1, Deleted: true}}},
		},
	}

	live := show.Live()
	require.Len(t, live.Seasons, 1)
	assert.Equal(t, 1, live.Seasons[0].Number)
	require.Len(t, live.Seasons[0].Episodes, 1)
	assert.Equal(t, int64(2), live.Seasons[0].Episodes[0].ID)
	assert.Equal(t, "The Show", live.Title)

	assert.Len(t, show.Seasons, 2)
	assert.Len(t, show.Seasons[0].Episodes, 2)
}

func TestVideoInfo_RuntimeMinutes(t *testing.T) {
	var nilInfo *VideoInfo
	assert.Nil(t, nilInfo.RuntimeMinutes())
	assert.Nil(t, (&VideoInfo{Duration: 10 * time.Second}).RuntimeMinutes())

	got := (&VideoInfo{Duration: 118*time.Minute + 20*time.Second}).RuntimeMinutes()
	require.NotNil(t, got)
	assert.Equal(t, 118, *got)
}

func TestEpisode_Base(t *testing.T) {
	ep := Episode{Video: FileIdentity{Path: "S01/show.s01e01.mkv"}}
	assert.Equal(t, "S01/show.s01e01", ep.Base())
}

func TestNormalizeLanguage(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"en", "eng"},
		{"eng", "eng"},
		{"EN", "eng"},
		{"en.forced", "eng"},
		{"forced.de", "deu"},
		{"pt-BR", "por"},
		{"", UnknownLanguage},
		{"und", UnknownLanguage},
		{"notalanguage", UnknownLanguage},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeLanguage(tt.in))
		})
	}
}
