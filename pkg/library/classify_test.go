package library

import (
	"testing"

	"github.com/kasuboski/mediaindex/pkg/media"
	"github.com/stretchr/testify/assert"
)

func intPtr(i int) *int {
	return &i
}

func TestClassify(t *testing.T) {
	tests := []struct {
		rel   string
		isDir bool
		want  Class
	}{
		{
			rel:  "Inception (2010).mkv",
			want: Class{Kind: Video, Base: "Inception (2010)", Ext: "mkv"},
		},
		{
			rel:  "S01/show.s01e01.MP4",
			want: Class{Kind: Video, Base: "S01/show.s01e01", Ext: "mp4", SeasonHint: intPtr(1)},
		},
		{
			rel:  "Specials/show.s00e01.mkv",
			want: Class{Kind: Video, Base: "Specials/show.s00e01", Ext: "mkv", SeasonHint: intPtr(0)},
		},
		{
			rel:  "Season 2/show.s02e01.mkv",
			want: Class{Kind: Video, Base: "Season 2/show.s02e01", Ext: "mkv", SeasonHint: intPtr(2)},
		},
		{
			rel:  "Extras/behind the scenes.mkv",
			want: Class{Kind: Video, Base: "Extras/behind the scenes", Ext: "mkv"},
		},
		{
			rel:  "tvshow.nfo",
			want: Class{Kind: Nfo, Base: "tvshow", Ext: "nfo"},
		},
		{
			rel:  "movie.en.srt",
			want: Class{Kind: Subtitle, Base: "movie.en", Ext: "srt"},
		},
		{
			rel:  "poster.jpg",
			want: Class{Kind: Image, Base: "poster", Ext: "jpg", Aspect: media.AspectPoster},
		},
		{
			rel:  "folder.png",
			want: Class{Kind: Image, Base: "folder", Ext: "png", Aspect: media.AspectPoster},
		},
		{
			rel:  "backdrop.jpg",
			want: Class{Kind: Image, Base: "backdrop", Ext: "jpg", Aspect: media.AspectFanart},
		},
		{
			rel:  "movie-fanart.jpg",
			want: Class{Kind: Image, Base: "movie-fanart", Ext: "jpg"},
		},
		{
			rel:  "season01-poster.jpg",
			want: Class{Kind: SeasonImage, Base: "season01-poster", Ext: "jpg", Season: "1", Aspect: media.AspectPoster, Qualified: true},
		},
		{
			rel:  "season00.jpg",
			want: Class{Kind: SeasonImage, Base: "season00", Ext: "jpg", Season: "0", Aspect: media.AspectPoster},
		},
		{
			rel:  "season-all-banner.jpg",
			want: Class{Kind: SeasonImage, Base: "season-all-banner", Ext: "jpg", Season: media.SeasonScopeAll, Aspect: media.AspectBanner, Qualified: true},
		},
		{
			rel:  "season-specials-fanart.jpg",
			want: Class{Kind: SeasonImage, Base: "season-specials-fanart", Ext: "jpg", Season: media.SeasonScopeSpecials, Aspect: media.AspectFanart, Qualified: true},
		},
		{
			rel:  "season01-unknown.jpg",
			want: Class{Kind: Image, Base: "season01-unknown", Ext: "jpg"},
		},
		{
			rel:  "notes.txt",
			want: Class{Kind: Unclassified, Base: "notes", Ext: "txt"},
		},
		{
			rel:   "S03",
			isDir: true,
			want:  Class{Kind: ShowSubdir, Base: "S03", Season: "3"},
		},
		{
			rel:   "Specials",
			isDir: true,
			want:  Class{Kind: ShowSubdir, Base: "Specials", Season: "0"},
		},
		{
			rel:   "Extras",
			isDir: true,
			want:  Class{Kind: Unclassified, Base: "Extras"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.rel, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.rel, tt.isDir))
		})
	}
}

func TestSeasonDir(t *testing.T) {
	tests := []struct {
		name string
		want int
		ok   bool
	}{
		{"S01", 1, true},
		{"s12", 12, true},
		{"Season 3", 3, true},
		{"season.04", 4, true},
		{"Specials", 0, true},
		{"Extras", 0, false},
		{"S01E01", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := SeasonDir(tt.name)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSplitQualifier(t *testing.T) {
	tests := []struct {
		base      string
		prefix    string
		qualifier string
	}{
		{"movie-poster", "movie", "poster"},
		{"S01/show.s01e01-thumb", "S01/show.s01e01", "thumb"},
		{"S01/poster", "S01/poster", ""},
		{"-poster", "-poster", ""},
		{"plain", "plain", ""},
	}

	for _, tt := range tests {
		t.Run(tt.base, func(t *testing.T) {
			prefix, qualifier := splitQualifier(tt.base)
			assert.Equal(t, tt.prefix, prefix)
			assert.Equal(t, tt.qualifier, qualifier)
		})
	}
}

func TestSidecarIndex_Resolve(t *testing.T) {
	ix := sidecarIndex{
		"S01/show.s01e01":      0,
		"S01/show.s01e01.part": 1,
		"movie":                2,
	}

	tests := []struct {
		base      string
		pos       int
		qualifier string
		ok        bool
	}{
		{"S01/show.s01e01", 0, "", true},
		{"S01/show.s01e01-poster", 0, "poster", true},
		{"S01/show.s01e01.en.forced", 0, "en.forced", true},
		{"S01/show.s01e01.part.en", 1, "en", true},
		{"movie.en", 2, "en", true},
		{"movies", 0, "", false},
		{"S02/show.s01e01.en", 0, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.base, func(t *testing.T) {
			pos, qualifier, ok := ix.resolve(tt.base)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.pos, pos)
			assert.Equal(t, tt.qualifier, qualifier)
		})
	}
}
