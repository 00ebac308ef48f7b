package nfo

import (
	"strings"
	"testing"

	"github.com/kasuboski/mediaindex/pkg/media"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T {
	return &v
}

const movieNfo = `<?xml version="1.0" encoding="UTF-8" standalone="yes" ?>
<movie>
    <title>Inception</title>
    <originaltitle>Inception</originaltitle>
    <sorttitle>Inception</sorttitle>
    <ratings>
        <rating name="imdb" max="10" default="true">
            <value>8.8</value>
            <votes>2,345,678</votes>
        </rating>
        <rating name="themoviedb" max="10">
            <value>8.4</value>
            <votes>35000</votes>
        </rating>
        <rating name="broken">
            <value>n/a</value>
        </rating>
    </ratings>
    <outline>Dreams within dreams.</outline>
    <tagline>Your mind is the scene of the crime.</tagline>
    <runtime>148</runtime>
    <mpaa>PG-13</mpaa>
    <uniqueid type="imdb" default="true">tt1375666</uniqueid>
    <uniqueid type="tmdb">27205</uniqueid>
    <genre>Sci-Fi / Action</genre>
    <genre>science fiction</genre>
    <country>United States of America</country>
    <credits>Christopher Nolan</credits>
    <director>Christopher Nolan</director>
    <premiered>2010-07-15</premiered>
    <studio>Warner Bros. Pictures</studio>
    <actor>
        <name>Leonardo DiCaprio</name>
        <role>Cobb</role>
        <order>0</order>
        <thumb>https://image.tmdb.org/t/p/original/leo.jpg</thumb>
    </actor>
    <actor>
        <name>  </name>
    </actor>
</movie>
`

func TestParse_Movie(t *testing.T) {
	got, err := Parse(strings.NewReader(movieNfo))
	require.NoError(t, err)

	assert.Equal(t, "Inception", got.Title)
	assert.Equal(t, "Dreams within dreams.", got.Plot)
	assert.Equal(t, "Your mind is the scene of the crime.", got.Tagline)
	assert.Equal(t, ptr(148), got.Runtime)
	assert.Equal(t, "PG-13", got.ContentRating)
	assert.Equal(t, "2010-07-15", got.Premiered)
	assert.Equal(t, ptr(2010), got.Year)
	assert.Equal(t, []string{"Action", "Sci-Fi"}, got.Genres)
	assert.Equal(t, []string{"Christopher Nolan"}, got.Directors)
	assert.Equal(t, []string{"Warner Bros. Pictures"}, got.Studios)

	require.Len(t, got.Ratings, 2)
	assert.Equal(t, media.Rating{Name: "imdb", Value: ptr(8.8), Votes: ptr(int64(2345678)), Max: ptr(10), Default: true}, got.Ratings[0])
	assert.Equal(t, "themoviedb", got.Ratings[1].Name)

	assert.Equal(t, []media.UniqueID{
		{Type: "imdb", Value: "tt1375666", Default: true},
		{Type: "tmdb", Value: "27205"},
	}, got.UniqueIDs)

	require.Len(t, got.Actors, 1)
	assert.Equal(t, media.Actor{Name: "Leonardo DiCaprio", Role: "Cobb", Order: ptr(0), Thumb: "https://image.tmdb.org/t/p/original/leo.jpg"}, got.Actors[0])
}

func TestParse_MalformedFields(t *testing.T) {
	doc := `<movie>
	<title>Broken</title>
	<rating>abc</rating>
	<votes>lots</votes>
	<year>nineteen</year>
	<runtime>abc</runtime>
	<premiered>sometime</premiered>
</movie>`

	got, err := Parse(strings.NewReader(doc))
	require.NoError(t, err)

	assert.Equal(t, "Broken", got.Title)
	assert.Empty(t, got.Ratings)
	assert.Nil(t, got.Year)
	assert.Nil(t, got.Runtime)
	assert.Empty(t, got.Premiered)
}

func TestParse_LegacyFields(t *testing.T) {
	doc := `<movie>
	<title>Old</title>
	<rating>7,5</rating>
	<votes>1.234</votes>
	<year>1999</year>
	<id>tt0133093</id>
	<tmdbid>603</tmdbid>
	<runtime>2h 16m</runtime>
</movie>`

	got, err := Parse(strings.NewReader(doc))
	require.NoError(t, err)

	require.Len(t, got.Ratings, 1)
	assert.Equal(t, ptr(7.5), got.Ratings[0].Value)
	assert.Equal(t, ptr(int64(1234)), got.Ratings[0].Votes)
	assert.True(t, got.Ratings[0].Default)
	assert.Equal(t, ptr(1999), got.Year)
	assert.Equal(t, ptr(136), got.Runtime)
	assert.Equal(t, []media.UniqueID{
		{Type: "tmdb", Value: "603"},
		{Type: "imdb", Value: "tt0133093"},
	}, got.UniqueIDs)
}

func TestParse_Episode(t *testing.T) {
	doc := `<episodedetails>
	<title>Pilot</title>
	<season>01</season>
	<episode>08</episode>
	<displayseason>-1</displayseason>
	<displayepisode>2</displayepisode>
	<aired>2008-01-20</aired>
	<runtime>0:58</runtime>
</episodedetails>
<episodedetails>
	<title>Second</title>
</episodedetails>`

	got, err := Parse(strings.NewReader(doc))
	require.NoError(t, err)

	assert.Equal(t, "Pilot", got.Title)
	assert.Equal(t, ptr(1), got.Season)
	assert.Equal(t, ptr(8), got.Episode)
	assert.Nil(t, got.DisplaySeason)
	assert.Equal(t, ptr(2), got.DisplayEpisode)
	assert.Equal(t, "2008-01-20", got.Aired)
	assert.Equal(t, ptr(58), got.Runtime)
}

func TestParse_Charset(t *testing.T) {
	doc := "<?xml version=\"1.0\" encoding=\"ISO-8859-1\"?>\n<movie><title>Am\xe9lie</title></movie>"

	got, err := Parse(strings.NewReader(doc))
	require.NoError(t, err)
	assert.Equal(t, "Amélie", got.Title)
}

func TestParse_BOMAndEntities(t *testing.T) {
	doc := "\xEF\xBB\xBF<tvshow><title>Am&eacute;lie &amp; Friends</title></tvshow>"

	got, err := Parse(strings.NewReader(doc))
	require.NoError(t, err)
	assert.Equal(t, "Amélie & Friends", got.Title)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name   string
		doc    string
		noRoot bool
	}{
		{name: "empty", doc: "", noRoot: true},
		{name: "wrong root", doc: "<musicvideo><title>x</title></musicvideo>", noRoot: true},
		{name: "truncated", doc: "<movie><title>x</title>"},
		{name: "mismatched", doc: "<movie><title>x</plot></movie>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(strings.NewReader(tt.doc))
			assert.Error(t, err)
			assert.Nil(t, got)
			if tt.noRoot {
				assert.ErrorIs(t, err, ErrNoRoot)
			}
		})
	}
}
