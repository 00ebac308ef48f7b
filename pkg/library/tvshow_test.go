package library

import (
	"context"
	"testing"
	"time"

	"github.com/kasuboski/mediaindex/pkg/media"
	"github.com/kasuboski/mediaindex/pkg/probe/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const (
	showNfo    = `<tvshow><title>The Show</title><genre>Drama/Sci-Fi</genre></tvshow>`
	episodeNfo = `<episodedetails><title>Pilot</title><aired>2020-01-05</aired><runtime>44</runtime></episodedetails>`
)

func showFS() *testFS {
	return newTestFS().
		dir("The Show", day1).
		file("The Show/tvshow.nfo", day1, showNfo).
		file("The Show/poster.jpg", day1, "img").
		file("The Show/season01-poster.jpg", day1, "img").
		file("The Show/season-all-banner.jpg", day1, "img").
		dir("The Show/S01", day1).
		file("The Show/S01/the.show.s01e01.mkv", day1, "video").
		file("The Show/S01/the.show.s01e01.nfo", day1, episodeNfo).
		file("The Show/S01/the.show.s01e01-thumb.jpg", day1, "img").
		file("The Show/S01/the.show.s01e01.en.srt", day1, "sub").
		file("The Show/S01/the.show.s01e02.mkv", day2, "video").
		dir("The Show/S02", day1).
		file("The Show/S02/the.show.s02e01.mkv", day2, "video")
}

// persist assigns ids the way the storage layer does
func persist(show *media.TVShow, id int64) {
	show.ID = id
	next := int64(0)
	for _, ep := range show.Episodes() {
		next = max(next, ep.ID)
	}
	for _, ep := range show.Episodes() {
		ep.TVShowID = id
		if ep.ID == 0 {
			next++
			ep.ID = next
		}
	}
}

func episodeNumbers(show *media.TVShow) map[int][]int {
	out := map[int][]int{}
	for _, s := range show.Seasons {
		for _, ep := range s.Episodes {
			out[s.Number] = append(out[s.Number], ep.EpisodeNumber)
		}
	}
	return out
}

func TestLibrary_ScanShow(t *testing.T) {
	ctx := context.Background()

	t.Run("new show", func(t *testing.T) {
		tfs := showFS()
		res, err := New(nil).ScanShow(ctx, tfs.source(t, "The Show"), nil, ScanOptions{})
		require.NoError(t, err)
		require.True(t, res.Accepted)

		show := res.Show
		assert.Equal(t, media.KindTVShow, show.Kind)
		assert.Equal(t, "The Show", show.Title)
		assert.Equal(t, []string{"Drama", "Sci-Fi"}, show.Nfo.Genres)
		assert.Equal(t, map[int][]int{1: {1, 2}, 2: {1}}, episodeNumbers(show))

		require.Len(t, show.Thumbnails, 3)
		assert.Equal(t, media.AspectPoster, show.Thumbnails[0].Aspect)
		assert.Nil(t, show.Thumbnails[0].Season)
		assert.Equal(t, media.AspectBanner, show.Thumbnails[1].Aspect)
		assert.Equal(t, media.SeasonScopeAll, *show.Thumbnails[1].Season)
		assert.Equal(t, "1", *show.Thumbnails[2].Season)

		pilot := show.Seasons[0].Episodes[0]
		assert.Equal(t, media.LifecycleNew, pilot.State)
		assert.Equal(t, "Pilot", pilot.Nfo.Title)
		assert.Equal(t, "2020-01-05", pilot.Aired)
		assert.Equal(t, intPtr(44), pilot.Runtime)
		assert.Equal(t, "S01", pilot.Directory.Path)
		require.Len(t, pilot.Thumbnails, 1)
		assert.Equal(t, media.AspectThumb, pilot.Thumbnails[0].Aspect)
		require.Len(t, pilot.Subtitles, 1)
		assert.Equal(t, "eng", pilot.Subtitles[0].Lang)

		assert.Equal(t, day1, show.DateAdded)
		assert.Equal(t, day2, show.LastModified)
	})

	t.Run("qualified episode poster wins over bare", func(t *testing.T) {
		tfs := newTestFS().
			dir("show", day1).
			dir("show/S01", day1).
			file("show/S01/show.s01e01.mp4", day1, "video").
			file("show/S01/show.s01e01-poster.jpg", day1, "img").
			file("show/S01/show.s01e01.jpg", day1, "img")

		res, err := New(nil).ScanShow(ctx, tfs.source(t, "show"), nil, ScanOptions{})
		require.NoError(t, err)

		ep := res.Show.Seasons[0].Episodes[0]
		require.Len(t, ep.Thumbnails, 1)
		assert.Equal(t, "S01/show.s01e01-poster.jpg", ep.Thumbnails[0].File.Path)
		assert.Equal(t, media.AspectPoster, ep.Thumbnails[0].Aspect)
	})

	t.Run("rescan is idempotent", func(t *testing.T) {
		tfs := showFS()
		l := New(nil)
		src := tfs.source(t, "The Show")

		first, err := l.ScanShow(ctx, src, nil, ScanOptions{})
		require.NoError(t, err)
		persist(first.Show, 7)

		second, err := l.ScanShow(ctx, src, first.Show, ScanOptions{})
		require.NoError(t, err)
		third, err := l.ScanShow(ctx, src, second.Show, ScanOptions{})
		require.NoError(t, err)

		assert.Equal(t, second.Show, third.Show)
		assert.True(t, third.Deletions.Empty())
		assert.Equal(t, int64(7), third.Show.ID)

		firstEpisodes := first.Show.Episodes()
		for i, ep := range third.Show.Episodes() {
			assert.Equal(t, media.LifecycleUnchanged, ep.State)
			assert.Equal(t, firstEpisodes[i].ID, ep.ID)
			assert.Equal(t, int64(7), ep.TVShowID)
			for _, th := range ep.Thumbnails {
				assert.Equal(t, media.LifecycleUnchanged, th.State)
			}
		}
		for _, th := range third.Show.Thumbnails {
			assert.Equal(t, media.LifecycleUnchanged, th.State)
		}
	})

	t.Run("deleted episode and season", func(t *testing.T) {
		tfs := showFS()
		l := New(nil)
		src := tfs.source(t, "The Show")

		first, err := l.ScanShow(ctx, src, nil, ScanOptions{})
		require.NoError(t, err)
		persist(first.Show, 7)

		delete(tfs.fsys, "The Show/S01/the.show.s01e02.mkv")
		second, err := l.ScanShow(ctx, src, first.Show, ScanOptions{})
		require.NoError(t, err)

		assert.Equal(t, map[int][]int{1: {1}, 2: {1}}, episodeNumbers(second.Show))
		require.Len(t, second.Deletions.Episodes, 1)
		gone := second.Deletions.Episodes[0]
		assert.Equal(t, 2, gone.EpisodeNumber)
		assert.True(t, gone.Deleted)
		assert.Equal(t, media.LifecycleDeleted, gone.State)
		assert.NotZero(t, gone.ID)

		delete(tfs.fsys, "The Show/S02/the.show.s02e01.mkv")
		third, err := l.ScanShow(ctx, src, second.Show, ScanOptions{})
		require.NoError(t, err)

		assert.Equal(t, map[int][]int{1: {1}}, episodeNumbers(third.Show))
		require.Len(t, third.Deletions.Episodes, 1)
		assert.Equal(t, 2, third.Deletions.Episodes[0].SeasonNumber)
	})

	t.Run("deleted episode thumbnail is reported", func(t *testing.T) {
		tfs := showFS()
		l := New(nil)
		src := tfs.source(t, "The Show")

		first, err := l.ScanShow(ctx, src, nil, ScanOptions{})
		require.NoError(t, err)

		delete(tfs.fsys, "The Show/S01/the.show.s01e01-thumb.jpg")
		second, err := l.ScanShow(ctx, src, first.Show, ScanOptions{})
		require.NoError(t, err)

		assert.Empty(t, second.Show.Seasons[0].Episodes[0].Thumbnails)
		require.Len(t, second.Deletions.Thumbnails, 1)
		assert.Equal(t, "S01/the.show.s01e01-thumb.jpg", second.Deletions.Thumbnails[0].File.Path)
	})

	t.Run("dropped episode reports its thumbnails", func(t *testing.T) {
		tfs := showFS()
		l := New(nil)
		src := tfs.source(t, "The Show")

		first, err := l.ScanShow(ctx, src, nil, ScanOptions{})
		require.NoError(t, err)
		persist(first.Show, 7)

		delete(tfs.fsys, "The Show/S01/the.show.s01e01.mkv")
		second, err := l.ScanShow(ctx, src, first.Show, ScanOptions{})
		require.NoError(t, err)

		require.Len(t, second.Deletions.Episodes, 1)
		assert.Equal(t, 1, second.Deletions.Episodes[0].EpisodeNumber)
		require.Len(t, second.Deletions.Thumbnails, 1)
		assert.Equal(t, "S01/the.show.s01e01-thumb.jpg", second.Deletions.Thumbnails[0].File.Path)
	})

	t.Run("extras directory is not scanned", func(t *testing.T) {
		tfs := newTestFS().
			dir("Show", day1).
			dir("Show/Extras", day1).
			file("Show/Extras/show.s01e01.deleted.scenes.mkv", day1, "video").
			dir("Show/Featurettes", day1).
			file("Show/Featurettes/show.s01e02.making.of.mkv", day1, "video").
			dir("Show/S01", day1).
			file("Show/S01/show.s01e01.mkv", day1, "video")

		res, err := New(nil).ScanShow(ctx, tfs.source(t, "Show"), nil, ScanOptions{})
		require.NoError(t, err)

		assert.Equal(t, map[int][]int{1: {1}}, episodeNumbers(res.Show))
		assert.Equal(t, "S01/show.s01e01.mkv", res.Show.Seasons[0].Episodes[0].Video.Path)
	})

	t.Run("top level tbn is the show poster", func(t *testing.T) {
		tfs := newTestFS().
			dir("Show", day1).
			file("Show/tvshow.nfo", day1, showNfo).
			file("Show/Show.tbn", day1, "img")

		res, err := New(nil).ScanShow(ctx, tfs.source(t, "Show"), nil, ScanOptions{})
		require.NoError(t, err)

		assert.True(t, res.Accepted)
		require.Len(t, res.Show.Thumbnails, 1)
		assert.Equal(t, media.AspectPoster, res.Show.Thumbnails[0].Aspect)
		assert.Equal(t, "Show.tbn", res.Show.Thumbnails[0].File.Path)
	})

	t.Run("renamed directory forces last modified", func(t *testing.T) {
		now := day3.Add(5 * time.Hour)
		tfs := showFS()
		l := New(nil, WithClock(func() time.Time { return now }))

		first, err := l.ScanShow(ctx, tfs.source(t, "The Show"), nil, ScanOptions{})
		require.NoError(t, err)
		persist(first.Show, 7)
		assert.Equal(t, day2, first.Show.LastModified)

		tfs.rename("The Show", "The Show (2019)")
		src := tfs.source(t, "The Show (2019)")
		assert.Equal(t, first.Show.Directory.Inode, src.Dir.Inode)

		second, err := l.ScanShow(ctx, src, first.Show, ScanOptions{})
		require.NoError(t, err)

		assert.Equal(t, now, second.Show.LastModified)
		assert.Equal(t, "The Show (2019)", second.Show.Directory.Path)
		assert.Equal(t, first.Show.DateAdded, second.Show.DateAdded)
		for _, ep := range second.Show.Episodes() {
			assert.Equal(t, media.LifecycleUnchanged, ep.State)
		}
		assert.True(t, second.Deletions.Empty())
	})

	t.Run("acceptance", func(t *testing.T) {
		tfs := newTestFS().
			dir("Pending", day1).
			file("Pending/tvshow.nfo", day1, showNfo)
		l := New(nil)

		res, err := l.ScanShow(ctx, tfs.source(t, "Pending"), nil, ScanOptions{})
		require.NoError(t, err)
		assert.False(t, res.Accepted)

		tfs.file("Pending/poster.jpg", day1, "img")
		res, err = l.ScanShow(ctx, tfs.source(t, "Pending"), nil, ScanOptions{})
		require.NoError(t, err)
		assert.True(t, res.Accepted)
		assert.Empty(t, res.Show.Seasons)
	})

	t.Run("duplicate episode keeps the first file", func(t *testing.T) {
		tfs := newTestFS().
			dir("show", day1).
			dir("show/S01", day1).
			file("show/S01/show.1x01.mkv", day1, "video").
			file("show/S01/show.s01e01.mkv", day1, "video").
			file("show/S01/show.s01e02e03.mkv", day1, "video").
			file("show/S01/readme.mkv", day1, "video")

		res, err := New(nil).ScanShow(ctx, tfs.source(t, "show"), nil, ScanOptions{})
		require.NoError(t, err)

		eps := res.Show.Seasons[0].Episodes
		require.Len(t, eps, 2)
		assert.Equal(t, "S01/show.1x01.mkv", eps[0].Video.Path)
		assert.Equal(t, 2, eps[1].EpisodeNumber)
		assert.True(t, eps[1].Double)
	})

	t.Run("previously deleted episode is revived", func(t *testing.T) {
		tfs := showFS()
		l := New(nil)
		src := tfs.source(t, "The Show")

		first, err := l.ScanShow(ctx, src, nil, ScanOptions{})
		require.NoError(t, err)
		persist(first.Show, 7)

		stored := *first.Show
		stored.Seasons = append([]media.Season(nil), first.Show.Seasons...)
		stored.Seasons[1].Episodes = []media.Episode{first.Show.Seasons[1].Episodes[0]}
		stored.Seasons[1].Episodes[0].Deleted = true
		stored.Seasons[1].Episodes[0].State = media.LifecycleDeleted
		revivedID := stored.Seasons[1].Episodes[0].ID

		second, err := l.ScanShow(ctx, src, &stored, ScanOptions{})
		require.NoError(t, err)

		assert.True(t, second.Deletions.Empty())
		ep := second.Show.Seasons[1].Episodes[0]
		assert.Equal(t, revivedID, ep.ID)
		assert.False(t, ep.Deleted)
		assert.Equal(t, media.LifecycleUnchanged, ep.State)
	})

	t.Run("only new and changed videos are probed", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		prober := mocks.NewMockProber(ctrl)

		tfs := showFS()
		l := New(prober)
		src := tfs.source(t, "The Show")

		prober.EXPECT().Probe(gomock.Any(), gomock.Any()).Return(&media.VideoInfo{Duration: 30 * time.Minute}, nil).Times(3)
		first, err := l.ScanShow(ctx, src, nil, ScanOptions{})
		require.NoError(t, err)

		tfs.file("The Show/S02/the.show.s02e01.mkv", day3, "replaced")
		prober.EXPECT().Probe(gomock.Any(), "/media/The Show/S02/the.show.s02e01.mkv").Return(&media.VideoInfo{Duration: 31 * time.Minute}, nil).Times(1)
		second, err := l.ScanShow(ctx, src, first.Show, ScanOptions{})
		require.NoError(t, err)

		assert.Equal(t, intPtr(44), second.Show.Seasons[0].Episodes[0].Runtime)
		assert.Equal(t, intPtr(30), second.Show.Seasons[0].Episodes[1].Runtime)
		assert.Equal(t, intPtr(31), second.Show.Seasons[1].Episodes[0].Runtime)
	})
}
