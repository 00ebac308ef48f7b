package media

import (
	"path"
	"strings"
	"time"
)

// Kind separates the two media item variants
type Kind string

const (
	KindMovie  Kind = "movie"
	KindTVShow Kind = "tvshow"
)

// MediaItem holds the fields shared by movies and shows
type MediaItem struct {
	ID           int64         `json:"id"`
	CollectionID int64         `json:"collectionId"`
	Kind         Kind          `json:"kind"`
	Directory    FileIdentity  `json:"directory"`
	Deleted      bool          `json:"deleted"`
	LastModified time.Time     `json:"lastModified"`
	DateAdded    time.Time     `json:"dateAdded"`
	Title        string        `json:"title"`
	Year         *int          `json:"year,omitempty"`
	NfoFile      *FileIdentity `json:"nfoFile,omitempty"`
	Nfo          *Nfo          `json:"nfo,omitempty"`
	Thumbnails   []Thumbnail   `json:"thumbnails,omitempty"`
}

// Movie is a single video in its own directory
type Movie struct {
	MediaItem
	Video     *FileIdentity `json:"video,omitempty"`
	Runtime   *int          `json:"runtime,omitempty"`
	VideoInfo *VideoInfo    `json:"videoInfo,omitempty"`
	Subtitles []Subtitle    `json:"subtitles,omitempty"`
}

// TVShow owns its seasons, which are only addressable through the show
type TVShow struct {
	MediaItem
	Seasons []Season `json:"seasons,omitempty"`
}

type Season struct {
	Number   int       `json:"number"`
	Episodes []Episode `json:"episodes"`
}

type Episode struct {
	ID             int64         `json:"id"`
	TVShowID       int64         `json:"tvshowId"`
	CollectionID   int64         `json:"collectionId"`
	Directory      FileIdentity  `json:"directory"`
	Deleted        bool          `json:"deleted"`
	State          Lifecycle     `json:"state"`
	NfoFile        *FileIdentity `json:"nfoFile,omitempty"`
	Nfo            *Nfo          `json:"nfo,omitempty"`
	Aired          string        `json:"aired,omitempty"`
	Runtime        *int          `json:"runtime,omitempty"`
	DisplaySeason  *int          `json:"displaySeason,omitempty"`
	DisplayEpisode *int          `json:"displayEpisode,omitempty"`
	Video          FileIdentity  `json:"video"`
	VideoInfo      *VideoInfo    `json:"videoInfo,omitempty"`
	SeasonNumber   int           `json:"seasonNumber"`
	EpisodeNumber  int           `json:"episodeNumber"`
	Double         bool          `json:"double,omitempty"`
	Thumbnails     []Thumbnail   `json:"thumbnails,omitempty"`
	Subtitles      []Subtitle    `json:"subtitles,omitempty"`
}

// Base is the video path without its extension, the key sidecar files attach to
func (e *Episode) Base() string {
	return TrimExt(e.Video.Path)
}

// Deletions is the set of child records a merge dropped. The caller decides whether to
// hard delete or archive them. Thumbnails of dropped episodes are listed in Thumbnails too.
type Deletions struct {
	Episodes   []Episode   `json:"episodes,omitempty"`
	Thumbnails []Thumbnail `json:"thumbnails,omitempty"`
}

// Empty reports whether nothing was dropped
func (d Deletions) Empty() bool {
	return len(d.Episodes) == 0 && len(d.Thumbnails) == 0
}

// EpisodeCount counts the episodes across all seasons
func (s *TVShow) EpisodeCount() int {
	n := 0
	for _, season := range s.Seasons {
		n += len(season.Episodes)
	}
	return n
}

// Episodes returns pointers into the show's seasons so callers can update episodes in place
func (s *TVShow) Episodes() []*Episode {
	var out []*Episode
	for i := range s.Seasons {
		for j := range s.Seasons[i].Episodes {
			out = append(out, &s.Seasons[i].Episodes[j])
		}
	}
	return out
}

// Live returns a copy of the show without deleted episodes and without seasons left empty by them.
// Stored shows keep deleted episodes so a rescan can revive them under the same id.
func (s *TVShow) Live() *TVShow {
	out := *s
	out.Seasons = nil
	for _, season := range s.Seasons {
		var episodes []Episode
		for _, ep := range season.Episodes {
			if !ep.Deleted {
				episodes = append(episodes, ep)
			}
		}
		if len(episodes) == 0 {
			continue
		}
		out.Seasons = append(out.Seasons, Season{Number: season.Number, Episodes: episodes})
	}
	return &out
}

// TrimExt strips the final extension from a slash separated path
func TrimExt(p string) string {
	return strings.TrimSuffix(p, path.Ext(p))
}
