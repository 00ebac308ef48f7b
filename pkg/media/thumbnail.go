package media

import (
	"fmt"
	"path"
	"strings"

	"github.com/oapi-codegen/nullable"
)

// Aspect is the visual role of a thumbnail
type Aspect string

const (
	AspectBanner    Aspect = "banner"
	AspectFanart    Aspect = "fanart"
	AspectPoster    Aspect = "poster"
	AspectLandscape Aspect = "landscape"
	AspectClearart  Aspect = "clearart"
	AspectClearlogo Aspect = "clearlogo"
	AspectThumb     Aspect = "thumb"
	AspectDiscart   Aspect = "discart"
	AspectKeyart    Aspect = "keyart"
)

const (
	SeasonScopeAll      = "all"
	SeasonScopeSpecials = "specials"
)

// Thumbnail is an image file attached to a media item or episode. Width, Height and Quality are
// filled lazily by the image resizer and stay unspecified during a scan.
type Thumbnail struct {
	ImageID   int                    `json:"imageId"`
	File      FileIdentity           `json:"file"`
	Path      string                 `json:"path"`
	Aspect    Aspect                 `json:"aspect"`
	Width     nullable.Nullable[int] `json:"width,omitempty"`
	Height    nullable.Nullable[int] `json:"height,omitempty"`
	Quality   nullable.Nullable[int] `json:"quality,omitempty"`
	Season    *string                `json:"season,omitempty"`
	Qualified bool                   `json:"qualified,omitempty"`
	State     Lifecycle              `json:"state"`
}

// SeasonKey returns the season scope or the empty string for item level images
func (t *Thumbnail) SeasonKey() string {
	if t.Season == nil {
		return ""
	}
	return *t.Season
}

// Ext returns the served extension of the image, .tbn files are served as jpg
func (t *Thumbnail) Ext() string {
	ext := strings.ToLower(strings.TrimPrefix(path.Ext(t.File.Path), "."))
	if ext == "tbn" {
		return "jpg"
	}
	return ext
}

// ServedPath builds the path the API layer serves the image at
func ServedPath(collectionID, itemID int64, imageID int, ext string) string {
	return fmt.Sprintf("/api/image/%d/%d/%d.%s", collectionID, itemID, imageID, ext)
}

// AssignPaths sets the served path on every thumbnail once the owner id is known
func AssignPaths(thumbs []Thumbnail, collectionID, itemID int64) {
	for i := range thumbs {
		thumbs[i].Path = ServedPath(collectionID, itemID, thumbs[i].ImageID, thumbs[i].Ext())
	}
}
