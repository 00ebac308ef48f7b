package library

import (
	"path"
	"regexp"
	"strconv"
	"strings"

	"github.com/kasuboski/mediaindex/pkg/media"
)

// ClassKind is the role a directory entry plays in a media item
type ClassKind int

const (
	Unclassified ClassKind = iota
	Video
	Image
	SeasonImage
	ShowSubdir
	Nfo
	Subtitle
)

func (k ClassKind) String() string {
	switch k {
	case Video:
		return "video"
	case Image:
		return "image"
	case SeasonImage:
		return "season-image"
	case ShowSubdir:
		return "show-subdir"
	case Nfo:
		return "nfo"
	case Subtitle:
		return "subtitle"
	default:
		return "unclassified"
	}
}

// Class is the result of classifying one entry. Base is the entry's relative path without its
// extension; sidecar files are later matched to a video by that base.
type Class struct {
	Kind       ClassKind
	Base       string
	Ext        string
	SeasonHint *int
	// Season is the season scope of a season image or the number of a show subdir
	Season string
	// Aspect is set for season images and when the file name itself is an aspect keyword
	Aspect media.Aspect
	// Qualified season images name their aspect, season01-poster.jpg vs season01.jpg
	Qualified bool
}

var (
	videoExtensions    = set("mp4", "m4v", "mkv", "avi", "mov", "webm", "wmv", "mpg", "mpeg", "ts", "m2ts", "iso")
	imageExtensions    = set("jpg", "jpeg", "png", "webp", "tbn")
	subtitleExtensions = set("srt", "vtt", "ass", "ssa", "sub")

	aspectKeywords = map[string]media.Aspect{
		"banner":     media.AspectBanner,
		"fanart":     media.AspectFanart,
		"poster":     media.AspectPoster,
		"landscape":  media.AspectLandscape,
		"clearart":   media.AspectClearart,
		"clearlogo":  media.AspectClearlogo,
		"thumb":      media.AspectThumb,
		"discart":    media.AspectDiscart,
		"keyart":     media.AspectKeyart,
		"folder":     media.AspectPoster,
		"cover":      media.AspectPoster,
		"backdrop":   media.AspectFanart,
		"background": media.AspectFanart,
		"logo":       media.AspectClearlogo,
		"disc":       media.AspectDiscart,
	}

	seasonDirGrammar = []*regexp.Regexp{
		regexp.MustCompile(`(?i)^s(\d{1,3})$`),
		regexp.MustCompile(`(?i)^season[ ._-]*(\d{1,3})$`),
	}

	seasonImageRegex = regexp.MustCompile(`(?i)^season(\d{1,3}|-all|-specials)(?:-([a-z]+))?$`)
)

func set(values ...string) map[string]bool {
	m := make(map[string]bool, len(values))
	for _, v := range values {
		m[v] = true
	}
	return m
}

// Classify returns the role of the entry at rel, a slash separated path relative to the item
// directory with at most one subdirectory.
func Classify(rel string, isDir bool) Class {
	dir, name := path.Split(rel)
	dir = strings.TrimSuffix(dir, "/")

	if isDir {
		if n, ok := SeasonDir(name); ok {
			return Class{Kind: ShowSubdir, Base: rel, Season: strconv.Itoa(n)}
		}
		return Class{Kind: Unclassified, Base: rel}
	}

	ext := strings.ToLower(strings.TrimPrefix(path.Ext(name), "."))
	stem := strings.TrimSuffix(name, path.Ext(name))
	c := Class{Base: media.TrimExt(rel), Ext: ext}

	if dir != "" {
		if n, ok := SeasonDir(path.Base(dir)); ok {
			c.SeasonHint = &n
		}
	}

	switch {
	case videoExtensions[ext]:
		c.Kind = Video
	case ext == "nfo":
		c.Kind = Nfo
	case subtitleExtensions[ext]:
		c.Kind = Subtitle
	case imageExtensions[ext]:
		if season, aspect, qualified, ok := seasonImage(stem); ok {
			c.Kind = SeasonImage
			c.Season = season
			c.Aspect = aspect
			c.Qualified = qualified
			return c
		}
		c.Kind = Image
		c.Aspect = AspectKeyword(stem)
	default:
		c.Kind = Unclassified
	}

	return c
}

// SeasonDir parses season directory names: S01, Season 1 and Specials
func SeasonDir(name string) (int, bool) {
	if strings.EqualFold(name, "specials") {
		return 0, true
	}

	for _, re := range seasonDirGrammar {
		m := re.FindStringSubmatch(name)
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			return 0, false
		}
		return n, true
	}

	return 0, false
}

// AspectKeyword maps a bare image name like "poster" or "folder" to its aspect
func AspectKeyword(name string) media.Aspect {
	return aspectKeywords[strings.ToLower(name)]
}

// seasonImage parses season01-poster, season-all-banner and season-specials. A bare season image is a poster.
func seasonImage(stem string) (season string, aspect media.Aspect, qualified bool, ok bool) {
	m := seasonImageRegex.FindStringSubmatch(stem)
	if m == nil {
		return "", "", false, false
	}

	aspect = media.AspectPoster
	if m[2] != "" {
		if aspect = AspectKeyword(m[2]); aspect == "" {
			return "", "", false, false
		}
		qualified = true
	}

	switch scope := strings.ToLower(m[1]); scope {
	case "-all":
		season = media.SeasonScopeAll
	case "-specials":
		season = media.SeasonScopeSpecials
	default:
		n, err := strconv.Atoi(scope)
		if err != nil {
			return "", "", false, false
		}
		season = strconv.Itoa(n)
	}

	return season, aspect, qualified, true
}

// splitQualifier splits a base at its last '.' or '-' inside the file name
func splitQualifier(base string) (string, string) {
	dirLen := strings.LastIndex(base, "/") + 1
	i := strings.LastIndexAny(base[dirLen:], ".-")
	if i <= 0 {
		return base, ""
	}
	return base[:dirLen+i], base[dirLen+i+1:]
}

// isHidden reports entries that are never scanned
func isHidden(name string) bool {
	return strings.HasPrefix(name, ".") || strings.HasPrefix(name, "+ ")
}
