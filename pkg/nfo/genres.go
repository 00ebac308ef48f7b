package nfo

import (
	"slices"
	"strings"
)

// genreSynonyms maps lower cased spellings to the canonical genre
var genreSynonyms = map[string]string{
	"sci-fi":               "Sci-Fi",
	"scifi":                "Sci-Fi",
	"sci fi":               "Sci-Fi",
	"science fiction":      "Sci-Fi",
	"science-fiction":      "Sci-Fi",
	"film noir":            "Film Noir",
	"film-noir":            "Film Noir",
	"noir":                 "Film Noir",
	"tv movie":             "TV Movie",
	"tv-movie":             "TV Movie",
	"talk show":            "Talk Show",
	"talk-show":            "Talk Show",
	"reality tv":           "Reality",
	"reality-tv":           "Reality",
	"animated":             "Animation",
	"action and adventure": "Action & Adventure",
}

// NormalizeGenres splits combined genre values on ',' and '/', maps known synonyms and returns the
// sorted set. Unknown genres pass through unchanged.
func NormalizeGenres(in []string) []string {
	var out []string
	for _, value := range in {
		parts := strings.FieldsFunc(value, func(r rune) bool { return r == ',' || r == '/' })
		for _, g := range parts {
			g = strings.TrimSpace(g)
			if g == "" {
				continue
			}
			if canonical, ok := genreSynonyms[strings.ToLower(g)]; ok {
				g = canonical
			}
			out = append(out, g)
		}
	}

	slices.Sort(out)
	return slices.Compact(out)
}
