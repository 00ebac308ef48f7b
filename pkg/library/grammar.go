package library

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// EpisodeNumber is what the episode grammar extracts from a file name
type EpisodeNumber struct {
	Season  int
	Episode int
	Double  bool
}

type episodeRule struct {
	name string
	re   *regexp.Regexp
	// find overrides the default FindAllStringSubmatch
	find    func(re *regexp.Regexp, name string) [][]string
	extract func(matches [][]string, hint *int) (EpisodeNumber, bool)
}

// episodeGrammar is evaluated in order and the first rule that accepts a name wins
var episodeGrammar = []episodeRule{
	{
		name: "SxxEyy",
		re:   regexp.MustCompile(`(?i)s(\d{1,3})e(\d{1,4})(-?e\d{1,4})?`),
		extract: func(matches [][]string, _ *int) (EpisodeNumber, bool) {
			m := matches[0]
			if m[3] != "" {
				return EpisodeNumber{}, false
			}
			return EpisodeNumber{Season: atoi(m[1]), Episode: atoi(m[2])}, true
		},
	},
	{
		name: "SxxEaaEbb",
		re:   regexp.MustCompile(`(?i)s(\d{1,3})e(\d{1,4})-?e(\d{1,4})`),
		extract: func(matches [][]string, _ *int) (EpisodeNumber, bool) {
			m := matches[0]
			return EpisodeNumber{Season: atoi(m[1]), Episode: atoi(m[2]), Double: true}, true
		},
	},
	{
		name: "air date",
		re:   regexp.MustCompile(`(?:^|\D)((?:19|20)\d{2})[.-](\d{2})[.-](\d{2})(?:\D|$)`),
		extract: func(matches [][]string, hint *int) (EpisodeNumber, bool) {
			for _, m := range matches {
				date := m[1] + "-" + m[2] + "-" + m[3]
				if _, err := time.Parse("2006-01-02", date); err != nil {
					continue
				}
				season := 0
				if hint != nil {
					season = *hint
				}
				return EpisodeNumber{Season: season, Episode: atoi(m[1] + m[2] + m[3])}, true
			}
			return EpisodeNumber{}, false
		},
	},
	{
		name: "NxNN",
		re:   regexp.MustCompile(`(?i)^(\d{1,2})(x?)(\d{2})(?:[^\dpi]|$)`),
		find: findAtNumberStarts,
		extract: func(matches [][]string, hint *int) (EpisodeNumber, bool) {
			for _, m := range matches {
				// a bare year is not an episode
				if m[2] == "" && len(m[1]) == 2 && (m[1] == "19" || m[1] == "20") {
					continue
				}
				n := EpisodeNumber{Season: atoi(m[1]), Episode: atoi(m[3])}
				if hint != nil && *hint != n.Season {
					continue
				}
				return n, true
			}
			return EpisodeNumber{}, false
		},
	},
}

// ParseEpisode extracts season and episode numbers from a file name without its extension. The
// hint is the season number of the directory the file was found in, if any.
func ParseEpisode(name string, hint *int) (EpisodeNumber, bool) {
	for _, rule := range episodeGrammar {
		var matches [][]string
		if rule.find != nil {
			matches = rule.find(rule.re, name)
		} else {
			matches = rule.re.FindAllStringSubmatch(name, -1)
		}
		if matches == nil {
			continue
		}
		if n, ok := rule.extract(matches, hint); ok {
			return n, true
		}
	}
	return EpisodeNumber{}, false
}

// findAtNumberStarts tries an anchored pattern at every number that is not part of a longer
// number or of a codec name like x264 or h265
func findAtNumberStarts(re *regexp.Regexp, name string) [][]string {
	var out [][]string
	for i := 0; i < len(name); i++ {
		if !isDigit(name[i]) {
			continue
		}
		if i > 0 {
			prev := name[i-1] | 0x20
			if isDigit(name[i-1]) || prev == 'x' || prev == 'h' {
				continue
			}
		}
		if m := re.FindStringSubmatch(name[i:]); m != nil {
			out = append(out, m)
		}
	}
	return out
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

var titleYearRegex = regexp.MustCompile(`^(.+?)\s*\((\d{4})\)`)

// TitleFromDir splits a "<title> (<year>)" directory name. Without a year the whole name is the title.
func TitleFromDir(name string) (string, *int) {
	m := titleYearRegex.FindStringSubmatch(name)
	if m == nil {
		return strings.TrimSpace(name), nil
	}

	year := atoi(m[2])
	return strings.TrimSpace(m[1]), &year
}

func atoi(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
