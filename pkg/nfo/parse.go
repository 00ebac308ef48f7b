package nfo

import (
	"bufio"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/kasuboski/mediaindex/pkg/media"
	"github.com/spf13/cast"
	"golang.org/x/text/encoding/htmlindex"
)

var (
	ErrNoRoot = errors.New("no movie, tvshow or episodedetails root element")

	utf8BOM = []byte{0xEF, 0xBB, 0xBF}

	dateLayouts = []string{"2006-01-02", "2006-1-2", "2006/01/02", "2006.01.02"}
)

// document mirrors the kodi nfo layout shared by movie, tvshow and episodedetails roots
type document struct {
	Title          string        `xml:"title"`
	OriginalTitle  string        `xml:"originaltitle"`
	SortTitle      string        `xml:"sorttitle"`
	Plot           string        `xml:"plot"`
	Outline        string        `xml:"outline"`
	Tagline        string        `xml:"tagline"`
	Ratings        []xmlRating   `xml:"ratings>rating"`
	Rating         string        `xml:"rating"`
	Votes          string        `xml:"votes"`
	UniqueIDs      []xmlUniqueID `xml:"uniqueid"`
	ID             string        `xml:"id"`
	IMDBID         string        `xml:"imdbid"`
	TMDBID         string        `xml:"tmdbid"`
	Actors         []xmlActor    `xml:"actor"`
	Credits        []string      `xml:"credits"`
	Directors      []string      `xml:"director"`
	Countries      []string      `xml:"country"`
	Genres         []string      `xml:"genre"`
	Studios        []string      `xml:"studio"`
	Premiered      string        `xml:"premiered"`
	ReleaseDate    string        `xml:"releasedate"`
	Year           string        `xml:"year"`
	MPAA           string        `xml:"mpaa"`
	Runtime        string        `xml:"runtime"`
	Aired          string        `xml:"aired"`
	Season         string        `xml:"season"`
	Episode        string        `xml:"episode"`
	DisplaySeason  string        `xml:"displayseason"`
	DisplayEpisode string        `xml:"displayepisode"`
}

type xmlRating struct {
	Name    string `xml:"name,attr"`
	Max     string `xml:"max,attr"`
	Default string `xml:"default,attr"`
	Value   string `xml:"value"`
	Votes   string `xml:"votes"`
}

type xmlUniqueID struct {
	Type    string `xml:"type,attr"`
	Default string `xml:"default,attr"`
	Value   string `xml:",chardata"`
}

type xmlActor struct {
	Name  string `xml:"name"`
	Role  string `xml:"role"`
	Order string `xml:"order"`
	Thumb string `xml:"thumb"`
}

// Parse reads the first movie, tvshow or episodedetails element from r. Malformed numeric, date
// and duration fields resolve to absent. Only a structurally invalid document is an error.
func Parse(r io.Reader) (*media.Nfo, error) {
	br := bufio.NewReader(r)
	if head, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(head, utf8BOM) {
		_, _ = br.Discard(len(utf8BOM))
	}

	dec := xml.NewDecoder(br)
	dec.CharsetReader = charsetReader
	dec.Entity = xml.HTMLEntity

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return nil, ErrNoRoot
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read nfo: %w", err)
		}

		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}

		switch start.Name.Local {
		case "movie", "tvshow", "episodedetails":
		default:
			return nil, fmt.Errorf("%w: found %q", ErrNoRoot, start.Name.Local)
		}

		var doc document
		if err := dec.DecodeElement(&doc, &start); err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", start.Name.Local, err)
		}

		return doc.normalize(), nil
	}
}

func charsetReader(label string, input io.Reader) (io.Reader, error) {
	enc, err := htmlindex.Get(label)
	if err != nil {
		return nil, fmt.Errorf("unsupported charset %q: %w", label, err)
	}
	return enc.NewDecoder().Reader(input), nil
}

func (d document) normalize() *media.Nfo {
	n := &media.Nfo{
		Title:         clean(d.Title),
		OriginalTitle: clean(d.OriginalTitle),
		SortTitle:     clean(d.SortTitle),
		Plot:          clean(d.Plot),
		Tagline:       clean(d.Tagline),
		Credits:       cleanList(d.Credits),
		Directors:     cleanList(d.Directors),
		Countries:     cleanList(d.Countries),
		Genres:        NormalizeGenres(d.Genres),
		Studios:       cleanList(d.Studios),
		ContentRating: clean(d.MPAA),
		Runtime:       ParseRuntime(d.Runtime),
		Premiered:     parseDate(d.Premiered),
		Aired:         parseDate(d.Aired),
		Year:          toInt(d.Year),
		Season:        toInt(d.Season),
		Episode:       toInt(d.Episode),
	}

	if n.Plot == "" {
		n.Plot = clean(d.Outline)
	}

	if n.Premiered == "" {
		n.Premiered = parseDate(d.ReleaseDate)
	}

	if n.Year == nil && n.Premiered != "" {
		if t, err := time.Parse("2006-01-02", n.Premiered); err == nil {
			y := t.Year()
			n.Year = &y
		}
	}

	// kodi writes -1 when there is no override
	if v := toInt(d.DisplaySeason); v != nil && *v >= 0 {
		n.DisplaySeason = v
	}
	if v := toInt(d.DisplayEpisode); v != nil && *v >= 0 {
		n.DisplayEpisode = v
	}

	n.Ratings = d.ratings()
	n.UniqueIDs = d.uniqueIDs()

	for _, a := range d.Actors {
		name := clean(a.Name)
		if name == "" {
			continue
		}
		n.Actors = append(n.Actors, media.Actor{
			Name:  name,
			Role:  clean(a.Role),
			Order: toInt(a.Order),
			Thumb: clean(a.Thumb),
		})
	}

	return n
}

func (d document) ratings() []media.Rating {
	var out []media.Rating
	for _, r := range d.Ratings {
		rating := media.Rating{
			Name:    clean(r.Name),
			Value:   toFloat(r.Value),
			Votes:   toVotes(r.Votes),
			Max:     toInt(r.Max),
			Default: toBool(r.Default),
		}
		if rating.Value == nil && rating.Votes == nil {
			continue
		}
		out = append(out, rating)
	}

	// legacy single <rating>/<votes> pair
	if len(out) == 0 {
		if v := toFloat(d.Rating); v != nil {
			out = append(out, media.Rating{Name: "default", Value: v, Votes: toVotes(d.Votes), Default: true})
		}
	}

	return out
}

func (d document) uniqueIDs() []media.UniqueID {
	var out []media.UniqueID
	seen := map[string]bool{}
	add := func(typ, value string, def bool) {
		typ, value = strings.ToLower(clean(typ)), clean(value)
		if value == "" || seen[typ] {
			return
		}
		seen[typ] = true
		out = append(out, media.UniqueID{Type: typ, Value: value, Default: def})
	}

	for _, u := range d.UniqueIDs {
		typ := u.Type
		if typ == "" {
			typ = guessIDType(u.Value)
		}
		add(typ, u.Value, toBool(u.Default))
	}

	add("imdb", d.IMDBID, false)
	add("tmdb", d.TMDBID, false)
	if id := clean(d.ID); id != "" {
		add(guessIDType(id), id, false)
	}

	return out
}

func guessIDType(id string) string {
	id = strings.TrimSpace(id)
	if strings.HasPrefix(id, "tt") {
		return "imdb"
	}
	return "unknown"
}

func clean(s string) string {
	return strings.TrimSpace(s)
}

func cleanList(in []string) []string {
	var out []string
	for _, s := range in {
		if s = clean(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func parseDate(s string) string {
	s = clean(s)
	if s == "" {
		return ""
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02")
		}
	}
	return ""
}

// toInt parses base 10 integers, cast alone treats a leading zero as octal
func toInt(s string) *int {
	s = clean(s)
	neg := strings.HasPrefix(s, "-")
	if s = strings.TrimPrefix(s, "-"); s == "" {
		return nil
	}
	if s = strings.TrimLeft(s, "0"); s == "" || s[0] == '.' {
		s = "0" + s
	}

	v, err := cast.ToIntE(s)
	if err != nil {
		return nil
	}
	if neg {
		v = -v
	}
	return &v
}

func toFloat(s string) *float64 {
	s = clean(s)
	if s == "" {
		return nil
	}
	if !strings.Contains(s, ".") {
		s = strings.Replace(s, ",", ".", 1)
	}

	v, err := cast.ToFloat64E(s)
	if err != nil {
		return nil
	}
	return &v
}

func toVotes(s string) *int64 {
	s = strings.NewReplacer(",", "", ".", "", " ", "").Replace(clean(s))
	s = strings.TrimLeft(s, "0")
	if s == "" {
		return nil
	}

	v, err := cast.ToInt64E(s)
	if err != nil || v < 0 {
		return nil
	}
	return &v
}

func toBool(s string) bool {
	v, err := cast.ToBoolE(clean(s))
	return err == nil && v
}
