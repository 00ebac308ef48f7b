package media

// Nfo is the normalized content of one XML sidecar
type Nfo struct {
	Title         string     `json:"title,omitempty"`
	OriginalTitle string     `json:"originalTitle,omitempty"`
	SortTitle     string     `json:"sortTitle,omitempty"`
	Plot          string     `json:"plot,omitempty"`
	Tagline       string     `json:"tagline,omitempty"`
	Ratings       []Rating   `json:"ratings,omitempty"`
	UniqueIDs     []UniqueID `json:"uniqueIds,omitempty"`
	Actors        []Actor    `json:"actors,omitempty"`
	Credits       []string   `json:"credits,omitempty"`
	Directors     []string   `json:"directors,omitempty"`
	Countries     []string   `json:"countries,omitempty"`
	Genres        []string   `json:"genres,omitempty"`
	Studios       []string   `json:"studios,omitempty"`
	Premiered     string     `json:"premiered,omitempty"`
	Year          *int       `json:"year,omitempty"`
	ContentRating string     `json:"contentRating,omitempty"`
	Runtime       *int       `json:"runtime,omitempty"`

	// episodedetails only
	Aired          string `json:"aired,omitempty"`
	Season         *int   `json:"season,omitempty"`
	Episode        *int   `json:"episode,omitempty"`
	DisplaySeason  *int   `json:"displaySeason,omitempty"`
	DisplayEpisode *int   `json:"displayEpisode,omitempty"`
}

type Rating struct {
	Name    string   `json:"name,omitempty"`
	Value   *float64 `json:"value,omitempty"`
	Votes   *int64   `json:"votes,omitempty"`
	Max     *int     `json:"max,omitempty"`
	Default bool     `json:"default,omitempty"`
}

type UniqueID struct {
	Type    string `json:"type"`
	Value   string `json:"value"`
	Default bool   `json:"default,omitempty"`
}

type Actor struct {
	Name  string `json:"name"`
	Role  string `json:"role,omitempty"`
	Order *int   `json:"order,omitempty"`
	Thumb string `json:"thumb,omitempty"`
}
