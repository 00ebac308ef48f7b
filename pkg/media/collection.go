package media

// CollectionType tags what a collection holds
type CollectionType string

const (
	CollectionMovies CollectionType = "movies"
	CollectionShows  CollectionType = "shows"
)

// Collection is a named root directory of media items
type Collection struct {
	ID        int64          `json:"id"`
	Name      string         `json:"name"`
	Directory string         `json:"directory"`
	Type      CollectionType `json:"type"`
}
