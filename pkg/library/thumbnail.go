package library

import (
	"slices"

	"github.com/kasuboski/mediaindex/pkg/media"
)

// Thumbnails reconciles the images found in a scan against the thumbnails stored for one owner
type Thumbnails struct {
	items  []media.Thumbnail
	nextID int
}

// NewThumbnails starts a reconciliation. Every previous thumbnail begins as deleted and has to be
// found again to survive.
func NewThumbnails(prev []media.Thumbnail) *Thumbnails {
	t := &Thumbnails{nextID: 1}
	for _, p := range prev {
		p.State = transition(p.State, media.LifecycleDeleted)
		t.items = append(t.items, p)
		if p.ImageID >= t.nextID {
			t.nextID = p.ImageID + 1
		}
	}
	return t
}

// Add records an image found during the scan. An image matching a previous file identity keeps
// its image id, anything else is appended as new.
func (t *Thumbnails) Add(file media.FileIdentity, aspect media.Aspect, season *string, qualified bool) {
	for i := range t.items {
		if !t.items[i].File.Equal(file) {
			continue
		}
		if t.items[i].State == media.LifecycleDeleted {
			t.items[i].State = transition(t.items[i].State, media.LifecycleUnchanged)
		}
		return
	}

	t.items = append(t.items, media.Thumbnail{
		ImageID:   t.nextID,
		File:      file,
		Aspect:    aspect,
		Season:    season,
		Qualified: qualified,
		State:     media.LifecycleNew,
	})
	t.nextID++
}

type thumbKey struct {
	aspect media.Aspect
	season string
}

// Finalize prefers qualified names like show-poster.jpg over bare names like poster.jpg. When both
// are live for the same aspect and season scope the bare one is dropped.
func (t *Thumbnails) Finalize() {
	qualified := map[thumbKey]bool{}
	for _, th := range t.items {
		if th.State != media.LifecycleDeleted && th.Qualified {
			qualified[thumbKey{th.Aspect, th.SeasonKey()}] = true
		}
	}

	t.items = slices.DeleteFunc(t.items, func(th media.Thumbnail) bool {
		return th.State == media.LifecycleNew && !th.Qualified && qualified[thumbKey{th.Aspect, th.SeasonKey()}]
	})

	for i := range t.items {
		th := &t.items[i]
		if th.State == media.LifecycleUnchanged && !th.Qualified && qualified[thumbKey{th.Aspect, th.SeasonKey()}] {
			th.State = transition(th.State, media.LifecycleDeleted)
		}
	}
}

// Live returns the thumbnails that survived the scan
func (t *Thumbnails) Live() []media.Thumbnail {
	var out []media.Thumbnail
	for _, th := range t.items {
		if th.State != media.LifecycleDeleted {
			out = append(out, th)
		}
	}
	return out
}

// Deleted returns the previous thumbnails that were not found again
func (t *Thumbnails) Deleted() []media.Thumbnail {
	var out []media.Thumbnail
	for _, th := range t.items {
		if th.State == media.LifecycleDeleted {
			out = append(out, th)
		}
	}
	return out
}

// transition moves a lifecycle state through its state machine. Disallowed moves keep the current state.
func transition(from, to media.Lifecycle) media.Lifecycle {
	if from == "" {
		from = media.LifecycleUnchanged
	}
	m := from.Machine()
	if err := m.ToState(to); err != nil {
		return from
	}
	return m.Current()
}
