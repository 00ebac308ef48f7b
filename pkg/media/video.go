package media

import "time"

// VideoInfo is what the video prober extracts from a media file
type VideoInfo struct {
	Duration  time.Duration   `json:"duration"`
	Video     *VideoTrack     `json:"video,omitempty"`
	Audio     []AudioTrack    `json:"audio,omitempty"`
	Subtitles []SubtitleTrack `json:"subtitles,omitempty"`
}

type VideoTrack struct {
	Codec  string `json:"codec"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

type AudioTrack struct {
	Codec    string `json:"codec"`
	Channels int    `json:"channels"`
	Language string `json:"language,omitempty"`
}

type SubtitleTrack struct {
	Codec    string `json:"codec"`
	Language string `json:"language,omitempty"`
	Forced   bool   `json:"forced,omitempty"`
}

// Subtitle is an external subtitle sidecar
type Subtitle struct {
	File FileIdentity `json:"file"`
	Lang string       `json:"lang"`
}

// RuntimeMinutes rounds the probed duration to whole minutes
func (v *VideoInfo) RuntimeMinutes() *int {
	if v == nil || v.Duration <= 0 {
		return nil
	}

	minutes := int(v.Duration.Round(time.Minute) / time.Minute)
	if minutes == 0 {
		return nil
	}

	return &minutes
}
