package domain

import "time"

// Playlist is an ordered, duplicate-free list of videos owned by one user.
type Playlist struct {
	Entity
	OwnerID     string `json:"owner_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// PlaylistEntry places a video in a playlist.
type PlaylistEntry struct {
	PlaylistID string    `json:"playlist_id"`
	VideoID    string    `json:"video_id"`
	Position   int       `json:"position"`
	AddedAt    time.Time `json:"added_at"`
}
