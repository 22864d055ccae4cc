// package models defines the data model for the muse chat client
package models

import (
	"time"
)

// Role identifies the author of a [ChatMessage].
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ImageKind classifies an extracted cover-art reference by the resource it depicts.
type ImageKind string

const (
	KindAlbum    ImageKind = "album"
	KindArtist   ImageKind = "artist"
	KindPlaylist ImageKind = "playlist"
	KindTrack    ImageKind = "track"
)

// ImageReference is a cover-art URL recovered from an assistant reply, with a
// best-effort classification. Immutable once attached to a message.
type ImageReference struct {
	URL      string    `json:"url"`
	Kind     ImageKind `json:"kind"`
	Title    string    `json:"title,omitempty"`
	Subtitle string    `json:"subtitle,omitempty"`
}

// WrappedArtist is one entry of a wrapped summary's top-artist list.
type WrappedArtist struct {
	Name  string `json:"name"`
	Image string `json:"image,omitempty"`
}

// WrappedSong is one entry of a wrapped summary's top-song list.
type WrappedSong struct {
	Name   string `json:"name"`
	Artist string `json:"artist,omitempty"`
}

// WrappedSummary is the "year in review" record embedded in an assistant
// reply behind the wrapped sentinel. Fields arrive from a generative backend
// and must be treated as optional when rendering.
type WrappedSummary struct {
	TopArtists     []WrappedArtist `json:"topArtists"`
	TopSongs       []WrappedSong   `json:"topSongs"`
	TopGenre       string          `json:"topGenre"`
	Timeframe      string          `json:"timeframe"`
	TopArtistImage string          `json:"topArtistImage,omitempty"`
}

// ChatMessage is one turn of the conversation. Messages are append-only:
// once added to a session log they are never edited or removed (logout clears
// the whole log).
type ChatMessage struct {
	ID        string           `json:"id"`
	Role      Role             `json:"role"`
	Content   string           `json:"content"`
	Timestamp time.Time        `json:"timestamp"`
	Images    []ImageReference `json:"images,omitempty"`
	Wrapped   *WrappedSummary  `json:"wrapped,omitempty"`
}

// ProfileImage is an avatar resource attached to a [UserProfile].
type ProfileImage struct {
	URL    string `json:"url"`
	Height int    `json:"height"`
	Width  int    `json:"width"`
}

// UserProfile is the authenticated user's profile as reported by the
// assistant backend's auth status endpoint.
type UserProfile struct {
	ID          string         `json:"id"`
	DisplayName string         `json:"display_name"`
	Email       string         `json:"email,omitempty"`
	Followers   int            `json:"followers"`
	Images      []ProfileImage `json:"images,omitempty"`
}

// Name returns the best display name for the profile, falling back to the ID.
func (u *UserProfile) Name() string {
	if u == nil {
		return ""
	}
	if u.DisplayName != "" {
		return u.DisplayName
	}
	return u.ID
}
