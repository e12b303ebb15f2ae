package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Timestamp is a [time.Time] that serializes as integer milliseconds since the Unix epoch.
type Timestamp struct {
	time.Time
}

// NewTimestamp truncates t to millisecond precision so values survive a JSON round trip unchanged.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: time.UnixMilli(t.UnixMilli())}
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.UnixMilli())
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	var ms float64
	if err := json.Unmarshal(data, &ms); err != nil {
		return fmt.Errorf("timestamp must be epoch milliseconds: %w", err)
	}
	t.Time = time.UnixMilli(int64(ms))
	return nil
}

// TrackStats holds the numeric-as-string counters the metadata API reports.
type TrackStats struct {
	Plays     string `json:"plays,omitempty"`
	Listeners string `json:"listeners,omitempty"`
	Views     string `json:"views,omitempty"`
	Likes     string `json:"likes,omitempty"`
	Loved     string `json:"loved,omitempty"`
}

// Track represents a song as issued by the metadata API.
//
// Only ID carries meaning for the playlist core (deduplication key); every other field is opaque payload.
type Track struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Artist      string      `json:"artist"`
	Genre       string      `json:"genre,omitempty"`
	Year        string      `json:"year,omitempty"`
	Album       string      `json:"album,omitempty"`
	AlbumID     string      `json:"albumId,omitempty"`
	Thumb       string      `json:"thumb,omitempty"`
	VideoURL    string      `json:"videoUrl,omitempty"`
	Description string      `json:"descEN,omitempty"`
	Style       string      `json:"style,omitempty"`
	Mood        string      `json:"mood,omitempty"`
	Theme       string      `json:"theme,omitempty"`
	Stats       *TrackStats `json:"stats,omitempty"`
	Score       float64     `json:"score,omitempty"`
}

// Views returns the video view counter, or "" when the API reported none.
func (t Track) Views() string {
	if t.Stats == nil {
		return ""
	}
	return t.Stats.Views
}

// Album represents an album search result.
type Album struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Artist string `json:"artist"`
	Year   string `json:"year,omitempty"`
	Genre  string `json:"genre,omitempty"`
	Thumb  string `json:"thumb,omitempty"`
}

// Playlist is a user-owned, ordered list of tracks.
//
// Tracks holds no two entries with the same ID. UpdatedAt is nil only for stored records that never recorded it.
type Playlist struct {
	ID        string     `json:"id"`
	Name      string     `json:"nome"`
	OwnerID   string     `json:"usuarioId"`
	Tracks    []Track    `json:"musicas"`
	CreatedAt Timestamp  `json:"createdAt"`
	UpdatedAt *Timestamp `json:"updatedAt,omitempty"`
}

// Validate checks the fields every stored playlist must carry.
func (p Playlist) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("playlist id is required")
	}
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("playlist name is required")
	}
	if p.OwnerID == "" {
		return fmt.Errorf("playlist owner is required")
	}
	return nil
}

// HasTrack reports whether a track with the given id is already in the playlist.
func (p Playlist) HasTrack(trackID string) bool {
	for _, t := range p.Tracks {
		if t.ID == trackID {
			return true
		}
	}
	return false
}

// Clone returns a deep copy whose track slice shares nothing with p.
func (p Playlist) Clone() Playlist {
	c := p
	c.Tracks = make([]Track, len(p.Tracks))
	for i, t := range p.Tracks {
		if t.Stats != nil {
			stats := *t.Stats
			t.Stats = &stats
		}
		c.Tracks[i] = t
	}
	if p.UpdatedAt != nil {
		u := *p.UpdatedAt
		c.UpdatedAt = &u
	}
	return c
}

// IdentityRecord maps an email address to the opaque user id minted on first login.
type IdentityRecord struct {
	Email     string    `json:"email"`
	UserID    string    `json:"userId"`
	CreatedAt Timestamp `json:"createdAt"`
}

// Session is the single active login.
type Session struct {
	UserID         string    `json:"userId"`
	Email          string    `json:"email"`
	LastLogin      time.Time `json:"lastLogin"`
	LastPlaylistID *string   `json:"lastPlaylistId"`
}

// LastPlaylist returns the last viewed playlist id, or "" when none is recorded.
func (s Session) LastPlaylist() string {
	if s.LastPlaylistID == nil {
		return ""
	}
	return *s.LastPlaylistID
}

// DisplayName returns the local part of the session email.
func (s Session) DisplayName() string {
	if name, _, ok := strings.Cut(s.Email, "@"); ok && name != "" {
		return name
	}
	return "user"
}
