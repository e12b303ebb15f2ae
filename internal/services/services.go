// package services defines interface MetadataService for reading track and album metadata over HTTP
//
// TheAudioDB (v1 JSON API)
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"

	"github.com/desertthunder/fakefy/internal/models"
)

// MetadataService defines the read-only catalog operations the playlist manager consumes.
type MetadataService interface {
	// Top10 returns up to ten of the artist's most popular tracks.
	Top10(ctx context.Context, artist string) ([]models.Track, error)

	// SearchTracks searches tracks by artist and title.
	// An empty artist searches by title only.
	SearchTracks(ctx context.Context, artist, title string) ([]models.Track, error)

	// SearchAlbums searches albums by artist and album name.
	// An empty artist searches by album name only.
	SearchAlbums(ctx context.Context, artist, album string) ([]models.Album, error)

	// LookupTrack fetches a single track by its id.
	LookupTrack(ctx context.Context, id string) (*models.Track, error)
}

// flexString decodes a JSON string, number, or null into a string.
//
// TheAudioDB reports counters as strings but older records carry raw numbers.
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = flexString(n.String())
	return nil
}

// AudioDBTrack is a track record as returned by TheAudioDB.
type AudioDBTrack struct {
	IDTrack           flexString `json:"idTrack"`
	StrTrack          flexString `json:"strTrack"`
	StrArtist         flexString `json:"strArtist"`
	StrGenre          flexString `json:"strGenre"`
	IntYearReleased   flexString `json:"intYearReleased"`
	StrAlbum          flexString `json:"strAlbum"`
	IDAlbum           flexString `json:"idAlbum"`
	StrTrackThumb     flexString `json:"strTrackThumb"`
	StrMusicVid       flexString `json:"strMusicVid"`
	StrDescriptionEN  flexString `json:"strDescriptionEN"`
	StrStyle          flexString `json:"strStyle"`
	StrMood           flexString `json:"strMood"`
	StrTheme          flexString `json:"strTheme"`
	IntTotalPlays     flexString `json:"intTotalPlays"`
	IntTotalListeners flexString `json:"intTotalListeners"`
	IntMusicVidViews  flexString `json:"intMusicVidViews"`
	IntMusicVidLikes  flexString `json:"intMusicVidLikes"`
	IntLoved          flexString `json:"intLoved"`
}

// AudioDBAlbum is an album record as returned by TheAudioDB.
type AudioDBAlbum struct {
	IDAlbum         flexString `json:"idAlbum"`
	StrAlbum        flexString `json:"strAlbum"`
	StrArtist       flexString `json:"strArtist"`
	IntYearReleased flexString `json:"intYearReleased"`
	StrGenre        flexString `json:"strGenre"`
	StrAlbumThumb   flexString `json:"strAlbumThumb"`
}

func clean(s flexString) string {
	return strings.TrimSpace(string(s))
}

// Track maps the record to a [models.Track].
func (t AudioDBTrack) Track() models.Track {
	track := models.Track{
		ID:          clean(t.IDTrack),
		Name:        clean(t.StrTrack),
		Artist:      clean(t.StrArtist),
		Genre:       clean(t.StrGenre),
		Year:        clean(t.IntYearReleased),
		Album:       clean(t.StrAlbum),
		AlbumID:     clean(t.IDAlbum),
		Thumb:       clean(t.StrTrackThumb),
		VideoURL:    clean(t.StrMusicVid),
		Description: clean(t.StrDescriptionEN),
		Style:       clean(t.StrStyle),
		Mood:        clean(t.StrMood),
		Theme:       clean(t.StrTheme),
	}

	stats := models.TrackStats{
		Plays:     clean(t.IntTotalPlays),
		Listeners: clean(t.IntTotalListeners),
		Views:     clean(t.IntMusicVidViews),
		Likes:     clean(t.IntMusicVidLikes),
		Loved:     clean(t.IntLoved),
	}
	if stats != (models.TrackStats{}) {
		track.Stats = &stats
	}
	return track
}

// Album maps the record to a [models.Album].
func (a AudioDBAlbum) Album() models.Album {
	return models.Album{
		ID:     clean(a.IDAlbum),
		Name:   clean(a.StrAlbum),
		Artist: clean(a.StrArtist),
		Year:   clean(a.IntYearReleased),
		Genre:  clean(a.StrGenre),
		Thumb:  clean(a.StrAlbumThumb),
	}
}

func mapTracks(raw []AudioDBTrack) []models.Track {
	tracks := make([]models.Track, 0, len(raw))
	for _, r := range raw {
		t := r.Track()
		if t.ID == "" {
			continue
		}
		tracks = append(tracks, t)
	}
	return tracks
}

func mapAlbums(raw []AudioDBAlbum) []models.Album {
	albums := make([]models.Album, 0, len(raw))
	for _, r := range raw {
		a := r.Album()
		if a.ID == "" {
			continue
		}
		albums = append(albums, a)
	}
	return albums
}
