package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/fakefy/internal/formatter"
	"github.com/desertthunder/fakefy/internal/models"
	"github.com/desertthunder/fakefy/internal/tasks"
)

var (
	_ list.Item = playlistItem{}
	_ list.Item = trackItem{}
	_ list.Item = albumItem{}
)

// playlistItem wraps [models.Playlist] to implement [list.Item].
type playlistItem struct {
	playlist models.Playlist
}

func (i playlistItem) FilterValue() string { return i.playlist.Name }
func (i playlistItem) Title() string       { return i.playlist.Name }
func (i playlistItem) Description() string {
	return fmt.Sprintf("%d tracks | updated %s", len(i.playlist.Tracks), formatter.FormatTimestamp(i.playlist.UpdatedAt))
}

// trackItem wraps [models.Track] to implement [list.Item].
type trackItem struct {
	track models.Track
}

func (i trackItem) FilterValue() string { return i.track.Name + " " + i.track.Artist }
func (i trackItem) Title() string       { return i.track.Name }
func (i trackItem) Description() string {
	parts := []string{i.track.Artist}
	if i.track.Album != "" {
		parts = append(parts, i.track.Album)
	}
	if i.track.Year != "" {
		parts = append(parts, i.track.Year)
	}
	if views := i.track.Views(); views != "" {
		parts = append(parts, views+" views")
	}
	return strings.Join(parts, " | ")
}

// albumItem wraps [models.Album] to implement [list.Item].
type albumItem struct {
	album models.Album
}

func (i albumItem) FilterValue() string { return i.album.Name + " " + i.album.Artist }
func (i albumItem) Title() string       { return "[album] " + i.album.Name }
func (i albumItem) Description() string {
	parts := []string{i.album.Artist}
	if i.album.Year != "" {
		parts = append(parts, i.album.Year)
	}
	if i.album.Genre != "" {
		parts = append(parts, i.album.Genre)
	}
	return strings.Join(parts, " | ")
}

func playlistItems(playlists []models.Playlist) []list.Item {
	items := make([]list.Item, len(playlists))
	for i, p := range playlists {
		items[i] = playlistItem{playlist: p}
	}
	return items
}

func trackItems(tracks []models.Track) []list.Item {
	items := make([]list.Item, len(tracks))
	for i, t := range tracks {
		items[i] = trackItem{track: t}
	}
	return items
}

func albumItems(albums []models.Album) []list.Item {
	items := make([]list.Item, len(albums))
	for i, a := range albums {
		items[i] = albumItem{album: a}
	}
	return items
}

func resultItems(results []tasks.SearchResult) []list.Item {
	items := make([]list.Item, 0, len(results))
	for _, r := range results {
		switch {
		case r.Track != nil:
			items = append(items, trackItem{track: *r.Track})
		case r.Album != nil:
			items = append(items, albumItem{album: *r.Album})
		}
	}
	return items
}
