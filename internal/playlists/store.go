package playlists

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/fakefy/internal/models"
	"github.com/desertthunder/fakefy/internal/repositories"
	"github.com/desertthunder/fakefy/internal/shared"
)

// Options configures a [Store]. Zero values select defaults.
type Options struct {
	Logger             *log.Logger
	Clock              func() time.Time
	NewID              func() string
	OnPersistenceError func(error)
}

// Store is the playlist collection backed by durable storage.
type Store struct {
	mu        sync.Mutex
	durable   repositories.Storage
	playlists []models.Playlist
	logger    *log.Logger
	clock     func() time.Time
	newID     func() string
	onPersist func(error)

	// synced is the stored value this collection was last read from or written as.
	synced []byte
}

// NewStore creates a Store and loads the stored collection.
//
// A stored value that cannot be decoded yields an empty collection.
func NewStore(durable repositories.Storage, opts Options) *Store {
	s := &Store{
		durable:   durable,
		logger:    opts.Logger,
		clock:     opts.Clock,
		newID:     opts.NewID,
		onPersist: opts.OnPersistenceError,
	}
	if s.logger == nil {
		s.logger = shared.DiscardLogger()
	}
	if s.clock == nil {
		s.clock = shared.Now
	}
	if s.newID == nil {
		s.newID = shared.GenerateID
	}

	s.playlists = s.load()
	return s
}

// load reads the stored collection. Must be called with s.mu held, or before s is shared.
func (s *Store) load() []models.Playlist {
	raw, ok, err := s.durable.Get(repositories.PlaylistsKey)
	if err != nil {
		s.logger.Warn("discarding unreadable playlists", "error", err)
		return []models.Playlist{}
	}
	if !ok {
		raw = nil
	}
	s.synced = raw
	return s.decode(raw)
}

// decode parses a stored collection, dropping records that fail [models.Playlist.Validate].
func (s *Store) decode(raw []byte) []models.Playlist {
	if len(raw) == 0 {
		return []models.Playlist{}
	}

	var stored []models.Playlist
	if err := json.Unmarshal(raw, &stored); err != nil {
		s.logger.Warn("discarding unreadable playlists", "error", err)
		return []models.Playlist{}
	}

	out := make([]models.Playlist, 0, len(stored))
	for _, p := range stored {
		if err := p.Validate(); err != nil {
			s.logger.Warn("dropping malformed playlist", "id", p.ID, "error", err)
			continue
		}
		if p.Tracks == nil {
			p.Tracks = []models.Track{}
		}
		out = append(out, p)
	}
	return out
}

// sync reloads the collection when durable storage holds a value this store did not write, so a
// mutation never overwrites playlists saved by another process. Must be called with s.mu held.
//
// Unreadable storage keeps the in-memory collection, and so does storage unchanged since the last read or
// write, which preserves changes whose write failed.
func (s *Store) sync() {
	raw, ok, err := s.durable.Get(repositories.PlaylistsKey)
	if err != nil {
		return
	}
	if !ok {
		raw = nil
	}
	if bytes.Equal(raw, s.synced) {
		return
	}

	s.logger.Info("playlists changed in storage, reloading")
	s.playlists = s.decode(raw)
	s.synced = raw
}

// persist writes the whole collection. Must be called with s.mu held.
func (s *Store) persist() {
	raw, err := json.Marshal(s.playlists)
	if err == nil {
		err = s.durable.Set(repositories.PlaylistsKey, raw)
	}
	if err != nil {
		err = fmt.Errorf("%w: failed to write %s: %v", shared.ErrPersistence, repositories.PlaylistsKey, err)
		s.logger.Error("failed to persist playlists", "error", err)
		if s.onPersist != nil {
			s.onPersist(err)
		}
		return
	}
	s.synced = raw
}

func (s *Store) now() models.Timestamp {
	return models.NewTimestamp(s.clock())
}

// index returns the position of the playlist with id, or -1. Must be called with s.mu held.
func (s *Store) index(id string) int {
	for i := range s.playlists {
		if s.playlists[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) touch(i int) {
	ts := s.now()
	if ts.Before(s.playlists[i].CreatedAt.Time) {
		ts = s.playlists[i].CreatedAt
	}
	s.playlists[i].UpdatedAt = &ts
}

// Create adds a new playlist with a generated id at the front of the collection.
func (s *Store) Create(name, ownerID string) (models.Playlist, error) {
	return s.CreateWithID("", name, ownerID)
}

// CreateWithID adds a new playlist using id, or a generated id when id is empty.
//
// An id already present in the collection is rejected.
func (s *Store) CreateWithID(id, name, ownerID string) (models.Playlist, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Playlist{}, fmt.Errorf("%w: playlist name is required", shared.ErrValidation)
	}
	if ownerID == "" {
		return models.Playlist{}, fmt.Errorf("%w: playlist owner is required", shared.ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sync()

	if id == "" {
		id = s.newID()
	}
	if s.index(id) >= 0 {
		return models.Playlist{}, fmt.Errorf("%w: playlist id %s already exists", shared.ErrValidation, id)
	}

	now := s.now()
	updated := now
	p := models.Playlist{
		ID:        id,
		Name:      name,
		OwnerID:   ownerID,
		Tracks:    []models.Track{},
		CreatedAt: now,
		UpdatedAt: &updated,
	}

	s.playlists = append([]models.Playlist{p}, s.playlists...)
	s.persist()

	s.logger.Debug("created playlist", "id", id, "owner", ownerID)
	return p.Clone(), nil
}

// Rename assigns a new trimmed name to the playlist.
func (s *Store) Rename(id, name string) error {
	name = strings.TrimSpace(name)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sync()

	i := s.index(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", shared.ErrPlaylistNotFound, id)
	}
	if name == "" {
		return fmt.Errorf("%w: playlist name is required", shared.ErrValidation)
	}

	s.playlists[i].Name = name
	s.touch(i)
	s.persist()
	return nil
}

// Delete removes the playlist with id and reports whether it existed.
//
// The collection is persisted on every call.
func (s *Store) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sync()

	removed := false
	kept := s.playlists[:0]
	for _, p := range s.playlists {
		if p.ID == id {
			removed = true
			continue
		}
		kept = append(kept, p)
	}
	s.playlists = kept
	s.persist()
	return removed
}

// AddTrack appends track to the playlist.
//
// Returns false without changes when a track with the same id is already present.
func (s *Store) AddTrack(playlistID string, track models.Track) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sync()

	i := s.index(playlistID)
	if i < 0 {
		return false, fmt.Errorf("%w: %s", shared.ErrPlaylistNotFound, playlistID)
	}
	if s.playlists[i].HasTrack(track.ID) {
		return false, nil
	}

	if track.Stats != nil {
		stats := *track.Stats
		track.Stats = &stats
	}
	s.playlists[i].Tracks = append(s.playlists[i].Tracks, track)
	s.touch(i)
	s.persist()
	return true, nil
}

// RemoveTrack removes every entry with trackID and reports whether any was found.
//
// UpdatedAt is bumped and the collection persisted even when nothing matched.
func (s *Store) RemoveTrack(playlistID, trackID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sync()

	i := s.index(playlistID)
	if i < 0 {
		return false, fmt.Errorf("%w: %s", shared.ErrPlaylistNotFound, playlistID)
	}

	tracks := s.playlists[i].Tracks
	kept := make([]models.Track, 0, len(tracks))
	for _, t := range tracks {
		if t.ID != trackID {
			kept = append(kept, t)
		}
	}

	s.playlists[i].Tracks = kept
	s.touch(i)
	s.persist()
	return len(kept) != len(tracks), nil
}

// Reorder moves the track at from to position to, keeping the relative order of the others.
//
// Out of range indices leave the playlist untouched and return false.
func (s *Store) Reorder(playlistID string, from, to int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sync()

	i := s.index(playlistID)
	if i < 0 {
		return false, fmt.Errorf("%w: %s", shared.ErrPlaylistNotFound, playlistID)
	}

	tracks := s.playlists[i].Tracks
	n := len(tracks)
	if from < 0 || from >= n || to < 0 || to >= n {
		return false, nil
	}

	moved := tracks[from]
	rest := make([]models.Track, 0, n)
	rest = append(rest, tracks[:from]...)
	rest = append(rest, tracks[from+1:]...)

	out := make([]models.Track, 0, n)
	out = append(out, rest[:to]...)
	out = append(out, moved)
	out = append(out, rest[to:]...)

	s.playlists[i].Tracks = out
	s.touch(i)
	s.persist()
	return true, nil
}

// ListByOwner returns the owner's playlists, newest first.
func (s *Store) ListByOwner(ownerID string) []models.Playlist {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []models.Playlist{}
	for _, p := range s.playlists {
		if p.OwnerID == ownerID {
			out = append(out, p.Clone())
		}
	}
	return out
}

// Get returns a copy of the playlist with id.
func (s *Store) Get(id string) (models.Playlist, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.index(id)
	if i < 0 {
		return models.Playlist{}, false
	}
	return s.playlists[i].Clone(), true
}

// All returns a copy of the whole collection in stored order.
func (s *Store) All() []models.Playlist {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Playlist, len(s.playlists))
	for i, p := range s.playlists {
		out[i] = p.Clone()
	}
	return out
}

// Reload discards the in-memory collection and reads it again from durable storage.
func (s *Store) Reload() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.playlists = s.load()
}

// ClearByOwner removes every playlist owned by ownerID and returns how many were removed.
func (s *Store) ClearByOwner(ownerID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sync()

	kept := make([]models.Playlist, 0, len(s.playlists))
	for _, p := range s.playlists {
		if p.OwnerID != ownerID {
			kept = append(kept, p)
		}
	}
	removed := len(s.playlists) - len(kept)
	s.playlists = kept
	s.persist()
	return removed
}

// TrackCount returns the number of tracks in the playlist, or 0 when it does not exist.
func (s *Store) TrackCount(id string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.index(id); i >= 0 {
		return len(s.playlists[i].Tracks)
	}
	return 0
}

// Search returns the owner's playlists whose name contains query, ignoring case.
//
// An empty query matches every playlist of the owner.
func (s *Store) Search(ownerID, query string) []models.Playlist {
	q := strings.ToLower(strings.TrimSpace(query))

	out := []models.Playlist{}
	for _, p := range s.ListByOwner(ownerID) {
		if q == "" || strings.Contains(strings.ToLower(p.Name), q) {
			out = append(out, p)
		}
	}
	return out
}

// Recent returns up to n of the owner's playlists, most recently created first.
func (s *Store) Recent(ownerID string, n int) []models.Playlist {
	if n <= 0 {
		return []models.Playlist{}
	}

	out := s.ListByOwner(ownerID)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt.Time)
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}
