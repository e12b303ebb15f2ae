// Package app wires the playlist, session and identity stores and the catalog engine into a single
// application context.
//
// An [App] is constructed once at process start and handed to the CLI or the TUI. Every playlist
// operation requires an active session and only sees playlists owned by the logged-in user.
package app

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/fakefy/internal/identity"
	"github.com/desertthunder/fakefy/internal/models"
	"github.com/desertthunder/fakefy/internal/playlists"
	"github.com/desertthunder/fakefy/internal/repositories"
	"github.com/desertthunder/fakefy/internal/services"
	"github.com/desertthunder/fakefy/internal/session"
	"github.com/desertthunder/fakefy/internal/shared"
	"github.com/desertthunder/fakefy/internal/tasks"
)

// Deps holds everything [New] needs. Durable and Transient default to in-memory storage.
type Deps struct {
	Durable            repositories.Storage
	Transient          repositories.Storage
	Metadata           services.MetadataService
	Catalog            tasks.CatalogOptions
	Logger             *log.Logger
	Clock              func() time.Time
	NewID              func() string
	OnPersistenceError func(error)
}

// App is the application context.
type App struct {
	Playlists *playlists.Store
	Sessions  *session.Holder
	Identity  *identity.Registry
	Catalog   *tasks.CatalogEngine
	Sequencer *tasks.Sequencer

	logger *log.Logger
}

// New constructs the stores, restoring any persisted state.
func New(deps Deps) *App {
	if deps.Durable == nil {
		deps.Durable = repositories.NewMemoryStorage()
	}
	if deps.Transient == nil {
		deps.Transient = repositories.NewMemoryStorage()
	}
	if deps.Logger == nil {
		deps.Logger = shared.DiscardLogger()
	}
	if deps.Catalog.Logger == nil {
		deps.Catalog.Logger = shared.WithLogger(deps.Logger, "component", "catalog")
	}

	registry := identity.NewRegistry(deps.Durable, identity.Options{
		Logger:             shared.WithLogger(deps.Logger, "component", "identity"),
		Clock:              deps.Clock,
		NewID:              deps.NewID,
		OnPersistenceError: deps.OnPersistenceError,
	})

	return &App{
		Identity: registry,
		Playlists: playlists.NewStore(deps.Durable, playlists.Options{
			Logger:             shared.WithLogger(deps.Logger, "component", "playlists"),
			Clock:              deps.Clock,
			NewID:              deps.NewID,
			OnPersistenceError: deps.OnPersistenceError,
		}),
		Sessions: session.NewHolder(deps.Durable, deps.Transient, registry, session.Options{
			Logger:             shared.WithLogger(deps.Logger, "component", "session"),
			Clock:              deps.Clock,
			OnPersistenceError: deps.OnPersistenceError,
		}),
		Catalog:   tasks.NewCatalogEngine(deps.Metadata, deps.Catalog),
		Sequencer: tasks.NewSequencer(),
		logger:    deps.Logger,
	}
}

// Login validates the credentials and starts a session.
func (a *App) Login(email, password string) (models.Session, error) {
	return a.Sessions.Login(email, password)
}

// Logout ends the session. Calling it without a session is a no-op.
func (a *App) Logout() {
	a.Sessions.Logout()
}

// CurrentSession returns the active session, if any.
func (a *App) CurrentSession() (models.Session, bool) {
	return a.Sessions.Current()
}

func (a *App) userID() (string, error) {
	s, ok := a.Sessions.Current()
	if !ok {
		return "", shared.ErrNotAuthenticated
	}
	return s.UserID, nil
}

// owned returns the playlist with id when it belongs to the current user.
func (a *App) owned(id string) (models.Playlist, error) {
	uid, err := a.userID()
	if err != nil {
		return models.Playlist{}, err
	}
	p, ok := a.Playlists.Get(id)
	if !ok || p.OwnerID != uid {
		return models.Playlist{}, fmt.Errorf("%w: %s", shared.ErrPlaylistNotFound, id)
	}
	return p, nil
}

// ListPlaylists returns the current user's playlists, newest first.
func (a *App) ListPlaylists() ([]models.Playlist, error) {
	uid, err := a.userID()
	if err != nil {
		return nil, err
	}
	return a.Playlists.ListByOwner(uid), nil
}

// ReloadPlaylists re-reads the playlist collection from durable storage, picking up changes saved by
// another process sharing it.
func (a *App) ReloadPlaylists() {
	a.Playlists.Reload()
}

// ClearPlaylists deletes every playlist of the current user and returns how many were removed.
func (a *App) ClearPlaylists() (int, error) {
	uid, err := a.userID()
	if err != nil {
		return 0, err
	}
	n := a.Playlists.ClearByOwner(uid)
	if last := a.Sessions.LastViewedPlaylist(); last != "" {
		if _, ok := a.Playlists.Get(last); !ok {
			a.Sessions.SetLastViewedPlaylist("")
		}
	}
	a.logger.Info("playlists cleared", "owner", uid, "removed", n)
	return n, nil
}

// CreatePlaylist creates an empty playlist owned by the current user.
func (a *App) CreatePlaylist(name string) (models.Playlist, error) {
	uid, err := a.userID()
	if err != nil {
		return models.Playlist{}, err
	}
	p, err := a.Playlists.Create(name, uid)
	if err != nil {
		return models.Playlist{}, err
	}
	a.logger.Info("playlist created", "id", p.ID, "name", p.Name)
	return p, nil
}

// RenamePlaylist renames one of the current user's playlists.
func (a *App) RenamePlaylist(id, name string) error {
	if _, err := a.owned(id); err != nil {
		return err
	}
	return a.Playlists.Rename(id, name)
}

// DeletePlaylist deletes one of the current user's playlists and reports whether it existed.
//
// Unknown ids succeed without effect. Deleting the last viewed playlist clears that marker.
func (a *App) DeletePlaylist(id string) (bool, error) {
	uid, err := a.userID()
	if err != nil {
		return false, err
	}
	p, ok := a.Playlists.Get(id)
	if !ok {
		return false, nil
	}
	if p.OwnerID != uid {
		return false, fmt.Errorf("%w: %s", shared.ErrPlaylistNotFound, id)
	}

	removed := a.Playlists.Delete(id)
	if a.Sessions.LastViewedPlaylist() == id {
		a.Sessions.SetLastViewedPlaylist("")
	}
	a.logger.Info("playlist deleted", "id", id)
	return removed, nil
}

// AddTrack appends track to one of the current user's playlists and reports whether it was added.
func (a *App) AddTrack(playlistID string, track models.Track) (bool, error) {
	if _, err := a.owned(playlistID); err != nil {
		return false, err
	}
	if track.ID == "" {
		return false, fmt.Errorf("%w: track id is required", shared.ErrValidation)
	}
	return a.Playlists.AddTrack(playlistID, track)
}

// RemoveTrack removes a track from one of the current user's playlists.
func (a *App) RemoveTrack(playlistID, trackID string) (bool, error) {
	if _, err := a.owned(playlistID); err != nil {
		return false, err
	}
	return a.Playlists.RemoveTrack(playlistID, trackID)
}

// ReorderTrack moves a track within one of the current user's playlists.
func (a *App) ReorderTrack(playlistID string, from, to int) (bool, error) {
	if _, err := a.owned(playlistID); err != nil {
		return false, err
	}
	return a.Playlists.Reorder(playlistID, from, to)
}

// GetPlaylist returns one of the current user's playlists.
func (a *App) GetPlaylist(id string) (models.Playlist, error) {
	return a.owned(id)
}

// OpenPlaylist returns the playlist and records it as the last viewed one.
func (a *App) OpenPlaylist(id string) (models.Playlist, error) {
	p, err := a.owned(id)
	if err != nil {
		return models.Playlist{}, err
	}
	a.Sessions.SetLastViewedPlaylist(id)
	return p, nil
}

// LastViewedPlaylist returns the last opened playlist when it still exists and belongs to the current user.
func (a *App) LastViewedPlaylist() (models.Playlist, bool) {
	id := a.Sessions.LastViewedPlaylist()
	if id == "" {
		return models.Playlist{}, false
	}
	p, err := a.owned(id)
	return p, err == nil
}

// SearchPlaylists returns the current user's playlists whose name contains query.
func (a *App) SearchPlaylists(query string) ([]models.Playlist, error) {
	uid, err := a.userID()
	if err != nil {
		return nil, err
	}
	return a.Playlists.Search(uid, query), nil
}

// RecentPlaylists returns the current user's n most recently created playlists.
func (a *App) RecentPlaylists(n int) ([]models.Playlist, error) {
	uid, err := a.userID()
	if err != nil {
		return nil, err
	}
	return a.Playlists.Recent(uid, n), nil
}

// FindPlaylist resolves ref (an id, an exact name or a close name) among the current user's playlists.
func (a *App) FindPlaylist(ref string) (models.Playlist, error) {
	uid, err := a.userID()
	if err != nil {
		return models.Playlist{}, err
	}
	p, ok := a.Playlists.Find(uid, ref)
	if !ok {
		return models.Playlist{}, fmt.Errorf("%w: %s", shared.ErrPlaylistNotFound, ref)
	}
	return p, nil
}
