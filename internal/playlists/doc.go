// Package playlists owns the playlist collection of every user.
//
// [Store] keeps the collection in memory, newest first, and writes the whole
// collection to durable storage under [repositories.PlaylistsKey] after every
// mutation. Callers always receive deep copies.
//
// Persistence failures never reach the caller: the mutation is kept in memory,
// the failure is wrapped in [shared.ErrPersistence], logged, and handed to
// [Options.OnPersistenceError] when set.
//
// Missing playlists are reported with [shared.ErrPlaylistNotFound] by the
// operations that target a single playlist, except [Store.Delete], which is
// idempotent and reports whether anything was removed.
package playlists
