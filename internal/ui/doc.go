// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI drives an [app.App] through a multi-view workflow:
//  1. [LoginView] : Email and password form (shape-checked only)
//  2. [PlaylistsView] : Browse, create, rename, delete and export the user's playlists
//  3. [TracksView] : Inspect, reorder and remove the tracks of the open playlist
//  4. [SongsView] : Browse popular tracks, an artist's top ten, combined searches and album searches
//  5. [FormView] : Single or multi-field prompts used by the other views
//  6. [ExportView] : Monitor bulk export progress
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern, receiving messages via the Msg union type.
// Catalog requests run as commands tagged with a generation; responses older than the newest request of their
// query class are dropped by [tasks.CatalogState].
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, q) with contextual help displayed via charmbracelet/bubbles/help.
package ui
