// Package models defines the domain entities of the fakefy playlist manager.
//
// The package contains two categories of types:
//
// 1. Catalog records: opaque payloads issued by the metadata API
//   - [Track] : Song metadata, identified by the API's track id
//   - [Album] : Album metadata returned by album searches
//
// 2. Stored entities: records owned by the playlist core and persisted as JSON
//   - [Playlist] : A named, ordered, deduplicated list of tracks owned by one user
//   - [IdentityRecord] : The email to user id mapping
//   - [Session] : The single active login
//
// JSON field names follow the layout of existing stored data, so a database written by an older build keeps loading.
// Timestamps on stored entities use [Timestamp], which serializes as epoch milliseconds.
package models
