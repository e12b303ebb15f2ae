// Package services defines the [MetadataService] interface for music catalog lookups and implements it for TheAudioDB.
//
// # MetadataService Interface
//
// The playlist core treats catalog records as opaque payload: tracks returned here are stored by value and only
// their id matters for deduplication. The interface covers the four lookups the application performs: an
// artist's top ten, track search, album search and single track lookup.
//
// # TheAudioDB Implementation
//
// [AudioDBService] talks to the v1 JSON API, where the API key is a path segment
// ({base}/{key}/track-top10.php?s=...). All requests share one [rate.Limiter].
// Records are decoded through [AudioDBTrack] and [AudioDBAlbum], which accept the API's mix of string, numeric
// and null values, then mapped to [models.Track] and [models.Album].
//
// # Raw Requests
//
// [APIService] performs plain GET requests and reports status, headers, body and decoded JSON. It backs
// [AudioDBService] and the `api get` command.
//
// # Error Handling
//
// Services use typed errors from shared package:
//   - [shared.ErrNetwork] : transport failure, non-2xx status or undecodable body
//   - [shared.ErrTrackNotFound] : track id not found
//   - [shared.ErrMissingArgument] : blank track id
package services
