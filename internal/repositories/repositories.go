package repositories

import (
	"encoding/json"
	"fmt"
)

// Durable keys.
const (
	PlaylistsKey = "fakefy:playlists"
	UsersKey     = "app/users"
	SessionKey   = "app/session"
)

// Transient keys.
const (
	LastSectionKey  = "last_section"
	LastPlaylistKey = "last_playlist_id"
	LastLoginKey    = "last_login"
	UserEmailKey    = "user_email"
	UserIDKey       = "user_id"
)

// Storage is a string-keyed store of raw values.
type Storage interface {
	// Get returns the value stored under key and whether it exists.
	Get(key string) ([]byte, bool, error)
	// Set stores value under key, replacing any previous value.
	Set(key string, value []byte) error
	// Remove deletes key. Removing a missing key is not an error.
	Remove(key string) error
	// Clear deletes every key.
	Clear() error
}

// GetJSON decodes the value under key into dst.
//
// Returns false with a nil error when the key is absent.
func GetJSON(s Storage, key string, dst any) (bool, error) {
	raw, ok, err := s.Get(key)
	if err != nil {
		return false, fmt.Errorf("failed to read %s: %w", key, err)
	}
	if !ok || len(raw) == 0 {
		return false, nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return false, fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return true, nil
}

// SetJSON encodes value and stores it under key.
func SetJSON(s Storage, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	if err := s.Set(key, raw); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

// GetString returns the JSON string stored under key, or "" when it is absent or not a string.
func GetString(s Storage, key string) string {
	var v string
	if ok, err := GetJSON(s, key, &v); !ok || err != nil {
		return ""
	}
	return v
}
