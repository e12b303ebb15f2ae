package models

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestTimestamp(t *testing.T) {
	t.Run("marshals as epoch milliseconds", func(t *testing.T) {
		ts := NewTimestamp(time.UnixMilli(1700000000123))

		data, err := json.Marshal(ts)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if string(data) != "1700000000123" {
			t.Errorf("expected 1700000000123, got %s", data)
		}
	})

	t.Run("truncates to milliseconds", func(t *testing.T) {
		raw := time.Unix(1700000000, 123456789)
		ts := NewTimestamp(raw)
		if ts.Nanosecond() != 123000000 {
			t.Errorf("expected truncated nanoseconds, got %d", ts.Nanosecond())
		}
	})

	t.Run("rejects strings", func(t *testing.T) {
		var ts Timestamp
		if err := json.Unmarshal([]byte(`"yesterday"`), &ts); err == nil {
			t.Error("expected error for non-numeric timestamp")
		}
	})
}

func TestPlaylist(t *testing.T) {
	t.Run("decodes stored layout", func(t *testing.T) {
		stored := `{"id":"p1","nome":"Road Trip","usuarioId":"u1","musicas":[{"id":"t1","name":"Song A","artist":"Artist X","stats":{"views":"42"}}],"createdAt":1700000000000}`

		var p Playlist
		if err := json.Unmarshal([]byte(stored), &p); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if p.Name != "Road Trip" || p.OwnerID != "u1" {
			t.Errorf("unexpected playlist %+v", p)
		}
		if len(p.Tracks) != 1 || p.Tracks[0].Views() != "42" {
			t.Errorf("unexpected tracks %+v", p.Tracks)
		}
		if p.UpdatedAt != nil {
			t.Error("expected nil UpdatedAt when absent")
		}
	})

	t.Run("encodes stored layout", func(t *testing.T) {
		p := Playlist{ID: "p1", Name: "Mix", OwnerID: "u1", Tracks: []Track{}, CreatedAt: NewTimestamp(time.UnixMilli(5))}

		data, err := json.Marshal(p)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		for _, field := range []string{`"nome":"Mix"`, `"usuarioId":"u1"`, `"musicas":[]`, `"createdAt":5`} {
			if !strings.Contains(string(data), field) {
				t.Errorf("expected %s in %s", field, data)
			}
		}
	})

	t.Run("Validate", func(t *testing.T) {
		tc := []struct {
			name    string
			p       Playlist
			wantErr bool
		}{
			{name: "valid", p: Playlist{ID: "p", Name: "n", OwnerID: "u"}},
			{name: "missing id", p: Playlist{Name: "n", OwnerID: "u"}, wantErr: true},
			{name: "blank name", p: Playlist{ID: "p", Name: "  ", OwnerID: "u"}, wantErr: true},
			{name: "missing owner", p: Playlist{ID: "p", Name: "n"}, wantErr: true},
		}

		for _, tt := range tc {
			t.Run(tt.name, func(t *testing.T) {
				if err := tt.p.Validate(); (err != nil) != tt.wantErr {
					t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
				}
			})
		}
	})

	t.Run("Clone is independent", func(t *testing.T) {
		updated := NewTimestamp(time.UnixMilli(10))
		p := Playlist{
			ID:        "p1",
			Tracks:    []Track{{ID: "t1", Stats: &TrackStats{Views: "1"}}},
			UpdatedAt: &updated,
		}

		c := p.Clone()
		c.Tracks[0].ID = "changed"
		c.Tracks[0].Stats.Views = "2"
		c.UpdatedAt.Time = time.UnixMilli(20)

		if p.Tracks[0].ID != "t1" || p.Tracks[0].Stats.Views != "1" {
			t.Error("clone shares track data with original")
		}
		if p.UpdatedAt.UnixMilli() != 10 {
			t.Error("clone shares UpdatedAt with original")
		}
	})

	t.Run("HasTrack", func(t *testing.T) {
		p := Playlist{Tracks: []Track{{ID: "t1"}}}
		if !p.HasTrack("t1") || p.HasTrack("t2") {
			t.Error("HasTrack returned wrong result")
		}
	})
}

func TestSession(t *testing.T) {
	t.Run("decodes ISO login time", func(t *testing.T) {
		var s Session
		if err := json.Unmarshal([]byte(`{"userId":"u1","email":"ana@example.com","lastLogin":"2024-05-01T12:30:00.000Z","lastPlaylistId":null}`), &s); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if s.LastLogin.Year() != 2024 {
			t.Errorf("unexpected login time %v", s.LastLogin)
		}
		if s.LastPlaylist() != "" {
			t.Errorf("expected empty last playlist, got %q", s.LastPlaylist())
		}
	})

	t.Run("DisplayName", func(t *testing.T) {
		if got := (Session{Email: "ana@example.com"}).DisplayName(); got != "ana" {
			t.Errorf("expected ana, got %s", got)
		}
		if got := (Session{}).DisplayName(); got != "user" {
			t.Errorf("expected user, got %s", got)
		}
	})
}
