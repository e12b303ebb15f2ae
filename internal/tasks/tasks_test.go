package tasks

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/desertthunder/fakefy/internal/models"
	"github.com/desertthunder/fakefy/internal/shared"
	tu "github.com/desertthunder/fakefy/internal/testing"
)

func viewed(id, artist, views string) models.Track {
	t := tu.NewTrack(id, "Song "+id, artist)
	if views != "" {
		t.Stats = &models.TrackStats{Views: views}
	}
	return t
}

func ids(tracks []models.Track) []string {
	out := make([]string, len(tracks))
	for i, t := range tracks {
		out[i] = t.ID
	}
	return out
}

func equalIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestNewCatalogEngine(t *testing.T) {
	t.Run("applies defaults", func(t *testing.T) {
		e := NewCatalogEngine(&tu.MockMetadataService{}, CatalogOptions{})
		if len(e.opts.Artists) != len(DefaultPopularArtists) {
			t.Errorf("expected %d artists, got %d", len(DefaultPopularArtists), len(e.opts.Artists))
		}
		if e.opts.Workers != defaultWorkers {
			t.Errorf("expected %d workers, got %d", defaultWorkers, e.opts.Workers)
		}
		if e.opts.PopularLimit != defaultPopularLimit {
			t.Errorf("expected limit %d, got %d", defaultPopularLimit, e.opts.PopularLimit)
		}
		if e.logger == nil {
			t.Error("expected a logger")
		}
	})

	t.Run("caps workers", func(t *testing.T) {
		e := NewCatalogEngine(&tu.MockMetadataService{}, CatalogOptions{Workers: 50})
		if e.opts.Workers != maxWorkers {
			t.Errorf("expected %d workers, got %d", maxWorkers, e.opts.Workers)
		}
	})

	t.Run("nil service is unavailable", func(t *testing.T) {
		e := NewCatalogEngine(nil, CatalogOptions{})
		ctx := context.Background()

		if _, err := e.Popular(ctx, nil); !errors.Is(err, shared.ErrServiceUnavailable) {
			t.Errorf("Popular: expected ErrServiceUnavailable, got %v", err)
		}
		if _, err := e.Top10(ctx, "Queen"); !errors.Is(err, shared.ErrServiceUnavailable) {
			t.Errorf("Top10: expected ErrServiceUnavailable, got %v", err)
		}
		if _, err := e.Search(ctx, SearchQuery{Title: "x"}, nil); !errors.Is(err, shared.ErrServiceUnavailable) {
			t.Errorf("Search: expected ErrServiceUnavailable, got %v", err)
		}
		if _, err := e.LookupTrack(ctx, "1"); !errors.Is(err, shared.ErrServiceUnavailable) {
			t.Errorf("LookupTrack: expected ErrServiceUnavailable, got %v", err)
		}
	})
}

func TestPopular(t *testing.T) {
	ctx := context.Background()

	t.Run("merges, deduplicates and ranks by views", func(t *testing.T) {
		meta := &tu.MockMetadataService{
			TopTracks: map[string][]models.Track{
				"A": {viewed("1", "A", "100"), viewed("2", "A", "500")},
				"B": {viewed("3", "B", "300"), viewed("1", "B", "9999")},
				"C": {viewed("4", "C", "")},
			},
		}
		e := NewCatalogEngine(meta, CatalogOptions{Artists: []string{"A", "B", "C"}})

		got, err := e.Popular(ctx, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		want := []string{"2", "3", "1", "4"}
		if !equalIDs(ids(got), want) {
			t.Errorf("expected %v, got %v", want, ids(got))
		}
		if got[2].Score != 100 {
			t.Errorf("expected first occurrence of track 1 (score 100), got %v", got[2].Score)
		}
		if got[3].Score != 0 {
			t.Errorf("expected missing views to score 0, got %v", got[3].Score)
		}
	})

	t.Run("skips failed artists", func(t *testing.T) {
		meta := &tu.MockMetadataService{
			TopTracks: map[string][]models.Track{
				"A": {viewed("1", "A", "10")},
				"C": {viewed("3", "C", "30")},
			},
			TopErrors: map[string]error{"B": errors.New("timeout")},
		}
		e := NewCatalogEngine(meta, CatalogOptions{Artists: []string{"A", "B", "C"}})

		progress := make(chan ProgressUpdate, 32)
		got, err := e.Popular(ctx, progress)
		close(progress)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !equalIDs(ids(got), []string{"3", "1"}) {
			t.Errorf("unexpected result %v", ids(got))
		}
		if meta.CallCount() != 3 {
			t.Errorf("expected 3 lookups, got %d", meta.CallCount())
		}

		var phases []Phase
		for u := range progress {
			phases = append(phases, u.Phase)
		}
		if len(phases) == 0 || phases[0] != FetchPopular || phases[len(phases)-1] != RankTracks {
			t.Errorf("unexpected progress phases %v", phases)
		}
	})

	t.Run("all artists failing yields an empty aggregate", func(t *testing.T) {
		meta := &tu.MockMetadataService{Err: errors.New("down")}
		e := NewCatalogEngine(meta, CatalogOptions{Artists: []string{"A", "B"}})

		got, err := e.Popular(ctx, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got) != 0 {
			t.Errorf("expected no tracks, got %d", len(got))
		}
	})

	t.Run("truncates to the limit", func(t *testing.T) {
		top := map[string][]models.Track{}
		var artists []string
		for a := range 15 {
			name := fmt.Sprintf("artist-%d", a)
			artists = append(artists, name)
			for i := range 10 {
				id := fmt.Sprintf("%d-%d", a, i)
				top[name] = append(top[name], viewed(id, name, fmt.Sprint(a*10+i)))
			}
		}
		e := NewCatalogEngine(&tu.MockMetadataService{TopTracks: top}, CatalogOptions{Artists: artists})

		got, err := e.Popular(ctx, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got) != defaultPopularLimit {
			t.Fatalf("expected %d tracks, got %d", defaultPopularLimit, len(got))
		}
		if got[0].ID != "14-9" {
			t.Errorf("expected highest viewed track first, got %s", got[0].ID)
		}
		for i := 1; i < len(got); i++ {
			if got[i].Score > got[i-1].Score {
				t.Fatalf("not sorted at %d: %v > %v", i, got[i].Score, got[i-1].Score)
			}
		}
	})

	t.Run("canceled context", func(t *testing.T) {
		canceled, cancel := context.WithCancel(ctx)
		cancel()

		e := NewCatalogEngine(&tu.MockMetadataService{}, CatalogOptions{Artists: []string{"A"}})
		if _, err := e.Popular(canceled, nil); !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	})
}

func TestRankByViews(t *testing.T) {
	t.Run("ties keep input order", func(t *testing.T) {
		tracks := []models.Track{viewed("a", "x", "5"), viewed("b", "x", "5"), viewed("c", "x", "7")}
		got := RankByViews(tracks, 0)
		if !equalIDs(ids(got), []string{"c", "a", "b"}) {
			t.Errorf("unexpected order %v", ids(got))
		}
	})

	t.Run("does not mutate input", func(t *testing.T) {
		tracks := []models.Track{viewed("a", "x", "5")}
		RankByViews(tracks, 1)
		if tracks[0].Score != 0 {
			t.Error("expected input score untouched")
		}
	})

	t.Run("empty input", func(t *testing.T) {
		if got := RankByViews(nil, 10); len(got) != 0 {
			t.Errorf("expected empty, got %v", got)
		}
	})
}

func TestViewScore(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"1200", 1200},
		{" 42 ", 42},
		{"", 0},
		{"n/a", 0},
		{"NaN", 0},
		{"3.5", 3.5},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%q", tt.in), func(t *testing.T) {
			if got := ViewScore(tt.in); got != tt.want {
				t.Errorf("ViewScore(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestSearch(t *testing.T) {
	ctx := context.Background()
	meta := &tu.MockMetadataService{
		Searches: map[string][]models.Track{
			"Queen|Bohemian Rhapsody": {tu.NewTrack("t1", "Bohemian Rhapsody", "Queen")},
			"|Yesterday":              {tu.NewTrack("t2", "Yesterday", "The Beatles")},
		},
		Albums: map[string][]models.Album{
			"Queen|A Night at the Opera": {{ID: "al1", Name: "A Night at the Opera", Artist: "Queen"}},
		},
	}
	e := NewCatalogEngine(meta, CatalogOptions{})

	tests := []struct {
		name  string
		query SearchQuery
		want  []string
		kinds []ResultKind
	}{
		{
			name:  "title and artist",
			query: SearchQuery{Artist: "Queen", Title: "Bohemian Rhapsody"},
			want:  []string{"Bohemian Rhapsody"},
			kinds: []ResultKind{KindTrack},
		},
		{
			name:  "title only",
			query: SearchQuery{Title: " Yesterday "},
			want:  []string{"Yesterday"},
			kinds: []ResultKind{KindTrack},
		},
		{
			name:  "tracks before albums",
			query: SearchQuery{Artist: "Queen", Title: "Bohemian Rhapsody", Album: "A Night at the Opera"},
			want:  []string{"Bohemian Rhapsody", "A Night at the Opera"},
			kinds: []ResultKind{KindTrack, KindAlbum},
		},
		{
			name:  "artist only searches nothing",
			query: SearchQuery{Artist: "Queen"},
			want:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := e.Search(ctx, tt.query, nil)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got == nil {
				t.Fatal("expected non-nil results")
			}
			names := make([]string, len(got))
			for i, r := range got {
				names[i] = r.Name()
			}
			if !equalIDs(names, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, names)
			}
			for i, k := range tt.kinds {
				if got[i].Kind != k {
					t.Errorf("result %d: expected kind %s, got %s", i, k, got[i].Kind)
				}
			}
		})
	}

	t.Run("service error", func(t *testing.T) {
		failing := NewCatalogEngine(&tu.MockMetadataService{Err: shared.ErrNetwork}, CatalogOptions{})
		if _, err := failing.Search(ctx, SearchQuery{Title: "x"}, nil); !errors.Is(err, shared.ErrNetwork) {
			t.Errorf("expected ErrNetwork, got %v", err)
		}
	})
}

func TestSearchAlbums(t *testing.T) {
	meta := &tu.MockMetadataService{
		Albums: map[string][]models.Album{"Adele|25": {{ID: "1", Name: "25", Artist: "Adele"}}},
	}
	e := NewCatalogEngine(meta, CatalogOptions{})

	t.Run("requires artist and album", func(t *testing.T) {
		got, err := e.SearchAlbums(context.Background(), "", "25")
		if err != nil || len(got) != 0 {
			t.Errorf("expected empty result, got %v, %v", got, err)
		}
		if meta.CallCount() != 0 {
			t.Error("expected no request")
		}
	})

	t.Run("returns albums", func(t *testing.T) {
		got, err := e.SearchAlbums(context.Background(), "Adele", "25")
		if err != nil || len(got) != 1 {
			t.Errorf("expected one album, got %v, %v", got, err)
		}
	})
}

func TestFilter(t *testing.T) {
	tracks := []models.Track{
		{ID: "1", Genre: "Rock", Year: "1975"},
		{ID: "2", Genre: "Pop Rock", Year: "2011"},
		{ID: "3", Genre: "Pop", Year: "2015"},
		{ID: "4"},
	}

	tests := []struct {
		name  string
		genre string
		year  string
		want  []string
	}{
		{"no filters", "", "", []string{"1", "2", "3", "4"}},
		{"genre substring ignores case", "rock", "", []string{"1", "2"}},
		{"year substring", "", "201", []string{"2", "3"}},
		{"both", "pop", "2015", []string{"3"}},
		{"no match", "jazz", "", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(tracks, tt.genre, tt.year)
			if !equalIDs(ids(got), tt.want) {
				t.Errorf("expected %v, got %v", tt.want, ids(got))
			}
		})
	}
}
