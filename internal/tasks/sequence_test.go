package tasks

import (
	"context"
	"errors"
	"testing"

	"github.com/desertthunder/fakefy/internal/models"
	tu "github.com/desertthunder/fakefy/internal/testing"
)

func TestSequencer(t *testing.T) {
	s := NewSequencer()

	if s.Latest(ClassSearch) != 0 {
		t.Error("expected generation 0 before any request")
	}

	g1 := s.Next(ClassSearch)
	g2 := s.Next(ClassSearch)
	if g2 <= g1 {
		t.Errorf("expected increasing generations, got %d then %d", g1, g2)
	}
	if s.IsCurrent(ClassSearch, g1) {
		t.Error("expected older generation to be stale")
	}
	if !s.IsCurrent(ClassSearch, g2) {
		t.Error("expected newest generation to be current")
	}
	if s.Next(ClassTop10) != 1 {
		t.Error("expected classes to be sequenced independently")
	}
}

func TestCatalogState(t *testing.T) {
	tracks := func(ids ...string) []models.Track {
		out := make([]models.Track, len(ids))
		for i, id := range ids {
			out[i] = models.Track{ID: id}
		}
		return out
	}

	t.Run("drops stale responses", func(t *testing.T) {
		s := NewCatalogState(nil)
		first := s.Begin(ClassTop10)
		second := s.Begin(ClassTop10)

		if !s.Apply(CatalogResult{Class: ClassTop10, Generation: second, Tracks: tracks("new")}) {
			t.Fatal("expected current response to apply")
		}
		if s.Apply(CatalogResult{Class: ClassTop10, Generation: first, Tracks: tracks("old")}) {
			t.Error("expected stale response to be dropped")
		}
		if len(s.Top10) != 1 || s.Top10[0].ID != "new" {
			t.Errorf("expected newest results, got %v", s.Top10)
		}
		if s.Loading() {
			t.Error("expected no outstanding request")
		}
	})

	t.Run("error keeps previous results", func(t *testing.T) {
		s := NewCatalogState(nil)
		g := s.Begin(ClassPopular)
		s.Apply(CatalogResult{Class: ClassPopular, Generation: g, Tracks: tracks("a", "b")})

		g = s.Begin(ClassPopular)
		if !s.Loading() {
			t.Error("expected loading after Begin")
		}
		s.Apply(CatalogResult{Class: ClassPopular, Generation: g, Err: errors.New("boom")})

		if s.Error != "boom" {
			t.Errorf("expected error message, got %q", s.Error)
		}
		if len(s.Popular) != 2 {
			t.Errorf("expected previous results kept, got %v", s.Popular)
		}

		s.Begin(ClassPopular)
		if s.Error != "" {
			t.Error("expected Begin to clear the error")
		}
	})

	t.Run("album search clears previous albums", func(t *testing.T) {
		s := NewCatalogState(nil)
		g := s.Begin(ClassAlbum)
		s.Apply(CatalogResult{Class: ClassAlbum, Generation: g, Albums: []models.Album{{ID: "1"}}})

		s.Begin(ClassAlbum)
		if s.Albums != nil {
			t.Errorf("expected albums cleared, got %v", s.Albums)
		}
	})

	t.Run("classes do not interfere", func(t *testing.T) {
		s := NewCatalogState(nil)
		search := s.Begin(ClassSearch)
		s.Begin(ClassTop10)

		if !s.Apply(CatalogResult{Class: ClassSearch, Generation: search, Results: []SearchResult{{Kind: KindTrack, Track: &models.Track{ID: "x"}}}}) {
			t.Error("expected search response to apply")
		}
		if !s.Loading() {
			t.Error("expected top10 still loading")
		}

		s.Clear(ClassSearch)
		if s.Results != nil {
			t.Error("expected search results cleared")
		}
	})
}

func TestExecute(t *testing.T) {
	meta := &tu.MockMetadataService{
		TopTracks: map[string][]models.Track{"Queen": {tu.NewTrack("1", "Under Pressure", "Queen")}},
		Albums:    map[string][]models.Album{"Queen|Jazz": {{ID: "al", Name: "Jazz"}}},
		Searches:  map[string][]models.Track{"|Jazz": {tu.NewTrack("2", "Jazz", "")}},
	}
	e := NewCatalogEngine(meta, CatalogOptions{Artists: []string{"Queen"}})
	ctx := context.Background()

	t.Run("top10", func(t *testing.T) {
		r := e.Execute(ctx, 7, CatalogQuery{Class: ClassTop10, Artist: "Queen"})
		if r.Generation != 7 || r.Class != ClassTop10 || len(r.Tracks) != 1 || r.Err != nil {
			t.Errorf("unexpected result %+v", r)
		}
	})

	t.Run("popular", func(t *testing.T) {
		r := e.Execute(ctx, 1, CatalogQuery{Class: ClassPopular})
		if len(r.Tracks) != 1 || r.Err != nil {
			t.Errorf("unexpected result %+v", r)
		}
	})

	t.Run("album", func(t *testing.T) {
		r := e.Execute(ctx, 1, CatalogQuery{Class: ClassAlbum, Artist: "Queen", Album: "Jazz"})
		if len(r.Albums) != 1 || r.Err != nil {
			t.Errorf("unexpected result %+v", r)
		}
	})

	t.Run("search", func(t *testing.T) {
		r := e.Execute(ctx, 1, CatalogQuery{Class: ClassSearch, Title: "Jazz"})
		if len(r.Results) != 1 || r.Results[0].Kind != KindTrack {
			t.Errorf("unexpected result %+v", r)
		}
	})

	t.Run("feeds CatalogState", func(t *testing.T) {
		s := NewCatalogState(nil)
		g := s.Begin(ClassTop10)
		if !s.Apply(e.Execute(ctx, g, CatalogQuery{Class: ClassTop10, Artist: "Queen"})) {
			t.Fatal("expected result to apply")
		}
		if len(s.Top10) != 1 {
			t.Errorf("expected top10 populated, got %v", s.Top10)
		}
	})
}
