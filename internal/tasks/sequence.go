package tasks

import (
	"context"
	"sync"

	"github.com/desertthunder/fakefy/internal/models"
)

// QueryClass groups catalog requests whose responses replace the same result set.
type QueryClass string

const (
	ClassPopular QueryClass = "popular"
	ClassTop10   QueryClass = "top10"
	ClassSearch  QueryClass = "search"
	ClassAlbum   QueryClass = "album"
)

// Sequencer hands out monotonically increasing generations per [QueryClass].
type Sequencer struct {
	mu     sync.Mutex
	latest map[QueryClass]uint64
}

// NewSequencer creates a Sequencer with every class at generation zero.
func NewSequencer() *Sequencer {
	return &Sequencer{latest: make(map[QueryClass]uint64)}
}

// Next records and returns a new generation for class.
func (s *Sequencer) Next(class QueryClass) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.latest[class]++
	return s.latest[class]
}

// Latest returns the newest generation dispatched for class.
func (s *Sequencer) Latest(class QueryClass) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.latest[class]
}

// IsCurrent reports whether gen is the newest generation dispatched for class.
func (s *Sequencer) IsCurrent(class QueryClass, gen uint64) bool {
	return gen == s.Latest(class)
}

// CatalogQuery describes one catalog request.
type CatalogQuery struct {
	Class  QueryClass
	Artist string
	Title  string
	Album  string
}

// CatalogResult is the full replacement result set of one request, tagged with its generation.
type CatalogResult struct {
	Class      QueryClass
	Generation uint64
	Tracks     []models.Track
	Albums     []models.Album
	Results    []SearchResult
	Err        error
}

// Execute runs q and packages the outcome with gen.
func (e *CatalogEngine) Execute(ctx context.Context, gen uint64, q CatalogQuery) CatalogResult {
	res := CatalogResult{Class: q.Class, Generation: gen}

	switch q.Class {
	case ClassPopular:
		res.Tracks, res.Err = e.Popular(ctx, nil)
	case ClassTop10:
		res.Tracks, res.Err = e.Top10(ctx, q.Artist)
	case ClassSearch:
		res.Results, res.Err = e.Search(ctx, SearchQuery{Artist: q.Artist, Title: q.Title, Album: q.Album}, nil)
	case ClassAlbum:
		res.Albums, res.Err = e.SearchAlbums(ctx, q.Artist, q.Album)
	}
	return res
}

// CatalogState holds the result sets shown by the browse view.
//
// Begin and Apply must be called from a single goroutine (the UI event loop).
type CatalogState struct {
	Popular []models.Track
	Top10   []models.Track
	Results []SearchResult
	Albums  []models.Album
	Error   string

	seq     *Sequencer
	pending map[QueryClass]bool
}

// NewCatalogState creates an empty CatalogState using seq for generations.
func NewCatalogState(seq *Sequencer) *CatalogState {
	if seq == nil {
		seq = NewSequencer()
	}
	return &CatalogState{seq: seq, pending: make(map[QueryClass]bool)}
}

// Begin marks class as loading, clears the error and returns the generation the request must carry.
//
// Starting an album search also clears the previous albums.
func (s *CatalogState) Begin(class QueryClass) uint64 {
	s.Error = ""
	s.pending[class] = true
	if class == ClassAlbum {
		s.Albums = nil
	}
	return s.seq.Next(class)
}

// Loading reports whether any current request is still outstanding.
func (s *CatalogState) Loading() bool {
	for _, p := range s.pending {
		if p {
			return true
		}
	}
	return false
}

// Apply stores r if it belongs to the newest request of its class and reports whether it was applied.
//
// A failed result sets Error and leaves the previous result set in place.
func (s *CatalogState) Apply(r CatalogResult) bool {
	if !s.seq.IsCurrent(r.Class, r.Generation) {
		return false
	}

	s.pending[r.Class] = false
	if r.Err != nil {
		s.Error = r.Err.Error()
		return true
	}

	switch r.Class {
	case ClassPopular:
		s.Popular = r.Tracks
	case ClassTop10:
		s.Top10 = r.Tracks
	case ClassSearch:
		s.Results = r.Results
	case ClassAlbum:
		s.Albums = r.Albums
	}
	return true
}

// Clear empties the result set of class.
func (s *CatalogState) Clear(class QueryClass) {
	switch class {
	case ClassPopular:
		s.Popular = nil
	case ClassTop10:
		s.Top10 = nil
	case ClassSearch:
		s.Results = nil
	case ClassAlbum:
		s.Albums = nil
	}
}
