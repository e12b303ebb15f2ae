// package tasks implements catalog and export operations over the metadata service.
//
// The core abstraction is CatalogEngine, which fans out popular-track lookups, dispatches searches and exports
// playlists. Operations emit progress updates via channels for non-blocking status reporting to CLI/UI layers.
package tasks

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/fakefy/internal/models"
	"github.com/desertthunder/fakefy/internal/services"
	"github.com/desertthunder/fakefy/internal/shared"
)

// DefaultPopularArtists is the artist list queried to build the popular aggregate.
var DefaultPopularArtists = []string{
	"Michael Jackson", "Queen", "Coldplay", "Adele", "The Beatles", "Taylor Swift", "Ed Sheeran",
	"Beyonce", "Rihanna", "Drake", "Bruno Mars", "The Weeknd", "Linkin Park", "Imagine Dragons",
	"Maroon 5", "Eminem", "Lady Gaga", "Shakira", "Katy Perry", "U2",
}

const (
	defaultWorkers      = 5
	maxWorkers          = 10
	defaultPopularLimit = 100
)

// ResultKind distinguishes track and album entries in a combined search.
type ResultKind string

const (
	KindTrack ResultKind = "track"
	KindAlbum ResultKind = "album"
)

// SearchQuery holds the fields of the combined search form. Blank fields are ignored.
type SearchQuery struct {
	Artist string
	Title  string
	Album  string
}

// SearchResult is one entry of a combined search: exactly one of Track or Album is set.
type SearchResult struct {
	Kind  ResultKind
	Track *models.Track
	Album *models.Album
}

// Name returns the display name of the entry.
func (r SearchResult) Name() string {
	if r.Track != nil {
		return r.Track.Name
	}
	if r.Album != nil {
		return r.Album.Name
	}
	return ""
}

// CatalogOptions configures a [CatalogEngine]. Zero values select defaults.
type CatalogOptions struct {
	Artists      []string // Artists queried by Popular (default: DefaultPopularArtists)
	Workers      int      // Concurrent lookups (default: 5, max: 10)
	PopularLimit int      // Popular aggregate size (default: 100)
	Logger       *log.Logger
}

// CatalogEngine orchestrates catalog lookups against a [services.MetadataService].
type CatalogEngine struct {
	meta   services.MetadataService
	opts   CatalogOptions
	logger *log.Logger
}

// NewCatalogEngine creates a new CatalogEngine with the provided metadata service.
func NewCatalogEngine(meta services.MetadataService, opts CatalogOptions) *CatalogEngine {
	if len(opts.Artists) == 0 {
		opts.Artists = DefaultPopularArtists
	}
	if opts.Workers <= 0 {
		opts.Workers = defaultWorkers
	}
	if opts.Workers > maxWorkers {
		opts.Workers = maxWorkers
	}
	if opts.PopularLimit <= 0 {
		opts.PopularLimit = defaultPopularLimit
	}
	if opts.Logger == nil {
		opts.Logger = shared.DiscardLogger()
	}
	return &CatalogEngine{meta: meta, opts: opts, logger: opts.Logger}
}

// sendProgress sends a progress update through the channel without blocking.
// Uses select with default to ensure progress reporting never blocks execution.
func sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
		// Sent successfully
	default:
		// Channel full or closed, skip this update
	}
}

func (e *CatalogEngine) ready() error {
	if e.meta == nil {
		return fmt.Errorf("%w: metadata service not initialized", shared.ErrServiceUnavailable)
	}
	return nil
}

type artistResult struct {
	index  int
	tracks []models.Track
	err    error
}

// Popular queries every configured artist's top ten concurrently and ranks the merged tracks.
//
// Failed lookups are skipped. Tracks are deduplicated by id keeping the first occurrence in artist order,
// scored by their view count and sorted by score, highest first.
func (e *CatalogEngine) Popular(ctx context.Context, progress chan<- ProgressUpdate) ([]models.Track, error) {
	if err := e.ready(); err != nil {
		return nil, err
	}

	artists := e.opts.Artists
	total := len(artists)
	sendProgress(progress, fetchingArtistsUpdate(total))

	jobs := make(chan int, total)
	results := make(chan artistResult, total)

	var wg sync.WaitGroup
	for range e.opts.Workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				if ctx.Err() != nil {
					results <- artistResult{index: i, err: ctx.Err()}
					continue
				}
				tracks, err := e.meta.Top10(ctx, artists[i])
				results <- artistResult{index: i, tracks: tracks, err: err}
			}
		}()
	}

	for i := range artists {
		jobs <- i
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	byArtist := make([][]models.Track, total)
	completed, failed := 0, 0
	for res := range results {
		completed++
		if res.err != nil {
			failed++
			e.logger.Warn("top tracks lookup failed", "artist", artists[res.index], "error", res.err)
			sendProgress(progress, artistFailedUpdate(completed, total, artists[res.index], res.err))
			continue
		}
		byArtist[res.index] = res.tracks
		sendProgress(progress, artistFetchedUpdate(completed, total, artists[res.index], len(res.tracks)))
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var merged []models.Track
	for _, tracks := range byArtist {
		merged = append(merged, tracks...)
	}

	ranked := RankByViews(merged, e.opts.PopularLimit)
	e.logger.Debug("popular aggregate built", "artists", total, "failed", failed, "tracks", len(ranked))
	sendProgress(progress, rankedUpdate(len(Dedupe(merged)), len(ranked), ranked))
	return ranked, nil
}

// Dedupe drops tracks whose id was already seen, keeping the first occurrence.
func Dedupe(tracks []models.Track) []models.Track {
	seen := make(map[string]bool, len(tracks))
	out := make([]models.Track, 0, len(tracks))
	for _, t := range tracks {
		if seen[t.ID] {
			continue
		}
		seen[t.ID] = true
		out = append(out, t)
	}
	return out
}

// ViewScore parses a view counter, treating missing or non-numeric values as zero.
func ViewScore(views string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(views), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// RankByViews deduplicates tracks, sets each Score from its view count and returns at most limit tracks,
// highest score first. Ties keep their input order.
func RankByViews(tracks []models.Track, limit int) []models.Track {
	ranked := Dedupe(tracks)
	for i := range ranked {
		ranked[i].Score = ViewScore(ranked[i].Views())
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// Top10 returns the artist's top tracks.
func (e *CatalogEngine) Top10(ctx context.Context, artist string) ([]models.Track, error) {
	if err := e.ready(); err != nil {
		return nil, err
	}
	return e.meta.Top10(ctx, artist)
}

// SearchTracks searches tracks by artist and title.
func (e *CatalogEngine) SearchTracks(ctx context.Context, artist, title string) ([]models.Track, error) {
	if err := e.ready(); err != nil {
		return nil, err
	}
	return e.meta.SearchTracks(ctx, artist, title)
}

// SearchAlbums searches albums by artist and album name. Both fields are required.
func (e *CatalogEngine) SearchAlbums(ctx context.Context, artist, album string) ([]models.Album, error) {
	if err := e.ready(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(artist) == "" || strings.TrimSpace(album) == "" {
		return []models.Album{}, nil
	}
	return e.meta.SearchAlbums(ctx, artist, album)
}

// LookupTrack fetches one track by id.
func (e *CatalogEngine) LookupTrack(ctx context.Context, id string) (*models.Track, error) {
	if err := e.ready(); err != nil {
		return nil, err
	}
	return e.meta.LookupTrack(ctx, id)
}

// Search runs the combined search: a track search when a title is given (narrowed by artist when present),
// followed by an album search when an album is given. Track entries come first.
func (e *CatalogEngine) Search(ctx context.Context, q SearchQuery, progress chan<- ProgressUpdate) ([]SearchResult, error) {
	if err := e.ready(); err != nil {
		return nil, err
	}

	q.Artist = strings.TrimSpace(q.Artist)
	q.Title = strings.TrimSpace(q.Title)
	q.Album = strings.TrimSpace(q.Album)

	results := []SearchResult{}

	if q.Title != "" {
		sendProgress(progress, searchingUpdate(1, 2, "tracks"))
		tracks, err := e.meta.SearchTracks(ctx, q.Artist, q.Title)
		if err != nil {
			return nil, fmt.Errorf("track search failed: %w", err)
		}
		for i := range tracks {
			results = append(results, SearchResult{Kind: KindTrack, Track: &tracks[i]})
		}
	}

	if q.Album != "" {
		sendProgress(progress, searchingUpdate(2, 2, "albums"))
		albums, err := e.meta.SearchAlbums(ctx, q.Artist, q.Album)
		if err != nil {
			return nil, fmt.Errorf("album search failed: %w", err)
		}
		for i := range albums {
			results = append(results, SearchResult{Kind: KindAlbum, Album: &albums[i]})
		}
	}

	return results, nil
}

// Filter keeps tracks whose genre contains genre (ignoring case) and whose year contains year.
// Blank filters match everything.
func Filter(tracks []models.Track, genre, year string) []models.Track {
	genre = strings.ToLower(strings.TrimSpace(genre))
	year = strings.TrimSpace(year)

	out := make([]models.Track, 0, len(tracks))
	for _, t := range tracks {
		if genre != "" && !strings.Contains(strings.ToLower(t.Genre), genre) {
			continue
		}
		if year != "" && !strings.Contains(t.Year, year) {
			continue
		}
		out = append(out, t)
	}
	return out
}
