// TheAudioDB [MetadataService] implementation
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/fakefy/internal/models"
	"github.com/desertthunder/fakefy/internal/shared"
	"golang.org/x/time/rate"
)

// AudioDBOptions configures an [AudioDBService]. Zero values select defaults.
type AudioDBOptions struct {
	BaseURL   string       // API root without the key segment
	APIKey    string       // Key path segment
	Client    *http.Client // HTTP client, carries the request timeout
	RateLimit float64      // Requests per second shared by all calls; <= 0 disables limiting
	Logger    *log.Logger
}

// AudioDBService implements [MetadataService] for TheAudioDB.
type AudioDBService struct {
	api     *APIService
	limiter *rate.Limiter
	logger  *log.Logger
}

// NewAudioDBService creates a new TheAudioDB client.
func NewAudioDBService(opts AudioDBOptions) *AudioDBService {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.APIKey == "" {
		opts.APIKey = DefaultAPIKey
	}
	if opts.Logger == nil {
		opts.Logger = shared.DiscardLogger()
	}

	limit := rate.Inf
	if opts.RateLimit > 0 {
		limit = rate.Limit(opts.RateLimit)
	}

	root := strings.TrimRight(opts.BaseURL, "/") + "/" + url.PathEscape(opts.APIKey)
	return &AudioDBService{
		api:     NewAPIService(root, opts.Client),
		limiter: rate.NewLimiter(limit, 1),
		logger:  opts.Logger,
	}
}

// API returns the underlying raw client.
func (s *AudioDBService) API() *APIService {
	return s.api
}

// getJSON waits for the limiter, performs a GET and decodes the body into result.
func (s *AudioDBService) getJSON(ctx context.Context, endpoint string, result any) error {
	if err := s.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrNetwork, err)
	}

	s.logger.Debug("metadata request", "endpoint", endpoint)
	resp, err := s.api.Get(ctx, endpoint)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrNetwork, err)
	}
	if !resp.OK() {
		return fmt.Errorf("%w: status %d", shared.ErrNetwork, resp.StatusCode)
	}
	if len(resp.Body) == 0 {
		return nil
	}
	if err := json.Unmarshal(resp.Body, result); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", shared.ErrNetwork, err)
	}
	return nil
}

type trackEnvelope struct {
	Track []AudioDBTrack `json:"track"`
}

type albumEnvelope struct {
	Album []AudioDBAlbum `json:"album"`
}

// Top10 calls track-top10.php?s={artist}.
func (s *AudioDBService) Top10(ctx context.Context, artist string) ([]models.Track, error) {
	artist = strings.TrimSpace(artist)
	if artist == "" {
		return []models.Track{}, nil
	}

	var env trackEnvelope
	endpoint := "/track-top10.php?s=" + url.QueryEscape(artist)
	if err := s.getJSON(ctx, endpoint, &env); err != nil {
		return nil, err
	}
	return mapTracks(env.Track), nil
}

// SearchTracks calls searchtrack.php?s={artist}&t={title}, or searchtrack.php?t={title} without an artist.
//
// A blank title returns no results without a request.
func (s *AudioDBService) SearchTracks(ctx context.Context, artist, title string) ([]models.Track, error) {
	artist, title = strings.TrimSpace(artist), strings.TrimSpace(title)
	if title == "" {
		return []models.Track{}, nil
	}

	q := url.Values{}
	if artist != "" {
		q.Set("s", artist)
	}
	q.Set("t", title)

	var env trackEnvelope
	if err := s.getJSON(ctx, "/searchtrack.php?"+q.Encode(), &env); err != nil {
		return nil, err
	}
	return mapTracks(env.Track), nil
}

// SearchAlbums calls searchalbum.php?s={artist}&a={album}, or searchalbum.php?a={album} without an artist.
//
// A blank album returns no results without a request.
func (s *AudioDBService) SearchAlbums(ctx context.Context, artist, album string) ([]models.Album, error) {
	artist, album = strings.TrimSpace(artist), strings.TrimSpace(album)
	if album == "" {
		return []models.Album{}, nil
	}

	q := url.Values{}
	if artist != "" {
		q.Set("s", artist)
	}
	q.Set("a", album)

	var env albumEnvelope
	if err := s.getJSON(ctx, "/searchalbum.php?"+q.Encode(), &env); err != nil {
		return nil, err
	}
	return mapAlbums(env.Album), nil
}

// LookupTrack calls track.php?h={id}.
func (s *AudioDBService) LookupTrack(ctx context.Context, id string) (*models.Track, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, fmt.Errorf("%w: track id is required", shared.ErrMissingArgument)
	}

	var env trackEnvelope
	if err := s.getJSON(ctx, "/track.php?h="+url.QueryEscape(id), &env); err != nil {
		return nil, err
	}

	tracks := mapTracks(env.Track)
	if len(tracks) == 0 {
		return nil, fmt.Errorf("%w: %s", shared.ErrTrackNotFound, id)
	}
	return &tracks[0], nil
}
