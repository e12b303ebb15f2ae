// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"sync"
	"testing"

	"github.com/desertthunder/fakefy/internal/models"
	"github.com/desertthunder/fakefy/internal/repositories"
)

// MockMetadataService is a test double for [services.MetadataService].
//
// Results are keyed by artist (Top10) or "artist|title" / "artist|album" (searches). Safe for concurrent use.
type MockMetadataService struct {
	mu sync.Mutex

	TopTracks  map[string][]models.Track
	TopErrors  map[string]error
	Searches   map[string][]models.Track
	Albums     map[string][]models.Album
	Tracks     map[string]models.Track
	Err        error
	Calls      []string
	BeforeCall func(method, key string)
}

func (m *MockMetadataService) record(method, key string) {
	m.mu.Lock()
	m.Calls = append(m.Calls, method+":"+key)
	hook := m.BeforeCall
	m.mu.Unlock()

	if hook != nil {
		hook(method, key)
	}
}

// CallCount returns how many calls have been recorded.
func (m *MockMetadataService) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

func (m *MockMetadataService) Top10(ctx context.Context, artist string) ([]models.Track, error) {
	m.record("top10", artist)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if m.Err != nil {
		return nil, m.Err
	}
	if err, ok := m.TopErrors[artist]; ok {
		return nil, err
	}
	return m.TopTracks[artist], nil
}

func (m *MockMetadataService) SearchTracks(ctx context.Context, artist, title string) ([]models.Track, error) {
	key := artist + "|" + title
	m.record("search", key)
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Searches[key], nil
}

func (m *MockMetadataService) SearchAlbums(ctx context.Context, artist, album string) ([]models.Album, error) {
	key := artist + "|" + album
	m.record("albums", key)
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Albums[key], nil
}

func (m *MockMetadataService) LookupTrack(ctx context.Context, id string) (*models.Track, error) {
	m.record("track", id)
	if m.Err != nil {
		return nil, m.Err
	}
	t, ok := m.Tracks[id]
	if !ok {
		return nil, fmt.Errorf("track %s not found", id)
	}
	return &t, nil
}

// FailingStorage wraps [repositories.MemoryStorage] and fails writes while FailWrites is set.
type FailingStorage struct {
	*repositories.MemoryStorage
	FailWrites bool
	FailReads  bool
}

// NewFailingStorage creates a FailingStorage that fails writes.
func NewFailingStorage() *FailingStorage {
	return &FailingStorage{MemoryStorage: repositories.NewMemoryStorage(), FailWrites: true}
}

func (f *FailingStorage) Get(key string) ([]byte, bool, error) {
	if f.FailReads {
		return nil, false, errors.New("read failed")
	}
	return f.MemoryStorage.Get(key)
}

func (f *FailingStorage) Set(key string, value []byte) error {
	if f.FailWrites {
		return errors.New("quota exceeded")
	}
	return f.MemoryStorage.Set(key, value)
}

func (f *FailingStorage) Remove(key string) error {
	if f.FailWrites {
		return errors.New("quota exceeded")
	}
	return f.MemoryStorage.Remove(key)
}

// NewTrack builds a minimal track fixture.
func NewTrack(id, name, artist string) models.Track {
	return models.Track{ID: id, Name: name, Artist: artist}
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// FCloser simulates a failure when reading response body
type FCloser struct{}

func (f *FCloser) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}

func (f *FCloser) Close() error {
	return nil
}

func MustGetwd(t *testing.T) string {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	return wd
}

func MustChdir(t *testing.T, dir string) {
	t.Helper()
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Failed to change directory to %s: %v", dir, err)
	}
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func AssertDirExists(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		t.Errorf("Directory does not exist: %s", path)
		return
	}
	if !info.IsDir() {
		t.Errorf("Path is not a directory: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
