package playlists

import (
	"strings"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"
	"github.com/desertthunder/fakefy/internal/models"
)

// FindThreshold is the minimum Jaro-Winkler similarity for a fuzzy name match.
const FindThreshold = 0.85

// Find resolves ref to one of the owner's playlists.
//
// ref is tried as an exact id, then as a case-insensitive name, then as the most similar name scoring at least
// [FindThreshold].
func (s *Store) Find(ownerID, ref string) (models.Playlist, bool) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return models.Playlist{}, false
	}

	owned := s.ListByOwner(ownerID)
	for _, p := range owned {
		if p.ID == ref {
			return p, true
		}
	}
	for _, p := range owned {
		if strings.EqualFold(p.Name, ref) {
			return p, true
		}
	}

	query := strings.ToLower(ref)
	jw := metrics.NewJaroWinkler()

	var best models.Playlist
	var highest float64
	for _, p := range owned {
		score := strutil.Similarity(query, strings.ToLower(p.Name), jw)
		if score > highest && score >= FindThreshold {
			highest = score
			best = p
		}
	}
	if best.ID == "" {
		return models.Playlist{}, false
	}
	return best, true
}
