// Package identity maps email addresses to stable opaque user ids.
//
// The registry is the only stand-in for authentication: the same email, in any
// letter casing, always resolves to the same user id. Records are never
// updated or deleted.
package identity

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/fakefy/internal/models"
	"github.com/desertthunder/fakefy/internal/repositories"
	"github.com/desertthunder/fakefy/internal/shared"
)

// Options configures a [Registry].
type Options struct {
	Logger             *log.Logger
	Clock              func() time.Time
	NewID              func() string
	OnPersistenceError func(error)
}

// Registry stores [models.IdentityRecord] values under [repositories.UsersKey].
//
// The stored list is re-read on every call so separate processes sharing the durable store see each other's
// registrations.
type Registry struct {
	mu        sync.Mutex
	durable   repositories.Storage
	logger    *log.Logger
	clock     func() time.Time
	newID     func() string
	onPersist func(error)
}

// NewRegistry creates a Registry over durable storage.
func NewRegistry(durable repositories.Storage, opts Options) *Registry {
	r := &Registry{
		durable:   durable,
		logger:    opts.Logger,
		clock:     opts.Clock,
		newID:     opts.NewID,
		onPersist: opts.OnPersistenceError,
	}
	if r.logger == nil {
		r.logger = shared.DiscardLogger()
	}
	if r.clock == nil {
		r.clock = shared.Now
	}
	if r.newID == nil {
		r.newID = shared.GenerateID
	}
	return r
}

func (r *Registry) load() []models.IdentityRecord {
	var records []models.IdentityRecord
	if _, err := repositories.GetJSON(r.durable, repositories.UsersKey, &records); err != nil {
		r.logger.Warn("discarding unreadable user registry", "error", err)
		return nil
	}
	return records
}

func find(records []models.IdentityRecord, email string) (models.IdentityRecord, bool) {
	for _, rec := range records {
		if strings.EqualFold(rec.Email, email) {
			return rec, true
		}
	}
	return models.IdentityRecord{}, false
}

// ResolveOrCreate returns the user id registered for email, minting and storing a new one on first use.
func (r *Registry) ResolveOrCreate(email string) string {
	email = strings.TrimSpace(email)

	r.mu.Lock()
	defer r.mu.Unlock()

	records := r.load()
	if rec, ok := find(records, email); ok {
		return rec.UserID
	}

	rec := models.IdentityRecord{
		Email:     email,
		UserID:    r.newID(),
		CreatedAt: models.NewTimestamp(r.clock()),
	}
	records = append(records, rec)

	if err := repositories.SetJSON(r.durable, repositories.UsersKey, records); err != nil {
		err = fmt.Errorf("%w: %v", shared.ErrPersistence, err)
		r.logger.Error("failed to persist user registry", "error", err)
		if r.onPersist != nil {
			r.onPersist(err)
		}
	}

	r.logger.Info("registered user", "email", email, "user_id", rec.UserID)
	return rec.UserID
}

// Lookup returns the record registered for email, ignoring case.
func (r *Registry) Lookup(email string) (models.IdentityRecord, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return find(r.load(), strings.TrimSpace(email))
}

// List returns every registered record in registration order.
func (r *Registry) List() []models.IdentityRecord {
	r.mu.Lock()
	defer r.mu.Unlock()

	records := r.load()
	if records == nil {
		return []models.IdentityRecord{}
	}
	return records
}
