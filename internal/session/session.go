// Package session holds the single active login.
//
// The session record is persisted durably under [repositories.SessionKey] and
// restored when a [Holder] is constructed. Convenience markers (last login,
// current user, last viewed playlist, last section) live in transient storage
// and are never a source of truth.
package session

import (
	"fmt"
	"regexp"
	"strings"
	"sync"
	"time"
	"unicode/utf16"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/fakefy/internal/identity"
	"github.com/desertthunder/fakefy/internal/models"
	"github.com/desertthunder/fakefy/internal/repositories"
	"github.com/desertthunder/fakefy/internal/shared"
)

// MinPasswordLength is the shortest password Login accepts.
const MinPasswordLength = 6

var emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

// Options configures a [Holder].
type Options struct {
	Logger             *log.Logger
	Clock              func() time.Time
	OnPersistenceError func(error)
}

// Holder owns the current [models.Session].
type Holder struct {
	mu        sync.Mutex
	durable   repositories.Storage
	transient repositories.Storage
	registry  *identity.Registry
	current   *models.Session
	logger    *log.Logger
	clock     func() time.Time
	onPersist func(error)
}

// NewHolder creates a Holder and restores any stored session.
func NewHolder(durable, transient repositories.Storage, registry *identity.Registry, opts Options) *Holder {
	h := &Holder{
		durable:   durable,
		transient: transient,
		registry:  registry,
		logger:    opts.Logger,
		clock:     opts.Clock,
		onPersist: opts.OnPersistenceError,
	}
	if h.logger == nil {
		h.logger = shared.DiscardLogger()
	}
	if h.clock == nil {
		h.clock = shared.Now
	}

	var stored models.Session
	ok, err := repositories.GetJSON(durable, repositories.SessionKey, &stored)
	switch {
	case err != nil:
		h.logger.Warn("discarding unreadable session", "error", err)
	case ok && stored.UserID != "":
		h.current = &stored
	}
	return h
}

// ValidateCredentials checks the shape of an email and password pair.
//
// The email is checked first.
func ValidateCredentials(email, password string) error {
	if !emailPattern.MatchString(email) {
		return fmt.Errorf("%w: invalid email address", shared.ErrValidation)
	}
	if len(utf16.Encode([]rune(password))) < MinPasswordLength {
		return fmt.Errorf("%w: password must have at least %d characters", shared.ErrValidation, MinPasswordLength)
	}
	return nil
}

// Login starts a session for email, replacing any current one.
//
// The password is only shape-checked. The transient last viewed playlist marker is carried into the new session.
func (h *Holder) Login(email, password string) (models.Session, error) {
	email = strings.TrimSpace(email)
	if err := ValidateCredentials(email, password); err != nil {
		return models.Session{}, err
	}

	userID := h.registry.ResolveOrCreate(email)

	h.mu.Lock()
	defer h.mu.Unlock()

	s := models.Session{
		UserID:    userID,
		Email:     email,
		LastLogin: h.clock().UTC().Truncate(time.Millisecond),
	}
	if last := repositories.GetString(h.transient, repositories.LastPlaylistKey); last != "" {
		s.LastPlaylistID = &last
	}

	h.current = &s
	h.persist()
	h.mark(repositories.LastLoginKey, s.LastLogin.Format(time.RFC3339Nano))
	h.mark(repositories.UserEmailKey, email)
	h.mark(repositories.UserIDKey, userID)

	h.logger.Info("logged in", "email", email, "user_id", userID)
	return s, nil
}

// Logout ends the current session. Calling it without a session is harmless.
func (h *Holder) Logout() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.current = nil
	if err := h.durable.Remove(repositories.SessionKey); err != nil {
		h.report(fmt.Errorf("failed to remove session: %w", err))
	}
	for _, key := range []string{repositories.UserEmailKey, repositories.UserIDKey, repositories.LastLoginKey} {
		if err := h.transient.Remove(key); err != nil {
			h.logger.Warn("failed to clear transient marker", "key", key, "error", err)
		}
	}
}

// SetLastViewedPlaylist records id as the last viewed playlist. An empty id clears it.
//
// Does nothing without an active session.
func (h *Holder) SetLastViewedPlaylist(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.current == nil {
		return
	}

	if id == "" {
		h.current.LastPlaylistID = nil
		if err := h.transient.Remove(repositories.LastPlaylistKey); err != nil {
			h.logger.Warn("failed to clear transient marker", "key", repositories.LastPlaylistKey, "error", err)
		}
	} else {
		h.current.LastPlaylistID = &id
		h.mark(repositories.LastPlaylistKey, id)
	}
	h.persist()
}

// Current returns a copy of the active session.
func (h *Holder) Current() (models.Session, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.current == nil {
		return models.Session{}, false
	}
	s := *h.current
	if s.LastPlaylistID != nil {
		id := *s.LastPlaylistID
		s.LastPlaylistID = &id
	}
	return s, true
}

// Authenticated reports whether a session is active.
func (h *Holder) Authenticated() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.current != nil
}

// SetLastSection records the name of the last visited section.
func (h *Holder) SetLastSection(name string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.mark(repositories.LastSectionKey, name)
}

// LastSection returns the last visited section, or "".
func (h *Holder) LastSection() string {
	return repositories.GetString(h.transient, repositories.LastSectionKey)
}

// LastViewedPlaylist returns the transient last viewed playlist marker, or "".
func (h *Holder) LastViewedPlaylist() string {
	return repositories.GetString(h.transient, repositories.LastPlaylistKey)
}

// persist writes the current session. Must be called with h.mu held.
func (h *Holder) persist() {
	if h.current == nil {
		return
	}
	if err := repositories.SetJSON(h.durable, repositories.SessionKey, h.current); err != nil {
		h.report(err)
	}
}

func (h *Holder) mark(key, value string) {
	if err := repositories.SetJSON(h.transient, key, value); err != nil {
		h.logger.Warn("failed to write transient marker", "key", key, "error", err)
	}
}

func (h *Holder) report(err error) {
	err = fmt.Errorf("%w: %v", shared.ErrPersistence, err)
	h.logger.Error("failed to persist session", "error", err)
	if h.onPersist != nil {
		h.onPersist(err)
	}
}
