// Package service implements identity resolution and the habit and member
// collection operations on top of the record store.
//
// Login is an unauthenticated email lookup: there is no password, token or
// session, and anyone who submits an email acts as that user.
package service

import (
	"context"
	"strings"
	"sync"
	"time"

	apperrors "github.com/julianstephens/habitchain/internal/errors"
	"github.com/julianstephens/habitchain/internal/logger"
	"github.com/julianstephens/habitchain/internal/models"
	"github.com/julianstephens/habitchain/internal/storage"
	"github.com/julianstephens/habitchain/internal/streak"
	"github.com/julianstephens/habitchain/internal/utils"
)

// Recorder receives domain events for metrics.
type Recorder interface {
	HabitMarked(outcome streak.Outcome)
	PersistFailed()
}

type nopRecorder struct{}

func (nopRecorder) HabitMarked(streak.Outcome) {}
func (nopRecorder) PersistFailed()             {}

// Service serializes every read-modify-persist sequence on the store.
type Service struct {
	mu       sync.RWMutex
	store    *storage.Store
	provider storage.Provider
	now      func() time.Time
	loc      *time.Location
	recorder Recorder
}

type Option func(*Service)

// WithClock overrides the clock used to decide "today".
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithLocation sets the timezone whose calendar day counts as "today".
func WithLocation(loc *time.Location) Option {
	return func(s *Service) {
		if loc != nil {
			s.loc = loc
		}
	}
}

func WithRecorder(r Recorder) Option {
	return func(s *Service) {
		if r != nil {
			s.recorder = r
		}
	}
}

// New loads the provider's document into a fresh record store.
func New(provider storage.Provider, opts ...Option) *Service {
	s := &Service{
		store:    storage.Open(provider),
		provider: provider,
		now:      time.Now,
		loc:      time.UTC,
		recorder: nopRecorder{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Today returns the current calendar day in the service's timezone.
func (s *Service) Today() string {
	return utils.TodayIn(s.now(), s.loc)
}

// persist writes the whole store. Failures are logged and swallowed: the
// in-memory change stands even though it was not durably written.
// Callers must hold s.mu.
func (s *Service) persist(ctx context.Context) {
	if err := s.provider.Save(s.store.Snapshot()); err != nil {
		s.recorder.PersistFailed()
		logger.Error("Failed to persist data file", "path", s.provider.Path(), "error", err, "request_id", RequestID(ctx))
	}
}

// Login resolves email to a user, creating one on first use.
func (s *Service) Login(ctx context.Context, email, name string) (models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return models.User{}, apperrors.Validation("email", "Email is required")
	}
	name = strings.TrimSpace(name)

	s.mu.Lock()
	defer s.mu.Unlock()

	if u, ok := s.store.UserByEmail(email); ok {
		if name != "" && name != u.Name {
			u, _ = s.store.SetUserName(u.ID, name)
			s.persist(ctx)
			logger.Info("Updated user name", "user_id", u.ID)
		}
		return u, nil
	}

	if name == "" {
		name = localPart(email)
	}
	if name == "" {
		name = email
	}
	u := s.store.AddUser(name, email)
	s.persist(ctx)
	logger.Info("Created user", "user_id", u.ID)
	return u, nil
}

func localPart(email string) string {
	local, _, _ := strings.Cut(email, "@")
	return local
}
