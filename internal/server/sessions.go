package server

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
)

const (
	sessionCookieName = "ap_session"
	// sessionIdleTTL bounds how long untouched session state is kept.
	sessionIdleTTL = 30 * time.Minute
)

type sessionBackend interface {
	LoadStatus(ctx context.Context, id string) (Status, error)
	SaveStatus(ctx context.Context, id string, status Status) error
	LoadDraft(ctx context.Context, id string) (FormDraft, error)
	SaveDraft(ctx context.Context, id string, draft FormDraft) error
	// SavePage records the page on screen and drops any pending hold.
	SavePage(ctx context.Context, id string, page PageState) error
	// HoldPage marks the recorded page for exactly one redraw.
	HoldPage(ctx context.Context, id string) error
	// TakeHeldPage returns the recorded page if it was held, and releases the hold.
	TakeHeldPage(ctx context.Context, id string) (PageState, bool, error)
}

type sessionStore struct {
	backend sessionBackend
	now     func() time.Time
}

func newSessionStore(backend sessionBackend, now func() time.Time) *sessionStore {
	if now == nil {
		now = time.Now
	}
	return &sessionStore{backend: backend, now: now}
}

// ShowStatus replaces the current status; it stays visible for ttl.
func (s *sessionStore) ShowStatus(ctx context.Context, id string, kind StatusKind, text string, ttl time.Duration) (Status, error) {
	status := Status{
		Text:      text,
		Kind:      kind,
		ExpiresAt: s.now().Add(ttl),
	}
	return status, s.backend.SaveStatus(ctx, id, status)
}

// CurrentStatus returns the visible status, or the zero Status once hidden.
func (s *sessionStore) CurrentStatus(ctx context.Context, id string) (Status, error) {
	status, err := s.backend.LoadStatus(ctx, id)
	if err != nil {
		return Status{}, err
	}
	if !status.Visible(s.now()) {
		return Status{}, nil
	}
	return status, nil
}

func (s *sessionStore) Draft(ctx context.Context, id string) (FormDraft, error) {
	return s.backend.LoadDraft(ctx, id)
}

func (s *sessionStore) SetDraft(ctx context.Context, id string, draft FormDraft) error {
	return s.backend.SaveDraft(ctx, id, draft)
}

func (s *sessionStore) ClearDraft(ctx context.Context, id string) error {
	return s.backend.SaveDraft(ctx, id, FormDraft{})
}

func (s *sessionStore) SetPage(ctx context.Context, id string, page PageState) error {
	return s.backend.SavePage(ctx, id, page)
}

// HoldPage makes the next redirected view redraw the recorded page instead of
// fetching. A later reload fetches again.
func (s *sessionStore) HoldPage(ctx context.Context, id string) error {
	return s.backend.HoldPage(ctx, id)
}

func (s *sessionStore) TakeHeldPage(ctx context.Context, id string) (PageState, bool, error) {
	return s.backend.TakeHeldPage(ctx, id)
}

func (s *sessionStore) ensureSessionID(w http.ResponseWriter, r *http.Request) string {
	cookie, err := r.Cookie(sessionCookieName)
	if err == nil && cookie.Value != "" {
		if _, parseErr := uuid.Parse(cookie.Value); parseErr == nil {
			return cookie.Value
		}
	}
	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}
