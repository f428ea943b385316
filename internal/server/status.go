package server

import (
	"time"

	"activity-portal/internal/activities"
	"activity-portal/internal/web"
)

type StatusKind string

const (
	StatusSuccess StatusKind = "success"
	StatusError   StatusKind = "error"
)

// Status is the single status message of a session. It is visible until
// ExpiresAt; a newer status replaces it together with its deadline.
type Status struct {
	Text      string     `json:"text"`
	Kind      StatusKind `json:"kind"`
	ExpiresAt time.Time  `json:"expires_at"`
}

func (s Status) Visible(now time.Time) bool {
	return s.Text != "" && now.Before(s.ExpiresAt)
}

func (s Status) view(now time.Time) web.StatusView {
	if !s.Visible(now) {
		return web.StatusView{}
	}
	return web.StatusView{
		Text:            s.Text,
		Kind:            string(s.Kind),
		HideAfterMillis: s.ExpiresAt.Sub(now).Milliseconds(),
	}
}

// FormDraft holds signup form values that survive a failed submission.
type FormDraft struct {
	Email    string `json:"email"`
	Activity string `json:"activity"`
}

// PageState is the activity list as last rendered for a session.
type PageState struct {
	Activities *activities.Collection `json:"activities"`
	LoadFailed bool                   `json:"load_failed"`
}
