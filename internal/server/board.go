package server

import (
	"context"
	"errors"
	"time"

	"activity-portal/internal/activities"
	"activity-portal/internal/metrics"

	"go.uber.org/zap"
)

const (
	msgSignupFallback      = "An error occurred"
	msgSignupFailed        = "Failed to sign up. Please try again."
	msgSignupMissingFields = "Email and activity are required"
	msgUnregisterFallback  = "Failed to unregister"
	msgUnregisterFailed    = "Failed to unregister. Please try again."
)

const (
	outcomeOK       = "ok"
	outcomeRejected = "rejected"
	outcomeFailed   = "failed"
)

// loadActivities fetches the collection and makes it the session's page,
// replacing whatever was rendered before. Every page load goes through here.
func (s *Server) loadActivities(ctx context.Context, sessionID string) PageState {
	page := PageState{}
	collection, err := s.api.List(ctx)
	if err != nil {
		s.log.Error("error fetching activities", zap.Error(err))
		metrics.PageRenders.WithLabelValues("load_failed").Inc()
		page.LoadFailed = true
	} else {
		metrics.PageRenders.WithLabelValues("ok").Inc()
		page.Activities = collection
	}
	if err := s.sessions.SetPage(ctx, sessionID, page); err != nil {
		s.log.Warn("save page state failed", zap.String("session_id", sessionID), zap.Error(err))
	}
	return page
}

// submitSignup registers email for activity. The list is reloaded only on success;
// a failed attempt keeps the form draft.
func (s *Server) submitSignup(ctx context.Context, sessionID, email, activity string) {
	ttl := s.cfg.SignupStatusTTL()
	result, err := s.api.Signup(ctx, activity, email)
	if err != nil {
		s.setDraft(ctx, sessionID, FormDraft{Email: email, Activity: activity})
		text, outcome := s.classifyFailure("signup", activity, err, msgSignupFallback, msgSignupFailed)
		s.showStatus(ctx, sessionID, "signup", StatusError, text, ttl)
		s.recordEvent(ctx, sessionID, "signup", activity, outcome, eventPayloadFor(email, "", err))
		return
	}
	s.showStatus(ctx, sessionID, "signup", StatusSuccess, result.Message, ttl)
	if err := s.sessions.ClearDraft(ctx, sessionID); err != nil {
		s.log.Warn("clear form draft failed", zap.String("session_id", sessionID), zap.Error(err))
	}
	s.loadActivities(ctx, sessionID)
	s.recordEvent(ctx, sessionID, "signup", activity, outcomeOK, eventPayloadFor(email, result.Message, nil))
}

// unregisterParticipant removes email from activity. Callers must have the
// user's confirmation before calling it.
func (s *Server) unregisterParticipant(ctx context.Context, sessionID, activity, email string) {
	ttl := s.cfg.UnregisterStatusTTL()
	result, err := s.api.Unregister(ctx, activity, email)
	if err != nil {
		text, outcome := s.classifyFailure("unregister", activity, err, msgUnregisterFallback, msgUnregisterFailed)
		s.showStatus(ctx, sessionID, "unregister", StatusError, text, ttl)
		s.recordEvent(ctx, sessionID, "unregister", activity, outcome, eventPayloadFor(email, "", err))
		return
	}
	s.showStatus(ctx, sessionID, "unregister", StatusSuccess, result.Message, ttl)
	s.loadActivities(ctx, sessionID)
	s.recordEvent(ctx, sessionID, "unregister", activity, outcomeOK, eventPayloadFor(email, result.Message, nil))
}

// classifyFailure picks the user-facing text for err. API rejections show the
// server detail; anything else shows the generic failure text.
func (s *Server) classifyFailure(op, activity string, err error, fallback, failed string) (string, string) {
	var apiErr *activities.APIError
	if errors.As(err, &apiErr) {
		s.log.Info(op+" rejected",
			zap.String("activity", activity),
			zap.Int("status", apiErr.Status),
			zap.String("detail", apiErr.Detail),
		)
		return activities.Detail(err, fallback), outcomeRejected
	}
	if activities.IsTransport(err) {
		s.log.Warn("activities api unreachable during "+op, zap.String("activity", activity), zap.Error(err))
	} else {
		s.log.Error("error during "+op, zap.String("activity", activity), zap.Error(err))
	}
	return failed, outcomeFailed
}

func (s *Server) showStatus(ctx context.Context, sessionID, source string, kind StatusKind, text string, ttl time.Duration) {
	metrics.StatusMessages.WithLabelValues(source, string(kind)).Inc()
	if _, err := s.sessions.ShowStatus(ctx, sessionID, kind, text, ttl); err != nil {
		s.log.Warn("save status failed", zap.String("session_id", sessionID), zap.Error(err))
	}
}

func (s *Server) setDraft(ctx context.Context, sessionID string, draft FormDraft) {
	if err := s.sessions.SetDraft(ctx, sessionID, draft); err != nil {
		s.log.Warn("save form draft failed", zap.String("session_id", sessionID), zap.Error(err))
	}
}

// holdPage keeps the page on screen for the redirect that follows an action.
func (s *Server) holdPage(ctx context.Context, sessionID string) {
	if err := s.sessions.HoldPage(ctx, sessionID); err != nil {
		s.log.Warn("hold page failed", zap.String("session_id", sessionID), zap.Error(err))
	}
}
