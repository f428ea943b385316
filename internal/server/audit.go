package server

import (
	"context"
	"encoding/json"
	"errors"

	"activity-portal/internal/activities"
	"activity-portal/internal/db"

	"go.uber.org/zap"
	"gorm.io/datatypes"
)

type EventPayload struct {
	Email      string `json:"email"`
	Message    string `json:"message,omitempty"`
	Detail     string `json:"detail,omitempty"`
	HTTPStatus int    `json:"http_status,omitempty"`
	Error      string `json:"error,omitempty"`
}

func eventPayloadFor(email, message string, err error) EventPayload {
	payload := EventPayload{Email: email, Message: message}
	if err == nil {
		return payload
	}
	var apiErr *activities.APIError
	if errors.As(err, &apiErr) {
		payload.HTTPStatus = apiErr.Status
		payload.Detail = apiErr.Detail
		return payload
	}
	payload.Error = err.Error()
	return payload
}

// recordEvent writes an audit row when a database is configured. Failures are
// logged and never reach the user.
func (s *Server) recordEvent(ctx context.Context, sessionID, eventType, activity, outcome string, payload EventPayload) {
	if s.db == nil {
		return
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		s.log.Warn("encode event payload failed", zap.String("type", eventType), zap.Error(err))
		return
	}
	record := db.Event{
		SessionID: sessionID,
		Type:      eventType,
		Activity:  activity,
		Outcome:   outcome,
		Payload:   datatypes.JSON(raw),
	}
	if err := s.db.WithContext(ctx).Create(&record).Error; err != nil {
		s.log.Warn("persist event failed", zap.String("type", eventType), zap.Error(err))
	}
}
