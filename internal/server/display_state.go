package server

import (
	"context"

	"activity-portal/internal/web"

	"go.uber.org/zap"
)

func buildActivitiesView(page PageState) web.ActivitiesView {
	if page.LoadFailed {
		return web.ActivitiesView{LoadFailed: true}
	}
	all := page.Activities.All()
	view := web.ActivitiesView{
		Cards:   make([]web.ActivityCard, 0, len(all)),
		Options: make([]string, 0, len(all)),
	}
	for _, item := range all {
		encodedName := web.EncodeComponent(item.Name)
		rows := make([]web.ParticipantRow, 0, len(item.Participants))
		for _, email := range item.Participants {
			rows = append(rows, web.ParticipantRow{
				Email:           email,
				EncodedActivity: encodedName,
				EncodedEmail:    web.EncodeComponent(email),
			})
		}
		view.Cards = append(view.Cards, web.ActivityCard{
			Name:         item.Name,
			Description:  item.Description,
			Schedule:     item.Schedule,
			SpotsLeft:    item.SpotsLeft(),
			Participants: rows,
		})
		view.Options = append(view.Options, item.Name)
	}
	return view
}

func (s *Server) buildPageData(ctx context.Context, sessionID string, page PageState) web.PageData {
	status, err := s.sessions.CurrentStatus(ctx, sessionID)
	if err != nil {
		s.log.Warn("load status failed", zap.String("session_id", sessionID), zap.Error(err))
	}
	draft, err := s.sessions.Draft(ctx, sessionID)
	if err != nil {
		s.log.Warn("load form draft failed", zap.String("session_id", sessionID), zap.Error(err))
	}
	return web.PageData{
		Activities: buildActivitiesView(page),
		Status:     status.view(s.now()),
		Draft:      web.DraftView{Email: draft.Email, Activity: draft.Activity},
	}
}
