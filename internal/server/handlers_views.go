package server

import (
	"activity-portal/internal/web"

	"github.com/a-h/templ"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// handleHome is a full page load: the activity list is always fetched again.
func (s *Server) handleHome(c *gin.Context) {
	ctx := c.Request.Context()
	sessionID := s.sessions.ensureSessionID(c.Writer, c.Request)
	page := s.loadActivities(ctx, sessionID)
	templ.Handler(web.Page(s.buildPageData(ctx, sessionID, page))).ServeHTTP(c.Writer, c.Request)
}

// handleView is the redirect target of every action. The first view after an
// action redraws the page that action left on screen; any other request,
// including a reload, fetches the list again.
func (s *Server) handleView(c *gin.Context) {
	ctx := c.Request.Context()
	sessionID := s.sessions.ensureSessionID(c.Writer, c.Request)
	page, ok, err := s.sessions.TakeHeldPage(ctx, sessionID)
	if err != nil {
		s.log.Warn("load held page failed", zap.String("session_id", sessionID), zap.Error(err))
	}
	if err != nil || !ok {
		page = s.loadActivities(ctx, sessionID)
	}
	templ.Handler(web.Page(s.buildPageData(ctx, sessionID, page))).ServeHTTP(c.Writer, c.Request)
}

// handleConfirmUnregister asks the user to confirm a removal. The identifiers
// arrive percent-encoded from the removal control and are decoded by query parsing.
func (s *Server) handleConfirmUnregister(c *gin.Context) {
	var req confirmRequest
	if !bindQuery(c, &req) {
		return
	}
	templ.Handler(web.ConfirmUnregister(web.ConfirmData{
		Activity: req.Activity,
		Email:    req.Email,
	})).ServeHTTP(c.Writer, c.Request)
}
