package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type signupRequest struct {
	Email    string `form:"email" binding:"required,nonblank,max=320"`
	Activity string `form:"activity" binding:"required,nonblank,max=200"`
}

type confirmRequest struct {
	Activity string `form:"activity" binding:"required"`
	Email    string `form:"email" binding:"required"`
}

type unregisterRequest struct {
	Activity string `form:"activity" binding:"required"`
	Email    string `form:"email" binding:"required"`
	Confirm  string `form:"confirm"`
}

const confirmYes = "yes"

func (s *Server) handleSignup(c *gin.Context) {
	ctx := c.Request.Context()
	sessionID := s.sessions.ensureSessionID(c.Writer, c.Request)
	var req signupRequest
	if err := c.ShouldBind(&req); err != nil {
		s.log.Debug("signup form rejected", zap.Error(err))
		s.setDraft(ctx, sessionID, FormDraft{Email: c.PostForm("email"), Activity: c.PostForm("activity")})
		s.showStatus(ctx, sessionID, "signup", StatusError, resolveBindError(err, signupMessages, msgSignupMissingFields), s.cfg.SignupStatusTTL())
		s.holdPage(ctx, sessionID)
		redirectToView(c)
		return
	}
	s.submitSignup(ctx, sessionID, req.Email, req.Activity)
	s.holdPage(ctx, sessionID)
	redirectToView(c)
}

func (s *Server) handleUnregister(c *gin.Context) {
	ctx := c.Request.Context()
	sessionID := s.sessions.ensureSessionID(c.Writer, c.Request)
	var req unregisterRequest
	if err := c.ShouldBind(&req); err != nil {
		s.log.Debug("unregister form rejected", zap.Error(err))
		s.holdPage(ctx, sessionID)
		redirectToView(c)
		return
	}
	if req.Confirm != confirmYes {
		s.log.Debug("unregister declined", zap.String("activity", req.Activity))
		s.holdPage(ctx, sessionID)
		redirectToView(c)
		return
	}
	s.unregisterParticipant(ctx, sessionID, req.Activity, req.Email)
	s.holdPage(ctx, sessionID)
	redirectToView(c)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
