// Package api maps HTTP requests onto the session lifecycle core. It owns
// the check-then-create sequence against the record store that keeps each
// application down to one active session.
package api

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/X5-main/hr-platform-sub000/internal/model"
	"github.com/X5-main/hr-platform-sub000/internal/record"
	"github.com/X5-main/hr-platform-sub000/internal/runtimectl"
	"github.com/X5-main/hr-platform-sub000/internal/session"
)

type Server struct {
	orchestrator *session.Orchestrator
	reconciler   *session.Reconciler
	records      record.Store
	runtime      runtimectl.Client
	logger       *slog.Logger
}

func NewServer(orchestrator *session.Orchestrator, reconciler *session.Reconciler, records record.Store, runtime runtimectl.Client, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		orchestrator: orchestrator,
		reconciler:   reconciler,
		records:      records,
		runtime:      runtime,
		logger:       logger,
	}
}

type createSessionRequest struct {
	ApplicationID   string `json:"application_id" binding:"required"`
	CandidateID     string `json:"candidate_id" binding:"required"`
	DurationMinutes int    `json:"duration_minutes"`
}

func (s *Server) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "service": "sandboxd"})
	})
	r.GET("/ready", func(c *gin.Context) {
		if err := s.runtime.Ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.POST("/sessions", s.createSession)
	r.GET("/sessions/:container_id/status", s.getStatus)
	r.DELETE("/sessions/:session_id", s.destroySession)

	return r
}

func (s *Server) createSession(c *gin.Context) {
	var req createSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()

	// Claim the application's single session slot before touching the
	// runtime; CreateSession itself does not enforce uniqueness.
	ok, err := s.records.ReserveApplication(ctx, req.ApplicationID, "provisioning")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if !ok {
		c.JSON(http.StatusConflict, gin.H{"error": "application already has an active session"})
		return
	}

	sess, err := s.orchestrator.CreateSession(ctx, req.ApplicationID, req.CandidateID, req.DurationMinutes)
	if err != nil {
		sessionCreateFailures.Inc()
		if relErr := s.records.ReleaseApplication(ctx, req.ApplicationID); relErr != nil {
			s.logger.Warn("failed to release application slot after create failure",
				"application_id", req.ApplicationID, "error", relErr)
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if err := s.records.AssignApplication(ctx, req.ApplicationID, sess.SessionID); err != nil {
		s.logger.Warn("failed to assign application slot", "session_id", sess.SessionID, "error", err)
	}
	if err := s.records.Save(ctx, *sess); err != nil {
		s.logger.Warn("failed to persist session record", "session_id", sess.SessionID, "error", err)
	}

	sessionsCreated.Inc()
	activeSessions.Inc()
	c.JSON(http.StatusCreated, sess)
}

func (s *Server) getStatus(c *gin.Context) {
	sess, err := s.reconciler.GetStatus(c.Request.Context(), c.Param("container_id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if sess == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no such session"})
		return
	}
	c.JSON(http.StatusOK, sess)
}

func (s *Server) destroySession(c *gin.Context) {
	ctx := c.Request.Context()
	sessionID := c.Param("session_id")

	rec, err := s.records.Get(ctx, sessionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if rec == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no such session"})
		return
	}

	destroyErr := s.orchestrator.DestroySession(ctx, sessionID, rec.ContainerID, rec.NetworkID)

	// The record is marked stopped even when teardown failed: a leaked
	// runtime resource is preferable to an application stuck with a
	// phantom active session.
	if err := s.records.SetStatus(ctx, sessionID, model.StatusStopped); err != nil {
		s.logger.Warn("failed to mark session record stopped", "session_id", sessionID, "error", err)
	}
	if err := s.records.ReleaseApplication(ctx, rec.ApplicationID); err != nil {
		s.logger.Warn("failed to release application slot", "session_id", sessionID, "error", err)
	}
	activeSessions.Dec()

	if destroyErr != nil {
		sessionDestroyFailures.Inc()
		c.JSON(http.StatusInternalServerError, gin.H{"error": destroyErr.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "stopped"})
}
