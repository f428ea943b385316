package server

import (
	"context"
	"net/http"
	"time"

	"activity-portal/internal/activities"
	"activity-portal/internal/config"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ActivityAPI is the remote activities service as seen by the portal.
type ActivityAPI interface {
	List(ctx context.Context) (*activities.Collection, error)
	Signup(ctx context.Context, activity, email string) (activities.Result, error)
	Unregister(ctx context.Context, activity, email string) (activities.Result, error)
}

type Server struct {
	api      ActivityAPI
	db       *gorm.DB
	redis    redis.UniversalClient
	cfg      config.Config
	log      *zap.Logger
	now      func() time.Time
	sessions *sessionStore
	memory   *memorySessions
}

type Option func(*Server)

// WithDB persists sessions and audit events in Postgres.
func WithDB(conn *gorm.DB) Option {
	return func(s *Server) { s.db = conn }
}

// WithRedis keeps sessions in redis. It takes precedence over WithDB for sessions.
func WithRedis(client redis.UniversalClient) Option {
	return func(s *Server) { s.redis = client }
}

func WithLogger(log *zap.Logger) Option {
	return func(s *Server) { s.log = log }
}

func WithClock(now func() time.Time) Option {
	return func(s *Server) { s.now = now }
}

func New(api ActivityAPI, cfg config.Config, opts ...Option) *Server {
	s := &Server{
		api: api,
		cfg: cfg,
		log: zap.NewNop(),
		now: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	var backend sessionBackend
	switch {
	case s.redis != nil:
		backend = newRedisSessions(s.redis, s.now)
	case s.db != nil:
		backend = newGormSessions(s.db)
	default:
		s.memory = newMemorySessions(s.now)
		backend = s.memory
	}
	s.sessions = newSessionStore(backend, s.now)
	registerValidators()
	return s
}

func (s *Server) Handler() http.Handler {
	router := gin.New()
	router.Use(gin.Recovery(), s.requestLogger())

	router.GET("/", s.handleHome)
	router.GET("/view", s.handleView)
	router.POST("/signup", s.handleSignup)
	router.GET("/unregister", s.handleConfirmUnregister)
	router.POST("/unregister", s.handleUnregister)
	router.GET("/healthz", s.handleHealth)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.Static("/static", s.cfg.StaticDir)
	return router
}

// Close releases in-process timers. It does not close the db or redis clients.
func (s *Server) Close() {
	if s.memory != nil {
		s.memory.Close()
	}
}
