// Package server exposes the coordinator HTTP API: userset lifecycle and
// decryption sessions. The coordinator deals shards at creation time and
// returns them exactly once; it never persists shard values.
package server

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Caqil/threshold-encrypt/internal/session"
	"github.com/Caqil/threshold-encrypt/internal/storage"
	"github.com/Caqil/threshold-encrypt/pkg/envelope"
	"github.com/Caqil/threshold-encrypt/pkg/logger"
)

// Server wires the HTTP API to storage and the session manager
type Server struct {
	store    *storage.Store
	sessions *session.Manager
	log      *logger.Logger

	mu          sync.Mutex
	ciphertexts map[uuid.UUID]*sessionCiphertext
}

type sessionCiphertext struct {
	curveName string
	ct        *envelope.Ciphertext
	threshold int
}

// New creates a server
func New(store *storage.Store, sessions *session.Manager, log *logger.Logger) *Server {
	if log == nil {
		log = logger.Global()
	}
	return &Server{
		store:       store,
		sessions:    sessions,
		log:         log,
		ciphertexts: make(map[uuid.UUID]*sessionCiphertext),
	}
}

// Router builds the gin engine with all routes registered
func (s *Server) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger())

	r.GET("/health", s.handleHealth)

	v1 := r.Group("/api/v1")
	{
		v1.POST("/usersets", s.handleCreateSet)
		v1.GET("/usersets", s.handleListSets)
		v1.GET("/usersets/:id", s.handleGetSet)
		v1.DELETE("/usersets/:id", s.handleDeleteSet)

		v1.POST("/usersets/:id/sessions", s.handleStartSession)
		v1.GET("/sessions/:id", s.handleSessionStatus)
		v1.POST("/sessions/:id/parts", s.handleSubmitPart)
		v1.POST("/sessions/:id/combine", s.handleCombine)
	}

	return r
}

// Run starts the HTTP server and the session sweeper
func (s *Server) Run(addr string, pruneInterval time.Duration) error {
	if pruneInterval > 0 {
		go s.sweep(pruneInterval)
	}
	return s.Router().Run(addr)
}

func (s *Server) sweep(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for range ticker.C {
		if n := s.sessions.PruneExpired(); n > 0 {
			s.log.Debug().Int("pruned", n).Msg("expired sessions removed")
			s.pruneCiphertexts()
		}
	}
}

// pruneCiphertexts drops ciphertexts whose session no longer exists
func (s *Server) pruneCiphertexts() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id := range s.ciphertexts {
		if _, _, err := s.sessions.Progress(id); err != nil {
			delete(s.ciphertexts, id)
		}
	}
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Msg("request")
	}
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
