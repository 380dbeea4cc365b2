package health

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"remna-tg-admin/internal/services"
)

// Server exposes a liveness endpoint backed by a panel connectivity check
type Server struct {
	httpServer   *http.Server
	panelService *services.PanelService
	logger       *logrus.Logger
}

// NewServer creates a new health server listening on addr
func NewServer(addr string, panelService *services.PanelService, logger *logrus.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)

	s := &Server{
		panelService: panelService,
		logger:       logger,
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.GET("/health", s.handleHealth)

	s.httpServer = &http.Server{
		Addr:    addr,
		Handler: router,
	}
	return s
}

// Start serves until ctx is cancelled
func (s *Server) Start(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			s.logger.Errorf("Health server shutdown: %v", err)
		}
	}()

	s.logger.Infof("Health server listening on %s", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) handleHealth(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	if !s.panelService.HealthCheck(ctx) {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "panel": "unreachable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
