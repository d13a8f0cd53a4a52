// Package server exposes the move planner over an HTTP API.
package server

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/whatsthemove/moveplan/internal/common"
	"github.com/whatsthemove/moveplan/internal/config"
	"github.com/whatsthemove/moveplan/internal/plan"
	"github.com/whatsthemove/moveplan/internal/service"
)

// Server wires the planner and the job inspector into a gin engine.
type Server struct {
	planner   *plan.Planner
	inspector service.JobInspector
	engine    *gin.Engine
	http      *http.Server
}

// New builds the API server. The inspector may be nil when no OpenAI key is
// configured; the job-search endpoint then reports the missing dependency.
func New(planner *plan.Planner, inspector service.JobInspector, cfg config.ServerConfig) *Server {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(cors.New(cors.Config{
		AllowOrigins: cfg.AllowedOrigins,
		AllowMethods: []string{http.MethodGet},
		AllowHeaders: []string{"Origin", "Content-Type"},
	}))

	s := &Server{
		planner:   planner,
		inspector: inspector,
		engine:    engine,
		http: &http.Server{
			Addr:         cfg.Address,
			Handler:      engine,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
		},
	}

	engine.GET("/health", s.health)
	engine.GET("/whatsthemove/:from/:to/:start/:end/:uhmv/:transport/:maxcost", s.movePlan)
	engine.GET("/job-search", s.jobSearch)

	return s
}

// Handler exposes the underlying engine, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until the context is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	common.LogInfo("API listening", common.Fields{"address": s.http.Addr})

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		return s.http.Shutdown(context.Background())
	}
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) movePlan(c *gin.Context) {
	req, err := plan.ParseRequest(
		c.Param("from"),
		c.Param("to"),
		c.Param("start"),
		c.Param("end"),
		c.Param("uhmv"),
		c.Param("transport"),
		c.Param("maxcost"),
	)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	result := s.planner.Build(c.Request.Context(), req, c.Query("job_url"))
	c.JSON(http.StatusOK, result)
}

func (s *Server) jobSearch(c *gin.Context) {
	jobURL := strings.TrimSpace(c.Query("job_url"))
	if !strings.HasPrefix(jobURL, "http://") && !strings.HasPrefix(jobURL, "https://") {
		c.JSON(http.StatusBadRequest, gin.H{
			"detail": "Job URL must start with http:// or https://",
		})
		return
	}

	if s.inspector == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"detail": "job inspection is not configured",
		})
		return
	}

	posting, err := s.inspector.Inspect(c.Request.Context(), jobURL)
	if err != nil {
		common.LogError(err, "job search failed", common.Fields{"url": jobURL})
		c.JSON(http.StatusInternalServerError, gin.H{
			"detail": "Error analyzing job URL: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, posting)
}
