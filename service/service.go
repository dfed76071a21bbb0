// Package service exposes the suggestion engine and the benchmark runner over
// HTTP. All dependencies are injected at construction time; the server holds
// no ambient state.
package service

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	suggest "github.com/tradegate/hs-suggest"
	"github.com/tradegate/hs-suggest/benchmark"
)

// Server wires the engine and benchmark runner into HTTP handlers.
type Server struct {
	engine *suggest.Engine
	bench  *benchmark.Runner
	log    *slog.Logger
}

// NewServer creates a Server.
func NewServer(engine *suggest.Engine, bench *benchmark.Runner) *Server {
	return &Server{
		engine: engine,
		bench:  bench,
		log:    slog.Default(),
	}
}

// SuggestRequest is the body of POST /suggest.
type SuggestRequest struct {
	Description string `json:"description" binding:"required"`
	Hybrid      bool   `json:"hybrid"`
	TopK        int    `json:"k"`
}

// Router builds the gin router with all routes attached.
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/healthz", s.handleHealth)
	router.POST("/suggest", s.handleSuggest)
	router.GET("/benchmark", s.handleBenchmark)

	return router
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleSuggest(c *gin.Context) {
	var req SuggestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "description is required", "code": http.StatusBadRequest})
		return
	}

	suggestion, err := s.engine.Suggest(c.Request.Context(), req.Description, suggest.Options{
		TopK:   req.TopK,
		Hybrid: req.Hybrid,
	})
	if err != nil {
		s.log.Error("suggest failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error(), "code": http.StatusInternalServerError})
		return
	}

	c.JSON(http.StatusOK, suggestion)
}

func (s *Server) handleBenchmark(c *gin.Context) {
	hybrid := c.Query("hybrid") == "true"

	results, err := s.bench.Run(c.Request.Context(), hybrid)
	if err != nil {
		s.log.Error("benchmark failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error(), "code": http.StatusInternalServerError})
		return
	}

	c.JSON(http.StatusOK, gin.H{"results": results})
}
