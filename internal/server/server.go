// Package server exposes the vault and research client over a small
// JSON API.
package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/matsen/hortus/internal/export"
	"github.com/matsen/hortus/internal/plant"
	"github.com/matsen/hortus/internal/research"
	"github.com/matsen/hortus/internal/vault"
)

// Server wires the vault and research client into HTTP handlers.
type Server struct {
	db       *vault.DB
	research *research.Client // nil when no API key is configured
	now      func() time.Time
}

// New builds a server. Pass a nil research client to run with
// research disabled.
func New(db *vault.DB, rc *research.Client) *Server {
	return &Server{db: db, research: rc, now: time.Now}
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	r := gin.Default()

	api := r.Group("/api")
	api.GET("/health", s.handleHealth)
	api.GET("/plants", s.handleList)
	api.GET("/plants/:id", s.handleGet)
	api.POST("/plants", s.handleCreate)
	api.POST("/research", s.handleResearch)
	api.GET("/export.csv", s.handleExport)

	return r
}

func (s *Server) handleHealth(c *gin.Context) {
	count, err := s.db.Count()
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"status": "degraded", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":           "healthy",
		"plants":           count,
		"research_enabled": s.research != nil,
	})
}

// handleList returns all plants, or a filtered set with ?q=. A read
// failure degrades to an empty listing with the error attached rather
// than failing the request.
func (s *Server) handleList(c *gin.Context) {
	var plants []plant.Plant
	var err error

	if q := c.Query("q"); q != "" {
		plants, err = s.db.Search(q)
	} else {
		plants, err = s.db.ReadAll()
	}
	if plants == nil {
		plants = []plant.Plant{}
	}

	if err != nil {
		c.JSON(http.StatusOK, gin.H{"plants": plants, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"plants": plants})
}

func (s *Server) handleGet(c *gin.Context) {
	p, err := s.db.Get(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if p == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "plant not found"})
		return
	}
	c.JSON(http.StatusOK, p)
}

// handleCreate inserts (or fully replaces) a record supplied directly
// by the client, without research.
func (s *Server) handleCreate(c *gin.Context) {
	var p plant.Plant
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if p.CommonName == "" && p.ScientificName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "common_name or scientific_name is required"})
		return
	}

	now := s.now()
	if p.ID == "" {
		p.ID = plant.NewID(now)
	}
	if p.DateAdded.IsZero() {
		p.DateAdded = now
	}

	if err := s.db.Upsert(p); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, p)
}

// ResearchRequest is the body for POST /api/research.
type ResearchRequest struct {
	CommonName     string `json:"common_name"`
	ScientificName string `json:"scientific_name"`
	Clues          string `json:"clues"`
	IsWishlist     bool   `json:"is_wishlist"`
}

// handleResearch runs the research flow: query the model, merge the
// fragment with fresh identity fields, persist, return the record.
func (s *Server) handleResearch(c *gin.Context) {
	var req ResearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.CommonName == "" && req.ScientificName == "" && req.Clues == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "identification requires at least one data point"})
		return
	}
	if s.research == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "research disabled: no API key configured"})
		return
	}

	frag, err := s.research.Research(c.Request.Context(), req.CommonName, req.ScientificName, req.Clues)
	if err != nil {
		status := http.StatusBadGateway
		if errors.Is(err, research.ErrInvalidResponse) {
			status = http.StatusUnprocessableEntity
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	now := s.now()
	p := frag.Plant(plant.NewID(now), now, req.IsWishlist)
	if err := s.db.Upsert(p); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, p)
}

// handleExport streams the full vault as CSV. Like the listing path,
// a read failure degrades to an empty table.
func (s *Server) handleExport(c *gin.Context) {
	plants, err := s.db.ReadAll()
	if err != nil {
		plants = nil
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="hortus_export.csv"`)
	if err := export.WriteCSV(c.Writer, plants); err != nil {
		c.Status(http.StatusInternalServerError)
	}
}
