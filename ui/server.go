package ui

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gomarkdown/markdown"
	mdhtml "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"sheetdiff/adapters/report"
	"sheetdiff/app"
	"sheetdiff/internal"
	"sheetdiff/ports"
)

//go:embed templates/*
var embeddedFiles embed.FS

// Server renders the comparison dashboard: summary cards, chart data and
// the markdown report.
type Server struct {
	router    *gin.Engine
	logger    *internal.Logger
	templates *template.Template
	store     ports.DashboardStorePort // nil when persistence is disabled

	mu   sync.RWMutex
	runs []*app.RunResult
}

// NewServer creates a dashboard server
func NewServer(logger *internal.Logger, store ports.DashboardStorePort) (*Server, error) {
	funcMap := template.FuncMap{
		"pct": func(part, total int) float64 {
			if total == 0 {
				return 0
			}
			return float64(part) / float64(total) * 100
		},
	}
	templates, err := template.New("").Funcs(funcMap).ParseFS(embeddedFiles, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	s := &Server{
		router:    gin.Default(),
		logger:    logger,
		templates: templates,
		store:     store,
	}
	s.registerRoutes()
	return s, nil
}

// SetRuns replaces the comparison runs the dashboard displays
func (s *Server) SetRuns(runs []*app.RunResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs = runs
}

func (s *Server) currentRuns() []*app.RunResult {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.runs
}

func (s *Server) registerRoutes() {
	s.router.GET("/", s.handleIndex)
	s.router.GET("/api/summary", s.handleSummary)
	s.router.GET("/api/charts", s.handleCharts)
	s.router.GET("/api/outliers", s.handleOutliers)
	s.router.GET("/api/latest", s.handleLatest)
	s.router.GET("/report", s.handleReport)
}

// Run starts the server on the given port
func (s *Server) Run(port string) error {
	s.logger.Info("dashboard listening on :%s", port)
	return s.router.Run(":" + port)
}

// Handler exposes the route tree for tests and embedding
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) handleIndex(c *gin.Context) {
	runs := s.currentRuns()
	if len(runs) == 0 {
		c.String(http.StatusOK, "No comparison loaded yet")
		return
	}

	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := s.templates.ExecuteTemplate(c.Writer, "index.html", gin.H{
		"Runs": runs,
	}); err != nil {
		s.logger.Error("template render failed: %v", err)
		c.AbortWithStatus(http.StatusInternalServerError)
	}
}

func (s *Server) handleSummary(c *gin.Context) {
	runs := s.currentRuns()
	if len(runs) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "no comparison loaded"})
		return
	}

	out := make([]gin.H, 0, len(runs))
	for _, run := range runs {
		out = append(out, gin.H{
			"id":      run.ID.String(),
			"label":   run.Label,
			"sheet":   run.Sheet,
			"summary": run.Result.Summary,
		})
	}
	c.JSON(http.StatusOK, out)
}

// handleCharts returns the chart payloads the dashboard renders: category
// donut segments, per-column change bars and column profile bars.
func (s *Server) handleCharts(c *gin.Context) {
	runs := s.currentRuns()
	if len(runs) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "no comparison loaded"})
		return
	}
	run := runs[0]
	sum := run.Result.Summary

	columnChanges := make(map[string]int)
	for _, row := range run.Result.Changed {
		for col := range row.Delta {
			columnChanges[col]++
		}
	}
	bars := make([]gin.H, 0, len(columnChanges))
	for _, col := range run.Result.Columns {
		if n, ok := columnChanges[col]; ok {
			bars = append(bars, gin.H{"label": col, "value": n})
		}
	}

	// Old-vs-new mean per numeric column present on both sides
	oldMeans := make(map[string]float64, len(run.OldProfiles))
	for _, p := range run.OldProfiles {
		oldMeans[p.Column] = p.Mean
	}
	grouped := make([]gin.H, 0, len(run.Profiles))
	for _, p := range run.Profiles {
		if oldMean, ok := oldMeans[p.Column]; ok {
			grouped = append(grouped, gin.H{"label": p.Column, "old": oldMean, "new": p.Mean})
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"donut_categories": []gin.H{
			{"label": "Added", "value": sum.Added},
			{"label": "Removed", "value": sum.Removed},
			{"label": "Changed", "value": sum.Changed},
			{"label": "Unchanged", "value": sum.Unchanged},
		},
		"bars_columns":          bars,
		"grouped_profile_means": grouped,
		"profiles":              run.Profiles,
	})
}

func (s *Server) handleOutliers(c *gin.Context) {
	runs := s.currentRuns()
	if len(runs) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "no comparison loaded"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"outliers": runs[0].Outliers})
}

// handleLatest returns the most recent summary the dashboard store holds,
// which may predate the in-memory runs when the server was restarted
func (s *Server) handleLatest(c *gin.Context) {
	if s.store == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "dashboard store not configured"})
		return
	}
	summary, label, err := s.store.LatestSummary(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"label": label, "summary": summary})
}

// handleReport renders the markdown comparison digest as HTML
func (s *Server) handleReport(c *gin.Context) {
	runs := s.currentRuns()
	if len(runs) == 0 {
		c.String(http.StatusNotFound, "no comparison loaded")
		return
	}
	run := runs[0]

	md := report.RenderMarkdown(run.Label, run.Result)
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.Tables)
	renderer := mdhtml.NewRenderer(mdhtml.RendererOptions{Flags: mdhtml.CommonFlags})
	html := markdown.ToHTML(md, p, renderer)

	c.Data(http.StatusOK, "text/html; charset=utf-8", html)
}
