// Package web serves the dashboard page and its JSON API.
package web

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"log"
	"net/http"
	"net/url"
	"time"

	"StockDashboard/internal/dashboard"
	"StockDashboard/internal/model"
	"StockDashboard/internal/presenter"

	"github.com/gin-gonic/gin"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Server exposes a Dashboard over HTTP.
type Server struct {
	dash   *dashboard.Dashboard
	engine *gin.Engine
	http   *http.Server
}

// NewServer builds the router for dash, listening on addr.
func NewServer(addr string, dash *dashboard.Dashboard) *Server {
	engine := gin.New()
	engine.Use(gin.Logger(), gin.Recovery())

	tmpl := template.Must(template.New("").Funcs(template.FuncMap{
		"direction": directionClass,
	}).ParseFS(templatesFS, "templates/*.html"))
	engine.SetHTMLTemplate(tmpl)

	s := &Server{dash: dash, engine: engine}
	s.routes()
	s.http = &http.Server{
		Addr:              addr,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

func (s *Server) routes() {
	s.engine.GET("/", s.handlePage)
	s.engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := s.engine.Group("/api/v1")
	{
		api.GET("/dashboard", s.handleDashboard)
		api.GET("/export", s.handleExport)
		api.GET("/cache", s.handleCache)
	}
}

// Handler returns the HTTP handler, mainly for tests.
func (s *Server) Handler() http.Handler { return s.engine }

// ListenAndServe serves until Shutdown is called.
func (s *Server) ListenAndServe() error {
	log.Printf("[INFO] dashboard listening on %s", s.http.Addr)
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting requests and waits for in-flight ones.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

type pageData struct {
	dashboard.Page
	Figure  any
	CSVURL  template.URL
	XLSXURL template.URL
}

func (s *Server) handlePage(c *gin.Context) {
	page := s.run(c)
	data := pageData{Page: page}
	if page.View.Chart != nil {
		data.Figure = page.View.Chart.Plotly()
	}
	data.CSVURL = exportURL(page.View.Query, formatCSV)
	data.XLSXURL = exportURL(page.View.Query, formatXLSX)
	c.HTML(http.StatusOK, "dashboard.html", data)
}

func (s *Server) handleDashboard(c *gin.Context) {
	c.JSON(http.StatusOK, s.run(c))
}

func (s *Server) handleCache(c *gin.Context) {
	store := s.dash.Loader.Store()
	stats, err := s.dash.Recorder.Stats()
	if err != nil {
		log.Printf("[WARN] journal stats: %v", err)
	}
	c.JSON(http.StatusOK, gin.H{
		"policy":   store.Policy(),
		"entries":  store.Len(),
		"provider": s.dash.Loader.FetcherName(),
		"runs":     stats,
	})
}

func (s *Server) run(c *gin.Context) dashboard.Page {
	return s.dash.Run(c.Request.Context(), c.Query("symbol"), c.Query("period"), c.Query("interval"))
}

func exportURL(q model.Query, format string) template.URL {
	v := url.Values{
		"format":   {format},
		"symbol":   {q.Symbol},
		"period":   {string(q.Period)},
		"interval": {string(q.Interval)},
	}
	return template.URL("/api/v1/export?" + v.Encode())
}

func directionClass(d presenter.Direction) string {
	switch d {
	case presenter.Up:
		return "up"
	case presenter.Down:
		return "down"
	default:
		return ""
	}
}
