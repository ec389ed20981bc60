// Package web serves the portfolio page and the carousel endpoints the
// page drives over HTMX and websockets.
package web

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Zachkp/showcase/internal/carousel"
	"github.com/Zachkp/showcase/internal/catalog"
	"github.com/Zachkp/showcase/internal/i18n"
	"github.com/Zachkp/showcase/internal/session"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Catalog is what the page needs from the deck store.
type Catalog interface {
	Decks(ctx context.Context) ([]string, error)
}

type Options struct {
	AdminUsername  string
	AdminPassword  string
	AllowedOrigins []string
	// PageDecks are mounted, in order, when the home page is rendered.
	PageDecks []string
}

type Server struct {
	hub     *session.Hub
	catalog Catalog
	opts    Options
	admin   *admin
	router  *gin.Engine
}

func New(hub *session.Hub, cat Catalog, opts Options) *Server {
	if len(opts.PageDecks) == 0 {
		opts.PageDecks = []string{"about", "aesthetic", "accommodation"}
	}

	s := &Server{
		hub:     hub,
		catalog: cat,
		opts:    opts,
		admin:   newAdmin(opts.AdminUsername, opts.AdminPassword, hub),
		router:  gin.New(),
	}

	s.router.Use(gin.Logger(), gin.Recovery())
	if len(opts.AllowedOrigins) > 0 {
		corsConfig := cors.DefaultConfig()
		corsConfig.AllowOrigins = opts.AllowedOrigins
		corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
		corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "HX-Request", "HX-Target"}
		s.router.Use(cors.New(corsConfig))
	}

	tmpl := template.Must(template.ParseFS(templatesFS, "templates/*.html"))
	s.router.SetHTMLTemplate(tmpl)

	s.setupRoutes()
	s.admin.setupRoutes(s.router)
	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) setupRoutes() {
	s.router.Static("/images", "./images")
	s.router.Static("/static", "./static")

	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "mounts": len(s.hub.Mounts())})
	})
	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	s.router.GET("/", s.home)
	s.router.GET("/carousels", s.listDecks)
	s.router.POST("/carousels/:deck/mounts", s.mount)

	mounts := s.router.Group("/mounts/:id")
	{
		mounts.GET("", s.show)
		mounts.POST("/select", s.selectSlide)
		mounts.POST("/next", s.step(1))
		mounts.POST("/prev", s.step(-1))
		mounts.POST("/pause", s.pause)
		mounts.POST("/resume", s.resume)
		mounts.PUT("/config", s.reconfigure)
		mounts.DELETE("", s.unmount)
		// sendBeacon on page unload can only POST.
		mounts.POST("/unmount", s.unmount)
		mounts.GET("/ws", s.stream)
	}
}

// view is the data every carousel fragment renders from.
type view struct {
	Mount session.Info
	Deck  *catalog.Deck
	Slide catalog.Slide
}

func newView(m *session.Mount) view {
	info := m.Info()
	return view{Mount: info, Deck: m.Deck, Slide: m.Deck.Slides[info.Index]}
}

func locale(c *gin.Context) i18n.Locale {
	return i18n.Negotiate(c.GetHeader("Accept-Language"), c.Query("lang"))
}

func isHTMX(c *gin.Context) bool {
	return c.GetHeader("HX-Request") == "true"
}

// Home page: every section's carousel is mounted up front and then kept
// in sync by HTMX polling or the websocket.
func (s *Server) home(c *gin.Context) {
	loc := locale(c)

	var views []view
	for _, name := range s.opts.PageDecks {
		m, err := s.hub.Mount(c.Request.Context(), name, loc)
		if errors.Is(err, catalog.ErrDeckNotFound) {
			log.Printf("Skipping missing deck %q on home page", name)
			continue
		}
		if err != nil {
			s.fail(c, err)
			return
		}
		views = append(views, newView(m))
	}

	c.HTML(http.StatusOK, "index.html", gin.H{
		"locale":    loc,
		"locales":   i18n.Supported(),
		"carousels": views,
	})
}

func (s *Server) listDecks(c *gin.Context) {
	names, err := s.catalog.Decks(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"decks": names})
}

func (s *Server) mount(c *gin.Context) {
	m, err := s.hub.Mount(c.Request.Context(), c.Param("deck"), locale(c))
	if err != nil {
		s.fail(c, err)
		return
	}
	s.render(c, http.StatusCreated, m)
}

func (s *Server) show(c *gin.Context) {
	m, err := s.hub.Get(c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	s.render(c, http.StatusOK, m)
}

type selectRequest struct {
	Index *int `form:"index" json:"index" binding:"required"`
}

func (s *Server) selectSlide(c *gin.Context) {
	var req selectRequest
	if err := c.ShouldBind(&req); err != nil {
		s.fail(c, badRequest{err})
		return
	}

	id := c.Param("id")
	if _, err := s.hub.Select(id, *req.Index); err != nil {
		s.fail(c, err)
		return
	}
	s.renderID(c, id)
}

// step serves the previous/next arrows.
func (s *Server) step(delta int) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		if _, err := s.hub.Step(id, delta); err != nil {
			s.fail(c, err)
			return
		}
		s.renderID(c, id)
	}
}

func (s *Server) pause(c *gin.Context) {
	m, err := s.hub.Get(c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	m.Controller.Pause()
	s.render(c, http.StatusOK, m)
}

func (s *Server) resume(c *gin.Context) {
	m, err := s.hub.Get(c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	m.Controller.Resume()
	s.render(c, http.StatusOK, m)
}

type configRequest struct {
	Autoplay   *bool  `json:"autoplay"`
	IntervalMS *int64 `json:"interval_ms"`
}

// Client-supplied autoplay intervals, in milliseconds.
const (
	minIntervalMS = 250
	maxIntervalMS = int64(24 * time.Hour / time.Millisecond)
)

var errIntervalRange = fmt.Errorf("interval_ms must be between %d and %d", minIntervalMS, maxIntervalMS)

func (s *Server) reconfigure(c *gin.Context) {
	var req configRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.fail(c, badRequest{err})
		return
	}

	var interval *time.Duration
	if req.IntervalMS != nil {
		ms := *req.IntervalMS
		if ms < minIntervalMS || ms > maxIntervalMS {
			s.fail(c, badRequest{errIntervalRange})
			return
		}
		d := time.Duration(ms) * time.Millisecond
		interval = &d
	}

	id := c.Param("id")
	if _, err := s.hub.Reconfigure(id, req.Autoplay, interval); err != nil {
		s.fail(c, err)
		return
	}
	s.renderID(c, id)
}

func (s *Server) unmount(c *gin.Context) {
	if err := s.hub.Unmount(c.Param("id"), session.ReasonClient); err != nil {
		s.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) renderID(c *gin.Context, id string) {
	m, err := s.hub.Get(id)
	if err != nil {
		s.fail(c, err)
		return
	}
	s.render(c, http.StatusOK, m)
}

// render answers HTMX requests with the slide fragment and everything
// else with JSON.
func (s *Server) render(c *gin.Context, status int, m *session.Mount) {
	v := newView(m)
	if isHTMX(c) {
		c.HTML(status, "carousel.html", v)
		return
	}
	c.JSON(status, gin.H{
		"mount":  v.Mount,
		"slide":  v.Slide,
		"slides": m.Deck.Slides,
	})
}

type badRequest struct{ err error }

func (b badRequest) Error() string { return b.err.Error() }
func (b badRequest) Unwrap() error { return b.err }

func statusFor(err error) int {
	var bad badRequest
	switch {
	case errors.As(err, &bad),
		errors.Is(err, session.ErrSlideOutOfRange),
		errors.Is(err, carousel.ErrInvalidInterval):
		return http.StatusBadRequest
	case errors.Is(err, session.ErrMountNotFound),
		errors.Is(err, catalog.ErrDeckNotFound):
		return http.StatusNotFound
	case errors.Is(err, carousel.ErrInvalidSlideCount):
		return http.StatusUnprocessableEntity
	case errors.Is(err, session.ErrClosed):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

func (s *Server) fail(c *gin.Context, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		log.Printf("Error serving %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	}

	if isHTMX(c) {
		c.HTML(status, "error.html", gin.H{"error": err.Error()})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
