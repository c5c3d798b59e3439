// internal/server/server.go
package server

import (
	"context"
	"embed"
	"html/template"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"voucherbot/internal/common/logger"
	"voucherbot/internal/common/observability"
	routeresponse "voucherbot/internal/pipeline/chat/route-response"
)

//go:embed templates/index.html
var templatesFS embed.FS

// Chatter answers one chat message.
type Chatter interface {
	Execute(ctx context.Context, input *routeresponse.Input) *routeresponse.Output
}

// Pinger reports whether a dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Options struct {
	ServiceName   string
	Chat          Chatter
	Database      Pinger
	Observability *observability.Observability
	Logger        logger.Logger
}

type Server struct {
	opts   Options
	router *gin.Engine
	logger logger.Logger
}

func New(opts Options) *Server {
	s := &Server{
		opts:   opts,
		router: gin.New(),
		logger: opts.Logger.With(map[string]interface{}{"component": "http"}),
	}

	s.router.SetHTMLTemplate(template.Must(template.ParseFS(templatesFS, "templates/index.html")))

	s.router.Use(gin.Recovery())
	s.router.Use(RequestID())
	s.router.Use(otelgin.Middleware(opts.ServiceName))
	s.router.Use(Observe(opts.Observability))
	s.router.Use(AccessLog(s.logger))

	s.routes()
	return s
}

func (s *Server) routes() {
	s.router.GET("/", s.home)
	s.router.POST("/get", s.chat)
	s.router.GET("/health", s.health)
	s.router.GET("/ready", s.ready)
	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	s.router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	})
}

func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) home(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", gin.H{"Title": "Voucher Assistant"})
}

func (s *Server) chat(c *gin.Context) {
	msg, ok := c.GetPostForm("msg")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "form field 'msg' is required"})
		return
	}

	out := s.opts.Chat.Execute(c.Request.Context(), &routeresponse.Input{Message: msg})
	c.JSON(http.StatusOK, gin.H{"response": out.Response})
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "alive",
		"timestamp": time.Now().UTC(),
	})
}

func (s *Server) ready(c *gin.Context) {
	if s.opts.Database == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not ready", "database": "unconfigured"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := s.opts.Database.Ping(ctx); err != nil {
		s.logger.Error("readiness check failed", map[string]interface{}{
			"error": err.Error(),
		})
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":    "not ready",
			"database":  "down",
			"timestamp": time.Now().UTC(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    "ready",
		"database":  "up",
		"timestamp": time.Now().UTC(),
	})
}
