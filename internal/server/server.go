package server

import (
	"context"
	goerrors "errors"
	"html/template"
	"net/http"
	"strings"
	"time"

	_ "embed"

	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	_ "chemviz/docs"
	"chemviz/internal/config"
	"chemviz/internal/dashboard"
	"chemviz/pkg/log"
)

const (
	dashboardTemplate = "dashboard.html"
	maxUploadSize     = 32 << 20
)

//go:embed templates/dashboard.html
var dashboardHTML string

// @title chemviz dashboard
// @version 1.0
// @description Local dashboard over the chemical equipment analysis service.
// @BasePath /
type Server struct {
	conf       *config.ViewConfig
	dash       *dashboard.Dashboard
	httpServer *http.Server
	logger     *logrus.Entry
}

func NewServer(ctx context.Context, conf *config.ViewConfig, dash *dashboard.Dashboard) (*Server, error) {
	if dash == nil {
		return nil, goerrors.New("dashboard is required")
	}
	s := &Server{
		conf:   conf,
		dash:   dash,
		logger: log.GetLogger(ctx).WithField("component", "server"),
	}
	return s, nil
}

// URL is the address the dashboard is reachable at once started.
func (s *Server) URL() string {
	scheme := "http"
	if s.tls() {
		scheme = "https"
	}
	return scheme + "://" + s.conf.Addr + "/"
}

func (s *Server) tls() bool {
	return s.conf.SSLCert != "" && s.conf.SSLKey != ""
}

func RequestId() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestId := c.GetHeader(log.HttpXRequestId)
		if requestId == "" {
			requestId = strings.ReplaceAll(uuid.New().String(), "-", "")
		}
		c.Header(log.HttpXRequestId, requestId)
		c.Set(log.CtxRequestId, requestId)
		c.Request = c.Request.WithContext(log.WithRequestId(c.Request.Context(), requestId))
		c.Next()
	}
}

func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		t := time.Now()
		c.Next()
		latency := time.Since(t)
		status := c.Writer.Status()

		log.GetLogger(c.Request.Context()).Info("ip: ", c.ClientIP(), " method: ", c.Request.Method, " path: ",
			c.Request.URL.Path, " status: ", status, " latency: ", latency)
	}
}

// Start serves the dashboard until Shutdown is called.
func (s *Server) Start() error {
	gin.SetMode(gin.ReleaseMode)
	router := s.SetUpRouter()
	if s.conf.Pprof {
		pprof.Register(router)
	}
	s.httpServer = &http.Server{
		Addr:    s.conf.Addr,
		Handler: router,
	}

	var err error
	if s.tls() {
		s.logger.Infof("start https server on %s", s.conf.Addr)
		err = s.httpServer.ListenAndServeTLS(s.conf.SSLCert, s.conf.SSLKey)
	} else {
		s.logger.Infof("start http server on %s", s.conf.Addr)
		err = s.httpServer.ListenAndServe()
	}
	if err != nil && !goerrors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func (s *Server) writeError(c *gin.Context, code int, err error) {
	c.JSON(code, ErrorResponse{
		Error: err.Error(),
	})
}

func newTemplate() *template.Template {
	return template.Must(template.New(dashboardTemplate).Parse(dashboardHTML))
}
