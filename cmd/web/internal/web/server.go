package web

import (
	"log/slog"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"thirdcoast.systems/redline/cmd/web/handlers/api/dataset_api"
	"thirdcoast.systems/redline/cmd/web/handlers/api/video_api"
	"thirdcoast.systems/redline/cmd/web/handlers/api/workspace_api"
	"thirdcoast.systems/redline/internal/config"
	"thirdcoast.systems/redline/internal/workspace"
)

type Webserver struct {
	*echo.Echo
	conf      *config.Config
	workspace *workspace.Workspace
}

func NewWebserver(conf *config.Config, ws *workspace.Workspace) (*Webserver, error) {
	webserver := &Webserver{
		Echo:      echo.New(),
		conf:      conf,
		workspace: ws,
	}

	if err := webserver.registerRoutes(); err != nil {
		return nil, err
	}

	if err := webserver.setupMiddleware(); err != nil {
		return nil, err
	}

	return webserver, nil
}

func (s *Webserver) setupMiddleware() error {
	s.HideBanner = true
	s.HidePort = true
	s.Use(middleware.BodyLimit("2M"))
	s.Use(middleware.Recover())
	s.Use(middleware.RequestID())
	s.Use(middleware.GzipWithConfig(middleware.GzipConfig{
		Level: 5,
	}))
	s.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		Skipper: func(c echo.Context) bool {
			switch c.Path() {
			case "/healthz", "/metrics":
				return true
			default:
				return false
			}
		},
		LogURI:       true,
		LogMethod:    true,
		LogStatus:    true,
		LogLatency:   true,
		LogRemoteIP:  true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  false,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			fields := []any{
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency,
				"remote_ip", v.RemoteIP,
				"request_id", v.RequestID,
			}
			if v.Error != nil {
				fields = append(fields, "error", v.Error)
			}
			slog.Info("request", fields...)
			return nil
		},
	}))

	return nil
}

func (s *Webserver) registerRoutes() error {
	apiGroup := s.Group("/api")

	apiGroup.GET("/datasets", dataset_api.HandleInfo(s.workspace))
	apiGroup.POST("/datasets/reload", dataset_api.HandleReload(s.workspace, s.conf))

	apiGroup.GET("/videos/index", video_api.HandleIndex(s.workspace))
	apiGroup.GET("/videos/frames", video_api.HandleFrames(s.workspace))

	apiGroup.PUT("/workspace/selection", workspace_api.HandleSelect(s.workspace))
	apiGroup.GET("/workspace/view", workspace_api.HandleView(s.workspace))
	apiGroup.PUT("/workspace/labels/:id", workspace_api.HandleSetLabel(s.workspace))
	apiGroup.DELETE("/workspace/labels/:id", workspace_api.HandleClearLabel(s.workspace))
	apiGroup.POST("/workspace/save", workspace_api.HandleSave(s.workspace))

	// Health check
	s.GET("/healthz", func(c echo.Context) error {
		return c.String(200, "ok")
	})

	s.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	return nil
}
