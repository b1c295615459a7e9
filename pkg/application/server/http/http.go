package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	hertzserver "github.com/cloudwego/hertz/pkg/app/server"
	"github.com/hertz-contrib/swagger"
	"github.com/spf13/viper"
	swaggerFiles "github.com/swaggo/files"

	_ "github.com/cloudscheduler/console/docs"
	"github.com/cloudscheduler/console/pkg/log"
)

type Server struct {
	*hertzserver.Hertz
	logger *log.Logger
}

type Option func(s *Server)

func NewServer(conf *viper.Viper, logger *log.Logger, opts ...Option) *Server {
	h := hertzserver.Default(
		hertzserver.WithHostPorts(conf.GetString("app.addr")),
		hertzserver.WithBasePath(conf.GetString("app.base_url")),
	)
	url := swagger.URL(fmt.Sprintf("http://localhost%s/swagger/doc.json", conf.GetString("app.addr")))
	h.GET("/swagger/*any", swagger.WrapHandler(swaggerFiles.Handler, url))
	s := &Server{
		Hertz:  h,
		logger: logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (h *Server) Start() {
	if err := h.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		h.logger.Sugar().Fatalf("listen: %s\n", err)
	}
}

func (h *Server) Stop() {
	h.logger.Sugar().Info("shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := h.Shutdown(ctx); err != nil {
		h.logger.Sugar().Errorf("server shutdown: %s", err)
	}
	h.logger.Sugar().Info("server exiting")
}
