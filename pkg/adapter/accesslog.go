package adapter

import (
	"context"
	"time"

	"github.com/cloudwego/hertz/pkg/app"
	"go.uber.org/zap"

	"github.com/cloudscheduler/console/pkg/log"
	"github.com/cloudscheduler/console/pkg/sid"
)

const requestIDHeader = "X-Request-Id"

// AccessLog tags every request with a generated id and logs method, path,
// status and latency. Downstream handlers inherit the id through the
// context logger.
func AccessLog(logger *log.Logger, s *sid.Sid) app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		requestID, err := s.GenString()
		if err == nil {
			c.Header(requestIDHeader, requestID)
			ctx = logger.WithValue(ctx, zap.String("request_id", requestID))
		}

		start := time.Now()
		c.Next(ctx)

		logger.WithContext(ctx).Info("access",
			zap.String("method", string(c.Method())),
			zap.String("path", string(c.Path())),
			zap.Int("status", c.Response.StatusCode()),
			zap.Duration("latency", time.Since(start)))
	}
}
