package middleware

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
)

// RequestLogger logs every request with latency and request ID. The request ID
// is taken from X-Request-ID or minted, and echoed back on the response.
func RequestLogger(logger *zap.Logger) func(fasthttp.RequestHandler) fasthttp.RequestHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(next fasthttp.RequestHandler) fasthttp.RequestHandler {
		return func(ctx *fasthttp.RequestCtx) {
			start := time.Now()
			requestID := strings.TrimSpace(string(ctx.Request.Header.Peek("X-Request-ID")))
			if requestID == "" {
				requestID = uuid.NewString()
				ctx.Request.Header.Set("X-Request-ID", requestID)
			}

			next(ctx)

			ctx.Response.Header.Set("X-Request-ID", requestID)
			status := ctx.Response.StatusCode()
			fields := []zap.Field{
				zap.String("request_id", requestID),
				zap.Int("status", status),
				zap.String("method", string(ctx.Method())),
				zap.String("path", string(ctx.Path())),
				zap.Duration("latency", time.Since(start)),
				zap.String("user_agent", string(ctx.UserAgent())),
			}

			switch {
			case status >= 500:
				logger.Error("http_request", fields...)
			case status >= 400:
				logger.Warn("http_request", fields...)
			default:
				logger.Info("http_request", fields...)
			}
		}
	}
}
