package middleware_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/fastygo/cardfolio/internal/middleware"
)

func TestRequestLoggerEchoesRequestID(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	handler := middleware.RequestLogger(zap.New(core))(func(ctx *fasthttp.RequestCtx) {
		ctx.SetStatusCode(http.StatusOK)
	})

	ctx := &fasthttp.RequestCtx{}
	ctx.Request.SetRequestURI("/api/v1/session")
	ctx.Request.Header.Set("X-Request-ID", "req-42")
	handler(ctx)

	require.Equal(t, "req-42", string(ctx.Response.Header.Peek("X-Request-ID")))
	entries := logs.All()
	require.Len(t, entries, 1)
	require.Equal(t, zapcore.InfoLevel, entries[0].Level)
	require.Equal(t, "req-42", entries[0].ContextMap()["request_id"])
}

func TestRequestLoggerMintsIDAndLevelsByStatus(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	handler := middleware.RequestLogger(zap.New(core))(func(ctx *fasthttp.RequestCtx) {
		ctx.SetStatusCode(http.StatusInternalServerError)
	})

	ctx := &fasthttp.RequestCtx{}
	ctx.Request.SetRequestURI("/health")
	handler(ctx)

	require.NotEmpty(t, ctx.Response.Header.Peek("X-Request-ID"))
	require.Equal(t, zapcore.ErrorLevel, logs.All()[0].Level)
}
