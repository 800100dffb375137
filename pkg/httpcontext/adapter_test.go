package httpcontext_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"

	"github.com/fastygo/cardfolio/pkg/httpcontext"
	"github.com/fastygo/cardfolio/pkg/logger"
)

func TestAttachCarriesRequestMetadata(t *testing.T) {
	ctx := &fasthttp.RequestCtx{}
	ctx.Request.Header.Set("X-Request-ID", "req-7")
	ctx.Request.Header.SetUserAgent("cardfolio-test")

	stdCtx, cancel := httpcontext.NewAdapter(time.Second).Attach(ctx)
	defer cancel()

	deadline, ok := stdCtx.Deadline()
	require.True(t, ok)
	require.WithinDuration(t, time.Now().Add(time.Second), deadline, 100*time.Millisecond)
	require.Equal(t, "req-7", logger.RequestID(stdCtx))
	require.Equal(t, "cardfolio-test", stdCtx.Value(httpcontext.KeyUserAgent))
	require.Equal(t, "req-7", string(ctx.Response.Header.Peek("X-Request-ID")))
}

func TestRequestIDMintsOnce(t *testing.T) {
	ctx := &fasthttp.RequestCtx{}
	first := httpcontext.RequestID(ctx)
	require.NotEmpty(t, first)
	require.Equal(t, first, httpcontext.RequestID(ctx))
}
