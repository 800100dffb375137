package lifecycle_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/fastygo/cardfolio/internal/services/lifecycle"
)

func TestShutdownRunsHooksInReverseOnce(t *testing.T) {
	manager := lifecycle.New(time.Second, nil)

	var order []string
	for _, name := range []string{"storage", "monitor", "http_server"} {
		name := name
		manager.Register(name, func(ctx context.Context) error {
			order = append(order, name)
			return nil
		})
	}
	manager.Register("ignored", nil)

	require.NoError(t, manager.Shutdown(context.Background()))
	require.Equal(t, []string{"http_server", "monitor", "storage"}, order)

	require.NoError(t, manager.Shutdown(context.Background()))
	require.Len(t, order, 3)
}

func TestShutdownJoinsErrors(t *testing.T) {
	manager := lifecycle.New(time.Second, nil)
	errStorage := errors.New("storage busy")
	errServer := errors.New("server busy")
	ran := false

	manager.Register("storage", func(ctx context.Context) error { return errStorage })
	manager.Register("monitor", func(ctx context.Context) error {
		ran = true
		return nil
	})
	manager.Register("http_server", func(ctx context.Context) error { return errServer })

	err := manager.Shutdown(context.Background())
	require.ErrorIs(t, err, errStorage)
	require.ErrorIs(t, err, errServer)
	require.True(t, ran)
}

func TestShutdownAppliesTimeout(t *testing.T) {
	manager := lifecycle.New(20*time.Millisecond, nil)
	manager.Register("slow", func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})

	err := manager.Shutdown(context.Background())
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestListenStop(t *testing.T) {
	manager := lifecycle.New(time.Second, nil)
	stop := manager.Listen(func() {})
	stop()
	stop()

	noop := manager.Listen(nil)
	noop()
}
