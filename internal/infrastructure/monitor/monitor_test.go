package monitor_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/fastygo/cardfolio/internal/infrastructure/monitor"
)

type fakePinger struct {
	mu  sync.Mutex
	err error
}

func (f *fakePinger) Ping(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.err
}

func (f *fakePinger) set(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.err = err
}

func TestRefreshTracksStorageState(t *testing.T) {
	pinger := &fakePinger{}
	mon := monitor.New(pinger, "bolt", time.Minute, nil)

	require.False(t, mon.IsOnline())

	mon.Refresh()
	require.True(t, mon.IsOnline())
	status := mon.GetStatus()
	require.Equal(t, "bolt", status.Driver)
	require.Empty(t, status.Error)
	require.False(t, status.LastCheck.IsZero())

	pinger.set(errors.New("connection refused"))
	mon.Refresh()
	require.False(t, mon.IsOnline())
	require.Equal(t, "connection refused", mon.GetStatus().Error)
}

func TestRefreshWithoutStore(t *testing.T) {
	mon := monitor.New(nil, "memory", time.Minute, nil)
	mon.Refresh()
	require.False(t, mon.IsOnline())
	require.NotEmpty(t, mon.GetStatus().Error)
}

func TestStartStop(t *testing.T) {
	mon := monitor.New(&fakePinger{}, "memory", 0, nil)
	mon.Start()
	require.True(t, mon.IsOnline())

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	mon.Stop(ctx)
}
