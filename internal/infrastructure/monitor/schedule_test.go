package monitor

import (
	"testing"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/stretchr/testify/require"
)

func TestScheduleRoundsToWholeSeconds(t *testing.T) {
	cases := []struct {
		interval time.Duration
		want     time.Duration
	}{
		{1500 * time.Millisecond, 2 * time.Second},
		{2400 * time.Millisecond, 2 * time.Second},
		{30 * time.Second, 30 * time.Second},
		{0, 10 * time.Second},
	}
	for _, tc := range cases {
		m := New(nil, "memory", tc.interval, nil)
		entries := m.cron.Entries()
		require.Len(t, entries, 1)
		schedule, ok := entries[0].Schedule.(cron.ConstantDelaySchedule)
		require.True(t, ok)
		require.Equal(t, tc.want, schedule.Delay, "interval %s", tc.interval)
	}
}
