package timer_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"worktrack/pkg/timer"
)

func TestTrack(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)

	done := timer.Track(zap.New(core), "lookup")
	require.Zero(t, logs.Len())
	done()

	entries := logs.FilterMessage("timing").All()
	require.Len(t, entries, 1)
	require.Equal(t, "lookup", entries[0].ContextMap()["step"])
	require.Contains(t, entries[0].ContextMap(), "took")
}

func TestStopwatch(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	sw := timer.NewStopwatch(zap.New(core))

	sw.Lap("first")
	time.Sleep(2 * time.Millisecond)
	sw.Lap("second")
	sw.Total("all")

	entries := logs.FilterMessage("timing").All()
	require.Len(t, entries, 3)

	second := entries[1].ContextMap()
	require.Equal(t, "second", second["step"])
	require.GreaterOrEqual(t, second["took"].(time.Duration), 2*time.Millisecond)
	require.GreaterOrEqual(t, second["total"].(time.Duration), second["took"].(time.Duration))

	total := entries[2].ContextMap()
	require.Equal(t, "all", total["step"])
	require.NotContains(t, total, "took")
	require.GreaterOrEqual(t, total["total"].(time.Duration), second["total"].(time.Duration))
}

func TestInfoLevelDropsTimings(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	sw := timer.NewStopwatch(zap.New(core))
	sw.Lap("hidden")
	timer.Track(zap.New(core), "hidden")()
	require.Zero(t, logs.Len())
}
