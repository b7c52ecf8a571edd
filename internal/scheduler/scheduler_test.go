package scheduler

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/sensor-stats/internal/logging"
)

type fakeCache struct{}

func (fakeCache) Len() int      { return 2 }
func (fakeCache) Hits() int64   { return 5 }
func (fakeCache) Misses() int64 { return 2 }

type fakeTable struct{}

func (fakeTable) Readings(context.Context) int { return 42 }

func TestReport(t *testing.T) {
	var buf bytes.Buffer
	s := New(time.Minute, fakeCache{}, fakeTable{}, logging.New("info", "json", &buf))

	s.Report()

	out := buf.String()
	assert.Contains(t, out, `"entries":2`)
	assert.Contains(t, out, `"hits":5`)
	assert.Contains(t, out, `"misses":2`)
	assert.Contains(t, out, `"readings":42`)
}

func TestStartDisabled(t *testing.T) {
	var buf bytes.Buffer
	s := New(0, fakeCache{}, fakeTable{}, logging.New("info", "json", &buf))

	require.NoError(t, s.Start())
	defer s.Stop()
	assert.False(t, s.scheduler.IsRunning())
}

func TestStartSchedulesJob(t *testing.T) {
	s := New(time.Hour, fakeCache{}, fakeTable{}, nil)

	require.NoError(t, s.Start())
	assert.True(t, s.scheduler.IsRunning())
	assert.Len(t, s.scheduler.Jobs(), 1)

	s.Stop()
	assert.False(t, s.scheduler.IsRunning())
}
