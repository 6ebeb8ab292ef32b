package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oss-cubesat/fsw/internal/logging"
)

func TestScheduleAbsoluteExecutesOnce(t *testing.T) {
	s := New(logging.Discard())
	now := time.Unix(1000, 0)

	count := 0
	s.ScheduleAbsolute(now.Add(5*time.Second), func(time.Time) { count++ })

	executed := s.Process(now)
	assert.Equal(t, 0, executed)

	executed = s.Process(now.Add(5 * time.Second))
	assert.Equal(t, 1, executed)
	assert.Equal(t, 1, count)
	assert.Equal(t, 0, s.Len())
}

func TestScheduleRelativeComputesAbsoluteAtInsert(t *testing.T) {
	s := New(logging.Discard())
	now := time.Unix(2000, 0)

	fired := false
	s.ScheduleRelative(now, 10*time.Second, func(time.Time) { fired = true })

	s.Process(now.Add(9 * time.Second))
	assert.False(t, fired)
	s.Process(now.Add(10 * time.Second))
	assert.True(t, fired)
}

func TestSchedulePeriodicReenqueues(t *testing.T) {
	s := New(logging.Discard())
	now := time.Unix(0, 0)

	count := 0
	s.SchedulePeriodic(now, 1*time.Second, func(time.Time) { count++ })

	for i := 1; i <= 3; i++ {
		s.Process(now.Add(time.Duration(i) * time.Second))
	}
	assert.Equal(t, 3, count)
	assert.Equal(t, 1, s.Len()) // still scheduled for the next period
}

func TestScheduleConditionalDefersUntilTrue(t *testing.T) {
	s := New(logging.Discard())
	now := time.Unix(0, 0)

	ready := false
	ran := false
	s.ScheduleConditional(now, 1*time.Second, func(time.Time) bool { return ready }, func(time.Time) { ran = true })

	s.Process(now.Add(1 * time.Second))
	assert.False(t, ran)
	assert.Equal(t, 1, s.Len())

	ready = true
	s.Process(now.Add(2 * time.Second))
	assert.True(t, ran)
	assert.Equal(t, 0, s.Len())
}

func TestCancelRemovesAndReheapifies(t *testing.T) {
	s := New(logging.Discard())
	now := time.Unix(0, 0)

	ran := false
	id := s.ScheduleAbsolute(now.Add(1*time.Second), func(time.Time) { ran = true })
	require.True(t, s.Cancel(id))

	s.Process(now.Add(2 * time.Second))
	assert.False(t, ran)
	assert.False(t, s.Cancel(id))
}

func TestStartStopBackground(t *testing.T) {
	s := New(logging.Discard())
	s.StartBackground(10 * time.Millisecond)
	defer s.Stop()

	fired := make(chan struct{}, 1)
	s.ScheduleRelative(time.Now(), 5*time.Millisecond, func(time.Time) {
		select {
		case fired <- struct{}{}:
		default:
		}
	})

	select {
	case <-fired:
	case <-time.After(2 * time.Second):
		t.Fatal("background scheduler never fired")
	}
}
