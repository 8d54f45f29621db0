package menu

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestManualScheduler_FiresInDueOrder(t *testing.T) {
	s := NewManualScheduler()
	var got []string
	s.AfterFunc(30*time.Millisecond, func() { got = append(got, "c") })
	s.AfterFunc(10*time.Millisecond, func() { got = append(got, "a") })
	s.AfterFunc(10*time.Millisecond, func() { got = append(got, "b") })
	s.AfterFunc(time.Second, func() { got = append(got, "late") })

	s.Advance(30 * time.Millisecond)
	assert.Equal(t, []string{"a", "b", "c"}, got)
	assert.Equal(t, 30*time.Millisecond, s.Now())
	assert.Equal(t, 1, s.Pending())
}

func TestManualScheduler_Stop(t *testing.T) {
	s := NewManualScheduler()
	ran := false
	timer := s.AfterFunc(time.Millisecond, func() { ran = true })
	assert.True(t, timer.Stop())
	assert.False(t, timer.Stop())

	s.Advance(time.Second)
	assert.False(t, ran)

	fired := s.AfterFunc(0, func() {})
	s.Advance(0)
	assert.False(t, fired.Stop(), "stopping a fired timer reports false")
}

func TestManualScheduler_TimerArmsTimer(t *testing.T) {
	s := NewManualScheduler()
	var at []time.Duration
	s.AfterFunc(10*time.Millisecond, func() {
		at = append(at, s.Now())
		s.AfterFunc(10*time.Millisecond, func() { at = append(at, s.Now()) })
	})
	s.Advance(25 * time.Millisecond)
	assert.Equal(t, []time.Duration{10 * time.Millisecond, 20 * time.Millisecond}, at)
}

func TestManualScheduler_Flush(t *testing.T) {
	s := NewManualScheduler()
	var got []int
	s.Defer(func() {
		got = append(got, 1)
		s.Defer(func() { got = append(got, 3) })
	})
	s.Defer(func() { got = append(got, 2) })

	assert.Empty(t, got, "nothing runs before Flush")
	assert.Equal(t, 3, s.Flush())
	assert.Equal(t, []int{1, 2, 3}, got)
	assert.Zero(t, s.Flush())
}

func TestManualScheduler_DeferredRunsBetweenTimers(t *testing.T) {
	s := NewManualScheduler()
	var got []string
	s.AfterFunc(time.Millisecond, func() {
		got = append(got, "t1")
		s.Defer(func() { got = append(got, "d1") })
	})
	s.AfterFunc(2*time.Millisecond, func() { got = append(got, "t2") })
	s.Advance(time.Second)
	assert.Equal(t, []string{"t1", "d1", "t2"}, got)
}

func TestTimerScheduler(t *testing.T) {
	done := make(chan struct{})
	TimerScheduler{}.Defer(func() { close(done) })
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("deferred callback did not run")
	}

	timer := TimerScheduler{}.AfterFunc(time.Hour, func() {})
	assert.True(t, timer.Stop())
}

func TestKeyResult(t *testing.T) {
	tests := []struct {
		result    KeyResult
		propagate bool
		str       string
	}{
		{KeyNotBound, true, "not-bound"},
		{KeyDeclined, true, "declined"},
		{KeyCaptured, false, "captured"},
		{KeyHandled, false, "handled"},
	}
	for _, tt := range tests {
		t.Run(tt.str, func(t *testing.T) {
			assert.Equal(t, tt.propagate, tt.result.Propagate())
			assert.Equal(t, tt.str, tt.result.String())
		})
	}
}

func TestListenerFuncs(t *testing.T) {
	var calls []string
	l := ListenerFuncs{
		OnAttach: func() { calls = append(calls, "attach") },
		OnDetach: func() { calls = append(calls, "detach") },
	}
	l.Attach()
	l.Detach()
	ListenerFuncs{}.Attach()
	assert.Equal(t, []string{"attach", "detach"}, calls)
}
