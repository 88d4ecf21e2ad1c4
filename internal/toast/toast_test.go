package toast

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestPush_DefaultsAndOrder(t *testing.T) {
	d := NewDispatcher()

	id1 := d.Success("saved")
	id2 := d.Error("failed", 10*time.Second)
	id3 := d.Warning("careful")
	d.Info("fyi")

	require.NotEqual(t, id1, id2)

	toasts := d.Snapshot()
	require.Len(t, toasts, 4)
	require.Equal(t, SeveritySuccess, toasts[0].Severity)
	require.Equal(t, DefaultDuration, toasts[0].Duration)
	require.Equal(t, 10*time.Second, toasts[1].Duration)

	// Removing from the middle keeps the relative order of the rest.
	d.Dismiss(id3)
	toasts = d.Snapshot()
	require.Len(t, toasts, 3)
	require.Equal(t, SeveritySuccess, toasts[0].Severity)
	require.Equal(t, SeverityError, toasts[1].Severity)
	require.Equal(t, SeverityInfo, toasts[2].Severity)
}

func TestZeroDurationExpiresImmediately(t *testing.T) {
	d := NewDispatcher()
	d.Info("blink", 0)

	require.Eventually(t, func() bool {
		return len(d.Snapshot()) == 0
	}, time.Second, 5*time.Millisecond)
}

func TestDismiss_Idempotent(t *testing.T) {
	d := NewDispatcher()
	id := d.Success("once")

	d.Dismiss(id)
	require.Empty(t, d.Snapshot())

	// Second dismissal of the same id: no error, no change.
	d.Dismiss(id)
	require.Empty(t, d.Snapshot())

	// Unknown id is also a no-op.
	d.Dismiss("never-existed")
}

func TestDismissRacesTimer(t *testing.T) {
	d := NewDispatcher()
	id := d.Info("short", 5*time.Millisecond)

	time.Sleep(20 * time.Millisecond) // let the timer fire first
	d.Dismiss(id)                     // must no-op harmlessly

	require.Empty(t, d.Snapshot())
}

func TestOnChange_Notified(t *testing.T) {
	d := NewDispatcher()

	changes := make(chan int, 8)
	d.OnChange(func(toasts []Toast) { changes <- len(toasts) })

	id := d.Success("hello", time.Minute)
	require.Equal(t, 1, <-changes)

	d.Dismiss(id)
	require.Equal(t, 0, <-changes)
}

func TestFlush(t *testing.T) {
	d := NewDispatcher()
	d.Success("a", time.Minute)
	d.Error("b", time.Minute)

	d.Flush()
	require.Empty(t, d.Snapshot())

	// Flushing an empty queue is a no-op.
	d.Flush()
}

func TestIDsUniqueWithinMillisecond(t *testing.T) {
	d := NewDispatcher()
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		id := d.Info("x", time.Minute)
		require.False(t, seen[id], "duplicate toast id %s", id)
		seen[id] = true
	}
}
