package webcache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestPacerFirstCallNeverWaits(t *testing.T) {
	pacer := NewRequestPacer(time.Hour)

	start := time.Now()
	err := pacer.Wait(context.Background())
	require.NoError(t, err)
	require.Less(t, time.Since(start), time.Second)
}

func TestPacerEnforcesInterval(t *testing.T) {
	const interval = time.Millisecond * 200
	pacer := NewRequestPacer(interval)

	ctx := context.Background()
	require.NoError(t, pacer.Wait(ctx))

	start := time.Now()
	require.NoError(t, pacer.Wait(ctx))
	require.GreaterOrEqual(t, time.Since(start), interval-time.Millisecond*20)
}

func TestPacerElapsedIntervalSkipsWait(t *testing.T) {
	const interval = time.Millisecond * 50
	pacer := NewRequestPacer(interval)

	ctx := context.Background()
	require.NoError(t, pacer.Wait(ctx))
	time.Sleep(interval * 2)

	start := time.Now()
	require.NoError(t, pacer.Wait(ctx))
	require.Less(t, time.Since(start), interval)
}

func TestPacerCanceledContext(t *testing.T) {
	pacer := NewRequestPacer(time.Hour)
	require.NoError(t, pacer.Wait(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := pacer.Wait(ctx)
	require.ErrorIs(t, err, context.Canceled)

	// the canceled attempt still advanced pacer state
	require.False(t, pacer.last.IsZero())
}
