package playback

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/timedeck/internal/domain/effect"
	"github.com/oshokin/timedeck/internal/sound"
)

// recorder is a RunFunc that records invocations and blocks until cancelled
// or released.
type recorder struct {
	mu    sync.Mutex
	calls [][]string
	runs  chan struct{}
	// block keeps each run alive until its context is cancelled.
	block bool
}

// run records the call and optionally blocks.
func (r *recorder) run(ctx context.Context, name string, args ...string) error {
	r.mu.Lock()
	r.calls = append(r.calls, append([]string{name}, args...))
	r.mu.Unlock()

	r.runs <- struct{}{}

	if r.block {
		<-ctx.Done()

		return ctx.Err()
	}

	return nil
}

// lastCall returns the most recent invocation.
func (r *recorder) lastCall() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.calls[len(r.calls)-1]
}

// TestCommandPlayer_DataURI writes the payload to a cache file and runs the template.
func TestCommandPlayer_DataURI(t *testing.T) {
	t.Parallel()

	rec := &recorder{runs: make(chan struct{}, 8), block: true}

	p, err := newCommandPlayer([]string{"player", "--volume", "50", filePlaceholder}, rec.run)
	require.NoError(t, err)

	defer func() { require.NoError(t, p.Close()) }()

	require.NoError(t, p.Play(context.Background(), effect.ChannelAlarm, sound.DigitalPulse, true))
	<-rec.runs

	call := rec.lastCall()
	require.Equal(t, "player", call[0])
	require.Equal(t, []string{"--volume", "50"}, call[1:3])
	require.Equal(t, ".wav", filepath.Ext(call[3]))

	data, err := os.ReadFile(call[3])
	require.NoError(t, err)
	require.Equal(t, "RIFF", string(data[:4]))

	require.NoError(t, p.Stop(context.Background(), effect.ChannelAlarm))
	require.NoError(t, p.Stop(context.Background(), effect.ChannelAlarm))
}

// TestCommandPlayer_LoopsUntilStopped re-runs a looping sound until Stop.
func TestCommandPlayer_LoopsUntilStopped(t *testing.T) {
	t.Parallel()

	rec := &recorder{runs: make(chan struct{})}

	p, err := newCommandPlayer([]string{"player"}, rec.run)
	require.NoError(t, err)

	defer func() { require.NoError(t, p.Close()) }()

	require.NoError(t, p.Play(context.Background(), effect.ChannelTimer, "/tmp/beep.wav", true))

	for range 3 {
		select {
		case <-rec.runs:
		case <-time.After(5 * time.Second):
			t.Fatal("loop did not re-run the command")
		}
	}

	require.Equal(t, []string{"player", "/tmp/beep.wav"}, rec.lastCall())

	// Drain runs while stopping so the loop is never stuck on a send.
	stopped := make(chan struct{})

	go func() {
		defer close(stopped)

		_ = p.Stop(context.Background(), effect.ChannelTimer)
	}()

	for {
		select {
		case <-rec.runs:
			continue
		case <-stopped:
		}

		break
	}
}

// TestCommandPlayer_UnsupportedReference rejects references it cannot open.
func TestCommandPlayer_UnsupportedReference(t *testing.T) {
	t.Parallel()

	p, err := newCommandPlayer([]string{"player"}, (&recorder{runs: make(chan struct{}, 1)}).run)
	require.NoError(t, err)

	defer func() { require.NoError(t, p.Close()) }()

	err = p.Play(context.Background(), effect.ChannelAlarm, "https://example.com/a.wav", false)
	require.ErrorIs(t, err, ErrUnsupportedSound)

	err = p.Play(context.Background(), effect.ChannelAlarm, "data:audio/wav;base64", false)
	require.ErrorIs(t, err, sound.ErrNotDataURI)
}

// TestCommandPlayer_OneShot runs a non-looping sound once.
func TestCommandPlayer_OneShot(t *testing.T) {
	t.Parallel()

	rec := &recorder{runs: make(chan struct{}, 4)}

	p, err := newCommandPlayer([]string{"player"}, rec.run)
	require.NoError(t, err)

	require.NoError(t, p.Play(context.Background(), effect.ChannelAlarm, "file:///tmp/beep.wav", false))
	<-rec.runs
	require.NoError(t, p.Close())

	require.Len(t, rec.calls, 1)
	require.Equal(t, []string{"player", "/tmp/beep.wav"}, rec.calls[0])
}
