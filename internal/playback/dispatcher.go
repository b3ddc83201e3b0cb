package playback

import (
	"context"
	"sync"

	"github.com/oshokin/timedeck/internal/domain/effect"
	"github.com/oshokin/timedeck/internal/logger"
)

// FailureFunc observes a failed effect.
type FailureFunc func(e effect.Effect, err error)

// Dispatcher applies effects to a Player. Play on a channel already playing
// the same sound and Stop on a silent channel are no-ops.
// It is safe for concurrent use.
type Dispatcher struct {
	player    Player
	onFailure FailureFunc

	mu      sync.Mutex
	playing map[effect.Channel]string
}

// NewDispatcher wraps player. onFailure may be nil.
func NewDispatcher(player Player, onFailure FailureFunc) *Dispatcher {
	if player == nil {
		player = LogPlayer{}
	}

	return &Dispatcher{
		player:    player,
		onFailure: onFailure,
		playing:   make(map[effect.Channel]string),
	}
}

// Apply runs the effects in order. Failures are logged and reported to the
// failure hook; they never stop the remaining effects.
func (d *Dispatcher) Apply(ctx context.Context, effects []effect.Effect) {
	d.mu.Lock()
	defer d.mu.Unlock()

	for _, e := range effects {
		var err error

		switch e.Kind {
		case effect.KindPlay:
			if current, ok := d.playing[e.Channel]; ok && current == e.Sound {
				continue
			}

			err = d.player.Play(ctx, e.Channel, e.Sound, e.Loop)
			if err == nil && e.Loop {
				d.playing[e.Channel] = e.Sound
			}
		case effect.KindStop:
			if _, ok := d.playing[e.Channel]; !ok {
				continue
			}

			delete(d.playing, e.Channel)
			err = d.player.Stop(ctx, e.Channel)
		default:
			continue
		}

		if err != nil {
			logger.ErrorKV(ctx, "Playback failed", "effect", e.String(), "error", err)

			if d.onFailure != nil {
				d.onFailure(e, err)
			}
		}
	}
}

// Playing reports whether a looping sound is active on ch.
func (d *Dispatcher) Playing(ch effect.Channel) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	_, ok := d.playing[ch]

	return ok
}
