package playback

import (
	"context"

	"github.com/oshokin/timedeck/internal/domain/effect"
	"github.com/oshokin/timedeck/internal/logger"
	"github.com/oshokin/timedeck/internal/sound"
)

// Player is the audio side-effect sink.
type Player interface {
	// Play starts sound on ch, replacing whatever ch was playing.
	Play(ctx context.Context, ch effect.Channel, soundRef string, loop bool) error
	// Stop silences ch.
	Stop(ctx context.Context, ch effect.Channel) error
}

// LogPlayer logs playback requests without producing audio.
type LogPlayer struct{}

// Play logs the request.
func (LogPlayer) Play(ctx context.Context, ch effect.Channel, soundRef string, loop bool) error {
	logger.InfoKV(ctx, "Playback started", "channel", ch, "sound", sound.NameOf(soundRef), "loop", loop)

	return nil
}

// Stop logs the request.
func (LogPlayer) Stop(ctx context.Context, ch effect.Channel) error {
	logger.InfoKV(ctx, "Playback stopped", "channel", ch)

	return nil
}
