// Package effect describes side-effect requests emitted by the timing engines.
//
// Engines never call the audio sink directly. They return Effect values next to
// their new state and the service hands them to a dispatcher.
package effect

import "fmt"

// Channel names an independent playback stream.
type Channel string

const (
	// ChannelTimer carries the countdown completion sound.
	ChannelTimer Channel = "timer"
	// ChannelAlarm carries the alarm ringing sound.
	ChannelAlarm Channel = "alarm"
)

// Kind is the type of side effect.
type Kind int

const (
	// KindPlay starts playback of Sound on Channel.
	KindPlay Kind = iota + 1
	// KindStop stops playback on Channel.
	KindStop
)

// String returns the lower-case name of the kind.
func (k Kind) String() string {
	switch k {
	case KindPlay:
		return "play"
	case KindStop:
		return "stop"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Effect is a single playback request.
type Effect struct {
	Kind    Kind
	Channel Channel
	// Sound is an opaque URI; empty for KindStop.
	Sound string
	// Loop asks the sink to repeat Sound until stopped.
	Loop bool
}

// Play returns a looping or one-shot play request.
func Play(ch Channel, sound string, loop bool) Effect {
	return Effect{Kind: KindPlay, Channel: ch, Sound: sound, Loop: loop}
}

// Stop returns a stop request for ch.
func Stop(ch Channel) Effect {
	return Effect{Kind: KindStop, Channel: ch}
}

// String renders the effect for logs.
func (e Effect) String() string {
	if e.Kind == KindPlay {
		return fmt.Sprintf("%s %s loop=%t", e.Kind, e.Channel, e.Loop)
	}

	return fmt.Sprintf("%s %s", e.Kind, e.Channel)
}
