package countdown

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/oshokin/timedeck/internal/domain/effect"
)

// Phase is the countdown lifecycle state.
type Phase int

const (
	// Setup accepts configuration input.
	Setup Phase = iota
	// Running counts down towards the deadline.
	Running
	// Paused holds the remaining time frozen.
	Paused
	// Finished rings until dismissed.
	Finished
)

// String returns the lower-case phase name.
func (p Phase) String() string {
	switch p {
	case Setup:
		return "setup"
	case Running:
		return "running"
	case Paused:
		return "paused"
	case Finished:
		return "finished"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

const (
	// MaxInputDigits is the capacity of the digit buffer (HHMMSS).
	MaxInputDigits = 6
	// DefaultInput configures five minutes.
	DefaultInput = "500"
	// clearedInput is the buffer after a dismiss or reset.
	clearedInput = "0"
)

// Preset is a named shortcut for a digit buffer.
type Preset struct {
	Name  string
	Input string
}

// Presets lists the built-in durations.
//
//nolint:gochecknoglobals // Read-only table.
var Presets = []Preset{
	{Name: "1m", Input: "100"},
	{Name: "5m", Input: "500"},
	{Name: "10m", Input: "1000"},
	{Name: "30m", Input: "3000"},
}

// PresetByName looks up a preset by its name.
func PresetByName(name string) (Preset, bool) {
	for _, p := range Presets {
		if strings.EqualFold(p.Name, name) {
			return p, true
		}
	}

	return Preset{}, false
}

// Snapshot is a point-in-time view of the countdown.
type Snapshot struct {
	Phase Phase
	// Input is the digit buffer.
	Input string
	// Configured is the duration the buffer parses to.
	Configured time.Duration
	// Remaining is the exact remaining time, clamped to zero.
	Remaining time.Duration
	// Total is the duration of the current run, zero in Setup.
	Total time.Duration
	// Display is Remaining (or Configured in Setup) as HH:MM:SS.
	Display string
	Sound   string
}

// Countdown is a single-shot timer. It is not safe for concurrent use.
type Countdown struct {
	phase            Phase
	input            string
	deadline         time.Time
	remainingAtPause time.Duration
	total            time.Duration
	sound            string
}

// New returns a countdown in Setup with the default five minute input.
func New(sound string) *Countdown {
	return &Countdown{
		phase: Setup,
		input: DefaultInput,
		sound: sound,
	}
}

// Phase returns the current phase.
func (c *Countdown) Phase() Phase {
	return c.phase
}

// Sound returns the completion sound reference.
func (c *Countdown) Sound() string {
	return c.sound
}

// SetSound changes the completion sound. A ringing countdown switches to the
// new sound immediately.
func (c *Countdown) SetSound(sound string) []effect.Effect {
	c.sound = sound

	if c.phase == Finished {
		return []effect.Effect{effect.Play(effect.ChannelTimer, sound, true)}
	}

	return nil
}

// Configured returns the duration the digit buffer parses to.
func (c *Countdown) Configured() time.Duration {
	return ParseInput(c.input)
}

// EnterDigit appends one digit to the buffer. A leading "0" is replaced.
// Input beyond MaxInputDigits and non-digit runes are ignored.
func (c *Countdown) EnterDigit(d rune) ([]effect.Effect, bool) {
	effects, ok := c.beginInput()
	if !ok {
		return nil, false
	}

	changed := len(effects) > 0

	switch {
	case d < '0' || d > '9':
	case c.input == clearedInput:
		c.input = string(d)
		changed = true
	case len(c.input) < MaxInputDigits:
		c.input += string(d)
		changed = true
	}

	return effects, changed
}

// DeleteDigit drops the last digit. An emptied buffer becomes "0".
func (c *Countdown) DeleteDigit() ([]effect.Effect, bool) {
	effects, ok := c.beginInput()
	if !ok {
		return nil, false
	}

	previous := c.input

	c.input = c.input[:len(c.input)-1]
	if c.input == "" {
		c.input = clearedInput
	}

	return effects, len(effects) > 0 || c.input != previous
}

// ApplyPreset replaces the buffer with the preset digits.
func (c *Countdown) ApplyPreset(p Preset) ([]effect.Effect, bool) {
	return c.Configure(p.Input)
}

// Configure replaces the buffer with the digits found in input, keeping at
// most MaxInputDigits of them.
func (c *Countdown) Configure(input string) ([]effect.Effect, bool) {
	effects, ok := c.beginInput()
	if !ok {
		return nil, false
	}

	c.input = sanitize(input)

	return effects, true
}

// beginInput gates configuration input on the phase. A finished countdown is
// dismissed first.
func (c *Countdown) beginInput() ([]effect.Effect, bool) {
	switch c.phase {
	case Setup:
		return nil, true
	case Finished:
		effects, _ := c.Dismiss()

		return effects, true
	default:
		return nil, false
	}
}

// Start runs the configured duration from now. Only valid in Setup with a
// positive duration.
func (c *Countdown) Start(now time.Time) bool {
	if c.phase != Setup {
		return false
	}

	configured := c.Configured()
	if configured <= 0 {
		return false
	}

	c.phase = Running
	c.total = configured
	c.deadline = now.Add(configured)

	return true
}

// Pause freezes the remaining time at now.
func (c *Countdown) Pause(now time.Time) bool {
	if c.phase != Running {
		return false
	}

	c.remainingAtPause = clamp(c.deadline.Sub(now))
	c.deadline = time.Time{}
	c.phase = Paused

	return true
}

// Resume continues a paused countdown with a new deadline.
func (c *Countdown) Resume(now time.Time) bool {
	if c.phase != Paused {
		return false
	}

	c.deadline = now.Add(c.remainingAtPause)
	c.remainingAtPause = 0
	c.phase = Running

	return true
}

// Tick finishes a running countdown whose deadline has passed.
func (c *Countdown) Tick(now time.Time) []effect.Effect {
	if c.phase != Running || now.Before(c.deadline) {
		return nil
	}

	c.phase = Finished
	c.deadline = time.Time{}

	return []effect.Effect{effect.Play(effect.ChannelTimer, c.sound, true)}
}

// Dismiss acknowledges a finished countdown. The buffer is cleared to "0".
func (c *Countdown) Dismiss() ([]effect.Effect, bool) {
	if c.phase != Finished {
		return nil, false
	}

	c.toSetup()

	return []effect.Effect{effect.Stop(effect.ChannelTimer)}, true
}

// Reset abandons any run and clears the buffer to "0".
func (c *Countdown) Reset() ([]effect.Effect, bool) {
	var effects []effect.Effect

	switch {
	case c.phase == Finished:
		effects = []effect.Effect{effect.Stop(effect.ChannelTimer)}
	case c.phase == Setup && c.input == clearedInput:
		return nil, false
	}

	c.toSetup()

	return effects, true
}

func (c *Countdown) toSetup() {
	c.phase = Setup
	c.input = clearedInput
	c.deadline = time.Time{}
	c.remainingAtPause = 0
	c.total = 0
}

// Remaining returns the exact remaining time at now, never negative.
func (c *Countdown) Remaining(now time.Time) time.Duration {
	switch c.phase {
	case Running:
		return clamp(c.deadline.Sub(now))
	case Paused:
		return c.remainingAtPause
	case Setup:
		return c.Configured()
	default:
		return 0
	}
}

// Snapshot captures the countdown at now.
func (c *Countdown) Snapshot(now time.Time) Snapshot {
	remaining := c.Remaining(now)

	return Snapshot{
		Phase:      c.phase,
		Input:      c.input,
		Configured: c.Configured(),
		Remaining:  remaining,
		Total:      c.total,
		Display:    FormatHHMMSS(remaining),
		Sound:      c.sound,
	}
}

// ParseInput converts a digit buffer to a duration. Up to two digits are
// seconds, up to four are MMSS and longer buffers are HHMMSS. Non-digits are
// ignored and fields are not normalised, so "90" is ninety seconds.
func ParseInput(input string) time.Duration {
	digits := sanitize(input)

	var total int

	// Consume pairs from the right: seconds, minutes, then the rest as hours.
	for i, unit := range []int{1, 60, 3600} {
		if digits == "" {
			break
		}

		take := 2
		if i == 2 || len(digits) < take {
			take = len(digits)
		}

		// Digits were sanitized, so Atoi cannot fail.
		n, _ := strconv.Atoi(digits[len(digits)-take:])
		total += n * unit
		digits = digits[:len(digits)-take]
	}

	return time.Duration(total) * time.Second
}

// FormatHHMMSS renders d rounded to whole seconds as HH:MM:SS. Negative
// values render as 00:00:00.
func FormatHHMMSS(d time.Duration) string {
	seconds := int64(math.Round(clamp(d).Seconds()))

	return fmt.Sprintf("%02d:%02d:%02d", seconds/3600, (seconds%3600)/60, seconds%60)
}

func sanitize(input string) string {
	var b strings.Builder

	for _, r := range input {
		if r >= '0' && r <= '9' && b.Len() < MaxInputDigits {
			b.WriteRune(r)
		}
	}

	if b.Len() == 0 {
		return clearedInput
	}

	return b.String()
}

func clamp(d time.Duration) time.Duration {
	if d < 0 {
		return 0
	}

	return d
}
