package playback

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/oshokin/timedeck/internal/domain/effect"
	"github.com/oshokin/timedeck/internal/logger"
	"github.com/oshokin/timedeck/internal/sound"
)

// filePlaceholder marks where the sound file goes in a command template.
const filePlaceholder = "{file}"

var (
	// ErrUnsupportedOS indicates there is no default audio tool for this OS.
	ErrUnsupportedOS = errors.New("unsupported operating system")
	// ErrUnsupportedSound indicates a sound reference the player cannot open.
	ErrUnsupportedSound = errors.New("unsupported sound reference")
)

// RunFunc runs one playback command to completion.
type RunFunc func(ctx context.Context, name string, args ...string) error

// CommandPlayer plays sounds through an external audio tool.
// It is safe for concurrent use.
type CommandPlayer struct {
	argv []string
	dir  string
	run  RunFunc

	mu      sync.Mutex
	cancels map[effect.Channel]context.CancelFunc
	done    map[effect.Channel]chan struct{}
}

// NewCommandPlayer builds a player from a command template such as
// "paplay {file}". Without a placeholder the file path is appended. An empty
// template selects the platform default:
//   - Linux:   paplay, or aplay -q when PulseAudio is missing
//   - macOS:   afplay
//   - Windows: PowerShell Media.SoundPlayer
func NewCommandPlayer(template string) (*CommandPlayer, error) {
	argv := strings.Fields(template)
	if len(argv) == 0 {
		var err error

		argv, err = defaultCommand()
		if err != nil {
			return nil, err
		}
	}

	if _, err := exec.LookPath(argv[0]); err != nil {
		return nil, fmt.Errorf("audio command %q: %w", argv[0], err)
	}

	return newCommandPlayer(argv, runCommand)
}

func newCommandPlayer(argv []string, run RunFunc) (*CommandPlayer, error) {
	dir, err := os.MkdirTemp("", "timedeck-sounds-")
	if err != nil {
		return nil, fmt.Errorf("create sound cache: %w", err)
	}

	return &CommandPlayer{
		argv:    argv,
		dir:     dir,
		run:     run,
		cancels: make(map[effect.Channel]context.CancelFunc),
		done:    make(map[effect.Channel]chan struct{}),
	}, nil
}

func defaultCommand() ([]string, error) {
	switch runtime.GOOS {
	case "linux", "freebsd", "openbsd", "netbsd":
		if _, err := exec.LookPath("paplay"); err == nil {
			return []string{"paplay", filePlaceholder}, nil
		}

		return []string{"aplay", "-q", filePlaceholder}, nil
	case "darwin":
		return []string{"afplay", filePlaceholder}, nil
	case "windows":
		return []string{
			"powershell.exe", "-NoProfile", "-NonInteractive", "-Command",
			"(New-Object Media.SoundPlayer '" + filePlaceholder + "').PlaySync()",
		}, nil
	default:
		return nil, fmt.Errorf("no audio tool for %s: %w", runtime.GOOS, ErrUnsupportedOS)
	}
}

func runCommand(ctx context.Context, name string, args ...string) error {
	return exec.CommandContext(ctx, name, args...).Run()
}

// Play starts sound on ch in the background. A looping sound re-runs the
// command until Stop, another Play on ch, or Close.
func (p *CommandPlayer) Play(ctx context.Context, ch effect.Channel, soundRef string, loop bool) error {
	path, err := p.materialise(soundRef)
	if err != nil {
		return err
	}

	name, args := p.command(path)

	p.mu.Lock()
	defer p.mu.Unlock()

	p.stopLocked(ch)

	// Playback outlives the request that started it.
	playCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	done := make(chan struct{})

	p.cancels[ch] = cancel
	p.done[ch] = done

	go func() {
		defer close(done)

		for {
			err := p.run(playCtx, name, args...)

			switch {
			case playCtx.Err() != nil:
				return
			case err != nil:
				logger.ErrorKV(playCtx, "Audio command failed", "channel", ch, "error", err)

				return
			case !loop:
				return
			}
		}
	}()

	return nil
}

// Stop cancels playback on ch and waits for the command to exit.
func (p *CommandPlayer) Stop(_ context.Context, ch effect.Channel) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.stopLocked(ch)

	return nil
}

// Close stops every channel and removes cached sound files.
func (p *CommandPlayer) Close() error {
	p.mu.Lock()
	for ch := range p.cancels {
		p.stopLocked(ch)
	}
	p.mu.Unlock()

	if err := os.RemoveAll(p.dir); err != nil {
		return fmt.Errorf("remove sound cache: %w", err)
	}

	return nil
}

func (p *CommandPlayer) stopLocked(ch effect.Channel) {
	cancel, ok := p.cancels[ch]
	if !ok {
		return
	}

	cancel()
	<-p.done[ch]

	delete(p.cancels, ch)
	delete(p.done, ch)
}

func (p *CommandPlayer) command(path string) (string, []string) {
	args := make([]string, 0, len(p.argv))
	substituted := false

	for _, a := range p.argv[1:] {
		if strings.Contains(a, filePlaceholder) {
			a = strings.ReplaceAll(a, filePlaceholder, path)
			substituted = true
		}

		args = append(args, a)
	}

	if !substituted {
		args = append(args, path)
	}

	return p.argv[0], args
}

// materialise turns a sound reference into a local file path. Data URIs are
// written once per payload into the cache directory.
func (p *CommandPlayer) materialise(soundRef string) (string, error) {
	switch {
	case strings.HasPrefix(soundRef, "data:"):
	case strings.HasPrefix(soundRef, "file://"):
		return strings.TrimPrefix(soundRef, "file://"), nil
	case filepath.IsAbs(soundRef):
		return soundRef, nil
	default:
		return "", fmt.Errorf("%w: %.32q", ErrUnsupportedSound, soundRef)
	}

	mediaType, payload, err := sound.Decode(soundRef)
	if err != nil {
		return "", err
	}

	sum := sha256.Sum256(payload)
	path := filepath.Join(p.dir, hex.EncodeToString(sum[:8])+sound.Extension(mediaType))

	if _, err := os.Stat(path); err == nil {
		return path, nil
	}

	if err := os.WriteFile(path, payload, 0o600); err != nil {
		return "", fmt.Errorf("write sound file: %w", err)
	}

	return path, nil
}
