package tts

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"runtime"
)

// Player plays an audio file to completion.
type Player interface {
	Play(ctx context.Context, path string) error
}

// NewPlayer returns the audio player for the current OS.
func NewPlayer() Player {
	switch runtime.GOOS {
	case "darwin":
		return newDarwinPlayer()
	case "linux":
		return newLinuxPlayer()
	case "windows":
		return newWindowsPlayer()
	default:
		return unsupported{}
	}
}

// PlayBytes writes audio to a temporary file with extension ext, plays it
// and removes the file.
func PlayBytes(ctx context.Context, p Player, audio []byte, ext string) error {
	f, err := os.CreateTemp("", "agentos-tts-*"+ext)
	if err != nil {
		return fmt.Errorf("creating audio file: %w", err)
	}
	defer os.Remove(f.Name())

	if _, err := f.Write(audio); err != nil {
		f.Close()
		return fmt.Errorf("writing audio file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("writing audio file: %w", err)
	}
	return p.Play(ctx, f.Name())
}

// commandPlayer runs name with the audio path appended to args.
type commandPlayer struct {
	name string
	args []string
}

func (p commandPlayer) Play(ctx context.Context, path string) error {
	args := append(append([]string{}, p.args...), path)
	out, err := exec.CommandContext(ctx, p.name, args...).CombinedOutput()
	if err != nil {
		return fmt.Errorf("%s: %w: %s", p.name, err, out)
	}
	return nil
}

// unsupported is used where no player or voice tool was found.
type unsupported struct{}

func (unsupported) Play(context.Context, string) error  { return ErrUnavailable }
func (unsupported) Speak(context.Context, string) error { return ErrUnavailable }

func toolAvailable(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}
