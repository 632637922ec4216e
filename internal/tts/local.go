package tts

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
)

// NewLocal returns a speaker backed by the OS speech engine. It needs no
// credential and no network.
func NewLocal() Speaker {
	switch runtime.GOOS {
	case "darwin":
		return newDarwinVoice()
	case "linux":
		return newLinuxVoice()
	case "windows":
		return newWindowsVoice()
	default:
		return unsupported{}
	}
}

// commandVoice runs name with the text appended to args.
type commandVoice struct {
	name string
	args []string
}

func (v commandVoice) Speak(ctx context.Context, text string) error {
	args := append(append([]string{}, v.args...), text)
	out, err := exec.CommandContext(ctx, v.name, args...).CombinedOutput()
	if err != nil {
		return fmt.Errorf("%s: %w: %s", v.name, err, out)
	}
	return nil
}
