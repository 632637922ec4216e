//go:build windows

package tts

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// powershell runs a script through PowerShell with the profile skipped.
type powershell struct{}

func (powershell) run(ctx context.Context, script string) error {
	out, err := exec.CommandContext(ctx, "powershell",
		"-ExecutionPolicy", "Bypass", "-NoProfile", "-Command", script).CombinedOutput()
	if err != nil {
		return fmt.Errorf("powershell: %w: %s", err, out)
	}
	return nil
}

// Play uses System.Media.SoundPlayer, which handles WAV only.
func (p powershell) Play(ctx context.Context, path string) error {
	return p.run(ctx, fmt.Sprintf(`
$player = New-Object System.Media.SoundPlayer
$player.SoundLocation = '%s'
$player.PlaySync()
`, escapeForPowerShell(path)))
}

// Speak uses the System.Speech synthesizer.
func (p powershell) Speak(ctx context.Context, text string) error {
	return p.run(ctx, fmt.Sprintf(`
Add-Type -AssemblyName System.Speech
$synth = New-Object System.Speech.Synthesis.SpeechSynthesizer
$synth.Speak('%s')
`, escapeForPowerShell(text)))
}

func newWindowsPlayer() Player {
	if !toolAvailable("powershell") {
		return unsupported{}
	}
	return powershell{}
}

func newWindowsVoice() Speaker {
	if !toolAvailable("powershell") {
		return unsupported{}
	}
	return powershell{}
}

func newDarwinPlayer() Player { return unsupported{} }
func newDarwinVoice() Speaker { return unsupported{} }
func newLinuxPlayer() Player  { return unsupported{} }
func newLinuxVoice() Speaker  { return unsupported{} }

// escapeForPowerShell escapes text for a single-quoted PowerShell string,
// where only the quote itself is special.
func escapeForPowerShell(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
