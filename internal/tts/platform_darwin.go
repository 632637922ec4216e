//go:build darwin

package tts

func newDarwinPlayer() Player {
	if !toolAvailable("afplay") {
		return unsupported{}
	}
	return commandPlayer{name: "afplay"}
}

// newDarwinVoice uses the built-in say command.
func newDarwinVoice() Speaker {
	if !toolAvailable("say") {
		return unsupported{}
	}
	return commandVoice{name: "say"}
}

func newLinuxPlayer() Player   { return unsupported{} }
func newLinuxVoice() Speaker   { return unsupported{} }
func newWindowsPlayer() Player { return unsupported{} }
func newWindowsVoice() Speaker { return unsupported{} }
