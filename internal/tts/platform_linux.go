//go:build linux

package tts

// linuxPlayers are tried in order; aplay ships with ALSA, paplay with PulseAudio.
var linuxPlayers = []commandPlayer{
	{name: "aplay", args: []string{"-q"}},
	{name: "paplay"},
	{name: "pw-play"},
}

// linuxVoices are tried in order.
var linuxVoices = []commandVoice{
	{name: "espeak-ng"},
	{name: "espeak"},
	{name: "spd-say", args: []string{"--wait"}},
}

func newLinuxPlayer() Player {
	for _, p := range linuxPlayers {
		if toolAvailable(p.name) {
			return p
		}
	}
	return unsupported{}
}

func newLinuxVoice() Speaker {
	for _, v := range linuxVoices {
		if toolAvailable(v.name) {
			return v
		}
	}
	return unsupported{}
}

func newDarwinPlayer() Player  { return unsupported{} }
func newDarwinVoice() Speaker  { return unsupported{} }
func newWindowsPlayer() Player { return unsupported{} }
func newWindowsVoice() Speaker { return unsupported{} }
