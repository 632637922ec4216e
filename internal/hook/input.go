package hook

import (
	"encoding/json"
	"fmt"
	"io"
)

// maxInputBytes caps how much stdin a hook will read.
const maxInputBytes = 1 << 20

// Input is the JSON payload Claude Code writes to a hook's stdin.
type Input struct {
	SessionID      string `json:"session_id"`
	HookEventName  string `json:"hook_event_name"`
	CWD            string `json:"cwd"`
	TranscriptPath string `json:"transcript_path"`
	Message        string `json:"message"`
	StopHookActive bool   `json:"stop_hook_active"`
}

// ReadInput decodes a hook payload from r. Empty input yields a zero Input.
func ReadInput(r io.Reader) (Input, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxInputBytes))
	if err != nil {
		return Input{}, fmt.Errorf("reading hook input: %w", err)
	}
	var in Input
	if len(data) == 0 {
		return in, nil
	}
	if err := json.Unmarshal(data, &in); err != nil {
		return Input{}, fmt.Errorf("decoding hook input: %w", err)
	}
	return in, nil
}
