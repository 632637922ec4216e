// Package fallback supplies static announcement messages used when no
// text-completion provider produces usable output.
package fallback

import (
	"math/rand/v2"
	"sync"
)

// CompletionMessages are spoken when a session stops.
var CompletionMessages = []string{
	"Work complete!",
	"All done!",
	"Task finished!",
	"Job complete!",
	"Ready for next task!",
}

// SubagentMessages are spoken when a subagent finishes.
var SubagentMessages = []string{
	"Subagent complete!",
	"Subagent finished!",
	"Subtask done!",
}

// NotificationMessages are spoken when the agent is waiting on the user.
var NotificationMessages = []string{
	"Your agent needs your input",
}

// Picker chooses messages uniformly at random.
type Picker struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewPicker creates a Picker. A nil rng uses a randomly seeded source.
func NewPicker(rng *rand.Rand) *Picker {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Picker{rng: rng}
}

// Pick returns one element of messages. An empty list yields "".
func (p *Picker) Pick(messages []string) string {
	if len(messages) == 0 {
		return ""
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return messages[p.rng.IntN(len(messages))]
}

// Chance reports true with probability pct/100.
func (p *Picker) Chance(pct int) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.rng.IntN(100) < pct
}

var defaultPicker = NewPicker(nil)

// Pick returns a uniformly random element of messages using a shared Picker.
func Pick(messages []string) string {
	return defaultPicker.Pick(messages)
}
