package agent

import "sync"

// Conversation is the append-only turn log for one session. The agent
// owns it; everyone else reads through Snapshot, so a model call in
// flight never observes a half-appended state.
type Conversation struct {
	mu    sync.Mutex
	turns []Turn
}

func NewConversation() *Conversation {
	return &Conversation{}
}

// Append adds a turn to the end of the log.
func (c *Conversation) Append(t Turn) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.turns = append(c.turns, t)
}

// Snapshot returns a copy of the turns appended so far.
func (c *Conversation) Snapshot() []Turn {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Turn, len(c.turns))
	copy(out, c.turns)
	return out
}

// Len reports the number of turns.
func (c *Conversation) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.turns)
}

// Reset discards all turns.
func (c *Conversation) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.turns = nil
}
