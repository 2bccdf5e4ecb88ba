package session

import "sync"

// Collector is the in-memory store of the user's current answers, keyed by
// question ID. Last write wins; no history is kept. Values are stored as
// typed, untrimmed — trimming happens at grading time.
type Collector struct {
	mu      sync.RWMutex
	answers map[string]string
}

func NewCollector() *Collector {
	return &Collector{answers: make(map[string]string)}
}

// Set records the most recent answer for a question, overwriting any
// previous value. This covers radio/select semantics for choice types as
// well as free-text edits.
func (c *Collector) Set(questionID, text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.answers[questionID] = text
}

// Get returns the current answer for a question, or the empty string if the
// question has never been answered.
func (c *Collector) Get(questionID string) string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.answers[questionID]
}

// Snapshot returns a copy of all collected answers.
func (c *Collector) Snapshot() map[string]string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make(map[string]string, len(c.answers))
	for k, v := range c.answers {
		out[k] = v
	}
	return out
}
