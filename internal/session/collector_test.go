package session_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/ajay-kumar2109/ielts-reading-simulator/internal/session"
)

func TestCollector_LastWriteWins(t *testing.T) {
	c := session.NewCollector()

	c.Set("q1", "first")
	c.Set("q1", "second")

	if got := c.Get("q1"); got != "second" {
		t.Errorf("expected latest value, got %q", got)
	}
}

func TestCollector_UnansweredIsEmpty(t *testing.T) {
	c := session.NewCollector()

	if got := c.Get("never-set"); got != "" {
		t.Errorf("expected empty string for unanswered question, got %q", got)
	}
}

func TestCollector_PreservesRawText(t *testing.T) {
	c := session.NewCollector()

	// Whitespace survives collection; normalization is the grader's job.
	c.Set("q1", "  Paris  ")

	if got := c.Get("q1"); got != "  Paris  " {
		t.Errorf("expected raw text preserved, got %q", got)
	}
}

func TestCollector_SnapshotIsACopy(t *testing.T) {
	c := session.NewCollector()
	c.Set("q1", "a")

	snap := c.Snapshot()
	snap["q1"] = "mutated"
	snap["q2"] = "new"

	if got := c.Get("q1"); got != "a" {
		t.Errorf("mutating the snapshot changed the collector: %q", got)
	}
	if got := c.Get("q2"); got != "" {
		t.Errorf("snapshot write leaked into the collector: %q", got)
	}
}

func TestCollector_ConcurrentWrites(t *testing.T) {
	c := session.NewCollector()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			c.Set(fmt.Sprintf("q%d", i%5), fmt.Sprintf("answer-%d", i))
		}(i)
	}
	wg.Wait()

	if len(c.Snapshot()) != 5 {
		t.Errorf("expected 5 distinct questions, got %d", len(c.Snapshot()))
	}
}
