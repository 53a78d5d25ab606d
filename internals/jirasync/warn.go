package jirasync

import (
	"log/slog"
	"sync"
)

// Warner receives the diagnostics of a run. Nothing is retried or buffered
// on the sync side.
type Warner interface {
	Warn(msg string)
}

type WarnFunc func(msg string)

func (f WarnFunc) Warn(msg string) { f(msg) }

// Collector keeps every warning in arrival order.
type Collector struct {
	mu       sync.Mutex
	messages []string
}

func (c *Collector) Warn(msg string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.messages = append(c.messages, msg)
}

func (c *Collector) Messages() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.messages...)
}

func (c *Collector) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.messages)
}

// LogWarner writes warnings to a slog logger at warn level.
type LogWarner struct {
	Log *slog.Logger
}

func (w LogWarner) Warn(msg string) {
	w.Log.Warn(msg)
}

// Tee fans a warning out to every non-nil Warner.
func Tee(ws ...Warner) Warner {
	return WarnFunc(func(msg string) {
		for _, w := range ws {
			if w != nil {
				w.Warn(msg)
			}
		}
	})
}
