// Package notify delivers rendered payloads to the user.
//
// Sinks never propagate errors upward: the desktop sink falls back to the
// console sink when the platform toast fails, and the console sink cannot
// fail in any way the caller could act on.
package notify

import (
	"fmt"
	"io"
	"sync"

	logx "vocabpop/pkg/logx"
)

// Sink displays a title/body pair.
type Sink interface {
	Show(title, body string)
}

// ConsoleSink writes payloads to a text surface. It is the guaranteed
// fallback, so Show swallows writer errors.
type ConsoleSink struct {
	mu  sync.Mutex
	out io.Writer
}

// NewConsoleSink writes to out, or stdout when out is nil.
func NewConsoleSink(out io.Writer) *ConsoleSink {
	if out == nil {
		out = logx.Stdout()
	}
	return &ConsoleSink{out: out}
}

func (c *ConsoleSink) Show(title, body string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if body == "" {
		fmt.Fprintf(c.out, "%s\n", title)
		return
	}
	fmt.Fprintf(c.out, "%s\n%s\n", title, body)
}
