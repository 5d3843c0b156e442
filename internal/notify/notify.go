// Package notify collects the per-interaction notifications the console
// returns alongside each response. A failure degrades to exactly one
// notification; nothing in the pipeline is fatal.
package notify

import "sync"

// Severity grades a notification for display.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Notification is one user-facing message.
type Notification struct {
	Severity    Severity `json:"severity"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
}

// Center buffers notifications until the next response drains them.
type Center struct {
	mu      sync.Mutex
	pending []Notification
}

func NewCenter() *Center {
	return &Center{}
}

func (c *Center) Push(severity Severity, title, description string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pending = append(c.pending, Notification{Severity: severity, Title: title, Description: description})
}

func (c *Center) Success(title, description string) {
	c.Push(SeveritySuccess, title, description)
}

func (c *Center) Error(title, description string) {
	c.Push(SeverityError, title, description)
}

func (c *Center) Warning(title, description string) {
	c.Push(SeverityWarning, title, description)
}

// Drain returns the buffered notifications and clears the buffer.
func (c *Center) Drain() []Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	drained := c.pending
	c.pending = nil
	if drained == nil {
		drained = []Notification{}
	}
	return drained
}
