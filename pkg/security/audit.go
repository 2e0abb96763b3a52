package security

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// EventType classifies an audit event.
type EventType string

const (
	EventTypeToolCall     EventType = "tool_call"
	EventTypeResourceRead EventType = "resource_read"
)

// Event is one recorded audit entry.
type Event struct {
	ID        string                 `json:"id"`
	Timestamp time.Time              `json:"timestamp"`
	EventType EventType              `json:"event_type"`
	Operation string                 `json:"operation"`
	Args      map[string]interface{} `json:"args,omitempty"`
	Success   bool                   `json:"success"`
	Duration  int64                  `json:"duration"` // milliseconds
}

// AuditLogger keeps the most recent events in a fixed-size ring buffer.
// Safe for concurrent use.
type AuditLogger struct {
	mu     sync.RWMutex
	buffer []*Event
	size   int
	index  int
	count  int
}

// NewAuditLogger creates an audit logger retaining up to size events.
func NewAuditLogger(size int) *AuditLogger {
	if size <= 0 {
		size = 1
	}
	return &AuditLogger{
		buffer: make([]*Event, size),
		size:   size,
	}
}

// Log records an event, overwriting the oldest entry when full.
func (al *AuditLogger) Log(event *Event) {
	al.mu.Lock()
	defer al.mu.Unlock()
	al.buffer[al.index] = event
	al.index = (al.index + 1) % al.size
	if al.count < al.size {
		al.count++
	}
}

// LogToolCall records an MCP tool invocation.
func (al *AuditLogger) LogToolCall(tool string, args map[string]interface{}, duration int64, success bool) {
	al.Log(&Event{
		ID:        uuid.NewString(),
		Timestamp: time.Now(),
		EventType: EventTypeToolCall,
		Operation: tool,
		Args:      args,
		Success:   success,
		Duration:  duration,
	})
}

// LogResourceRead records an MCP resource read.
func (al *AuditLogger) LogResourceRead(uri string, duration int64, success bool) {
	al.Log(&Event{
		ID:        uuid.NewString(),
		Timestamp: time.Now(),
		EventType: EventTypeResourceRead,
		Operation: uri,
		Success:   success,
		Duration:  duration,
	})
}

// Recent returns up to limit events, newest first.
func (al *AuditLogger) Recent(limit int) []*Event {
	al.mu.RLock()
	defer al.mu.RUnlock()

	if limit <= 0 || limit > al.count {
		limit = al.count
	}
	events := make([]*Event, 0, limit)
	for i := 1; i <= limit; i++ {
		pos := (al.index - i + al.size) % al.size
		events = append(events, al.buffer[pos])
	}
	return events
}

// Len returns the number of retained events.
func (al *AuditLogger) Len() int {
	al.mu.RLock()
	defer al.mu.RUnlock()
	return al.count
}
