package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"
)

const consoleHistory = 200

// ConsoleMessage represents a console message with timestamp
type ConsoleMessage struct {
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Level     string    `json:"level"` // "debug", "info", "warn", "error"
}

// Console keeps the most recent log messages for the web console
type Console struct {
	mu       sync.Mutex
	messages []ConsoleMessage
	limit    int
}

// NewConsole creates a console holding at most limit messages
func NewConsole(limit int) *Console {
	return &Console{limit: max(limit, 1)}
}

// Add appends a message, dropping the oldest when full
func (c *Console) Add(msg ConsoleMessage) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.messages) == c.limit {
		copy(c.messages, c.messages[1:])
		c.messages = c.messages[:len(c.messages)-1]
	}
	c.messages = append(c.messages, msg)
}

// Messages returns a copy of the stored messages, oldest first
func (c *Console) Messages() []ConsoleMessage {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]ConsoleMessage(nil), c.messages...)
}

// Handler returns a slog handler that records messages at or above level
// in the console and then passes them on to next, if any
func (c *Console) Handler(level slog.Level, next slog.Handler) slog.Handler {
	return &consoleHandler{console: c, level: level, next: next}
}

type consoleHandler struct {
	console *Console
	level   slog.Level
	next    slog.Handler
	attrs   []slog.Attr
}

func (h *consoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *consoleHandler) Handle(ctx context.Context, r slog.Record) error {
	var b strings.Builder
	b.WriteString(r.Message)
	write := func(a slog.Attr) bool {
		fmt.Fprintf(&b, " %s=%v", a.Key, a.Value)
		return true
	}
	for _, a := range h.attrs {
		write(a)
	}
	r.Attrs(write)

	h.console.Add(ConsoleMessage{
		Message:   b.String(),
		Timestamp: r.Time,
		Level:     strings.ToLower(r.Level.String()),
	})

	if h.next != nil && h.next.Enabled(ctx, r.Level) {
		return h.next.Handle(ctx, r)
	}
	return nil
}

func (h *consoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.attrs = append(append([]slog.Attr(nil), h.attrs...), attrs...)
	if h.next != nil {
		clone.next = h.next.WithAttrs(attrs)
	}
	return &clone
}

func (h *consoleHandler) WithGroup(name string) slog.Handler {
	clone := *h
	if h.next != nil {
		clone.next = h.next.WithGroup(name)
	}
	return &clone
}

// handleConsole returns the recent log messages
func (s *Server) handleConsole(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.console.Messages())
}
