package theme

import (
	"sync"

	"github.com/uamas/themekit/internal/models"
)

// StyleSink receives resolved tokens for a rendering surface.
type StyleSink interface {
	// SetToken sets a globally scoped style variable such as --color-primary.
	SetToken(name, value string)
	// SetModeMarker marks the root surface with the active mode.
	SetModeMarker(mode models.ThemeMode)
	// SetBackgroundColor sets the root background directly.
	SetBackgroundColor(value string)
	// SetBaseFontSize sets the root font size directly.
	SetBaseFontSize(value string)
}

// NoopSink drops everything. Use it where there is no live surface, such as
// server-side rendering.
type NoopSink struct{}

// SetToken is a no-op.
func (NoopSink) SetToken(string, string) {}

// SetModeMarker is a no-op.
func (NoopSink) SetModeMarker(models.ThemeMode) {}

// SetBackgroundColor is a no-op.
func (NoopSink) SetBackgroundColor(string) {}

// SetBaseFontSize is a no-op.
func (NoopSink) SetBaseFontSize(string) {}

// MultiSink fans every call out to each sink in order.
type MultiSink []StyleSink

// SetToken implements StyleSink.
func (m MultiSink) SetToken(name, value string) {
	for _, s := range m {
		s.SetToken(name, value)
	}
}

// SetModeMarker implements StyleSink.
func (m MultiSink) SetModeMarker(mode models.ThemeMode) {
	for _, s := range m {
		s.SetModeMarker(mode)
	}
}

// SetBackgroundColor implements StyleSink.
func (m MultiSink) SetBackgroundColor(value string) {
	for _, s := range m {
		s.SetBackgroundColor(value)
	}
}

// SetBaseFontSize implements StyleSink.
func (m MultiSink) SetBaseFontSize(value string) {
	for _, s := range m {
		s.SetBaseFontSize(value)
	}
}

// SinkCall is one recorded StyleSink invocation.
type SinkCall struct {
	Method string
	Name   string
	Value  string
}

// RecordingSink records calls instead of touching a surface.
type RecordingSink struct {
	mu    sync.Mutex
	calls []SinkCall
}

// SetToken records the call.
func (r *RecordingSink) SetToken(name, value string) {
	r.record(SinkCall{Method: "SetToken", Name: name, Value: value})
}

// SetModeMarker records the call.
func (r *RecordingSink) SetModeMarker(mode models.ThemeMode) {
	r.record(SinkCall{Method: "SetModeMarker", Value: string(mode)})
}

// SetBackgroundColor records the call.
func (r *RecordingSink) SetBackgroundColor(value string) {
	r.record(SinkCall{Method: "SetBackgroundColor", Value: value})
}

// SetBaseFontSize records the call.
func (r *RecordingSink) SetBaseFontSize(value string) {
	r.record(SinkCall{Method: "SetBaseFontSize", Value: value})
}

// Calls returns a copy of the recorded calls.
func (r *RecordingSink) Calls() []SinkCall {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]SinkCall(nil), r.calls...)
}

// Reset clears the recorded calls.
func (r *RecordingSink) Reset() {
	r.mu.Lock()
	r.calls = nil
	r.mu.Unlock()
}

func (r *RecordingSink) record(call SinkCall) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.calls = append(r.calls, call)
	r.mu.Unlock()
}
