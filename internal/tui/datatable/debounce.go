package datatable

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// DebounceDelay is the quiet period after the last keystroke before the global
// filter is applied.
const DebounceDelay = 100 * time.Millisecond

// lastDebouncerID hands out instance ids so independent tables on the same
// program never accept each other's ticks.
var lastDebouncerID atomic.Int64 //nolint:gochecknoglobals // Process-wide id source.

// debounceMsg is delivered when a scheduled filter update fires.
type debounceMsg struct {
	id    int64
	tag   int
	value string
}

// Debouncer coalesces rapid input into one deferred update. Each Trigger
// invalidates the previously scheduled update by advancing the tag; a tick
// carrying a stale tag is dropped by Accept.
type Debouncer struct {
	id    int64
	tag   int
	delay time.Duration
}

// NewDebouncer creates a Debouncer with the given quiet period.
func NewDebouncer(delay time.Duration) *Debouncer {
	return &Debouncer{
		id:    lastDebouncerID.Add(1),
		delay: delay,
	}
}

// Trigger schedules value to be delivered after the quiet period and cancels
// any update still pending.
func (d *Debouncer) Trigger(value string) tea.Cmd {
	d.tag++
	msg := debounceMsg{id: d.id, tag: d.tag, value: value}
	return tea.Tick(d.delay, func(time.Time) tea.Msg {
		return msg
	})
}

// Cancel invalidates any pending update.
func (d *Debouncer) Cancel() {
	d.tag++
}

// Accept reports whether msg is the latest update scheduled by this Debouncer.
func (d *Debouncer) Accept(msg debounceMsg) bool {
	return msg.id == d.id && msg.tag == d.tag
}
