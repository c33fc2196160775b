// Package occurrence keeps the live count of the selected text's
// occurrences shown in the status bar.
package occurrence

import (
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/bethropolis/dupline/internal/core/find"
	"github.com/bethropolis/dupline/internal/core/selection"
	"github.com/bethropolis/dupline/internal/logger"
	"github.com/bethropolis/dupline/internal/utils"
)

const (
	DefaultMinLength = 2
	DefaultMinCount  = 2
	DefaultWindow    = 300 * time.Millisecond
)

// Status is what the status bar shows.
type Status struct {
	Count         int
	CaseSensitive bool
	Visible       bool
}

// Snapshot is the editor state a recomputation reads.
type Snapshot struct {
	SelectionText string
	Doc           selection.Document
	CaseSensitive bool
}

// Counter owns the cached matcher and the last published status.
type Counter struct {
	// Debouncer coalesces selection-change bursts in Watch.
	Debouncer utils.Debouncer

	mu        sync.Mutex
	enabled   bool
	minLength int
	minCount  int
	matcher   *find.Matcher
	status    Status
}

// NewCounter returns an enabled counter with default thresholds.
func NewCounter() *Counter {
	return &Counter{
		enabled:   true,
		minLength: DefaultMinLength,
		minCount:  DefaultMinCount,
	}
}

// Configure updates the visibility switch and thresholds. Values below 1
// fall back to the defaults.
func (c *Counter) Configure(enabled bool, minLength, minCount int) {
	if minLength < 1 {
		minLength = DefaultMinLength
	}
	if minCount < 1 {
		minCount = DefaultMinCount
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.enabled = enabled
	c.minLength = minLength
	c.minCount = minCount
}

// Recompute counts the occurrences of the trimmed selection text in doc.
// Text shorter than the minimum length resets the count and hides the
// indicator. The compiled matcher is reused while the text and case
// policy stay the same.
func (c *Counter) Recompute(selectionText string, doc selection.Document, caseSensitive bool) Status {
	c.mu.Lock()
	defer c.mu.Unlock()

	text := strings.TrimSpace(selectionText)
	if utf8.RuneCountInString(text) < c.minLength || doc == nil {
		c.status = Status{CaseSensitive: caseSensitive}
		return c.status
	}

	if !c.matcher.Matches(text, caseSensitive) {
		m, err := find.Compile(text, caseSensitive)
		if err != nil {
			logger.Warnf("occurrence: %v", err)
			c.status = Status{CaseSensitive: caseSensitive}
			return c.status
		}
		logger.DebugTagf("occurrence", "compiled matcher for %q (case sensitive: %t)", text, caseSensitive)
		c.matcher = m
	}

	count := c.matcher.Count(doc)
	c.status = Status{
		Count:         count,
		CaseSensitive: caseSensitive,
		Visible:       c.enabled && count >= c.minCount,
	}
	return c.status
}

// Reset zeroes the count and hides the indicator.
func (c *Counter) Reset() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.status = Status{CaseSensitive: c.status.CaseSensitive}
	return c.status
}

// Status returns the last computed status.
func (c *Counter) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// Matcher returns the cached matcher, nil before the first count.
func (c *Counter) Matcher() *find.Matcher {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.matcher
}

// Watch returns a selection-change handler. The first call of a burst
// recomputes at once; later calls inside window collapse into a single
// recomputation when the window closes. snapshot reports false when there
// is no active editor, which publishes a zero status.
func (c *Counter) Watch(window time.Duration, snapshot func() (Snapshot, bool), publish func(Status)) func() {
	if window <= 0 {
		window = DefaultWindow
	}
	run := func() {
		snap, ok := snapshot()
		if !ok {
			publish(c.Reset())
			return
		}
		publish(c.Recompute(snap.SelectionText, snap.Doc, snap.CaseSensitive))
	}
	return func() {
		c.Debouncer.Leading(window, run)
	}
}

// Stop cancels a pending recomputation.
func (c *Counter) Stop() {
	c.Debouncer.Stop()
}
