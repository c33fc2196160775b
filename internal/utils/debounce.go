package utils

import (
	"sync"
	"time"
)

// Timer is the cancel handle of a scheduled call.
type Timer interface {
	Stop() bool
}

// Debouncer provides a way to debounce function calls
type Debouncer struct {
	// AfterFunc schedules f after d. Nil means time.AfterFunc.
	AfterFunc func(d time.Duration, f func()) Timer

	mutex   sync.Mutex
	timer   Timer
	cooling bool
	pending func()
}

func (d *Debouncer) after(duration time.Duration, fn func()) Timer {
	if d.AfterFunc != nil {
		return d.AfterFunc(duration, fn)
	}
	return time.AfterFunc(duration, fn)
}

// Debounce calls the provided function after the specified duration,
// canceling any previous pending calls
func (d *Debouncer) Debounce(duration time.Duration, fn func()) {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}

	d.timer = d.after(duration, func() {
		d.mutex.Lock()
		d.timer = nil
		d.mutex.Unlock()
		fn()
	})
}

// Leading calls fn right away unless a call ran less than window ago.
// Calls arriving inside the window are coalesced into one trailing call,
// made with the latest fn when the window closes.
func (d *Debouncer) Leading(window time.Duration, fn func()) {
	d.mutex.Lock()
	if d.cooling {
		d.pending = fn
		d.mutex.Unlock()
		return
	}
	d.cooling = true
	d.timer = d.after(window, func() { d.windowClosed(window) })
	d.mutex.Unlock()

	fn()
}

func (d *Debouncer) windowClosed(window time.Duration) {
	d.mutex.Lock()
	fn := d.pending
	d.pending = nil
	if fn == nil {
		d.cooling = false
		d.timer = nil
		d.mutex.Unlock()
		return
	}
	// The trailing call opens a new window of its own.
	d.timer = d.after(window, func() { d.windowClosed(window) })
	d.mutex.Unlock()

	fn()
}

// Stop cancels any scheduled call and resets the debouncer.
func (d *Debouncer) Stop() {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.pending = nil
	d.cooling = false
}
