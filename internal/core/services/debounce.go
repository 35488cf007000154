package services

import (
	"context"
	"sync"
	"time"
)

// Debouncer delays search queries until input has been idle for an interval
// and enforces last-input-wins. Every input change takes a new sequence
// number with Next; a wait or a response tagged with an older number is
// stale and must be discarded.
type Debouncer struct {
	interval time.Duration

	mu     sync.Mutex
	seq    uint64
	cancel chan struct{}
}

// NewDebouncer creates a debouncer. A negative interval is treated as zero.
func NewDebouncer(interval time.Duration) *Debouncer {
	if interval < 0 {
		interval = 0
	}
	return &Debouncer{interval: interval}
}

// Interval returns the debounce interval.
func (d *Debouncer) Interval() time.Duration {
	return d.interval
}

// Next issues a new sequence number and cancels the pending wait of the
// previous one.
func (d *Debouncer) Next() uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.supersede()
	d.cancel = make(chan struct{})
	return d.seq
}

// Wait blocks for the interval and reports whether seq is still the latest
// when it elapses. It returns false as soon as seq is superseded or ctx ends.
func (d *Debouncer) Wait(ctx context.Context, seq uint64) bool {
	d.mu.Lock()
	if seq != d.seq || d.cancel == nil {
		d.mu.Unlock()
		return false
	}
	cancel := d.cancel
	d.mu.Unlock()

	timer := time.NewTimer(d.interval)
	defer timer.Stop()

	select {
	case <-timer.C:
		return d.IsCurrent(seq)
	case <-cancel:
		return false
	case <-ctx.Done():
		return false
	}
}

// IsCurrent returns true if seq is the latest issued number.
func (d *Debouncer) IsCurrent(seq uint64) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return seq == d.seq && d.cancel != nil
}

// Stop cancels any pending wait and makes every issued number stale.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.supersede()
}

// supersede must be called with mu held.
func (d *Debouncer) supersede() {
	if d.cancel != nil {
		close(d.cancel)
		d.cancel = nil
	}
	d.seq++
}
