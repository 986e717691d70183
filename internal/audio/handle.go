package audio

import (
	"sync"
	"sync/atomic"
)

// Handle is the exclusive owner of a playable clip. Release frees it exactly
// once no matter how many times it is called.
type Handle struct {
	clip    *Clip
	tracker *Tracker
	once    sync.Once
	done    atomic.Bool
}

// Clip returns nil once the handle has been released.
func (h *Handle) Clip() *Clip {
	if h == nil || h.done.Load() {
		return nil
	}
	return h.clip
}

func (h *Handle) Released() bool {
	return h == nil || h.done.Load()
}

// Release reports whether this call was the one that freed the resource.
func (h *Handle) Release() bool {
	if h == nil {
		return false
	}
	released := false
	h.once.Do(func() {
		h.done.Store(true)
		if h.tracker != nil {
			h.tracker.open.Add(-1)
			if h.tracker.onRelease != nil {
				h.tracker.onRelease()
			}
		}
		released = true
	})
	return released
}

// Tracker hands out handles and counts how many are open.
type Tracker struct {
	open      atomic.Int64
	peak      atomic.Int64
	onAcquire func()
	onRelease func()
}

// NewTracker takes optional hooks invoked on every acquire and release.
func NewTracker(onAcquire, onRelease func()) *Tracker {
	return &Tracker{onAcquire: onAcquire, onRelease: onRelease}
}

func (t *Tracker) Acquire(c *Clip) *Handle {
	n := t.open.Add(1)
	for {
		p := t.peak.Load()
		if n <= p || t.peak.CompareAndSwap(p, n) {
			break
		}
	}
	if t.onAcquire != nil {
		t.onAcquire()
	}
	return &Handle{clip: c, tracker: t}
}

// Open is the number of handles not yet released.
func (t *Tracker) Open() int64 { return t.open.Load() }

// Peak is the highest Open value observed.
func (t *Tracker) Peak() int64 { return t.peak.Load() }
