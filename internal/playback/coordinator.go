// Package playback coordinates text-to-speech playback so that at most one
// clip is held at a time.
package playback

import (
	"context"
	"log/slog"
	"sync"

	"github.com/mohammad-safakhou/fitcoach/internal/audio"
	"github.com/mohammad-safakhou/fitcoach/internal/telemetry"
)

type Status string

const (
	StatusIdle     Status = "idle"
	StatusSpeaking Status = "speaking"
)

// State is what clients render. Ready is false while speech for ItemID is
// still being synthesized.
type State struct {
	Status Status `json:"status"`
	ItemID string `json:"item_id,omitempty"`
	Ready  bool   `json:"ready"`
}

// Synthesizer produces the clip for an item.
type Synthesizer interface {
	Synthesize(ctx context.Context, id, text string) (*audio.Clip, error)
}

// Coordinator is the Idle/Speaking(id) state machine.
//
// Every transition bumps epoch. A synthesis that returns under a different
// epoch was stopped or superseded while in flight and its clip is dropped
// without ever being acquired. The lock is never held across synthesis.
type Coordinator struct {
	synth   Synthesizer
	player  Player
	tracker *audio.Tracker
	logger  *slog.Logger

	mu       sync.Mutex
	epoch    uint64
	status   Status
	itemID   string
	handle   *audio.Handle
	playback Playback
}

type Option func(*Coordinator)

func WithPlayer(p Player) Option {
	return func(c *Coordinator) { c.player = p }
}

func WithTracker(t *audio.Tracker) Option {
	return func(c *Coordinator) { c.tracker = t }
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Coordinator) { c.logger = l }
}

func NewCoordinator(synth Synthesizer, opts ...Option) *Coordinator {
	c := &Coordinator{
		synth:  synth,
		player: TimedPlayer{},
		logger: slog.Default(),
		status: StatusIdle,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.tracker == nil {
		c.tracker = audio.NewTracker(
			func() { telemetry.AudioHandleOpened(context.Background()) },
			func() { telemetry.AudioHandleReleased(context.Background()) },
		)
	}
	c.logger = c.logger.With("component", "playback")
	return c
}

// Play toggles or switches playback:
//   - Speaking(id) and the same id: stop.
//   - Speaking(other): stop and release, then start id.
//   - Idle: start id.
//
// It blocks until speech is synthesized. An error means synthesis failed and
// the coordinator is Idle again; a request superseded meanwhile returns nil.
func (c *Coordinator) Play(ctx context.Context, id, text string) error {
	c.mu.Lock()
	if c.status == StatusSpeaking && c.itemID == id {
		c.stopLocked()
		c.mu.Unlock()
		return nil
	}
	if c.status == StatusSpeaking {
		c.stopLocked()
	}
	c.epoch++
	mine := c.epoch
	c.status = StatusSpeaking
	c.itemID = id
	c.mu.Unlock()

	clip, err := c.synth.Synthesize(ctx, id, text)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.epoch != mine {
		c.logger.Debug("discarding superseded speech", "item", id)
		return nil
	}
	if err != nil {
		c.epoch++
		c.status = StatusIdle
		c.itemID = ""
		return err
	}

	c.handle = c.tracker.Acquire(clip)
	c.playback = c.player.Start(clip, func() { c.finished(mine) })
	c.logger.Debug("playing", "item", id, "duration", clip.Duration())
	return nil
}

// Stop releases any held clip and returns to Idle. In-flight synthesis is
// left to finish and its result is discarded.
func (c *Coordinator) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopLocked()
}

func (c *Coordinator) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return State{Status: c.status, ItemID: c.itemID, Ready: c.handle != nil}
}

// Current returns the clip being played, if any.
func (c *Coordinator) Current() (*audio.Clip, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.handle == nil {
		return nil, false
	}
	clip := c.handle.Clip()
	return clip, clip != nil
}

func (c *Coordinator) finished(epoch uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.epoch != epoch {
		return
	}
	c.playback = nil
	c.stopLocked()
}

func (c *Coordinator) stopLocked() {
	c.epoch++
	if c.playback != nil {
		c.playback.Stop()
		c.playback = nil
	}
	if c.handle != nil {
		c.handle.Release()
		c.handle = nil
	}
	c.status = StatusIdle
	c.itemID = ""
}
