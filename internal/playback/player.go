package playback

import (
	"sync"
	"time"

	"github.com/mohammad-safakhou/fitcoach/internal/audio"
)

// Playback is a clip that is currently playing.
type Playback interface {
	Stop()
}

// Player starts clips. onEnd fires once when a clip finishes on its own; it
// must be called asynchronously and never after Stop.
type Player interface {
	Start(clip *audio.Clip, onEnd func()) Playback
}

// TimedPlayer does not render sound; the clip is served to clients and
// considered finished once its duration has elapsed.
type TimedPlayer struct{}

func (TimedPlayer) Start(clip *audio.Clip, onEnd func()) Playback {
	p := &timedPlayback{}
	p.timer = time.AfterFunc(clip.Duration(), func() {
		p.mu.Lock()
		stopped := p.stopped
		p.stopped = true
		p.mu.Unlock()
		if !stopped {
			onEnd()
		}
	})
	return p
}

type timedPlayback struct {
	mu      sync.Mutex
	timer   *time.Timer
	stopped bool
}

func (p *timedPlayback) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopped = true
	p.timer.Stop()
}
