// Package sim provides concrete simulators for the game server. The real
// evolution rules live in external engines; Replay stands in for them by
// playing back a recorded frame sequence, which is all the dev server and the
// protocol tests need.
package sim

import (
	"strings"

	"github.com/augustawind/conway-web/internal/protocol"
)

// Replay plays a fixed sequence of pre-rendered frames. Scroll, Center and
// Toggle are accepted but do not alter the recording.
type Replay struct {
	frames  []string
	initial []string
	pos     int
	loop    bool
}

// NewReplay creates a replay simulator over the given frames. When loop is
// false the replay stabilizes after the last frame.
func NewReplay(frames []string, loop bool) *Replay {
	if len(frames) == 0 {
		frames = []string{""}
	}
	return &Replay{
		frames:  frames,
		initial: frames,
		loop:    loop,
	}
}

// Tick advances to the next recorded frame.
func (r *Replay) Tick() {
	if r.pos+1 < len(r.frames) {
		r.pos++
	} else if r.loop {
		r.pos = 0
	}
}

// Draw returns the current frame.
func (r *Replay) Draw() string {
	return r.frames[r.pos]
}

// IsOver reports whether a non-looping replay has reached its last frame.
func (r *Replay) IsOver() bool {
	return !r.loop && r.pos == len(r.frames)-1
}

// Scroll is accepted but has no effect on a recording.
func (r *Replay) Scroll(dx, dy int64) {}

// Center is accepted but has no effect on a recording.
func (r *Replay) Center() {}

// Toggle is accepted but has no effect on a recording.
func (r *Replay) Toggle() {}

// Reset replaces the recording with the single frame described by the config's
// pattern, so a NewGrid command round-trips visibly through the dev server.
func (r *Replay) Reset(cfg protocol.GridConfig) error {
	frame := strings.TrimSpace(cfg.Pattern)
	r.frames = []string{frame}
	r.initial = r.frames
	r.pos = 0
	return nil
}

// Restart rewinds to the recording that was current at the last Reset.
func (r *Replay) Restart() {
	r.frames = r.initial
	r.pos = 0
}
