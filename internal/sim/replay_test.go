package sim

import (
	"testing"

	"github.com/augustawind/conway-web/internal/protocol"
)

// TestReplayLooping tests frame advancement with wraparound.
func TestReplayLooping(t *testing.T) {
	r := NewReplay([]string{"a", "b"}, true)

	if r.Draw() != "a" {
		t.Errorf("initial frame = %q", r.Draw())
	}
	r.Tick()
	if r.Draw() != "b" {
		t.Errorf("frame after tick = %q", r.Draw())
	}
	r.Tick()
	if r.Draw() != "a" {
		t.Errorf("frame after wraparound = %q", r.Draw())
	}
	if r.IsOver() {
		t.Error("looping replay reported stabilization")
	}
}

// TestReplayStabilizes tests that a non-looping replay parks on its last frame.
func TestReplayStabilizes(t *testing.T) {
	r := NewReplay([]string{"a", "b"}, false)

	r.Tick()
	if !r.IsOver() {
		t.Error("replay not over on last frame")
	}
	r.Tick()
	if r.Draw() != "b" {
		t.Errorf("frame advanced past the end: %q", r.Draw())
	}
}

// TestReplayResetAndRestart tests grid replacement and rewind.
func TestReplayResetAndRestart(t *testing.T) {
	r := NewReplay([]string{"a", "b"}, true)
	r.Tick()

	cfg := protocol.GridConfig{Pattern: " xx\nxx \n"}
	if err := r.Reset(cfg); err != nil {
		t.Fatalf("Reset failed: %v", err)
	}
	if r.Draw() != "xx\nxx" {
		t.Errorf("frame after reset = %q", r.Draw())
	}

	r.Restart()
	if r.Draw() != "xx\nxx" {
		t.Errorf("restart after reset = %q, want the reset grid", r.Draw())
	}
}

// TestReplayEmpty tests that an empty recording still draws.
func TestReplayEmpty(t *testing.T) {
	r := NewReplay(nil, false)
	if r.Draw() != "" {
		t.Errorf("empty replay frame = %q", r.Draw())
	}
	r.Tick()
}
