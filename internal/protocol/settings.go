package protocol

import "time"

// View selects how the server frames the grid in its viewport.
type View string

const (
	ViewCentered View = "centered"
	ViewFixed    View = "fixed"
	ViewFollow   View = "follow"
)

// Delay is a tick delay split into whole seconds and the sub-second remainder
// in nanoseconds, matching the server's duration encoding.
type Delay struct {
	Secs  uint64 `json:"secs"`
	Nanos uint32 `json:"nanos"`
}

// DelayFromMillis derives a Delay from a UI millisecond value. Nanos is always
// in range because it is the sub-second remainder.
func DelayFromMillis(ms uint64) Delay {
	return Delay{
		Secs:  ms / 1000,
		Nanos: uint32(ms%1000) * 1_000_000,
	}
}

// Duration converts the delay back to a time.Duration.
func (d Delay) Duration() time.Duration {
	return time.Duration(d.Secs)*time.Second + time.Duration(d.Nanos)*time.Nanosecond
}

// Settings configures how the server runs and renders a game.
type Settings struct {
	CharAlive string `json:"char_alive"`
	CharDead  string `json:"char_dead"`
	View      View   `json:"view"`
	Delay     Delay  `json:"delay"`
}

// DefaultSettings returns the settings the server uses for a fresh game.
func DefaultSettings() Settings {
	return Settings{
		CharAlive: "x",
		CharDead:  ".",
		View:      ViewFixed,
		Delay:     DelayFromMillis(500),
	}
}

// GridConfig is the payload of a NewGrid command: a seed pattern, the settings
// to run it with, and the viewport bounds as [width, height].
type GridConfig struct {
	Pattern  string   `json:"pattern"`
	Settings Settings `json:"settings"`
	Bounds   [2]int   `json:"bounds"`
}
