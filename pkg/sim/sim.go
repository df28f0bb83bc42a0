// Package sim defines the simulation interface the game server drives.
// The server speaks the wire protocol and owns pacing; how the grid actually
// evolves is the simulator's business.
package sim

import "github.com/augustawind/conway-web/internal/protocol"

// Simulator is one running simulation. Implementations are not required to be
// safe for concurrent use; the server serializes access per connection.
type Simulator interface {
	// Tick advances the simulation one generation.
	Tick()

	// Draw renders the current viewport as pattern text.
	Draw() string

	// IsOver reports whether the simulation has stabilized.
	IsOver() bool

	// Scroll moves the viewport by the given cell delta.
	Scroll(dx, dy int64)

	// Center re-centers the viewport on the live cells.
	Center()

	// Toggle flips the cell under the cursor.
	Toggle()

	// Reset replaces the simulation with a new grid built from cfg. The error
	// text, if any, is pushed to the client verbatim.
	Reset(cfg protocol.GridConfig) error

	// Restart restores the simulation to its most recent initial grid.
	Restart()
}

// Factory builds a fresh simulator for each new connection.
type Factory func() Simulator
