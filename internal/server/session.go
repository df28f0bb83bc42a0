// Package server implements the websocket side of the dev game server: one
// game session per connection, commands in, batched message frames out.
package server

import (
	"fmt"

	"github.com/augustawind/conway-web/internal/protocol"
	"github.com/augustawind/conway-web/pkg/sim"
)

// GameSession holds the per-connection game state: the simulator, the paused
// flag and the outbound message queue. It is driven from a single read loop
// and is not safe for concurrent use.
type GameSession struct {
	id     string
	sim    sim.Simulator
	paused bool
	queue  []protocol.Message
}

// NewGameSession creates a session around the given simulator. Sessions start
// paused; the first Play or Step sets the grid in motion.
func NewGameSession(id string, s sim.Simulator) *GameSession {
	return &GameSession{
		id:     id,
		sim:    s,
		paused: true,
	}
}

// ID returns the session's connection ID.
func (g *GameSession) ID() string { return g.id }

// Paused reports whether the simulation is paused.
func (g *GameSession) Paused() bool { return g.paused }

// Greet queues the connection acknowledgment pushed when the transport opens.
func (g *GameSession) Greet() {
	g.push(protocol.Connected())
}

// Handle applies one decoded command to the session, queueing any resulting
// messages. Queued messages are delivered by the next Flush.
func (g *GameSession) Handle(cmd protocol.Command) {
	switch cmd.Name {
	case protocol.CmdPing:
		if !g.paused {
			g.nextTurn()
		}
	case protocol.CmdStep:
		if g.paused {
			g.nextTurn()
		} else {
			g.paused = true
		}
	case protocol.CmdPlay:
		if g.paused {
			g.paused = false
			g.nextTurn()
		}
	case protocol.CmdPause:
		g.paused = true
	case protocol.CmdToggle:
		g.sim.Toggle()
		g.push(protocol.Grid(g.sim.Draw()))
	case protocol.CmdScroll:
		g.sim.Scroll(cmd.Scroll.DX, cmd.Scroll.DY)
		g.push(protocol.Grid(g.sim.Draw()))
	case protocol.CmdCenter:
		g.sim.Center()
		g.push(protocol.Grid(g.sim.Draw()))
	case protocol.CmdNewGrid:
		if cmd.Grid == nil {
			g.push(protocol.ErrorMessage("invalid input: NewGrid without a grid config"))
			return
		}
		if err := g.sim.Reset(*cmd.Grid); err != nil {
			g.push(protocol.ErrorMessage(err.Error()))
			return
		}
		g.push(protocol.Status("Started a new game."))
		g.push(protocol.Grid(g.sim.Draw()))
	case protocol.CmdRestart:
		g.sim.Restart()
		g.push(protocol.Status("Restarted the current game."))
		g.push(protocol.Grid(g.sim.Draw()))
	}
}

// HandleRaw decodes one wire command and applies it. Undecodable input becomes
// an Error message for the client instead of failing the connection.
func (g *GameSession) HandleRaw(data []byte) {
	cmd, err := protocol.DecodeCommand(data)
	if err != nil {
		g.push(protocol.ErrorMessage(fmt.Sprintf("invalid input: %v", err)))
		return
	}
	g.Handle(cmd)
}

// Flush drains the queue into one wire frame. The frame is sent even when the
// queue is empty: the empty batch is what keeps a paused client's heartbeat
// loop scheduled.
func (g *GameSession) Flush() ([]byte, error) {
	frame, err := protocol.EncodeFrame(g.queue)
	if err != nil {
		return nil, fmt.Errorf("failed to encode frame: %w", err)
	}
	g.queue = g.queue[:0]
	return frame, nil
}

// Pending returns the number of queued messages.
func (g *GameSession) Pending() int { return len(g.queue) }

func (g *GameSession) nextTurn() {
	if g.sim.IsOver() {
		g.push(protocol.Status("Grid has stabilized."))
	}
	g.sim.Tick()
	g.push(protocol.Grid(g.sim.Draw()))
}

func (g *GameSession) push(msg protocol.Message) {
	g.queue = append(g.queue, msg)
}
