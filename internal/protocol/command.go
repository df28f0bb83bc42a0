// Package protocol implements the wire protocol spoken between the session
// client and the game server: outbound commands encoded as single-key JSON
// objects and inbound messages batched into JSON array frames.
package protocol

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// CommandName identifies an outbound command. The set is closed; encoding a
// name outside it fails with ErrUnknownCommand.
type CommandName string

const (
	CmdPing    CommandName = "Ping"
	CmdStep    CommandName = "Step"
	CmdPlay    CommandName = "Play"
	CmdPause   CommandName = "Pause"
	CmdToggle  CommandName = "Toggle"
	CmdScroll  CommandName = "Scroll"
	CmdCenter  CommandName = "Center"
	CmdNewGrid CommandName = "NewGrid"
	CmdRestart CommandName = "Restart"
)

// CommandNames lists every valid command name.
var CommandNames = []CommandName{
	CmdPing, CmdStep, CmdPlay, CmdPause, CmdToggle,
	CmdScroll, CmdCenter, CmdNewGrid, CmdRestart,
}

// Valid reports whether the name belongs to the closed command set.
func (n CommandName) Valid() bool {
	switch n {
	case CmdPing, CmdStep, CmdPlay, CmdPause, CmdToggle,
		CmdScroll, CmdCenter, CmdNewGrid, CmdRestart:
		return true
	}
	return false
}

// ScrollDelta is the payload of a Scroll command: a viewport offset in cells.
type ScrollDelta struct {
	DX int64
	DY int64
}

// Command is an immutable tagged command value. Scroll is meaningful only when
// Name == CmdScroll and Grid only when Name == CmdNewGrid; all other commands
// carry no payload.
type Command struct {
	Name   CommandName
	Scroll ScrollDelta
	Grid   *GridConfig
}

// Ping returns the keepalive command.
func Ping() Command { return Command{Name: CmdPing} }

// Step returns the single-step command.
func Step() Command { return Command{Name: CmdStep} }

// Play returns the resume command.
func Play() Command { return Command{Name: CmdPlay} }

// Pause returns the pause command.
func Pause() Command { return Command{Name: CmdPause} }

// Toggle returns the toggle-cell command.
func Toggle() Command { return Command{Name: CmdToggle} }

// Center returns the center-viewport command.
func Center() Command { return Command{Name: CmdCenter} }

// Restart returns the restart-game command.
func Restart() Command { return Command{Name: CmdRestart} }

// Scroll returns a scroll command with the given viewport delta.
func Scroll(dx, dy int64) Command {
	return Command{Name: CmdScroll, Scroll: ScrollDelta{DX: dx, DY: dy}}
}

// ScrollFromStrings builds a Scroll command from the external (string)
// presentation of its arguments, as read from a form field or key binding.
// It fails with ErrInvalidArgument when either value is not an integer.
func ScrollFromStrings(dx, dy string) (Command, error) {
	x, err := strconv.ParseInt(dx, 10, 64)
	if err != nil {
		return Command{}, fmt.Errorf("%w: scroll dx %q is not an integer", ErrInvalidArgument, dx)
	}
	y, err := strconv.ParseInt(dy, 10, 64)
	if err != nil {
		return Command{}, fmt.Errorf("%w: scroll dy %q is not an integer", ErrInvalidArgument, dy)
	}
	return Scroll(x, y), nil
}

// NewGrid returns a command that replaces the server's grid with the given
// pattern and settings.
func NewGrid(cfg GridConfig) Command {
	return Command{Name: CmdNewGrid, Grid: &cfg}
}

// Encode serializes the command to its wire form: a single-key JSON object
// whose key is the command tag and whose value is the payload, or null for
// payloadless commands. The format is self-describing so new tags can be
// added without breaking older decoders.
func (c Command) Encode() ([]byte, error) {
	if !c.Name.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCommand, string(c.Name))
	}

	var payload interface{}
	switch c.Name {
	case CmdScroll:
		payload = [2]int64{c.Scroll.DX, c.Scroll.DY}
	case CmdNewGrid:
		if c.Grid == nil {
			return nil, fmt.Errorf("%w: NewGrid requires a grid config", ErrInvalidArgument)
		}
		payload = c.Grid
	}

	return json.Marshal(map[string]interface{}{string(c.Name): payload})
}

// DecodeCommand parses a wire command back into a Command value. The server
// uses this to interpret client messages; the codec tests use it to check the
// encode/decode round-trip law.
func DecodeCommand(data []byte) (Command, error) {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(data, &envelope); err != nil {
		return Command{}, fmt.Errorf("%w: %v", ErrMalformedFrame, err)
	}
	if len(envelope) != 1 {
		return Command{}, fmt.Errorf("%w: command must have exactly one tag, got %d", ErrMalformedFrame, len(envelope))
	}

	for tag, payload := range envelope {
		name := CommandName(tag)
		if !name.Valid() {
			return Command{}, fmt.Errorf("%w: %q", ErrUnknownCommand, tag)
		}

		switch name {
		case CmdScroll:
			var delta [2]int64
			if err := json.Unmarshal(payload, &delta); err != nil {
				return Command{}, fmt.Errorf("%w: scroll payload: %v", ErrInvalidArgument, err)
			}
			return Scroll(delta[0], delta[1]), nil
		case CmdNewGrid:
			var cfg GridConfig
			if err := json.Unmarshal(payload, &cfg); err != nil {
				return Command{}, fmt.Errorf("%w: new-grid payload: %v", ErrInvalidArgument, err)
			}
			return NewGrid(cfg), nil
		default:
			return Command{Name: name}, nil
		}
	}

	// Unreachable: the envelope has exactly one entry.
	return Command{}, ErrMalformedFrame
}
