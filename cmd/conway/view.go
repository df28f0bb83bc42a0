package main

import (
	"fmt"
	"sync"

	"github.com/augustawind/conway-web/internal/client"
	"github.com/augustawind/conway-web/internal/protocol"
	"github.com/augustawind/conway-web/internal/transcript"
)

// logEntry is one line of the status log. Entries are append-only; the stripe
// tag alternates even/odd purely for display.
type logEntry struct {
	Text   string
	Stripe string
}

// terminalView is the thin view collaborator: it renders grids to stdout and
// keeps the status log. All protocol and timing concerns live in the client.
type terminalView struct {
	mu  sync.Mutex
	log []logEntry
}

// handlers wires the view's callbacks, optionally teeing every message into a
// transcript recorder.
func (v *terminalView) handlers(rec *transcript.Recorder) client.Handlers {
	record := func(msg protocol.Message) {
		if rec == nil {
			return
		}
		if err := rec.Record(msg); err != nil {
			fmt.Println("! transcript:", err)
		}
	}

	return client.Handlers{
		OnConnected: func() {
			record(protocol.Connected())
			v.appendStatus("Connected to game server.")
		},
		OnStatus: func(text string) {
			record(protocol.Status(text))
			v.appendStatus(text)
		},
		OnGrid: func(pattern string) {
			record(protocol.Grid(pattern))
			v.renderGrid(pattern)
		},
		OnError: func(text string) {
			record(protocol.ErrorMessage(text))
			v.appendStatus("ERROR: " + text)
		},
	}
}

// appendStatus adds a status line and prints it with its stripe marker.
func (v *terminalView) appendStatus(text string) {
	v.mu.Lock()
	stripe := "even"
	if len(v.log)%2 == 1 {
		stripe = "odd"
	}
	v.log = append(v.log, logEntry{Text: text, Stripe: stripe})
	v.mu.Unlock()

	marker := "::"
	if stripe == "odd" {
		marker = " :"
	}
	fmt.Printf("%s %s\n", marker, text)
}

// renderGrid draws the received frame. The pattern text is printed verbatim;
// character substitution happened server-side.
func (v *terminalView) renderGrid(pattern string) {
	fmt.Println()
	fmt.Println(pattern)
	fmt.Println()
}
