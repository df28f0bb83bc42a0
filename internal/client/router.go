package client

import (
	"strings"

	"github.com/augustawind/conway-web/internal/protocol"
)

// Handlers is the view-supplied callback set. Callbacks are invoked
// synchronously from the dispatch of the frame that carried the message,
// never concurrently. Nil callbacks are skipped.
type Handlers struct {
	// OnConnected fires when the server acknowledges the connection.
	OnConnected func()

	// OnStatus receives human-readable status text, in delivery order.
	OnStatus func(text string)

	// OnGrid receives the rendered grid verbatim, trimmed of surrounding
	// whitespace. Character substitution is the view's concern.
	OnGrid func(pattern string)

	// OnError receives error text: server-side Error pushes, local decode
	// failures and transport faults.
	OnError func(text string)
}

// dispatch routes one inbound message to its handler. Unknown kinds are a
// deliberate no-op so newer servers can add kinds without breaking old clients.
func dispatch(msg protocol.Message, h Handlers) {
	switch msg.Kind {
	case protocol.KindConnected:
		if h.OnConnected != nil {
			h.OnConnected()
		}
	case protocol.KindStatus:
		if h.OnStatus != nil {
			h.OnStatus(msg.Content)
		}
	case protocol.KindGrid:
		if h.OnGrid != nil {
			h.OnGrid(strings.TrimSpace(msg.Content))
		}
	case protocol.KindError:
		if h.OnError != nil {
			h.OnError(msg.Content)
		}
	}
}
