// Package client implements the session client that keeps a browser-style view
// connected to a remote game server over a websocket.
//
// The package implements:
//   - Client: owns the transport handle and its lifecycle state, exposes
//     Send/Connected/Reconnect to the view
//   - Handlers: the view-supplied callback set inbound messages are routed to
//   - NextPingDelay: the latency-compensated keepalive schedule
//
// Key behaviors:
//   - One live transport handle at a time; Reconnect always dials a fresh one
//   - Messages within a frame are dispatched strictly in arrival order
//   - Heartbeat timers are bound to a connection generation so a stale timer
//     can never ping a discarded handle
//   - Malformed frames are surfaced through OnError and skipped; they do not
//     close the connection
package client
