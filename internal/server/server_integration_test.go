package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/augustawind/conway-web/internal/client"
	"github.com/augustawind/conway-web/internal/protocol"
	"github.com/augustawind/conway-web/internal/sim"
	pkgsim "github.com/augustawind/conway-web/pkg/sim"
)

// startTestServer spins the real handler behind an httptest server and returns
// its ws:// URL.
func startTestServer(t *testing.T, factory pkgsim.Factory) (*Manager, string) {
	t.Helper()
	manager := NewManager()
	handler := NewHandler(manager, factory)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handler.HandleConnection(w, r)
	}))
	t.Cleanup(srv.Close)
	t.Cleanup(manager.Close)

	return manager, "ws" + strings.TrimPrefix(srv.URL, "http")
}

// collector gathers view callbacks behind a mutex.
type collector struct {
	mu        sync.Mutex
	connected bool
	statuses  []string
	grids     []string
	errors    []string
}

func (c *collector) handlers() client.Handlers {
	return client.Handlers{
		OnConnected: func() {
			c.mu.Lock()
			c.connected = true
			c.mu.Unlock()
		},
		OnStatus: func(s string) {
			c.mu.Lock()
			c.statuses = append(c.statuses, s)
			c.mu.Unlock()
		},
		OnGrid: func(s string) {
			c.mu.Lock()
			c.grids = append(c.grids, s)
			c.mu.Unlock()
		},
		OnError: func(s string) {
			c.mu.Lock()
			c.errors = append(c.errors, s)
			c.mu.Unlock()
		},
	}
}

func (c *collector) wait(t *testing.T, cond func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		c.mu.Lock()
		ok := cond()
		c.mu.Unlock()
		if ok {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", msg)
}

// TestClientServerSession runs a full session over a real websocket: greeting,
// play, heartbeat-driven ticks, pause, viewport scroll.
func TestClientServerSession(t *testing.T) {
	manager, url := startTestServer(t, func() pkgsim.Simulator {
		return sim.NewReplay([]string{"gen0", "gen1", "gen2"}, true)
	})

	col := &collector{}
	c := client.New(client.Config{
		URL:          url,
		Handlers:     col.handlers(),
		PingInterval: 50 * time.Millisecond,
	})
	defer c.Close()

	if err := c.Connect(context.Background()); err != nil {
		t.Fatalf("Connect failed: %v", err)
	}

	col.wait(t, func() bool { return col.connected }, "server greeting")
	if manager.Count() != 1 {
		t.Errorf("manager count = %d, want 1", manager.Count())
	}

	// Paused: the heartbeat ticks the wire but not the grid.
	time.Sleep(150 * time.Millisecond)
	col.mu.Lock()
	if len(col.grids) != 0 {
		t.Errorf("paused session produced grids: %v", col.grids)
	}
	col.mu.Unlock()

	// Play, then let heartbeats drive a few generations.
	if err := c.Send(protocol.Play()); err != nil {
		t.Fatalf("Send(Play) failed: %v", err)
	}
	col.wait(t, func() bool { return len(col.grids) >= 3 }, "heartbeat-driven generations")

	col.mu.Lock()
	first := col.grids[0]
	col.mu.Unlock()
	if first != "gen1" {
		t.Errorf("first grid after play = %q, want gen1", first)
	}

	if err := c.Send(protocol.Pause()); err != nil {
		t.Fatalf("Send(Pause) failed: %v", err)
	}
	// Let in-flight frames settle, then verify the grid stream stopped.
	time.Sleep(150 * time.Millisecond)
	col.mu.Lock()
	n := len(col.grids)
	col.mu.Unlock()
	time.Sleep(150 * time.Millisecond)
	col.mu.Lock()
	m := len(col.grids)
	col.mu.Unlock()
	if m != n {
		t.Errorf("grids kept arriving after pause: %d -> %d", n, m)
	}

	if err := c.Send(protocol.Scroll(2, -1)); err != nil {
		t.Fatalf("Send(Scroll) failed: %v", err)
	}
	col.wait(t, func() bool { return len(col.grids) > m }, "redraw after scroll")
}

// TestClientServerNewGame tests NewGrid and Restart end to end.
func TestClientServerNewGame(t *testing.T) {
	_, url := startTestServer(t, func() pkgsim.Simulator {
		return sim.NewReplay([]string{"blank"}, true)
	})

	col := &collector{}
	c := client.New(client.Config{
		URL:          url,
		Handlers:     col.handlers(),
		PingInterval: 50 * time.Millisecond,
	})
	defer c.Close()

	if err := c.Connect(context.Background()); err != nil {
		t.Fatalf("Connect failed: %v", err)
	}
	col.wait(t, func() bool { return col.connected }, "server greeting")

	cfg := protocol.GridConfig{
		Pattern:  ".x.\n..x\nxxx",
		Settings: protocol.DefaultSettings(),
		Bounds:   [2]int{50, 50},
	}
	if err := c.Send(protocol.NewGrid(cfg)); err != nil {
		t.Fatalf("Send(NewGrid) failed: %v", err)
	}

	col.wait(t, func() bool {
		return len(col.statuses) >= 1 && len(col.grids) >= 1
	}, "new game ack")

	col.mu.Lock()
	if col.statuses[0] != "Started a new game." {
		t.Errorf("status = %q", col.statuses[0])
	}
	if col.grids[0] != cfg.Pattern {
		t.Errorf("grid = %q, want the new pattern", col.grids[0])
	}
	col.mu.Unlock()

	if err := c.Send(protocol.Restart()); err != nil {
		t.Fatalf("Send(Restart) failed: %v", err)
	}
	col.wait(t, func() bool { return len(col.statuses) >= 2 }, "restart ack")

	col.mu.Lock()
	defer col.mu.Unlock()
	if col.statuses[1] != "Restarted the current game." {
		t.Errorf("restart status = %q", col.statuses[1])
	}
}

// TestServerRejectsGarbage tests that undecodable client input comes back as
// an Error message and the session survives.
func TestServerRejectsGarbage(t *testing.T) {
	_, url := startTestServer(t, func() pkgsim.Simulator {
		return sim.NewReplay([]string{"x"}, true)
	})

	col := &collector{}
	c := client.New(client.Config{URL: url, Handlers: col.handlers()})
	defer c.Close()

	if err := c.Connect(context.Background()); err != nil {
		t.Fatalf("Connect failed: %v", err)
	}
	col.wait(t, func() bool { return col.connected }, "server greeting")

	// Sidestep Send's validation to put raw garbage on the wire, as a buggy
	// or foreign client would.
	raw, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("raw dial failed: %v", err)
	}
	defer raw.Close()
	if err := raw.WriteMessage(websocket.TextMessage, []byte("garbage")); err != nil {
		t.Fatalf("raw write failed: %v", err)
	}

	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		_, frame, err := raw.ReadMessage()
		if err != nil {
			t.Fatalf("raw read failed: %v", err)
		}
		msgs, err := protocol.DecodeFrame(frame)
		if err != nil {
			t.Fatalf("server frame does not decode: %v", err)
		}
		for _, msg := range msgs {
			if msg.Kind == protocol.KindError {
				return
			}
		}
	}
	t.Fatal("server never reported the garbage input")
}
