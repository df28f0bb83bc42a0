package transcript

import (
	"bufio"
	"bytes"
	"encoding/json"
	"testing"

	"github.com/augustawind/conway-web/internal/protocol"
)

// TestRecorderOutput tests the header line and event lines round-trip.
func TestRecorderOutput(t *testing.T) {
	var buf bytes.Buffer
	r := NewRecorderWithWriter(&buf)

	if err := r.WriteHeader("ws://localhost:8080/ws"); err != nil {
		t.Fatalf("WriteHeader failed: %v", err)
	}
	if err := r.Record(protocol.Connected()); err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	if err := r.Record(protocol.Grid("..x..\n.x.x.")); err != nil {
		t.Fatalf("Record failed: %v", err)
	}

	scanner := bufio.NewScanner(&buf)

	if !scanner.Scan() {
		t.Fatal("missing header line")
	}
	var header Header
	if err := json.Unmarshal(scanner.Bytes(), &header); err != nil {
		t.Fatalf("header does not decode: %v", err)
	}
	if header.URL != "ws://localhost:8080/ws" {
		t.Errorf("header url = %q", header.URL)
	}

	var events []Event
	for scanner.Scan() {
		var ev Event
		if err := json.Unmarshal(scanner.Bytes(), &ev); err != nil {
			t.Fatalf("event does not decode: %v", err)
		}
		events = append(events, ev)
	}

	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if events[0].Kind != "Connected" {
		t.Errorf("event 0 kind = %q", events[0].Kind)
	}
	if events[1].Kind != "Grid" || events[1].Content != "..x..\n.x.x." {
		t.Errorf("event 1 = %+v", events[1])
	}
	if events[1].TimeOffset < events[0].TimeOffset {
		t.Errorf("time offsets not monotonic: %v then %v", events[0].TimeOffset, events[1].TimeOffset)
	}
}
