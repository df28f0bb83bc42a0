// Package transcript records a session's inbound messages as JSON Lines, one
// event per line, so a run can be inspected or replayed later.
package transcript

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/augustawind/conway-web/internal/protocol"
)

// Header is the first line of a transcript: where the session pointed and when
// it started.
type Header struct {
	URL       string `json:"url"`
	Timestamp int64  `json:"timestamp"`
}

// Event is a single recorded message.
// Format: [time_offset_seconds, kind, content]
type Event struct {
	TimeOffset float64
	Kind       string
	Content    string
}

// MarshalJSON implements custom JSON marshaling for Event.
func (e Event) MarshalJSON() ([]byte, error) {
	return json.Marshal([]interface{}{e.TimeOffset, e.Kind, e.Content})
}

// UnmarshalJSON implements custom JSON unmarshaling for Event.
func (e *Event) UnmarshalJSON(data []byte) error {
	var arr []interface{}
	if err := json.Unmarshal(data, &arr); err != nil {
		return err
	}
	if len(arr) != 3 {
		return fmt.Errorf("invalid event format: expected 3 elements, got %d", len(arr))
	}

	timeOffset, ok := arr[0].(float64)
	if !ok {
		return fmt.Errorf("invalid time offset type")
	}
	e.TimeOffset = timeOffset

	kind, ok := arr[1].(string)
	if !ok {
		return fmt.Errorf("invalid kind type")
	}
	e.Kind = kind

	content, ok := arr[2].(string)
	if !ok {
		return fmt.Errorf("invalid content type")
	}
	e.Content = content

	return nil
}

// Recorder writes a session transcript. Safe for use from the dispatch
// goroutine and the view concurrently.
type Recorder struct {
	writer    io.Writer
	file      *os.File // only set if we own the file
	startTime time.Time
	mu        sync.Mutex
}

// NewRecorder creates a Recorder that writes to the given file path.
func NewRecorder(filePath string) (*Recorder, error) {
	file, err := os.Create(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to create transcript file: %w", err)
	}

	return &Recorder{
		writer:    file,
		file:      file,
		startTime: time.Now(),
	}, nil
}

// NewRecorderWithWriter creates a Recorder that writes to the given writer.
// This is useful for testing.
func NewRecorderWithWriter(w io.Writer) *Recorder {
	return &Recorder{
		writer:    w,
		startTime: time.Now(),
	}
}

// WriteHeader writes the transcript header. This should be called once before
// any events.
func (r *Recorder) WriteHeader(url string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	header := Header{
		URL:       url,
		Timestamp: r.startTime.Unix(),
	}

	data, err := json.Marshal(header)
	if err != nil {
		return fmt.Errorf("failed to marshal header: %w", err)
	}

	if _, err := r.writer.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	return nil
}

// Record appends one inbound message to the transcript.
func (r *Recorder) Record(msg protocol.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	event := Event{
		TimeOffset: time.Since(r.startTime).Seconds(),
		Kind:       string(msg.Kind),
		Content:    msg.Content,
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if _, err := r.writer.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write event: %w", err)
	}

	return nil
}

// Close closes the transcript file.
func (r *Recorder) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.file != nil {
		return r.file.Close()
	}
	return nil
}
