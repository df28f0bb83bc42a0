package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/augustawind/conway-web/internal/client"
	"github.com/augustawind/conway-web/internal/protocol"
	"github.com/augustawind/conway-web/internal/repository"
	"github.com/augustawind/conway-web/internal/transcript"
)

const connectTimeout = 10 * time.Second

func main() {
	var (
		url            = flag.String("url", "ws://localhost:8080/ws", "websocket endpoint of the game server")
		pattern        = flag.String("pattern", "glider", "name of a sample pattern to seed the game with")
		delayMs        = flag.Uint64("delay", 500, "tick delay in milliseconds")
		width          = flag.Int("width", 40, "viewport width in cells")
		height         = flag.Int("height", 20, "viewport height in cells")
		transcriptPath = flag.String("transcript", "", "path to record the session transcript to (optional)")
	)
	flag.Parse()

	seed, ok := repository.SamplePatterns[*pattern]
	if !ok {
		log.Fatalf("unknown pattern %q, want one of: %s", *pattern, strings.Join(sampleNames(), ", "))
	}

	if err := run(*url, seed, *delayMs, *width, *height, *transcriptPath); err != nil {
		log.Fatal(err)
	}
}

func run(url, seed string, delayMs uint64, width, height int, transcriptPath string) error {
	view := &terminalView{}

	var rec *transcript.Recorder
	if transcriptPath != "" {
		var err error
		rec, err = transcript.NewRecorder(transcriptPath)
		if err != nil {
			return fmt.Errorf("failed to open transcript: %w", err)
		}
		defer rec.Close()
		if err := rec.WriteHeader(url); err != nil {
			return fmt.Errorf("failed to write transcript header: %w", err)
		}
	}

	c := client.New(client.Config{
		URL:      url,
		Handlers: view.handlers(rec),
	})
	defer c.Close()

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	err := c.Connect(ctx)
	cancel()
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", url, err)
	}

	cfg := newGridConfig(seed, delayMs, width, height)
	if err := c.Send(protocol.NewGrid(cfg)); err != nil {
		return fmt.Errorf("failed to start game: %w", err)
	}

	fmt.Println("Commands: play, pause, step, toggle, center, restart, scroll DX DY, new, reconnect, quit")

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "quit" || line == "exit" {
			break
		}
		if err := execute(c, line, cfg); err != nil {
			if errors.Is(err, client.ErrNotConnected) {
				fmt.Println("! not connected, type 'reconnect' to dial again")
				continue
			}
			fmt.Println("!", err)
		}
	}
	return scanner.Err()
}

// execute maps one input line to a command and sends it.
func execute(c *client.Client, line string, cfg protocol.GridConfig) error {
	fields := strings.Fields(line)
	switch fields[0] {
	case "play":
		return c.Send(protocol.Play())
	case "pause":
		return c.Send(protocol.Pause())
	case "step":
		return c.Send(protocol.Step())
	case "toggle":
		return c.Send(protocol.Toggle())
	case "center":
		return c.Send(protocol.Center())
	case "restart":
		return c.Send(protocol.Restart())
	case "new":
		return c.Send(protocol.NewGrid(cfg))
	case "scroll":
		if len(fields) != 3 {
			return fmt.Errorf("usage: scroll DX DY")
		}
		cmd, err := protocol.ScrollFromStrings(fields[1], fields[2])
		if err != nil {
			return err
		}
		return c.Send(cmd)
	case "reconnect":
		ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
		defer cancel()
		return c.Reconnect(ctx)
	default:
		return fmt.Errorf("unknown command %q", fields[0])
	}
}

func newGridConfig(seed string, delayMs uint64, width, height int) protocol.GridConfig {
	settings := protocol.DefaultSettings()
	settings.Delay = protocol.DelayFromMillis(delayMs)
	return protocol.GridConfig{
		Pattern:  seed,
		Settings: settings,
		Bounds:   [2]int{width, height},
	}
}

func sampleNames() []string {
	names := make([]string, 0, len(repository.SamplePatterns))
	for name := range repository.SamplePatterns {
		names = append(names, name)
	}
	return names
}
