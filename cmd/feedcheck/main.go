// feedcheck exercises every feed endpoint once and reports what it sees.
// Useful for verifying a deployment before pointing a real poller at it.
package main

import (
	"context"
	"log"
	"os"
	"strings"
	"time"

	"github.com/HPduToit/PGN-Streaming-Simulator/internal/feedclient"
)

func main() {
	baseURL := strings.TrimSpace(os.Getenv("FEED_BASE_URL"))
	if baseURL == "" {
		log.Fatal("FEED_BASE_URL is required")
	}
	code := strings.TrimSpace(os.Getenv("FEED_CODE"))
	if code == "" {
		code = "local"
	}

	client := feedclient.NewClient(baseURL, feedclient.WithTimeout(8*time.Second))
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	h, err := client.Health(ctx)
	if err != nil {
		log.Fatalf("/health error: %v", err)
	}
	log.Printf("/health ok: status=%s", h.Status)

	t, err := client.Tournament(ctx, code)
	if err != nil {
		log.Fatalf("tournament.json error: %v", err)
	}
	log.Printf("tournament ok: name=%q location=%q rounds=%d", t.Name, t.Location, len(t.Rounds))
	if len(t.Rounds) == 0 {
		log.Println("no rounds yet; is the simulator writing records?")
		return
	}

	idx, err := client.RoundIndex(ctx, code, 1)
	if err != nil {
		log.Fatalf("round index error: %v", err)
	}
	log.Printf("round 1 ok: %d pairings", len(idx.Pairings))

	for board := 1; board <= len(idx.Pairings); board++ {
		g, err := client.Game(ctx, code, 1, board)
		if err != nil {
			log.Printf("game-%d error: %v", board, err)
			continue
		}
		log.Printf("game-%d ok: %s vs %s moves=%d result=%s finished=%v",
			board, g.White, g.Black, len(g.Moves), g.Result, g.Finished)
	}
}
