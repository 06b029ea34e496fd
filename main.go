package main

import (
	"flag"
	"log"
	"time"

	"sketchboard/internal/app"
)

func main() {
	dataDir := flag.String("data-dir", "", "directory for the scene snapshot and settings database (default ~/.local/share/sketchboard)")
	saveDelay := flag.Duration("save-delay", 300*time.Millisecond, "debounce quiet window before persisting scene changes")
	eventsAddr := flag.String("events-addr", "", "optional addr (e.g. 127.0.0.1:7411) serving the /events WebSocket for live scene updates")
	flag.Parse()

	err := app.ServeMCP(app.Config{
		DataDir:    *dataDir,
		SaveDelay:  *saveDelay,
		EventsAddr: *eventsAddr,
	})
	if err != nil {
		log.Fatalf("sketchboard: %v", err)
	}
}
