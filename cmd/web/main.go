package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/peterkuimelis/basetcg/internal/config"
	"github.com/peterkuimelis/basetcg/internal/web"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	port := flag.Int("port", cfg.WebPort, "HTTP port to listen on")
	decksFile := flag.String("decks", cfg.DecksFile, "path to decks YAML file (missing = built-in decks)")
	gameAddr := flag.String("game", "localhost:"+cfg.Port, "default game server the browser joins")
	flag.Parse()

	cat, err := cfg.Catalog()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	srv, err := web.NewServer(cat, *decksFile, *gameAddr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	addr := fmt.Sprintf(":%d", *port)
	log.Printf("basetcg web UI listening on http://localhost:%d", *port)
	if err := srv.ListenAndServe(addr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
