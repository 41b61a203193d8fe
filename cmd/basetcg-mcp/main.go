package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/server"

	"github.com/peterkuimelis/basetcg/internal/config"
	basemcp "github.com/peterkuimelis/basetcg/internal/mcp"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	decks := flag.String("decks", cfg.DecksFile, "path to decks YAML file (missing = built-in decks)")
	port := flag.String("port", cfg.Port, "TCP port for a human opponent")
	seed := flag.Int64("seed", cfg.Seed, "RNG seed (0 = random)")
	flag.Parse()

	cat, err := cfg.Catalog()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	s := server.NewMCPServer("basetcg", "1.0.0", server.WithToolCapabilities(false))
	basemcp.RegisterTools(s, &basemcp.Tools{
		DecksFile: *decks,
		Catalog:   cat,
		Port:      *port,
		Seed:      *seed,
		MaxTurns:  cfg.MaxTurns,
	})

	if err := server.ServeStdio(s); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
