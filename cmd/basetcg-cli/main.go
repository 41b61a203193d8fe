package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/peterkuimelis/basetcg/internal/ai"
	"github.com/peterkuimelis/basetcg/internal/config"
	"github.com/peterkuimelis/basetcg/internal/game"
	"github.com/peterkuimelis/basetcg/internal/log"
	"github.com/peterkuimelis/basetcg/internal/match"
	tcgnet "github.com/peterkuimelis/basetcg/internal/net"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	switch os.Args[1] {
	case "host":
		err = runHost(ctx, cfg, os.Args[2:])
	case "join":
		err = runJoin(ctx, cfg, os.Args[2:])
	case "sim":
		err = runSim(ctx, cfg, os.Args[2:])
	default:
		printUsage()
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  basetcg-cli host [--deck N] [--port P] [--decks FILE] [--ai]")
	fmt.Println("  basetcg-cli join [--deck N] [--addr ADDR]")
	fmt.Println("  basetcg-cli sim  [--deck0 N] [--deck1 N] [--random] [--seed S]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  host    Start a game server and play as P1")
	fmt.Println("  join    Connect to a game server and play as P2")
	fmt.Println("  sim     Watch the heuristic policy play itself")
	fmt.Println()
	fmt.Println("Defaults come from BASETCG_CATALOG, BASETCG_DECKS, BASETCG_PORT,")
	fmt.Println("BASETCG_SEED and BASETCG_MAX_TURNS.")
}

func runHost(ctx context.Context, cfg config.Config, args []string) error {
	fs := flag.NewFlagSet("host", flag.ExitOnError)
	deck := fs.Int("deck", 1, "deck number to use (from the decks file)")
	port := fs.String("port", cfg.Port, "TCP port to listen on")
	decksFile := fs.String("decks", cfg.DecksFile, "path to decks file (missing = built-in decks)")
	useAI := fs.Bool("ai", false, "let the heuristic policy play the host side")
	seed := fs.Int64("seed", cfg.Seed, "RNG seed (0 = random)")
	fs.Parse(args)

	cat, err := cfg.Catalog()
	if err != nil {
		return err
	}
	srv := &tcgnet.Server{
		DeckFile: *decksFile,
		Catalog:  cat,
		Port:     *port,
		HostDeck: *deck,
		HostAI:   *useAI,
		Seed:     *seed,
		MaxTurns: cfg.MaxTurns,
	}
	return srv.Run(ctx)
}

func runJoin(ctx context.Context, cfg config.Config, args []string) error {
	fs := flag.NewFlagSet("join", flag.ExitOnError)
	deck := fs.Int("deck", 2, "deck number to use (from the host's decks file)")
	addr := fs.String("addr", "localhost:"+cfg.Port, "server address to connect to")
	fs.Parse(args)

	return tcgnet.Connect(ctx, *addr, *deck)
}

func runSim(ctx context.Context, cfg config.Config, args []string) error {
	fs := flag.NewFlagSet("sim", flag.ExitOnError)
	deck0 := fs.Int("deck0", 1, "deck number for P1")
	deck1 := fs.Int("deck1", 2, "deck number for P2")
	random := fs.Bool("random", false, "build random quick-play decks instead")
	decksFile := fs.String("decks", cfg.DecksFile, "path to decks file (missing = built-in decks)")
	seed := fs.Int64("seed", cfg.Seed, "RNG seed (0 = random)")
	maxTurns := fs.Int("max-turns", cfg.MaxTurns, "stop the game as a draw after this many turns")
	fs.Parse(args)

	cat, err := cfg.Catalog()
	if err != nil {
		return err
	}
	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}

	var decks [2][]*game.Card
	if *random {
		r := game.NewSeededRand(*seed)
		for i := range decks {
			if decks[i], err = game.RandomDeck(cat, r); err != nil {
				return fmt.Errorf("random deck: %w", err)
			}
		}
	} else {
		for i, n := range []int{*deck0, *deck1} {
			var name string
			if name, decks[i], err = game.DeckByNumber(*decksFile, n, cat); err != nil {
				return fmt.Errorf("load deck %d: %w", n, err)
			}
			fmt.Printf("%s: %s (%d cards)\n", game.PlayerName(i), name, len(decks[i]))
		}
	}

	m := match.New(match.Config{
		Deck0:    decks[0],
		Deck1:    decks[1],
		Logger:   log.NewTextLogger(os.Stdout),
		Seed:     *seed,
		MaxTurns: *maxTurns,
	}, ai.New(0), ai.New(1))

	winner, err := m.Run(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("\nmatch %s (seed %d): %s\n", m.ID, *seed, m.Result())
	if winner >= 0 {
		fmt.Printf("winner: %s\n", game.PlayerName(winner))
	}
	return nil
}
