package net

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"os"

	"github.com/peterkuimelis/basetcg/internal/ai"
	"github.com/peterkuimelis/basetcg/internal/game"
	"github.com/peterkuimelis/basetcg/internal/log"
	"github.com/peterkuimelis/basetcg/internal/match"
)

// Server hosts a match between the host and one TCP client.
type Server struct {
	DeckFile string
	Catalog  *game.Catalog // nil = built-in card list
	Port     string
	HostDeck int  // host's deck number (1-indexed)
	HostAI   bool // the heuristic policy plays the host side
	Seed     int64
	MaxTurns int
	Out      io.Writer // game log and status lines; nil = stdout
}

func (s *Server) out() io.Writer {
	if s.Out == nil {
		return os.Stdout
	}
	return s.Out
}

// Run starts the server, waits for a client to join, then runs the match.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", ":"+s.Port)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	defer ln.Close()

	fmt.Fprintf(s.out(), "Waiting for opponent on port %s...\n", s.Port)
	return s.Serve(ctx, ln)
}

// Serve accepts exactly one joiner on ln and plays the match.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	out := s.out()
	cat := s.Catalog
	if cat == nil {
		var err error
		if cat, err = game.DefaultCatalog(); err != nil {
			return err
		}
	}

	conn, err := ln.Accept()
	if err != nil {
		return fmt.Errorf("accept: %w", err)
	}
	defer conn.Close()

	fmt.Fprintf(out, "Opponent connected from %s\n", conn.RemoteAddr())

	// Read the joiner's deck choice
	dec := json.NewDecoder(conn)
	var joinMsg ClientMessage
	if err := dec.Decode(&joinMsg); err != nil {
		return fmt.Errorf("read join message: %w", err)
	}
	joinerDeck := joinMsg.DeckNumber
	if joinerDeck == 0 {
		joinerDeck = 2
	}
	hostDeck := s.HostDeck
	if hostDeck == 0 {
		hostDeck = 1
	}

	hostDeckName, hostCards, err := game.DeckByNumber(s.DeckFile, hostDeck, cat)
	if err != nil {
		return fmt.Errorf("load host deck: %w", err)
	}
	joinerDeckName, joinerCards, err := game.DeckByNumber(s.DeckFile, joinerDeck, cat)
	if err != nil {
		return fmt.Errorf("load joiner deck: %w", err)
	}

	fmt.Fprintf(out, "Host: %s (%d cards)\n", hostDeckName, len(hostCards))
	fmt.Fprintf(out, "Joiner: %s (%d cards)\n", joinerDeckName, len(joinerCards))

	// Player 0 = host, Player 1 = joiner
	joinerCtrl := NewNetworkController(conn, 1)
	errCh := make(chan error, 2)

	var hostCtrl match.Controller
	var hostNet *NetworkController
	if s.HostAI {
		hostCtrl = ai.New(0)
	} else {
		// The host plays through its own REPL over an in-memory pipe
		hostConn, hostServerConn := net.Pipe()
		defer hostConn.Close()
		defer hostServerConn.Close()
		hostNet = NewNetworkController(hostServerConn, 0)
		hostCtrl = hostNet
		go func() {
			client := NewClient(hostConn, "P1", os.Stdin, out)
			errCh <- client.RunREPL(ctx)
		}()
	}

	m := match.New(match.Config{
		Deck0:    hostCards,
		Deck1:    joinerCards,
		Logger:   log.NewTextLogger(out),
		Seed:     s.Seed,
		MaxTurns: s.MaxTurns,
	}, hostCtrl, joinerCtrl)

	go func() {
		winner, err := m.Run(ctx)
		if err != nil {
			errCh <- fmt.Errorf("match error: %w", err)
			return
		}
		_ = joinerCtrl.SendGameOver(m.ID, winner, m.Result())
		if hostNet != nil {
			_ = hostNet.SendGameOver(m.ID, winner, m.Result())
		}
		errCh <- nil
	}()

	// Wait for either the match or the REPL to finish
	return <-errCh
}
