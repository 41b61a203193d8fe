package net

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"os"
	"strconv"
	"strings"
)

// Client connects to a game server and provides a terminal REPL.
type Client struct {
	conn       net.Conn
	playerName string // "P1" or "P2"
	in         *bufio.Reader
	out        io.Writer
}

// NewClient wraps an established connection. Choices are read from in and
// the board is drawn to out.
func NewClient(conn net.Conn, playerName string, in io.Reader, out io.Writer) *Client {
	return &Client{conn: conn, playerName: playerName, in: bufio.NewReader(in), out: out}
}

// Connect connects to a server, sends the deck choice, and runs the REPL.
func Connect(ctx context.Context, addr string, deckNumber int) error {
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer conn.Close()

	// Send join message with deck choice
	enc := json.NewEncoder(conn)
	if err := enc.Encode(ClientMessage{Type: MsgJoin, DeckNumber: deckNumber}); err != nil {
		return fmt.Errorf("send join: %w", err)
	}

	fmt.Println("Connected! Waiting for game to start...")

	return NewClient(conn, "P2", os.Stdin, os.Stdout).RunREPL(ctx)
}

// RunREPL reads server messages and handles them interactively.
func (c *Client) RunREPL(ctx context.Context) error {
	dec := json.NewDecoder(c.conn)
	enc := json.NewEncoder(c.conn)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		var msg ServerMessage
		if err := dec.Decode(&msg); err != nil {
			return fmt.Errorf("read message: %w", err)
		}

		switch msg.Type {
		case MsgNotify:
			c.renderEvent(msg.Event)

		case MsgChooseAction:
			c.renderState(msg.State)
			c.renderActions(msg.Actions)
			idx, err := c.readChoice(len(msg.Actions))
			if err != nil {
				return err
			}
			if err := enc.Encode(ClientMessage{Type: MsgAction, Index: idx}); err != nil {
				return fmt.Errorf("send action: %w", err)
			}

		case MsgGameOver:
			fmt.Fprintln(c.out)
			fmt.Fprintln(c.out, "═══════════════════════════════════")
			fmt.Fprintln(c.out, "          GAME OVER")
			fmt.Fprintln(c.out, "═══════════════════════════════════")
			fmt.Fprintln(c.out, msg.Result)
			fmt.Fprintln(c.out, "═══════════════════════════════════")
			return nil
		}
	}
}

func (c *Client) renderEvent(ev *EventView) {
	if ev == nil {
		return
	}
	// Format like the TextLogger
	fmt.Fprintf(c.out, "T%-2d %-13s | %s\n", ev.Turn, ev.Phase, ev.Details)
}

func (c *Client) renderState(sv *StateView) {
	if sv == nil {
		return
	}

	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, "╔══════════════════════════════════════════════════════╗")

	opp := sv.Opponent
	fmt.Fprintf(c.out, "║  OPPONENT  Prizes: %d  Hand: %d  Deck: %d  Discard: %d\n",
		opp.PrizeCount, opp.HandCount, opp.DeckCount, opp.DiscardCount)
	fmt.Fprintf(c.out, "║  Bench:   %s\n", formatBench(opp.Bench))
	fmt.Fprintf(c.out, "║  Active:  %s\n", formatCreature(opp.Active))

	fmt.Fprintln(c.out, "║──────────────────────────────────────────────────────")

	you := sv.You
	fmt.Fprintf(c.out, "║  Active:  %s\n", formatCreature(you.Active))
	fmt.Fprintf(c.out, "║  Bench:   %s\n", formatBench(you.Bench))
	fmt.Fprintf(c.out, "║  YOU (%s)  Prizes: %d  Hand: %d  Deck: %d  Discard: %d\n",
		c.playerName, you.PrizeCount, you.HandCount, you.DeckCount, you.DiscardCount)
	fmt.Fprintln(c.out, "╚══════════════════════════════════════════════════════╝")

	turnInfo := fmt.Sprintf("Turn %d | %s", sv.Turn, sv.Phase)
	if sv.IsYourTurn {
		turnInfo += " | Your turn"
	} else if sv.Phase != "setup" {
		turnInfo += " | Opponent's turn"
	}
	fmt.Fprintln(c.out, turnInfo)

	if len(you.Hand) > 0 {
		fmt.Fprintf(c.out, "\nHand: ")
		for i, name := range you.Hand {
			fmt.Fprintf(c.out, "[%d] %s  ", i+1, name)
		}
		fmt.Fprintln(c.out)
	}
}

func formatCreature(cv CreatureView) string {
	if cv.Empty {
		return "[ ]"
	}
	s := fmt.Sprintf("[%s %d/%d", cv.Name, cv.HP-cv.Damage, cv.HP)
	if cv.Status != "" {
		s += " " + cv.Status
	}
	if len(cv.Energy) > 0 {
		s += fmt.Sprintf(" E:%d", len(cv.Energy))
	}
	return s + "]"
}

func formatBench(bench [5]CreatureView) string {
	parts := make([]string, 0, len(bench))
	for _, cv := range bench {
		parts = append(parts, formatCreature(cv))
	}
	return strings.Join(parts, " ")
}

func (c *Client) renderActions(actions []ActionView) {
	fmt.Fprintln(c.out, "\nActions:")
	for _, a := range actions {
		fmt.Fprintf(c.out, "  %d) %s\n", a.Index+1, a.Desc)
	}
}

// readChoice returns a 0-indexed choice. It fails only when input ends.
func (c *Client) readChoice(count int) (int, error) {
	for {
		fmt.Fprint(c.out, "> ")
		line, err := c.in.ReadString('\n')
		line = strings.TrimSpace(line)
		n, convErr := strconv.Atoi(line)
		if convErr == nil && n >= 1 && n <= count {
			return n - 1, nil
		}
		if err != nil {
			return 0, fmt.Errorf("read choice: %w", err)
		}
		fmt.Fprintf(c.out, "Enter a number between 1 and %d\n", count)
	}
}
