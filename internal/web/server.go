package web

import (
	"embed"
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"log"
	"net"
	"net/http"

	"github.com/coder/websocket"

	"github.com/peterkuimelis/basetcg/internal/game"
	tcgnet "github.com/peterkuimelis/basetcg/internal/net"
)

//go:embed static
var staticFiles embed.FS

// CardInfo is the JSON representation of a card for the /api/cards endpoint.
type CardInfo struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Category    string        `json:"category"`
	Stage       string        `json:"stage,omitempty"`
	HP          int           `json:"hp,omitempty"`
	Types       []string      `json:"types,omitempty"`
	EvolvesFrom string        `json:"evolvesFrom,omitempty"`
	Attacks     []game.Attack `json:"attacks,omitempty"`
	Weakness    string        `json:"weakness,omitempty"`
	Resistance  string        `json:"resistance,omitempty"`
	RetreatCost int           `json:"retreatCost,omitempty"`
	Provides    string        `json:"provides,omitempty"`
	ArtPath     string        `json:"artPath,omitempty"`
}

// Server is the basetcg web UI server.
type Server struct {
	catalog   *game.Catalog
	decksFile string
	gameAddr  string // default TCP game server for /ws
	mux       *http.ServeMux
}

// NewServer creates a new web server. A nil catalog uses the built-in card
// list; gameAddr is dialled when the browser does not name a server.
func NewServer(cat *game.Catalog, decksFile, gameAddr string) (*Server, error) {
	if cat == nil {
		var err error
		if cat, err = game.DefaultCatalog(); err != nil {
			return nil, fmt.Errorf("load catalog: %w", err)
		}
	}
	s := &Server{
		catalog:   cat,
		decksFile: decksFile,
		gameAddr:  gameAddr,
		mux:       http.NewServeMux(),
	}
	s.setupRoutes()
	return s, nil
}

// Handler exposes the routes, mainly for httptest.
func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) setupRoutes() {
	staticFS, _ := fs.Sub(staticFiles, "static")

	s.mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		f, err := staticFS.Open("index.html")
		if err != nil {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		defer f.Close()
		io.Copy(w, f)
	})

	s.mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))

	s.mux.HandleFunc("GET /api/cards", s.handleCards)
	s.mux.HandleFunc("GET /api/decks", s.handleDecks)

	s.mux.HandleFunc("GET /ws", s.handleWebSocket)
}

func newCardInfo(c *game.Card) CardInfo {
	ci := CardInfo{
		ID:          c.ID,
		Name:        c.Name,
		Category:    c.Category.String(),
		Stage:       c.Stage.String(),
		HP:          c.HP,
		EvolvesFrom: c.EvolvesFrom,
		Attacks:     c.Attacks,
		RetreatCost: c.RetreatCost,
		Provides:    string(c.Provides),
		ArtPath:     c.Images.Small,
	}
	for _, t := range c.Types {
		ci.Types = append(ci.Types, string(t))
	}
	if len(c.Weaknesses) > 0 {
		ci.Weakness = string(c.Weaknesses[0].Type) + " " + c.Weaknesses[0].Value
	}
	if len(c.Resistances) > 0 {
		ci.Resistance = string(c.Resistances[0].Type) + " " + c.Resistances[0].Value
	}
	return ci
}

func (s *Server) handleCards(w http.ResponseWriter, r *http.Request) {
	cards := s.catalog.Cards()
	infos := make([]CardInfo, 0, len(cards))
	for _, c := range cards {
		infos = append(infos, newCardInfo(c))
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(infos)
}

// connectMessage is the browser's first websocket frame.
type connectMessage struct {
	Type       string `json:"type"`
	Addr       string `json:"addr"`
	DeckNumber int    `json:"deck_number"`
}

// handleWebSocket joins a TCP game server on behalf of the browser and
// relays JSON messages both ways until the game ends.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	wsConn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true, // Allow connections from any origin
	})
	if err != nil {
		log.Printf("WebSocket accept error: %v", err)
		return
	}
	defer wsConn.CloseNow()

	ctx := r.Context()

	_, connectData, err := wsConn.Read(ctx)
	if err != nil {
		log.Printf("WebSocket read connect: %v", err)
		return
	}

	var connectMsg connectMessage
	if err := json.Unmarshal(connectData, &connectMsg); err != nil || connectMsg.Type != "connect" {
		wsConn.Close(websocket.StatusPolicyViolation, "expected connect message")
		return
	}
	addr := connectMsg.Addr
	if addr == "" {
		addr = s.gameAddr
	}

	tcpConn, err := net.Dial("tcp", addr)
	if err != nil {
		errMsg, _ := json.Marshal(map[string]string{
			"type":   "error",
			"result": fmt.Sprintf("Could not connect to game server at %s: %v", addr, err),
		})
		wsConn.Write(ctx, websocket.MessageText, errMsg)
		wsConn.Close(websocket.StatusNormalClosure, "connection failed")
		return
	}
	defer tcpConn.Close()

	join := tcgnet.ClientMessage{Type: tcgnet.MsgJoin, DeckNumber: connectMsg.DeckNumber}
	if err := json.NewEncoder(tcpConn).Encode(join); err != nil {
		log.Printf("TCP write join: %v", err)
		return
	}

	done := make(chan struct{})

	// TCP → WebSocket (server messages to browser)
	go func() {
		defer close(done)
		dec := json.NewDecoder(tcpConn)
		for {
			var msg json.RawMessage
			if err := dec.Decode(&msg); err != nil {
				if err != io.EOF {
					log.Printf("TCP read error: %v", err)
				}
				return
			}
			if err := wsConn.Write(ctx, websocket.MessageText, msg); err != nil {
				log.Printf("WebSocket write error: %v", err)
				return
			}
		}
	}()

	// WebSocket → TCP (browser responses to server)
	go func() {
		for {
			_, data, err := wsConn.Read(ctx)
			if err != nil {
				return
			}
			data = append(data, '\n')
			if _, err := tcpConn.Write(data); err != nil {
				log.Printf("TCP write error: %v", err)
				return
			}
		}
	}()

	<-done
	wsConn.Close(websocket.StatusNormalClosure, "game ended")
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe(addr string) error {
	return http.ListenAndServe(addr, s.mux)
}
