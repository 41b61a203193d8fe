package web

import (
	"encoding/json"
	"net/http"

	"github.com/peterkuimelis/basetcg/internal/game"
)

// DeckInfo is the JSON representation of a deck for the /api/decks endpoint.
type DeckInfo struct {
	Number int              `json:"number"`
	Name   string           `json:"name"`
	Size   int              `json:"size"`
	Cards  []game.CardEntry `json:"cards"`
}

// deckInfos numbers the decks the way `join --deck N` expects them.
func deckInfos(df *game.DeckFile) []DeckInfo {
	decks := make([]DeckInfo, 0, len(df.Decks))
	for i, d := range df.Decks {
		decks = append(decks, DeckInfo{
			Number: i + 1,
			Name:   d.Name,
			Size:   d.Size(),
			Cards:  d.Cards,
		})
	}
	return decks
}

func (s *Server) handleDecks(w http.ResponseWriter, r *http.Request) {
	df, err := game.ReadDeckFile(s.decksFile)
	if err != nil {
		http.Error(w, "could not read decks file", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(deckInfos(df))
}
