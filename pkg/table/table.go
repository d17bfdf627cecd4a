package table

import (
	"sort"
	"sync"
	"time"

	"tripleboardpoker-server/pkg/playable/poker/tripleboard"
)

// Table hosts a single Triple-Board Omaha game
type Table struct {
	UUID string `json:"uuid"`
	Name string `json:"name"`
	// PlayerID is who created the table
	PlayerID int64     `json:"playerId"`
	Created  time.Time `json:"created"`

	game *tripleboard.Game

	mu      sync.RWMutex
	players map[int64]*Player
}

// Game returns the game hosted at this table
func (t *Table) Game() *tripleboard.Game {
	return t.game
}

// Join registers the player as a member of the table and takes a seat
func (t *Table) Join(player *Player) (int, error) {
	index, err := t.game.SeatPlayer(player.ID)
	if err != nil {
		return 0, err
	}

	t.mu.Lock()
	t.players[player.ID] = player
	t.mu.Unlock()

	return index, nil
}

// BuyIn moves chips from the player's bank to their seat. If the game rejects
// the buy-in, the bank is made whole.
func (t *Table) BuyIn(player *Player, amount int) error {
	if err := player.Debit(amount); err != nil {
		return err
	}

	if err := t.game.ApplyBuyIn(player.ID, amount); err != nil {
		player.Credit(amount)
		return err
	}

	return nil
}

// Leave flags the player to leave the table. Their chips come back to the
// bank on the next departure settlement.
func (t *Table) Leave(player *Player) error {
	return t.game.Leave(player.ID)
}

// SettleDepartures credits each departed player's remaining chips back to
// their bank
func (t *Table) SettleDepartures() {
	departures := t.game.TakeDepartures()
	if len(departures) == 0 {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	for _, departure := range departures {
		if player, ok := t.players[departure.PlayerID]; ok {
			player.Credit(departure.Chips)
			delete(t.players, departure.PlayerID)
		}
	}
}

// Players returns every member of the table in join order by ID
func (t *Table) Players() []*Player {
	t.mu.RLock()
	players := make([]*Player, 0, len(t.players))
	for _, player := range t.players {
		players = append(players, player)
	}
	t.mu.RUnlock()

	sort.Slice(players, func(i, j int) bool {
		return players[i].ID < players[j].ID
	})

	return players
}

// Player returns the member with the ID, or nil
func (t *Table) Player(id int64) *Player {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.players[id]
}
