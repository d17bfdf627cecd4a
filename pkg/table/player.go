package table

import (
	"encoding/json"
	"sync"
	"time"
)

// ErrInsufficientBank happens when a buy-in exceeds the player's bank
var ErrInsufficientBank = UserError("insufficient funds in your bank")

// defaultBank is the bank every new player starts with
const defaultBank = 10000

// Player is someone known to the server. The bank is the player's off-table
// balance; chips move from the bank to a table on a buy-in and come back when
// the player leaves.
type Player struct {
	ID          int64     `json:"id"`
	DisplayName string    `json:"displayName"`
	Created     time.Time `json:"created"`

	mu   sync.Mutex
	bank int
}

// Bank returns the player's off-table balance
func (p *Player) Bank() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.bank
}

// Debit removes amount from the player's bank
func (p *Player) Debit(amount int) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if amount > p.bank {
		return ErrInsufficientBank
	}

	p.bank -= amount
	return nil
}

// Credit adds amount to the player's bank
func (p *Player) Credit(amount int) {
	p.mu.Lock()
	p.bank += amount
	p.mu.Unlock()
}

// MarshalJSON encodes the player including the bank balance
func (p *Player) MarshalJSON() ([]byte, error) {
	type alias struct {
		ID          int64     `json:"id"`
		DisplayName string    `json:"displayName"`
		Created     time.Time `json:"created"`
		Bank        int       `json:"bank"`
	}

	return json.Marshal(alias{
		ID:          p.ID,
		DisplayName: p.DisplayName,
		Created:     p.Created,
		Bank:        p.Bank(),
	})
}
