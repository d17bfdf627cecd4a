package table

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"tripleboardpoker-server/internal/util"
	"tripleboardpoker-server/pkg/playable/poker/tripleboard"
)

// ErrPlayerNotFound happens when the player ID is unknown
var ErrPlayerNotFound = errors.New("player not found")

// ErrTableNotFound happens when the table UUID is unknown
var ErrTableNotFound = errors.New("table not found")

// Store holds every player and table for the lifetime of the server
type Store struct {
	mu           sync.RWMutex
	nextPlayerID int64
	players      map[int64]*Player
	tables       map[string]*Table
}

// NewStore returns an empty store
func NewStore() *Store {
	return &Store{
		players: make(map[int64]*Player),
		tables:  make(map[string]*Table),
	}
}

// CreatePlayer creates a new player with the starting bank. If displayName is
// empty, a random one is assigned.
func (s *Store) CreatePlayer(displayName string) *Player {
	if displayName == "" {
		displayName = util.GetRandomName()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextPlayerID++
	player := &Player{
		ID:          s.nextPlayerID,
		DisplayName: displayName,
		Created:     time.Now(),
		bank:        defaultBank,
	}

	s.players[player.ID] = player
	return player
}

// PlayerByID returns the player with the ID
func (s *Store) PlayerByID(id int64) (*Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	player, ok := s.players[id]
	if !ok {
		return nil, ErrPlayerNotFound
	}

	return player, nil
}

// CreateTable creates a new table hosting a game with the options
func (s *Store) CreateTable(creator *Player, name string, opts tripleboard.Options) (*Table, error) {
	u := uuid.New().String()

	logger := logrus.WithFields(logrus.Fields{
		"uuid": u,
		"name": name,
	})

	game, err := tripleboard.NewGame(logger, opts)
	if err != nil {
		return nil, err
	}

	tbl := &Table{
		UUID:     u,
		Name:     name,
		PlayerID: creator.ID,
		Created:  time.Now(),
		game:     game,
		players:  make(map[int64]*Player),
	}

	s.mu.Lock()
	s.tables[u] = tbl
	s.mu.Unlock()

	return tbl, nil
}

// TableByUUID returns the table with the UUID
func (s *Store) TableByUUID(u string) (*Table, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tbl, ok := s.tables[u]
	if !ok {
		return nil, ErrTableNotFound
	}

	return tbl, nil
}

// Tables returns every table, newest first
func (s *Store) Tables() []*Table {
	s.mu.RLock()
	tables := make([]*Table, 0, len(s.tables))
	for _, tbl := range s.tables {
		tables = append(tables, tbl)
	}
	s.mu.RUnlock()

	sort.Slice(tables, func(i, j int) bool {
		return tables[i].Created.After(tables[j].Created)
	})

	return tables
}
