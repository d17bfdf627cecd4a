package room

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"tripleboardpoker-server/pkg/playable"
	"tripleboardpoker-server/pkg/table"
)

type state int

const (
	stateClientEvent state = iota
	stateGameEvent
)

// Dealer is responsible for running the game at a table
type Dealer struct {
	pitBoss *PitBoss
	table   *table.Table
	clients map[*Client]bool
	lock    sync.RWMutex

	logMessages []*playable.LogMessage

	execInRunLoop chan func()
	stateChanged  chan state
	close         chan bool
}

// NewDealer creates a new dealer object
// This is called from a blocking state, so it needs to return quickly
func NewDealer(pitBoss *PitBoss, table *table.Table) *Dealer {
	return &Dealer{
		pitBoss:       pitBoss,
		table:         table,
		clients:       make(map[*Client]bool),
		execInRunLoop: make(chan func(), 256),
		stateChanged:  make(chan state, 256),
		close:         make(chan bool),
	}
}

// Clients will return a slice of connected (at the time) clients
func (d *Dealer) Clients() []*Client {
	d.lock.RLock()
	defer d.lock.RUnlock()

	clients := make([]*Client, 0, len(d.clients))
	for client := range d.clients {
		clients = append(clients, client)
	}

	return clients
}

// StartShift starts the run loop
func (d *Dealer) StartShift() {
	go d.runLoop()
}

func (d *Dealer) runLoop() {
	log := logrus.WithFields(logrus.Fields{
		"uuid": d.table.UUID,
		"name": d.table.Name,
	})

	log.Debug("creating dealer run loop")

	game := d.table.Game()
	ticker := time.NewTicker(game.Interval())
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			changed, err := game.Tick()
			if err != nil {
				log.WithError(err).Error("game tick failed")
				continue
			}

			if changed {
				d.table.SettleDepartures()
				d.sendGameData()
				d.sendPlayerData()
			}
		case messages := <-game.LogChan():
			d.addLogMessages(messages)
			d.broadcast(&playable.Response{
				Key:  "logs",
				Data: messages,
			})
		case s := <-d.stateChanged:
			switch s {
			case stateClientEvent:
				d.sendPlayerData()
			case stateGameEvent:
				d.sendGameData()
			}
		case fn := <-d.execInRunLoop:
			fn()
		case <-d.close:
			log.Debug("terminating dealer run loop")
			return
		}
	}
}

// AddClient adds a client
// This method must return quickly
func (d *Dealer) AddClient(client *Client) {
	d.lock.Lock()
	client.dealer = d
	d.clients[client] = true
	d.lock.Unlock()

	d.stateChanged <- stateClientEvent
	d.execInRunLoop <- func() {
		if len(d.logMessages) > 0 {
			client.Send(&playable.Response{
				Key:  "logs",
				Data: d.logMessages,
			})
		}

		gs, err := d.table.Game().GetPlayerState(client.player.ID)
		if err != nil {
			logrus.WithError(err).Error("could not get player state")
			return
		}

		client.Send(gs)
	}
}

// RemoveClient removes a client
// This method must return quickly
func (d *Dealer) RemoveClient(client *Client) (lastClient bool) {
	d.lock.Lock()
	delete(d.clients, client)
	nClients := len(d.clients)
	d.lock.Unlock()

	if nClients > 0 {
		d.stateChanged <- stateClientEvent
		return false
	}

	return true
}

// EndShift is called when the dealer is no longer needed
func (d *Dealer) EndShift() {
	close(d.close)
}

// NOTE: must only be called from the run loop
func (d *Dealer) broadcast(msg interface{}) {
	for _, client := range d.Clients() {
		client.Send(msg)
	}
}

// NOTE: must only be called from the run loop
func (d *Dealer) sendGameData() {
	game := d.table.Game()
	for _, client := range d.Clients() {
		data, err := game.GetPlayerState(client.player.ID)
		if err != nil {
			logrus.WithError(err).Error("could not get player state")
			continue
		}

		client.Send(data)
	}
}

// NOTE: must only be called from the run loop
func (d *Dealer) sendPlayerData() {
	connectedClients := make(map[int64]*table.Player)
	for _, client := range d.Clients() {
		connectedClients[client.player.ID] = client.player
	}

	csPlayers := make(map[int64]*clientStatePlayer)
	for _, player := range d.table.Players() {
		_, isConnected := connectedClients[player.ID]
		delete(connectedClients, player.ID)
		csPlayers[player.ID] = &clientStatePlayer{
			Player:      player,
			IsConnected: isConnected,
			IsSeated:    true,
		}
	}

	for _, player := range connectedClients {
		csPlayers[player.ID] = &clientStatePlayer{
			Player:      player,
			IsConnected: true,
			IsSeated:    false,
		}
	}

	d.broadcast(&playable.Response{
		Key:  "clientState",
		Data: csPlayers,
	})
}

// ReceivedMessage is called when a client sends a message to the server
func (d *Dealer) ReceivedMessage(c *Client, msg *playable.PayloadIn) {
	switch msg.Action {
	case "seat":
		d.execInRunLoop <- func() {
			if _, err := d.table.Join(c.player); err != nil {
				c.Send(newErrorResponse(msg.Context, err))
				return
			}

			c.Send(playable.OK(msg.Context))
			d.stateChanged <- stateClientEvent
			d.stateChanged <- stateGameEvent
		}
	case "buyIn":
		d.execInRunLoop <- func() {
			amount, ok := msg.AdditionalData.GetInt("amount")
			if !ok {
				c.Send(newErrorResponse(msg.Context, errUnknownAmount))
				return
			}

			if err := d.table.BuyIn(c.player, amount); err != nil {
				c.Send(newErrorResponse(msg.Context, err))
				return
			}

			c.Send(playable.OK(msg.Context))
			d.stateChanged <- stateGameEvent
		}
	case "leave":
		d.execInRunLoop <- func() {
			if err := d.table.Leave(c.player); err != nil {
				c.Send(newErrorResponse(msg.Context, err))
				return
			}

			d.table.SettleDepartures()
			c.Send(playable.OK(msg.Context))
			d.stateChanged <- stateClientEvent
			d.stateChanged <- stateGameEvent
		}
	default:
		d.execInRunLoop <- func() {
			response, updateState, err := d.table.Game().Action(c.player.ID, msg)
			if err != nil {
				logrus.WithError(err).WithField("client", c.String()).Error("could not perform action")
				c.Send(newErrorResponse(msg.Context, err))
				return
			}

			if response != nil {
				response.Context = msg.Context
				c.Send(response)
			}

			if updateState {
				d.stateChanged <- stateGameEvent
			}
		}
	}
}
