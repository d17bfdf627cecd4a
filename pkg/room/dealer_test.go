package room

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"tripleboardpoker-server/pkg/playable"
	"tripleboardpoker-server/pkg/playable/poker/tripleboard"
	"tripleboardpoker-server/pkg/table"
)

func newTestDealer(t *testing.T) (*Dealer, *table.Store, *table.Table) {
	t.Helper()

	store := table.NewStore()
	creator := store.CreatePlayer("creator")
	tbl, err := store.CreateTable(creator, "test table", tripleboard.DefaultOptions())
	assert.NoError(t, err)

	dealer := NewDealer(nil, tbl)
	dealer.StartShift()
	t.Cleanup(dealer.EndShift)

	return dealer, store, tbl
}

func receiveMessage(t *testing.T, c *Client) interface{} {
	t.Helper()

	select {
	case msg := <-c.SendChan():
		return msg
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for message")
		return nil
	}
}

// receiveResponse reads messages until it finds a *playable.Response matching
// the key, skipping over broadcasts like clientState and game updates
func receiveResponse(t *testing.T, c *Client, key string) *playable.Response {
	t.Helper()

	for i := 0; i < 10; i++ {
		msg := receiveMessage(t, c)
		if res, ok := msg.(*playable.Response); ok && res.Key == key {
			return res
		}
	}

	t.Fatalf("never received a %q response", key)
	return nil
}

func TestDealer_AddClient(t *testing.T) {
	a := assert.New(t)
	dealer, store, tbl := newTestDealer(t)

	player := store.CreatePlayer("")
	client := NewClient(nil, player, tbl)
	dealer.AddClient(client)

	res := receiveResponse(t, client, "clientState")
	a.NotNil(res.Data)

	res = receiveResponse(t, client, "game")
	a.Equal("tripleboard", res.Value)
	a.Equal([]*Client{client}, dealer.Clients())
}

func TestDealer_SeatAndBuyIn(t *testing.T) {
	a := assert.New(t)
	dealer, store, tbl := newTestDealer(t)

	player := store.CreatePlayer("")
	client := NewClient(nil, player, tbl)
	dealer.AddClient(client)

	client.ReceivedMessage(&playable.PayloadIn{Action: "seat", Context: "ctx-seat"})
	res := receiveResponse(t, client, "status")
	a.Equal("ctx-seat", res.Context)
	a.Equal(player, tbl.Player(player.ID))

	client.ReceivedMessage(&playable.PayloadIn{
		Action:         "buyIn",
		Context:        "ctx-buy",
		AdditionalData: playable.AdditionalData{"amount": float64(500)},
	})
	res = receiveResponse(t, client, "status")
	a.Equal("ctx-buy", res.Context)
	a.Equal(9500, player.Bank())

	// missing amount
	client.ReceivedMessage(&playable.PayloadIn{Action: "buyIn", Context: "ctx-bad"})
	res = receiveResponse(t, client, "error")
	a.Equal("could not obtain amount", res.Value)
}

func TestDealer_Leave(t *testing.T) {
	a := assert.New(t)
	dealer, store, tbl := newTestDealer(t)

	player := store.CreatePlayer("")
	client := NewClient(nil, player, tbl)
	dealer.AddClient(client)

	client.ReceivedMessage(&playable.PayloadIn{Action: "seat", Context: "ctx-seat"})
	receiveResponse(t, client, "status")

	client.ReceivedMessage(&playable.PayloadIn{Action: "leave", Context: "ctx-leave"})
	res := receiveResponse(t, client, "status")
	a.Equal("ctx-leave", res.Context)

	a.Eventually(func() bool {
		return tbl.Player(player.ID) == nil
	}, time.Second, time.Millisecond*10)
}

func TestDealer_GameActionError(t *testing.T) {
	a := assert.New(t)
	dealer, store, tbl := newTestDealer(t)

	player := store.CreatePlayer("")
	client := NewClient(nil, player, tbl)
	dealer.AddClient(client)

	// no hand is running, so a fold cannot be valid
	client.ReceivedMessage(&playable.PayloadIn{Action: "fold", Context: "ctx-fold"})
	res := receiveResponse(t, client, "error")
	a.Equal("ctx-fold", res.Context)
	a.NotEmpty(res.Value)
}

func TestDealer_RemoveClient(t *testing.T) {
	a := assert.New(t)
	dealer, store, tbl := newTestDealer(t)

	p1 := store.CreatePlayer("")
	p2 := store.CreatePlayer("")
	c1 := NewClient(nil, p1, tbl)
	c2 := NewClient(nil, p2, tbl)

	dealer.AddClient(c1)
	dealer.AddClient(c2)

	a.False(dealer.RemoveClient(c1))
	a.True(dealer.RemoveClient(c2))
}

func TestDealer_addLogMessages(t *testing.T) {
	a := assert.New(t)

	d := &Dealer{}
	for i := 0; i < 30; i++ {
		d.addLogMessages(playable.SimpleLogMessageSlice(0, "message %d", i))
	}

	a.Len(d.logMessages, logMessageLimit)
	a.Equal("message 29", d.logMessages[logMessageLimit-1].Message)
	a.Equal(fmt.Sprintf("message %d", 30-logMessageLimit), d.logMessages[0].Message)
}
