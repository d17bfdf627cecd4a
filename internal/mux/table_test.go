package mux

import (
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"tripleboardpoker-server/pkg/playable/poker/tripleboard"
	"tripleboardpoker-server/pkg/table"
)

func Test_getTable(t *testing.T) {
	m, store := newTestMux(t)
	ts := httptest.NewServer(m)
	defer ts.Close()

	p, j := player(store)

	tbl1, _ := store.CreateTable(p, "Table 1", tripleboard.DefaultOptions())
	tbl2, _ := store.CreateTable(p, "Table 2", tripleboard.DefaultOptions())
	tbl3, _ := store.CreateTable(p, "Table 3", tripleboard.DefaultOptions())

	// creation can happen within the same nanosecond, so force the ordering
	tbl2.Created = tbl1.Created.Add(1)
	tbl3.Created = tbl2.Created.Add(1)

	var tables []*table.Table
	assertGet(t, ts, "/table", &tables, 200, j)
	assert.Equal(t, 3, len(tables))
	assert.Equal(t, tbl3.UUID, tables[0].UUID)
	assert.Equal(t, tbl2.UUID, tables[1].UUID)
	assert.Equal(t, tbl1.UUID, tables[2].UUID)

	assertGet(t, ts, "/table?start=1&rows=1", &tables, 200, j)
	assert.Equal(t, 1, len(tables))
	assert.Equal(t, tbl2.UUID, tables[0].UUID)

	assertGet(t, ts, "/table?start=5", &tables, 200, j)
	assert.Equal(t, 0, len(tables))

	// bad pagination
	var err errorResponse
	assertGet(t, ts, "/table?start=-1", &err, 400, j)
	assert.Equal(t, "start cannot be less than zero", err.Message)
}

func Test_postTable(t *testing.T) {
	m, store := newTestMux(t)
	ts := httptest.NewServer(m)
	defer ts.Close()

	p, j := player(store)

	var tbl *table.Table
	assertPost(t, ts, "/table", postTablePayload{Name: "Test"}, &tbl, 201, j)
	assert.Equal(t, "Test", tbl.Name)
	assert.NotEmpty(t, tbl.UUID)
	assert.Equal(t, p.ID, tbl.PlayerID)

	// require valid name
	var err errorResponse
	assertPost(t, ts, "/table", postTablePayload{Name: "Te"}, &err, 400, j)
	assert.Equal(t, "name must be 3-40 characters", err.Message)

	err = errorResponse{}
	assertPost(t, ts, "/table", postTablePayload{Name: strings.Repeat("A", 41)}, &err, 400, j)
	assert.Equal(t, "name must be 3-40 characters", err.Message)

	// invalid options are rejected by the game
	err = errorResponse{}
	assertPost(t, ts, "/table", postTablePayload{Name: "Test", Seats: 5}, &err, 400, j)
	assert.NotEmpty(t, err.Message)
}

func Test_postTable_overrides(t *testing.T) {
	m, store := newTestMux(t)
	ts := httptest.NewServer(m)
	defer ts.Close()

	_, j := player(store)

	var tbl *table.Table
	assertPost(t, ts, "/table", postTablePayload{
		Name:       "High Stakes",
		SmallBlind: 25,
		BigBlind:   50,
		BetMin:     50,
		BetMax:     5000,
		Seats:      3,
	}, &tbl, 201, j)

	stored, err := store.TableByUUID(tbl.UUID)
	assert.NoError(t, err)
	assert.Equal(t, "Triple-Board Omaha (${25}/${50})", stored.Game().Name())
}

func Test_getTableUUID(t *testing.T) {
	m, store := newTestMux(t)
	ts := httptest.NewServer(m)
	defer ts.Close()

	p1, j := player(store)
	p2, _ := player(store)

	tbl, _ := store.CreateTable(p1, "My Table", tripleboard.DefaultOptions())
	_, _ = tbl.Join(p1)
	_, _ = tbl.Join(p2)

	path := fmt.Sprintf("/table/%s", tbl.UUID)
	var respObj getTableUUIDResponse
	assertGet(t, ts, path, &respObj, 200, j)

	assert.Equal(t, tbl.UUID, respObj.Table.UUID)
	assert.Equal(t, 2, len(respObj.Players))
	assert.Equal(t, "Triple-Board Omaha (${5}/${10})", respObj.GameName)

	// unknown table
	assertGet(t, ts, "/table/00000000-0000-0000-0000-000000000000", nil, 404, j)
}

func Test_postTableUUIDSeat(t *testing.T) {
	m, store := newTestMux(t)
	ts := httptest.NewServer(m)
	defer ts.Close()

	p, j := player(store)
	tbl, _ := store.CreateTable(p, "My Table", tripleboard.DefaultOptions())

	path := fmt.Sprintf("/table/%s/seat", tbl.UUID)

	var respObj postSeatResponse
	assertPost(t, ts, path, postSeatPayload{BuyIn: 500}, &respObj, 201, j)
	assert.Equal(t, 0, respObj.SeatIndex)
	assert.Equal(t, 9500, p.Bank())

	// already seated
	var errObj errorResponse
	assertPost(t, ts, path, nil, &errObj, 400, j)
	assert.NotEmpty(t, errObj.Message)

	// buy-in below the table minimum
	_, j2 := player(store)
	errObj = errorResponse{}
	assertPost(t, ts, path, postSeatPayload{BuyIn: 1}, &errObj, 400, j2)
	assert.NotEmpty(t, errObj.Message)
}
