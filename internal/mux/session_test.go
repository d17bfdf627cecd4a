package mux

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"tripleboardpoker-server/pkg/table"
)

func Test_postSession(t *testing.T) {
	m, _ := newTestMux(t)
	ts := httptest.NewServer(m)
	defer ts.Close()

	var resp sessionResponse
	assertPost(t, ts, "/session", postSessionPayload{DisplayName: "Alice"}, &resp, 201)
	assert.Equal(t, "Alice", resp.Player.DisplayName)
	assert.NotEmpty(t, resp.JWT)

	// the JWT works against the auth router
	var me *table.Player
	assertGet(t, ts, "/session", &me, 200, resp.JWT)
	assert.Equal(t, resp.Player.ID, me.ID)

	// an empty display name gets a random one
	resp = sessionResponse{}
	assertPost(t, ts, "/session", postSessionPayload{}, &resp, 201)
	assert.NotEmpty(t, resp.Player.DisplayName)

	// too long
	var errObj errorResponse
	assertPost(t, ts, "/session", postSessionPayload{DisplayName: strings.Repeat("A", 41)}, &errObj, 400)
	assert.Equal(t, "display name must be at most 40 characters", errObj.Message)
}
