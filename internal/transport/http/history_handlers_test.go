package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/roomrelay/internal/core"
	"github.com/vovakirdan/roomrelay/internal/proto"
)

func TestListMessages(t *testing.T) {
	ts, hub := startTestServer(t)
	for i := 1; i <= 3; i++ {
		hub.SendMessage(core.Message{RoomID: "lobby", UserID: "u", Text: strconv.Itoa(i)})
	}

	resp, err := ts.Client().Get(ts.URL + "/api/rooms/lobby/messages")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body proto.Messages
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body.Messages, 3)
	require.Equal(t, "1", body.Messages[0].Text)
	require.Equal(t, "3", body.Messages[2].Text)
}

func TestListMessagesUnknownRoom(t *testing.T) {
	ts, _ := startTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/rooms/ghost/messages", nil)
	rec := httptest.NewRecorder()
	ts.Config.Handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"messages":[]}`, rec.Body.String())
}
