package http

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/roomrelay/internal/core"
	"github.com/vovakirdan/roomrelay/internal/proto"
)

func inbound(event, data string) proto.Inbound {
	return proto.Inbound{Event: event, Data: json.RawMessage(data)}
}

func TestInboundToCommand(t *testing.T) {
	cmd, err := inboundToCommand(inbound("join", `"lobby"`))
	require.NoError(t, err)
	require.Equal(t, &core.Command{Kind: core.CommandJoinRoom, Room: "lobby"}, cmd)

	cmd, err = inboundToCommand(inbound("message", `{"room_id":"r","user_id":"u","text":"","timestamp":"2001-01-01T00:00:00Z"}`))
	require.NoError(t, err)
	require.Equal(t, core.CommandSendRoomMessage, cmd.Kind)
	require.Empty(t, cmd.Room)
	require.Empty(t, cmd.User)
	require.Equal(t, core.Message{RoomID: "r", UserID: "u", Text: ""}, cmd.Message)
	require.True(t, cmd.Message.Timestamp.IsZero())

	cmd, err = inboundToCommand(inbound("typing", `"alice"`))
	require.NoError(t, err)
	require.Equal(t, &core.Command{Kind: core.CommandTyping, User: "alice"}, cmd)

	cmd, err = inboundToCommand(inbound("stop typing", `"alice"`))
	require.NoError(t, err)
	require.Equal(t, &core.Command{Kind: core.CommandStopTyping, User: "alice"}, cmd)
}

func TestInboundToCommandRejects(t *testing.T) {
	cases := []struct {
		name string
		in   proto.Inbound
		err  error
	}{
		{"unknown event", inbound("shout", `"x"`), core.ErrUnknownEvent},
		{"empty room", inbound("join", `""`), core.ErrEmptyRoom},
		{"join not a string", inbound("join", `{"room":"x"}`), core.ErrInvalidPayload},
		{"message missing room", inbound("message", `{"user_id":"u","text":"t"}`), core.ErrInvalidPayload},
		{"message not an object", inbound("message", `"hi"`), core.ErrInvalidPayload},
		{"typing missing data", inbound("typing", ``), core.ErrInvalidPayload},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cmd, err := inboundToCommand(tc.in)
			require.Nil(t, cmd)
			require.ErrorIs(t, err, tc.err)
		})
	}
}

func TestOutboundFromHistoryEvent(t *testing.T) {
	ts := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	out := outboundFromEvent(&core.Event{
		Kind:     core.EventHistory,
		Room:     "r",
		Messages: []core.Message{{RoomID: "r", UserID: "u", Text: "a", Timestamp: ts}},
	})

	data, err := json.Marshal(out)
	require.NoError(t, err)
	require.JSONEq(t, `{"event":"messages","data":{"messages":[
		{"room_id":"r","user_id":"u","text":"a","timestamp":"2024-01-02T03:04:05Z"}
	]}}`, string(data))
}

func TestOutboundFromEmptyHistoryIsArray(t *testing.T) {
	data, err := json.Marshal(outboundFromEvent(&core.Event{Kind: core.EventHistory}))
	require.NoError(t, err)
	require.JSONEq(t, `{"event":"messages","data":{"messages":[]}}`, string(data))
}

func TestOutboundFromMessageEventIsUTC(t *testing.T) {
	local := time.Date(2024, 1, 2, 5, 4, 5, 0, time.FixedZone("X", 2*3600))
	data, err := json.Marshal(outboundFromEvent(&core.Event{
		Kind:    core.EventRoomMessage,
		Message: core.Message{RoomID: "r", UserID: "u", Text: "hi", Timestamp: local},
	}))
	require.NoError(t, err)
	require.JSONEq(t, `{"event":"message","data":{"room_id":"r","user_id":"u","text":"hi","timestamp":"2024-01-02T03:04:05Z"}}`, string(data))
}

func TestOutboundFromTypingEvents(t *testing.T) {
	out := outboundFromEvent(&core.Event{Kind: core.EventTyping, Room: "r", User: "alice"})
	require.Equal(t, proto.OutboundEventTyping, out.Event)
	require.Equal(t, proto.Typing{UserID: "alice", RoomID: "r"}, out.Data)

	out = outboundFromEvent(&core.Event{Kind: core.EventStopTyping, User: "alice"})
	require.Equal(t, proto.OutboundEventStopTyping, out.Event)
	require.Equal(t, proto.Typing{UserID: "alice"}, out.Data)
}
