package http

import (
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"

	"github.com/vovakirdan/roomrelay/internal/core"
	"github.com/vovakirdan/roomrelay/internal/proto"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// inboundToCommand decodes an inbound frame. Any error means the frame is
// dropped; nothing is reported back to the client.
func inboundToCommand(inbound proto.Inbound) (*core.Command, error) {
	switch inbound.Event {
	case proto.InboundEventJoin:
		room, err := decodeString(inbound.Data)
		if err != nil {
			return nil, err
		}
		if room == "" {
			return nil, core.ErrEmptyRoom
		}
		return &core.Command{Kind: core.CommandJoinRoom, Room: room}, nil
	case proto.InboundEventMessage:
		var msg proto.MessageData
		if err := json.Unmarshal(inbound.Data, &msg); err != nil {
			return nil, fmt.Errorf("%w: %w", core.ErrInvalidPayload, err)
		}
		if err := validate.Struct(msg); err != nil {
			return nil, fmt.Errorf("%w: %w", core.ErrInvalidPayload, err)
		}
		return &core.Command{
			Kind: core.CommandSendRoomMessage,
			Message: core.Message{
				// Timestamp is assigned by the hub.
				RoomID: msg.RoomID,
				UserID: msg.UserID,
				Text:   msg.Text,
			},
		}, nil
	case proto.InboundEventTyping, proto.InboundEventStopTyping:
		user, err := decodeString(inbound.Data)
		if err != nil {
			return nil, err
		}
		kind := core.CommandTyping
		if inbound.Event == proto.InboundEventStopTyping {
			kind = core.CommandStopTyping
		}
		return &core.Command{Kind: kind, User: user}, nil
	default:
		return nil, fmt.Errorf("%w: %q", core.ErrUnknownEvent, inbound.Event)
	}
}

func decodeString(data json.RawMessage) (string, error) {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return "", fmt.Errorf("%w: %w", core.ErrInvalidPayload, err)
	}
	return s, nil
}

func outboundFromEvent(event *core.Event) proto.Outbound {
	switch event.Kind {
	case core.EventHistory:
		return proto.Outbound{
			Event: proto.OutboundEventMessages,
			Data:  messagesPayload(event.Messages),
		}
	case core.EventRoomMessage:
		return proto.Outbound{
			Event: proto.OutboundEventMessage,
			Data:  toProtoMessage(event.Message),
		}
	case core.EventTyping:
		return proto.Outbound{
			Event: proto.OutboundEventTyping,
			Data:  proto.Typing{UserID: event.User, RoomID: event.Room},
		}
	case core.EventStopTyping:
		return proto.Outbound{
			Event: proto.OutboundEventStopTyping,
			Data:  proto.Typing{UserID: event.User, RoomID: event.Room},
		}
	default:
		return proto.Outbound{}
	}
}

func messagesPayload(messages []core.Message) proto.Messages {
	return proto.Messages{
		Messages: lo.Map(messages, func(m core.Message, _ int) proto.Message {
			return toProtoMessage(m)
		}),
	}
}

func toProtoMessage(m core.Message) proto.Message {
	return proto.Message{
		RoomID:    m.RoomID,
		UserID:    m.UserID,
		Text:      m.Text,
		Timestamp: m.Timestamp.UTC(),
	}
}
