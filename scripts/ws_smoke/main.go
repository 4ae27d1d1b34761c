package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/roomrelay/internal/proto"
)

type smokeOptions struct {
	addr    string
	user    string
	room    string
	text    string
	timeout time.Duration
}

func main() {
	opts := smokeOptions{}
	cmd := &cobra.Command{
		Use:          "ws_smoke",
		Short:        "Join a room, send one message and wait for its echo",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), opts)
		},
	}
	cmd.Flags().StringVar(&opts.addr, "addr", "ws://localhost:3000/ws", "WebSocket address")
	cmd.Flags().StringVar(&opts.user, "user", "tester", "user id to send as")
	cmd.Flags().StringVar(&opts.room, "room", "lobby", "room id")
	cmd.Flags().StringVar(&opts.text, "text", "hello from smoke test", "message text to send")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 5*time.Second, "total timeout for the run")

	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "ws_smoke: %v\n", err)
		os.Exit(1)
	}
}

func run(parent context.Context, opts smokeOptions) error {
	ctx, cancel := context.WithTimeout(parent, opts.timeout)
	defer cancel()

	conn, _, err := websocket.Dial(ctx, opts.addr, nil)
	if err != nil {
		return fmt.Errorf("dial: %w", err)
	}
	defer conn.Close(websocket.StatusNormalClosure, "bye")

	send := func(event string, data any) error {
		payload, err := json.Marshal(data)
		if err != nil {
			return fmt.Errorf("marshal %s: %w", event, err)
		}
		if err := wsjson.Write(ctx, conn, proto.Inbound{Event: event, Data: payload}); err != nil {
			return fmt.Errorf("send %s: %w", event, err)
		}
		return nil
	}

	if err := send(proto.InboundEventJoin, opts.room); err != nil {
		return err
	}
	if err := send(proto.InboundEventMessage, proto.MessageData{RoomID: opts.room, UserID: opts.user, Text: opts.text}); err != nil {
		return err
	}

	for {
		var frame struct {
			Event string          `json:"event"`
			Data  json.RawMessage `json:"data"`
		}
		if err := wsjson.Read(ctx, conn, &frame); err != nil {
			return fmt.Errorf("read: %w", err)
		}

		switch frame.Event {
		case proto.OutboundEventMessages:
			var history proto.Messages
			if err := json.Unmarshal(frame.Data, &history); err != nil {
				return fmt.Errorf("unmarshal messages: %w", err)
			}
			fmt.Printf("History: room=%s count=%d\n", opts.room, len(history.Messages))
		case proto.OutboundEventMessage:
			var msg proto.Message
			if err := json.Unmarshal(frame.Data, &msg); err != nil {
				fmt.Printf("Raw data: %s\n", string(frame.Data))
				return fmt.Errorf("unmarshal message: %w", err)
			}
			fmt.Printf("Message: room=%s user=%s text=%q ts=%s\n", msg.RoomID, msg.UserID, msg.Text, msg.Timestamp.Format(time.RFC3339Nano))
			if msg.UserID == opts.user && msg.Text == opts.text {
				return nil
			}
		default:
			// keep looping for our echo
		}
	}
}
