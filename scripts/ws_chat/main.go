package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/roomrelay/internal/log"
	"github.com/vovakirdan/roomrelay/internal/proto"
)

type chatOptions struct {
	addr string
	user string
	room string
}

func main() {
	opts := chatOptions{}
	cmd := &cobra.Command{
		Use:          "ws_chat",
		Short:        "Interactive relay client; /join <room> switches rooms",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), opts, log.New("info"))
		},
	}
	cmd.Flags().StringVar(&opts.addr, "addr", "ws://localhost:3000/ws", "WebSocket address")
	cmd.Flags().StringVar(&opts.user, "user", "cli-user", "user id")
	cmd.Flags().StringVar(&opts.room, "room", "lobby", "room to join")

	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "ws_chat: %v\n", err)
		os.Exit(1)
	}
}

type session struct {
	conn *websocket.Conn
	user string
	room string
	log  *zerolog.Logger
}

func run(parent context.Context, opts chatOptions, logger *zerolog.Logger) error {
	baseCtx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(baseCtx)
	defer cancel()

	conn, _, err := websocket.Dial(ctx, opts.addr, nil)
	if err != nil {
		return fmt.Errorf("dial: %w", err)
	}
	defer conn.Close(websocket.StatusNormalClosure, "bye")

	s := &session{conn: conn, user: opts.user, room: opts.room, log: logger}
	if err := s.send(ctx, proto.InboundEventJoin, s.room); err != nil {
		return err
	}

	fmt.Printf("Connected to %s as %s in room %s\n", opts.addr, opts.user, opts.room)
	fmt.Println("Type messages and press Enter to send. /join <room> switches rooms. Ctrl+C to exit.")

	go func() {
		defer cancel()
		s.readLoop(ctx)
	}()

	s.writeLoop(ctx)
	return nil
}

func (s *session) send(ctx context.Context, event string, data any) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", event, err)
	}
	return wsjson.Write(ctx, s.conn, proto.Inbound{Event: event, Data: payload})
}

func (s *session) readLoop(ctx context.Context) {
	for {
		var frame struct {
			Event string          `json:"event"`
			Data  json.RawMessage `json:"data"`
		}
		if err := wsjson.Read(ctx, s.conn, &frame); err != nil {
			// Treat expected shutdowns quietly.
			if errors.Is(err, context.Canceled) {
				return
			}
			switch websocket.CloseStatus(err) {
			case websocket.StatusNormalClosure, websocket.StatusGoingAway:
				return
			}
			s.log.Error().Err(err).Msg("read error")
			return
		}

		switch frame.Event {
		case proto.OutboundEventMessages:
			var history proto.Messages
			if err := json.Unmarshal(frame.Data, &history); err != nil {
				s.log.Warn().Err(err).Msg("unmarshal messages")
				continue
			}
			for _, m := range history.Messages {
				printMessage(m)
			}
		case proto.OutboundEventMessage:
			var m proto.Message
			if err := json.Unmarshal(frame.Data, &m); err != nil {
				s.log.Warn().Err(err).Msg("unmarshal message")
				continue
			}
			printMessage(m)
		case proto.OutboundEventTyping, proto.OutboundEventStopTyping:
			var typing proto.Typing
			if err := json.Unmarshal(frame.Data, &typing); err != nil {
				continue
			}
			if frame.Event == proto.OutboundEventTyping {
				fmt.Printf("  %s is typing...\n", typing.UserID)
			} else {
				fmt.Printf("  %s stopped typing\n", typing.UserID)
			}
		default:
			fmt.Printf("event=%s data=%s\n", frame.Event, string(frame.Data))
		}
	}
}

func (s *session) writeLoop(ctx context.Context) {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case line, ok := <-lines:
			if !ok {
				return
			}
			text := strings.TrimSpace(line)
			if text == "" {
				continue
			}

			if room, found := strings.CutPrefix(text, "/join "); found {
				s.room = strings.TrimSpace(room)
				if err := s.send(ctx, proto.InboundEventJoin, s.room); err != nil {
					s.log.Error().Err(err).Msg("send join")
					return
				}
				continue
			}

			// Announce typing around each line so peers see the indicator.
			_ = s.send(ctx, proto.InboundEventTyping, s.user)
			err := s.send(ctx, proto.InboundEventMessage, proto.MessageData{RoomID: s.room, UserID: s.user, Text: text})
			_ = s.send(ctx, proto.InboundEventStopTyping, s.user)
			if err != nil {
				s.log.Error().Err(err).Msg("send message")
				return
			}
		}
	}
}

func printMessage(m proto.Message) {
	fmt.Printf("[%s %s] %s: %s\n", m.RoomID, m.Timestamp.Local().Format("15:04:05"), m.UserID, m.Text)
}
