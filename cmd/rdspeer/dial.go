package main

import (
	"log/slog"
	"time"

	"github.com/gorilla/websocket"
	"github.com/spf13/cobra"

	"github.com/rds-dev/rdscom/rdsengine"
	"github.com/rds-dev/rdscom/transport/wschannel"
)

func newDialCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "dial",
		Short: "connect to an rdspeer serve endpoint and tick the engine",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDial(cmd, addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "ws://localhost:8088/ws", "server websocket address")
	return cmd
}

func runDial(cmd *cobra.Command, addr string) error {
	conn, _, err := websocket.DefaultDialer.Dial(addr, nil)
	if err != nil {
		return err
	}
	channel := wschannel.New(conn, slog.Default())

	cfg := rdsengine.DefaultConfig(func() uint64 { return uint64(time.Now().UnixMilli()) })
	engine := rdsengine.New(channel, cfg)

	slog.Info("rdspeer dial: connected", "addr", addr)
	for {
		select {
		case <-channel.Closed():
			return nil
		default:
			engine.Tick()
			time.Sleep(10 * time.Millisecond)
		}
	}
}
