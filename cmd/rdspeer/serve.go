package main

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/spf13/cobra"

	"github.com/rds-dev/rdscom/rdsengine"
	"github.com/rds-dev/rdscom/transport/wschannel"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
}

func newServeCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "accept websocket peers and run an exchange engine against each one",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":8088", "address to listen on")
	return cmd
}

func runServe(cmd *cobra.Command, addr string) error {
	r := chi.NewRouter()
	r.Get("/ws", func(w http.ResponseWriter, req *http.Request) {
		conn, err := upgrader.Upgrade(w, req, nil)
		if err != nil {
			slog.Error("rdspeer serve: upgrade failed", "error", err)
			return
		}
		channel := wschannel.New(conn, slog.Default())

		cfg := rdsengine.DefaultConfig(func() uint64 { return uint64(time.Now().UnixMilli()) })
		engine := rdsengine.New(channel, cfg)

		for {
			select {
			case <-channel.Closed():
				return
			default:
				engine.Tick()
				time.Sleep(10 * time.Millisecond)
			}
		}
	})

	slog.Info("rdspeer serve: listening", "addr", addr)
	return http.ListenAndServe(addr, r)
}
