// Package httpchannel implements rdschannel.Channel as a discrete
// request/response HTTP surface instead of a held-open socket, for hosts
// that would rather expose rdscom over a couple of REST endpoints than run
// a websocket. Routing is done with chi, grounded on the teacher's
// pkg/server.Server chi wiring.
package httpchannel

import (
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
)

// Server exposes two chi routes:
//
//	POST /rdscom/send  - body is one serialized frame, enqueued for Receive
//	GET  /rdscom/recv  - long-polls (up to PollTimeout) for the next queued
//	                     outbound frame a peer sent via Channel.Send
//
// It is two one-directional queues (inbound from POST, outbound to GET)
// rather than a single pipe, since HTTP request/response pairs can't
// multiplex both directions on one connection the way a websocket can.
type Server struct {
	PollTimeout time.Duration

	mu       sync.Mutex
	inbound  [][]byte
	outbound chan []byte
}

// NewServer creates an httpchannel.Server with a default 25s long-poll
// timeout.
func NewServer() *Server {
	return &Server{
		PollTimeout: 25 * time.Second,
		outbound:    make(chan []byte, 64),
	}
}

// Routes mounts the channel's endpoints onto r.
func (s *Server) Routes(r chi.Router) {
	r.Post("/rdscom/send", s.handleSend)
	r.Get("/rdscom/recv", s.handleRecv)
}

func (s *Server) handleSend(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		http.Error(w, "read error", http.StatusBadRequest)
		return
	}
	s.mu.Lock()
	s.inbound = append(s.inbound, body)
	s.mu.Unlock()
	w.WriteHeader(http.StatusAccepted)
}

func (s *Server) handleRecv(w http.ResponseWriter, r *http.Request) {
	select {
	case frame := <-s.outbound:
		w.Header().Set("Content-Type", "application/octet-stream")
		w.Write(frame)
	case <-time.After(s.PollTimeout):
		w.WriteHeader(http.StatusNoContent)
	case <-r.Context().Done():
	}
}

// Send queues data to be handed out to the next /rdscom/recv long-poll.
func (s *Server) Send(data []byte) error {
	s.outbound <- data
	return nil
}

// Receive returns the oldest frame that arrived via /rdscom/send and removes
// it from the queue; later frames are left for subsequent calls. It never
// blocks.
func (s *Server) Receive() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.inbound) == 0 {
		return nil
	}
	next := s.inbound[0]
	s.inbound = s.inbound[1:]
	return next
}
