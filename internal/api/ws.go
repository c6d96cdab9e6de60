package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// StreamRunEvents streams a run's event log over WebSocket: one JSON event
// per message, closing once the run has settled and everything was sent.
func (s *Server) StreamRunEvents(w http.ResponseWriter, r *http.Request) {
	run := s.Runs.Get(chi.URLParam(r, "id"))
	if run == nil {
		http.Error(w, "run not found", http.StatusNotFound)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	offset := 0
	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()

	for range ticker.C {
		events := run.EventsSince(offset)
		for _, ev := range events {
			if err := conn.WriteJSON(ev); err != nil {
				return
			}
			offset++
		}
		// If the run settled and we've sent everything, close
		if run.Finished() && len(events) == 0 {
			conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, "finished"))
			return
		}
	}
}
