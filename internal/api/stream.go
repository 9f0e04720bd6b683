package api

import (
	"net/http"

	"github.com/GeneralAntilles/Conto/internal/center"
	"github.com/GeneralAntilles/Conto/internal/types"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// StreamMessage is one frame of the record stream
type StreamMessage struct {
	Type   string               `json:"type"` // "record", "result", "error"
	Record *types.ContactRecord `json:"record,omitempty"`
	Result *center.Result       `json:"result,omitempty"`
	Error  string               `json:"error,omitempty"`
}

// wsSink forwards each terminal record to the websocket as it is emitted
type wsSink struct {
	conn *websocket.Conn
}

func (s *wsSink) Record(rec types.ContactRecord) error {
	return s.conn.WriteJSON(StreamMessage{Type: "record", Record: &rec})
}

// streamHandler upgrades the connection, reads one SimulationRequest frame,
// and streams terminal contact records as the run executes, finishing with
// the aggregate result.
func (s *Server) streamHandler(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to upgrade connection")
		return
	}
	defer conn.Close()

	var req SimulationRequest
	if err := conn.ReadJSON(&req); err != nil {
		s.logger.Debug().Err(err).Msg("invalid stream request frame")
		conn.WriteJSON(StreamMessage{Type: "error", Error: "invalid request frame"})
		return
	}

	cfg := req.apply(*s.cfg)

	c, err := center.FromConfig(cfg, s.logger, &wsSink{conn: conn})
	if err != nil {
		conn.WriteJSON(StreamMessage{Type: "error", Error: err.Error()})
		return
	}

	result, err := c.Run()
	if err != nil {
		s.logger.Error().Err(err).Str("run_id", c.RunID()).Msg("streamed simulation run failed")
		conn.WriteJSON(StreamMessage{Type: "error", Error: "simulation run failed"})
		return
	}

	if err := conn.WriteJSON(StreamMessage{Type: "result", Result: result}); err != nil {
		s.logger.Debug().Err(err).Msg("failed to write final result frame")
		return
	}

	conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}
