package server

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"qwikko-assistant/internal/types"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Cross-origin policy is enforced by the CORS middleware on the HTTP
	// side; the socket accepts any origin the browser lets through.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// frame is the wire envelope for socket traffic in both directions.
type frame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

type outFrame struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

// socketConn serializes writes; replies may be produced concurrently with
// pings or other emits on the same connection.
type socketConn struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (c *socketConn) emit(event string, data any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(outFrame{Event: event, Data: data})
}

// handleSocket speaks the event protocol: "saveToken" stores a backend token
// for the session, "sendMessage" runs one chat turn and answers with a
// "receiveMessage" frame carrying the reply.
func (s *Server) handleSocket(w http.ResponseWriter, r *http.Request) {
	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[socket] upgrade: %v", err)
		return
	}
	defer ws.Close()

	conn := &socketConn{conn: ws}
	ctx := r.Context()

	for {
		var f frame
		if err := ws.ReadJSON(&f); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("[socket] read: %v", err)
			}
			return
		}

		switch f.Event {
		case "saveToken":
			var req types.SaveTokenRequest
			if err := json.Unmarshal(f.Data, &req); err != nil || req.UserID == "" || req.Token == "" {
				conn.emit("error", types.ErrorResponse{Error: "saveToken needs userId and token"})
				continue
			}
			s.saveToken(ctx, req.UserID, req.Token)

		case "sendMessage":
			var req types.ChatRequest
			if err := json.Unmarshal(f.Data, &req); err != nil {
				conn.emit("error", types.ErrorResponse{Error: "invalid sendMessage payload"})
				continue
			}
			reply := s.chat(ctx, req)
			if err := conn.emit("receiveMessage", reply); err != nil {
				log.Printf("[socket] emit: %v", err)
				return
			}

		default:
			conn.emit("error", types.ErrorResponse{Error: "unknown event: " + f.Event})
		}
	}
}
