package api

import (
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	maxMessageSize = maxProgramSize
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// The daemon binds to loopback; any origin may connect.
		return true
	},
}

// wsWriter forwards every printer line to the client as it is produced.
type wsWriter struct {
	conn *websocket.Conn
}

func (w *wsWriter) Write(p []byte) (int, error) {
	_ = w.conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := w.conn.WriteMessage(websocket.TextMessage, p); err != nil {
		return 0, err
	}
	return len(p), nil
}

// handleWebSocket runs one program per connection: the client sends the
// program text as a single message, the daemon streams machine output back
// and closes after the stop report.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade error: %v", err)
		return
	}
	defer func() {
		if err := conn.Close(); err != nil {
			log.Printf("WebSocket close error: %v", err)
		}
	}()

	conn.SetReadLimit(maxMessageSize)
	deadline := time.Duration(s.cfg.Daemon.SessionSeconds) * time.Second
	if err := conn.SetReadDeadline(time.Now().Add(deadline)); err != nil {
		log.Printf("SetReadDeadline error: %v", err)
		return
	}

	_, program, err := conn.ReadMessage()
	if err != nil {
		if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
			log.Printf("WebSocket error: %v", err)
		}
		return
	}

	if _, err := runProgram(string(program), limitsFrom(s.cfg), &wsWriter{conn: conn}); err != nil {
		log.Printf("Session ended with parse error: %v", err)
	}

	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	_ = conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}
