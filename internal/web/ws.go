package web

import (
	"errors"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/Zachkp/showcase/internal/session"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// slideEvent is pushed to the browser on every index change.
type slideEvent struct {
	Index int       `json:"index"`
	Cause string    `json:"cause"`
	At    time.Time `json:"at"`
}

// clientCommand is what the browser may send back: an indicator click or
// hover state.
type clientCommand struct {
	Select *int  `json:"select,omitempty"`
	Hover  *bool `json:"hover,omitempty"`
}

// stream keeps a websocket open for one mount. The socket's lifetime is
// the mount's lifetime: when it closes, the carousel is unmounted.
func (s *Server) stream(c *gin.Context) {
	id := c.Param("id")
	m, err := s.hub.Get(id)
	if err != nil {
		s.fail(c, err)
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("Websocket upgrade failed for %s: %v", id, err)
		return
	}
	defer conn.Close()

	changes, cancel := m.Subscribe(16)
	defer cancel()
	defer func() {
		if err := s.hub.Unmount(id, session.ReasonClient); err != nil && !errors.Is(err, session.ErrMountNotFound) {
			log.Printf("Error unmounting %s: %v", id, err)
		}
	}()

	done := make(chan struct{})
	go s.readCommands(conn, id, done)

	info := m.Info()
	conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := conn.WriteJSON(slideEvent{Index: info.Index, Cause: "mount", At: info.CreatedAt}); err != nil {
		return
	}

	ping := time.NewTicker(pingPeriod)
	defer ping.Stop()

	for {
		select {
		case <-done:
			return
		case change, ok := <-changes:
			if !ok {
				conn.SetWriteDeadline(time.Now().Add(writeWait))
				conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, "unmounted"))
				return
			}
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(slideEvent{Index: change.Index, Cause: change.Cause.String(), At: change.At}); err != nil {
				return
			}
		case <-ping.C:
			// Keep the mount from expiring while the socket is healthy.
			if _, err := s.hub.Get(id); err != nil {
				return
			}
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (s *Server) readCommands(conn *websocket.Conn, id string, done chan<- struct{}) {
	defer close(done)

	conn.SetReadLimit(512)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		var cmd clientCommand
		if err := conn.ReadJSON(&cmd); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("Websocket for %s closed: %v", id, err)
			}
			return
		}

		m, err := s.hub.Get(id)
		if err != nil {
			return
		}
		if cmd.Select != nil {
			if _, err := s.hub.Select(id, *cmd.Select); err != nil {
				log.Printf("Ignoring select from %s: %v", id, err)
			}
		}
		if cmd.Hover != nil {
			if *cmd.Hover {
				m.Controller.Pause()
			} else {
				m.Controller.Resume()
			}
		}
	}
}
