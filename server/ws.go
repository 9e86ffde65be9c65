package server

import (
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The relay serves its own page; cross-origin toasts are harmless.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// handleNotifications streams dispatcher lifecycle events to a page over a
// websocket. Each connected page gets its own subscription; closing the
// socket detaches it.
func (s *Server) handleNotifications(c echo.Context) error {
	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	events := s.dispatcher.Subscribe()
	defer s.dispatcher.Unsubscribe(events)

	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if err := conn.WriteJSON(ev); err != nil {
				s.logger.Debug().Err(err).Msg("notification stream closed")
				return nil
			}
		case <-closed:
			return nil
		case <-c.Request().Context().Done():
			return nil
		}
	}
}
