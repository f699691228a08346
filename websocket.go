package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	"nhooyr.io/websocket"
)

const websocketWriteTimeout = 5 * time.Second

// createWebsocketHandler streams viewer events to the client as JSON text
// messages until either side goes away
func createWebsocketHandler(viewer *Viewer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			InsecureSkipVerify: true,
		})
		if err != nil {
			http.Error(w, fmt.Sprintf("websocket upgrade failed: %s", err), http.StatusInternalServerError)
			return
		}
		defer c.Close(websocket.StatusInternalError, "unexpected close")

		unsub, ch := viewer.Subscribe()
		defer unsub()
		log.Debug().Int("clients", viewer.Subscribers()).Msg("Websocket client connected")

		// We never expect messages from the client; this just notices when it leaves
		ctx := c.CloseRead(r.Context())

		for {
			select {
			case <-ctx.Done():
				return

			case msg, ok := <-ch:
				if !ok {
					c.Close(websocket.StatusGoingAway, "viewer closed")
					return
				}

				js, err := json.Marshal(msg)
				if err != nil {
					log.Err(err).Msg("Failed to marshal event payload for websocket")
					continue
				}

				if err := writeTimeout(ctx, websocketWriteTimeout, c, js); err != nil {
					log.Debug().Err(err).Msg("Websocket write failed")
					return
				}
			}
		}
	}
}

func writeTimeout(ctx context.Context, timeout time.Duration, c *websocket.Conn, msg []byte) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	return c.Write(ctx, websocket.MessageText, msg)
}
