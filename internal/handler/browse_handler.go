package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/mybrudda/MovieApp/internal/catalog"
	"github.com/mybrudda/MovieApp/internal/viewstate"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

type BrowseHandler struct {
	catalog *catalog.Client
	logger  zerolog.Logger
}

func NewBrowseHandler(c *catalog.Client, logger zerolog.Logger) *BrowseHandler {
	return &BrowseHandler{catalog: c, logger: logger}
}

type browseCommand struct {
	Action string `json:"action"`
	Query  string `json:"query"`
}

// @Summary Interactive movie browsing (WebSocket)
// @Description Streams listing state as the client pages and searches. Commands: {"action":"next"|"prev"|"reload"} or {"action":"search","query":"..."}.
// @Tags movies
// @Produce json
// @Success 200 {object} map[string]any
// @Router /ws/browse [get]
func (h *BrowseHandler) Browse(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}
	defer conn.Close()

	// Listing notifies under its own lock, so state updates go through a
	// channel and a single writer goroutine owns the connection.
	updates := make(chan viewstate.ListingState, 16)
	quit := make(chan struct{})
	done := make(chan struct{})

	listing := viewstate.NewListing(h.catalog, h.logger, func(s viewstate.ListingState) {
		select {
		case updates <- s:
		default:
			h.logger.Warn().Msg("browse update dropped, client too slow")
		}
	})

	go func() {
		defer close(done)
		for {
			select {
			case s := <-updates:
				err := conn.WriteJSON(map[string]any{
					"type":   "state",
					"query":  s.Query,
					"page":   s.Page,
					"status": s.Status.String(),
					"items":  s.Items,
					"error":  s.Err,
				})
				if err != nil {
					return
				}
			case <-quit:
				return
			}
		}
	}()

	listing.Reload(r.Context())

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			break
		}
		var cmd browseCommand
		if err := json.Unmarshal(msg, &cmd); err != nil {
			continue
		}
		switch cmd.Action {
		case "next":
			listing.NextPage(r.Context())
		case "prev":
			listing.PrevPage(r.Context())
		case "search":
			listing.SetQuery(r.Context(), cmd.Query)
		case "reload":
			listing.Reload(r.Context())
		}
	}

	close(quit)
	<-done
}
