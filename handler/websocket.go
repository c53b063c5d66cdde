package handler

import (
	"context"
	"log"
	"strconv"

	"train_station/constants"
	"train_station/utils"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

// UpgradeSeatFeed rejects plain HTTP requests to the live seat feed.
func UpgradeSeatFeed(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return utils.ErrorResponse(c, fiber.StatusUpgradeRequired, "Websocket upgrade required.")
	}
	return c.Next()
}

// SeatFeed sends the current seat map, then every seat event of the journey
// until the client disconnects.
func (h *Handler) SeatFeed(conn *websocket.Conn) {
	defer conn.Close()

	id64, err := strconv.ParseUint(conn.Params("id"), 10, 64)
	if err != nil {
		conn.WriteJSON(fiber.Map{"detail": constants.NOT_FOUND})
		return
	}
	journeyID := uint(id64)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	seats, err := h.Store.JourneySeats(ctx, journeyID)
	if err != nil {
		conn.WriteJSON(fiber.Map{"detail": constants.NOT_FOUND})
		return
	}
	if err := conn.WriteJSON(seats); err != nil {
		return
	}

	events, unsubscribe, err := h.Events.Subscribe(ctx, journeyID)
	if err != nil {
		log.Printf("seat feed journey=%d subscribe: %v", journeyID, err)
		return
	}
	defer unsubscribe()

	// reads only detect the close frame
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case payload, ok := <-events:
			if !ok {
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		}
	}
}
