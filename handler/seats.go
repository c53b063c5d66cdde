package handler

import (
	"train_station/utils"

	"github.com/gofiber/fiber/v2"
)

// GetJourneySeats reports capacity and sold places of a journey.
func (h *Handler) GetJourneySeats(c *fiber.Ctx) error {
	seats, err := h.Store.JourneySeats(c.UserContext(), idParam(c))
	if err != nil {
		return utils.HandleError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, seats)
}
