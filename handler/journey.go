package handler

import (
	"train_station/model"
	"train_station/utils"

	"github.com/gofiber/fiber/v2"
)

func (h *Handler) GetJourneys(c *fiber.Ctx) error {
	filter := new(model.FilterJourney)
	if err := c.QueryParser(filter); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error())
	}
	journeys, sold, total, err := h.Store.ListJourneys(c.UserContext(), *filter)
	if err != nil {
		return utils.HandleError(c, err)
	}
	rows := make([]model.JourneyList, 0, len(journeys))
	for _, j := range journeys {
		rows = append(rows, j.ListShape(sold[j.ID]))
	}
	return utils.ListResponse(c, filter.Pagination, rows, total)
}

func (h *Handler) GetJourneyById(c *fiber.Ctx) error {
	journey, err := h.Store.GetJourney(c.UserContext(), idParam(c))
	if err != nil {
		return utils.HandleError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, journey.DetailShape())
}

func (h *Handler) CreateJourney(c *fiber.Ctx) error {
	journey, err := h.Store.CreateJourney(c.UserContext(), input[model.JourneyInput](c))
	if err != nil {
		return utils.HandleError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, journey.WriteShape())
}

func (h *Handler) UpdateJourney(c *fiber.Ctx) error {
	journey, err := h.Store.UpdateJourney(c.UserContext(), idParam(c), input[model.JourneyInput](c))
	if err != nil {
		return utils.HandleError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, journey.WriteShape())
}

func (h *Handler) DeleteJourney(c *fiber.Ctx) error {
	if err := h.Store.DeleteJourney(c.UserContext(), idParam(c)); err != nil {
		return utils.HandleError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
