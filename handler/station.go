package handler

import (
	"train_station/model"
	"train_station/utils"

	"github.com/gofiber/fiber/v2"
)

func (h *Handler) GetStations(c *fiber.Ctx) error {
	p := new(model.Pagination)
	if err := c.QueryParser(p); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error())
	}
	stations, total, err := h.Store.ListStations(c.UserContext(), *p, c.Query("name"))
	if err != nil {
		return utils.HandleError(c, err)
	}
	return utils.ListResponse(c, *p, stations, total)
}

func (h *Handler) GetStationById(c *fiber.Ctx) error {
	station, err := h.Store.GetStation(c.UserContext(), idParam(c))
	if err != nil {
		return utils.HandleError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, station)
}

func (h *Handler) CreateStation(c *fiber.Ctx) error {
	station, err := h.Store.CreateStation(c.UserContext(), input[model.StationInput](c))
	if err != nil {
		return utils.HandleError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, station)
}

func (h *Handler) UpdateStation(c *fiber.Ctx) error {
	station, err := h.Store.UpdateStation(c.UserContext(), idParam(c), input[model.StationInput](c))
	if err != nil {
		return utils.HandleError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, station)
}

func (h *Handler) DeleteStation(c *fiber.Ctx) error {
	if err := h.Store.DeleteStation(c.UserContext(), idParam(c)); err != nil {
		return utils.HandleError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
