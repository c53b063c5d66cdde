package handler

import (
	"train_station/model"
	"train_station/utils"

	"github.com/gofiber/fiber/v2"
)

func (h *Handler) GetCrews(c *fiber.Ctx) error {
	filter := new(model.FilterCrew)
	if err := c.QueryParser(filter); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error())
	}
	crews, total, err := h.Store.ListCrews(c.UserContext(), *filter)
	if err != nil {
		return utils.HandleError(c, err)
	}
	return utils.ListResponse(c, filter.Pagination, crews, total)
}

func (h *Handler) GetCrewById(c *fiber.Ctx) error {
	crew, err := h.Store.GetCrew(c.UserContext(), idParam(c))
	if err != nil {
		return utils.HandleError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, crew)
}

func (h *Handler) CreateCrew(c *fiber.Ctx) error {
	crew, err := h.Store.CreateCrew(c.UserContext(), input[model.CrewInput](c))
	if err != nil {
		return utils.HandleError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, crew)
}

func (h *Handler) UpdateCrew(c *fiber.Ctx) error {
	crew, err := h.Store.UpdateCrew(c.UserContext(), idParam(c), input[model.CrewInput](c))
	if err != nil {
		return utils.HandleError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, crew)
}

func (h *Handler) DeleteCrew(c *fiber.Ctx) error {
	if err := h.Store.DeleteCrew(c.UserContext(), idParam(c)); err != nil {
		return utils.HandleError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
