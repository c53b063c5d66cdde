package handler

import (
	"train_station/model"
	"train_station/utils"

	"github.com/gofiber/fiber/v2"
)

func (h *Handler) GetTrainTypes(c *fiber.Ctx) error {
	p := new(model.Pagination)
	if err := c.QueryParser(p); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error())
	}
	types, total, err := h.Store.ListTrainTypes(c.UserContext(), *p)
	if err != nil {
		return utils.HandleError(c, err)
	}
	return utils.ListResponse(c, *p, types, total)
}

func (h *Handler) GetTrainTypeById(c *fiber.Ctx) error {
	trainType, err := h.Store.GetTrainType(c.UserContext(), idParam(c))
	if err != nil {
		return utils.HandleError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, trainType)
}

func (h *Handler) CreateTrainType(c *fiber.Ctx) error {
	trainType, err := h.Store.CreateTrainType(c.UserContext(), input[model.TrainTypeInput](c))
	if err != nil {
		return utils.HandleError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, trainType)
}

func (h *Handler) UpdateTrainType(c *fiber.Ctx) error {
	trainType, err := h.Store.UpdateTrainType(c.UserContext(), idParam(c), input[model.TrainTypeInput](c))
	if err != nil {
		return utils.HandleError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, trainType)
}

func (h *Handler) DeleteTrainType(c *fiber.Ctx) error {
	if err := h.Store.DeleteTrainType(c.UserContext(), idParam(c)); err != nil {
		return utils.HandleError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
