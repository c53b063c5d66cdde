package handler

import (
	"train_station/model"
	"train_station/utils"

	"github.com/gofiber/fiber/v2"
)

func (h *Handler) GetRoutes(c *fiber.Ctx) error {
	filter := new(model.FilterRoute)
	if err := c.QueryParser(filter); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error())
	}
	routes, total, err := h.Store.ListRoutes(c.UserContext(), *filter)
	if err != nil {
		return utils.HandleError(c, err)
	}
	rows := make([]model.RouteList, 0, len(routes))
	for _, r := range routes {
		rows = append(rows, r.ListShape())
	}
	return utils.ListResponse(c, filter.Pagination, rows, total)
}

func (h *Handler) GetRouteById(c *fiber.Ctx) error {
	route, err := h.Store.GetRoute(c.UserContext(), idParam(c))
	if err != nil {
		return utils.HandleError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, route.DetailShape())
}

func (h *Handler) CreateRoute(c *fiber.Ctx) error {
	route, err := h.Store.CreateRoute(c.UserContext(), input[model.RouteInput](c))
	if err != nil {
		return utils.HandleError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, route.WriteShape())
}

func (h *Handler) UpdateRoute(c *fiber.Ctx) error {
	route, err := h.Store.UpdateRoute(c.UserContext(), idParam(c), input[model.RouteInput](c))
	if err != nil {
		return utils.HandleError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, route.WriteShape())
}

func (h *Handler) DeleteRoute(c *fiber.Ctx) error {
	if err := h.Store.DeleteRoute(c.UserContext(), idParam(c)); err != nil {
		return utils.HandleError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
