package handler

import (
	"train_station/helper"
	"train_station/middleware"
	"train_station/model"
	"train_station/utils"

	"github.com/gofiber/fiber/v2"
)

func (h *Handler) GetTickets(c *fiber.Ctx) error {
	filter := new(model.FilterTicket)
	if err := c.QueryParser(filter); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error())
	}
	tickets, total, err := h.Store.ListTickets(c.UserContext(), middleware.ScopeOf(c), *filter)
	if err != nil {
		return utils.HandleError(c, err)
	}
	rows := make([]model.TicketList, 0, len(tickets))
	for _, t := range tickets {
		rows = append(rows, t.ListShape())
	}
	return utils.ListResponse(c, filter.Pagination, rows, total)
}

func (h *Handler) GetTicketById(c *fiber.Ctx) error {
	ticket, err := h.Store.GetTicket(c.UserContext(), middleware.ScopeOf(c), idParam(c))
	if err != nil {
		return utils.HandleError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, ticket.DetailShape())
}

func (h *Handler) CreateTicket(c *fiber.Ctx) error {
	ctx := c.UserContext()
	ticket, err := h.Store.CreateTicket(ctx, middleware.ScopeOf(c), input[model.TicketInput](c))
	if err != nil {
		return utils.HandleError(c, err)
	}
	h.Events.Publish(ctx, seatEvent(ticket, helper.SeatTaken))
	return utils.SuccessResponse(c, fiber.StatusCreated, ticket.WriteShape())
}

func (h *Handler) UpdateTicket(c *fiber.Ctx) error {
	ctx := c.UserContext()
	scope := middleware.ScopeOf(c)
	before, err := h.Store.GetTicket(ctx, scope, idParam(c))
	if err != nil {
		return utils.HandleError(c, err)
	}
	ticket, err := h.Store.UpdateTicket(ctx, scope, before.ID, input[model.TicketInput](c))
	if err != nil {
		return utils.HandleError(c, err)
	}
	if before.JourneyID != ticket.JourneyID || before.Seat != ticket.Seat || before.Cargo != ticket.Cargo {
		h.Events.Publish(ctx, seatEvent(before, helper.SeatReleased))
		h.Events.Publish(ctx, seatEvent(ticket, helper.SeatTaken))
	}
	return utils.SuccessResponse(c, fiber.StatusOK, ticket.WriteShape())
}

func (h *Handler) DeleteTicket(c *fiber.Ctx) error {
	ctx := c.UserContext()
	ticket, err := h.Store.DeleteTicket(ctx, middleware.ScopeOf(c), idParam(c))
	if err != nil {
		return utils.HandleError(c, err)
	}
	h.Events.Publish(ctx, seatEvent(ticket, helper.SeatReleased))
	return c.SendStatus(fiber.StatusNoContent)
}

func seatEvent(t *model.Ticket, action string) helper.SeatEvent {
	return helper.SeatEvent{Journey: t.JourneyID, Action: action, Cargo: t.Cargo, Seat: t.Seat}
}
