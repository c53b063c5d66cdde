package handler

import (
	"context"
	"log"

	"train_station/helper"
	"train_station/middleware"
	"train_station/model"
	"train_station/utils"

	"github.com/gofiber/fiber/v2"
)

func (h *Handler) GetOrders(c *fiber.Ctx) error {
	p := new(model.Pagination)
	if err := c.QueryParser(p); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error())
	}
	orders, counts, total, err := h.Store.ListOrders(c.UserContext(), middleware.ScopeOf(c), *p)
	if err != nil {
		return utils.HandleError(c, err)
	}
	rows := make([]model.OrderList, 0, len(orders))
	for _, o := range orders {
		rows = append(rows, o.ListShape(counts[o.ID]))
	}
	return utils.ListResponse(c, *p, rows, total)
}

func (h *Handler) GetOrderById(c *fiber.Ctx) error {
	order, tickets, err := h.Store.GetOrder(c.UserContext(), middleware.ScopeOf(c), idParam(c))
	if err != nil {
		return utils.HandleError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, order.DetailShape(tickets))
}

// CreateOrder stores the order and its tickets in one transaction, then
// announces the taken seats and mails a confirmation.
func (h *Handler) CreateOrder(c *fiber.Ctx) error {
	ctx := c.UserContext()
	order, tickets, err := h.Store.CreateOrder(ctx, middleware.ScopeOf(c), input[model.OrderInput](c))
	if err != nil {
		return utils.HandleError(c, err)
	}
	for _, t := range tickets {
		h.Events.Publish(ctx, helper.SeatEvent{Journey: t.JourneyID, Action: helper.SeatTaken, Cargo: t.Cargo, Seat: t.Seat})
	}
	if len(tickets) > 0 && h.Mailer.Enabled() {
		h.sendConfirmation(ctx, order.ID)
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, order.WriteShape(tickets))
}

func (h *Handler) sendConfirmation(ctx context.Context, orderID uint) {
	order, tickets, err := h.Store.GetOrder(ctx, model.AdminScope(), orderID)
	if err != nil {
		log.Printf("order %d confirmation: %v", orderID, err)
		return
	}
	data := helper.OrderConfirmation{OrderID: order.ID, CreatedAt: order.CreatedAt}
	for _, t := range tickets {
		data.Tickets = append(data.Tickets, helper.TicketLine{
			ID:            t.ID,
			Route:         t.Journey.Route.String(),
			Train:         t.Journey.Train.Name,
			DepartureTime: t.Journey.DepartureTime,
			Cargo:         t.Cargo,
			Seat:          t.Seat,
		})
	}
	h.Mailer.SendOrderConfirmation(order.User.Email, data)
}

func (h *Handler) UpdateOrder(c *fiber.Ctx) error {
	order, err := h.Store.UpdateOrder(c.UserContext(), middleware.ScopeOf(c), idParam(c), input[model.OrderInput](c))
	if err != nil {
		return utils.HandleError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, order.WriteShape(nil))
}

func (h *Handler) DeleteOrder(c *fiber.Ctx) error {
	ctx := c.UserContext()
	journeys, err := h.Store.DeleteOrder(ctx, middleware.ScopeOf(c), idParam(c))
	if err != nil {
		return utils.HandleError(c, err)
	}
	for _, j := range journeys {
		h.Events.Publish(ctx, helper.SeatEvent{Journey: j, Action: helper.SeatReleased})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
