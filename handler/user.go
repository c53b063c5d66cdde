package handler

import (
	"train_station/helper"
	"train_station/middleware"
	"train_station/model"
	"train_station/utils"

	"github.com/gofiber/fiber/v2"
)

// Register creates a regular, active user.
func (h *Handler) Register(c *fiber.Ctx) error {
	in := input[model.RegisterUserInput](c)

	hash, err := helper.HashPassword(in.Password)
	if err != nil {
		return utils.HandleError(c, err)
	}
	user := model.User{
		Email:     in.Email,
		Password:  hash,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		IsActive:  true,
	}
	if err := h.Store.CreateUser(c.UserContext(), &user); err != nil {
		return utils.HandleError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, user)
}

func (h *Handler) Me(c *fiber.Ctx) error {
	return utils.SuccessResponse(c, fiber.StatusOK, middleware.CurrentUser(c))
}

func (h *Handler) UpdateMe(c *fiber.Ctx) error {
	in := input[model.UpdateUserInput](c)

	var hash string
	if in.Password != nil {
		var err error
		if hash, err = helper.HashPassword(*in.Password); err != nil {
			return utils.HandleError(c, err)
		}
	}
	user, err := h.Store.UpdateUser(c.UserContext(), middleware.CurrentUser(c).ID, in, hash)
	if err != nil {
		return utils.HandleError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, user)
}
