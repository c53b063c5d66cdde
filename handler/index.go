package handler

import (
	"train_station/config"
	"train_station/helper"
	"train_station/policy"
	"train_station/repository"

	"github.com/gofiber/fiber/v2"
)

// Handler carries the dependencies every endpoint needs.
type Handler struct {
	Store    *repository.Store
	Tokens   *helper.TokenIssuer
	Authz    *policy.Authorizer
	Images   helper.ImageStore
	Events   helper.SeatEvents
	Mailer   helper.Mailer
	Settings config.Settings
}

func input[T any](c *fiber.Ctx) *T {
	return c.Locals("input").(*T)
}

func idParam(c *fiber.Ctx) uint {
	return c.Locals("id").(uint)
}

func Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}
