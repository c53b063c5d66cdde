package middleware

import (
	"context"
	"errors"
	"strings"

	"train_station/apperror"
	"train_station/constants"
	"train_station/helper"
	"train_station/model"
	"train_station/policy"
	"train_station/utils"

	"github.com/gofiber/fiber/v2"
)

type UserLoader interface {
	GetUser(ctx context.Context, id uint) (*model.User, error)
}

// Protected authenticates the bearer access token (or the access_token
// cookie) and stores the active *model.User in c.Locals("user").
func Protected(tokens *helper.TokenIssuer, users UserLoader) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies("access_token")
		if auth := c.Get(fiber.HeaderAuthorization); strings.HasPrefix(auth, "Bearer ") {
			token = strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
		}
		if token == "" {
			return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.NOT_AUTHENTICATED)
		}

		claims, err := tokens.ParseToken(token, constants.TOKEN_ACCESS)
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.INVALID_TOKEN)
		}
		user, err := users.GetUser(c.UserContext(), claims.UserID)
		if errors.Is(err, apperror.ErrNotFound) || (err == nil && !user.IsActive) {
			return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.INVALID_TOKEN)
		}
		if err != nil {
			return utils.HandleError(c, err)
		}

		c.Locals("user", user)
		return c.Next()
	}
}

// Authorize asks the access policy whether the current user may use the
// request method on resource. Must run after Protected.
func Authorize(authz *policy.Authorizer, resource string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := CurrentUser(c)
		if user == nil {
			return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.NOT_AUTHENTICATED)
		}
		allowed, err := authz.Allow(c.UserContext(), policy.Request{
			Method:   c.Method(),
			Resource: resource,
			UserID:   user.ID,
			IsStaff:  user.IsStaff,
		})
		if err != nil {
			return utils.HandleError(c, err)
		}
		if !allowed {
			return utils.ErrorResponse(c, fiber.StatusForbidden, constants.PERMISSION_DENIED)
		}
		return c.Next()
	}
}

func CurrentUser(c *fiber.Ctx) *model.User {
	user, _ := c.Locals("user").(*model.User)
	return user
}

// ScopeOf is the order/ticket visibility of the current user.
func ScopeOf(c *fiber.Ctx) model.Scope {
	user := CurrentUser(c)
	if user == nil {
		return model.Scope{}
	}
	return model.Scope{UserID: user.ID, IsAdmin: user.IsStaff}
}
