package handler

import (
	"errors"

	"train_station/apperror"
	"train_station/constants"
	"train_station/helper"
	"train_station/model"
	"train_station/utils"

	"github.com/gofiber/fiber/v2"
)

func tokenClaim(user *model.User) model.TokenClaim {
	return model.TokenClaim{UserId: user.ID, Email: user.Email, IsStaff: user.IsStaff}
}

// ObtainToken exchanges email and password for an access/refresh pair.
func (h *Handler) ObtainToken(c *fiber.Ctx) error {
	in := input[model.LoginInput](c)

	user, err := h.Store.GetUserByEmail(c.UserContext(), in.Email)
	if errors.Is(err, apperror.ErrNotFound) {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.INVALID_CREDENTIALS)
	}
	if err != nil {
		return utils.HandleError(c, err)
	}
	if !user.IsActive || !helper.CheckPasswordHash(in.Password, user.Password) {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.INVALID_CREDENTIALS)
	}

	pair, err := h.Tokens.GeneratePair(tokenClaim(user))
	if err != nil {
		return utils.HandleError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, pair)
}

// RefreshToken issues a new access token. With rotation enabled it also
// issues a new refresh token and blacklists the presented one.
func (h *Handler) RefreshToken(c *fiber.Ctx) error {
	in := input[model.RefreshInput](c)
	ctx := c.UserContext()

	claims, err := h.Tokens.ParseToken(in.Refresh, constants.TOKEN_REFRESH)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.INVALID_TOKEN)
	}
	blacklisted, err := h.Store.IsBlacklisted(ctx, claims.ID)
	if err != nil {
		return utils.HandleError(c, err)
	}
	if blacklisted {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.TOKEN_BLACKLISTED)
	}
	user, err := h.Store.GetUser(ctx, claims.UserID)
	if errors.Is(err, apperror.ErrNotFound) || (err == nil && !user.IsActive) {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.INVALID_TOKEN)
	}
	if err != nil {
		return utils.HandleError(c, err)
	}

	var data model.TokenData
	if data.AccessToken, err = h.Tokens.GenerateAccessToken(tokenClaim(user)); err != nil {
		return utils.HandleError(c, err)
	}
	if h.Settings.RotateRefreshToken {
		if data.RefreshToken, err = h.Tokens.GenerateRefreshToken(tokenClaim(user)); err != nil {
			return utils.HandleError(c, err)
		}
		if err := h.Store.BlacklistToken(ctx, claims.ID, user.ID, claims.ExpiresAt.Time); err != nil {
			return utils.HandleError(c, err)
		}
	}
	return utils.SuccessResponse(c, fiber.StatusOK, data)
}

// VerifyToken answers 200 {} for a valid, non-blacklisted token of either kind.
func (h *Handler) VerifyToken(c *fiber.Ctx) error {
	in := input[model.VerifyInput](c)

	claims, err := h.Tokens.ParseToken(in.Token, "")
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.INVALID_TOKEN)
	}
	if claims.TokenType == constants.TOKEN_REFRESH {
		blacklisted, err := h.Store.IsBlacklisted(c.UserContext(), claims.ID)
		if err != nil {
			return utils.HandleError(c, err)
		}
		if blacklisted {
			return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.TOKEN_BLACKLISTED)
		}
	}
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{})
}
