package utils

import (
	"errors"
	"log"

	"train_station/apperror"
	"train_station/constants"
	"train_station/model"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// ErrorResponse writes {"detail": message}.
func ErrorResponse(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"detail": message})
}

// FieldErrors writes a 400 with a field -> message map.
func FieldErrors(c *fiber.Ctx, fields map[string]string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fields)
}

func SuccessResponse(c *fiber.Ctx, status int, data any) error {
	return c.Status(status).JSON(data)
}

// HandleError maps domain errors onto their HTTP responses. Anything it does
// not recognise is logged and answered with a 500.
func HandleError(c *fiber.Ctx, err error) error {
	if ve, ok := apperror.AsValidation(err); ok {
		return FieldErrors(c, ve.Fields)
	}
	var fe *fiber.Error
	switch {
	case errors.Is(err, apperror.ErrNotFound), errors.Is(err, gorm.ErrRecordNotFound):
		return ErrorResponse(c, fiber.StatusNotFound, constants.NOT_FOUND)
	case errors.Is(err, apperror.ErrAuthentication):
		return ErrorResponse(c, fiber.StatusUnauthorized, constants.NOT_AUTHENTICATED)
	case errors.Is(err, apperror.ErrPermission):
		return ErrorResponse(c, fiber.StatusForbidden, constants.PERMISSION_DENIED)
	case errors.As(err, &fe):
		return ErrorResponse(c, fe.Code, fe.Message)
	}
	log.Printf("%s %s: %v", c.Method(), c.Path(), err)
	return ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR)
}

// ListResponse returns a bare array, or the paged envelope when the request asked for a page.
func ListResponse[T any](c *fiber.Ctx, p model.Pagination, rows []T, total int64) error {
	if rows == nil {
		rows = []T{}
	}
	if !p.Enabled() {
		return c.JSON(rows)
	}
	p = p.Normalized()
	return c.JSON(model.ResponseCustom{Rows: rows, Limit: p.Limit, Page: p.Page, TotalCount: total})
}

func ApplyPagination(query *gorm.DB, limit, page *int) *gorm.DB {
	if limit != nil && *limit > 0 && page != nil && *page >= 1 {
		query = query.Limit(*limit)
		offset := *limit * (*page - 1)
		query = query.Offset(offset)
	}

	return query
}

func Ptr[T any](v T) *T {
	return &v
}
