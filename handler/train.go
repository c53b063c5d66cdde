package handler

import (
	"io"
	"strings"

	"train_station/apperror"
	"train_station/constants"
	"train_station/helper"
	"train_station/model"
	"train_station/utils"

	"github.com/gofiber/fiber/v2"
)

func (h *Handler) GetTrains(c *fiber.Ctx) error {
	p := new(model.Pagination)
	if err := c.QueryParser(p); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error())
	}
	trains, total, err := h.Store.ListTrains(c.UserContext(), *p)
	if err != nil {
		return utils.HandleError(c, err)
	}
	rows := make([]model.TrainList, 0, len(trains))
	for _, t := range trains {
		rows = append(rows, t.ListShape())
	}
	return utils.ListResponse(c, *p, rows, total)
}

func (h *Handler) GetTrainById(c *fiber.Ctx) error {
	train, err := h.Store.GetTrain(c.UserContext(), idParam(c))
	if err != nil {
		return utils.HandleError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, train.DetailShape())
}

func (h *Handler) CreateTrain(c *fiber.Ctx) error {
	in := input[model.TrainInput](c)
	image, err := h.trainImage(c, *in.Name)
	if err != nil {
		return utils.HandleError(c, err)
	}
	train, err := h.Store.CreateTrain(c.UserContext(), in, image)
	if err != nil {
		return utils.HandleError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, train.WriteShape())
}

func (h *Handler) UpdateTrain(c *fiber.Ctx) error {
	in := input[model.TrainInput](c)
	current, err := h.Store.GetTrain(c.UserContext(), idParam(c))
	if err != nil {
		return utils.HandleError(c, err)
	}
	name := current.Name
	if in.Name != nil {
		name = *in.Name
	}
	image, err := h.trainImage(c, name)
	if err != nil {
		return utils.HandleError(c, err)
	}
	train, err := h.Store.UpdateTrain(c.UserContext(), current.ID, in, image)
	if err != nil {
		return utils.HandleError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, train.WriteShape())
}

func (h *Handler) DeleteTrain(c *fiber.Ctx) error {
	if err := h.Store.DeleteTrain(c.UserContext(), idParam(c)); err != nil {
		return utils.HandleError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// trainImage stores the multipart "image" file, if one was sent, and returns its URL.
func (h *Handler) trainImage(c *fiber.Ctx, name string) (*string, error) {
	if !strings.HasPrefix(string(c.Request().Header.ContentType()), fiber.MIMEMultipartForm) {
		return nil, nil
	}
	file, err := c.FormFile("image")
	if err != nil {
		if c.FormValue("image") != "" {
			return nil, apperror.Field("image", constants.NOT_A_FILE)
		}
		return nil, nil
	}

	f, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}
	if _, ok := helper.DetectImage(data); !ok {
		return nil, apperror.Field("image", constants.INVALID_IMAGE)
	}

	url, err := h.Images.Save(c.UserContext(), name, data)
	if err != nil {
		return nil, err
	}
	return &url, nil
}
