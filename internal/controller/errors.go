package controller

import (
	"errors"

	"mdt-records-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// httpError maps service sentinels to status codes; anything else is a 500.
func httpError(err error) error {
	switch {
	case errors.Is(err, service.ErrRecordNotFound), errors.Is(err, service.ErrUnknownKind):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	default:
		return err
	}
}

func paramID(ctx *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}
	return id, nil
}
