package controller

import (
	"mdt-records-be/internal/pkg/serverutils"
	"mdt-records-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ILookupController interface {
	RegisterRoutes(r fiber.Router, auth fiber.Handler)
	Lookup(ctx *fiber.Ctx) error
}

type lookupController struct {
	service service.ILookupService
}

func NewLookupController(service service.ILookupService) ILookupController {
	return &lookupController{service: service}
}

func (c *lookupController) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	h := r.Group("/lookup")
	h.Use(auth)
	h.Get("/:kind", c.Lookup)
}

// Lookup answers one keystroke search. Short queries return an empty list.
func (c *lookupController) Lookup(ctx *fiber.Ctx) error {
	res, err := c.service.Lookup(ctx.UserContext(), ctx.Params("kind"), ctx.Query("query"), ctx.QueryInt("limit", 0))
	if err != nil {
		return httpError(err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success lookup", res))
}
