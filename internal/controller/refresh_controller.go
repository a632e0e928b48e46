package controller

import (
	"strings"

	"mdt-records-be/internal/dto"
	"mdt-records-be/internal/pkg/serverutils"
	"mdt-records-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IRefreshController interface {
	RegisterRoutes(r fiber.Router, auth fiber.Handler)
	Publish(ctx *fiber.Ctx) error
}

type refreshController struct {
	service service.IRefreshService
}

func NewRefreshController(service service.IRefreshService) IRefreshController {
	return &refreshController{service: service}
}

func (c *refreshController) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	h := r.Group("/refresh")
	h.Use(auth)
	h.Post("/:event", c.Publish)
}

// Publish fires an invalidation by hand, for operators and external tools.
func (c *refreshController) Publish(ctx *fiber.Ctx) error {
	event := strings.TrimSpace(ctx.Params("event"))
	if event == "" || len(event) > 64 {
		return fiber.NewError(fiber.StatusBadRequest, "invalid event name")
	}

	n := c.service.Notify(ctx.UserContext(), event)
	return ctx.JSON(serverutils.SuccessResponse("Event published", dto.RefreshResponse{
		Event:       event,
		Subscribers: n,
		Relayed:     c.service.RelayName() != "",
	}))
}

func splitEvents(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
