package controller

import (
	"mdt-records-be/internal/dto"
	"mdt-records-be/internal/pkg/serverutils"
	"mdt-records-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IRecordController interface {
	RegisterRoutes(r fiber.Router, auth fiber.Handler)
	ListArrests(ctx *fiber.Ctx) error
	CreateArrest(ctx *fiber.Ctx) error
	UpdateArrest(ctx *fiber.Ctx) error
	ListWanted(ctx *fiber.Ctx) error
	CreateWanted(ctx *fiber.Ctx) error
	UpdateWanted(ctx *fiber.Ctx) error
	DeleteWanted(ctx *fiber.Ctx) error
	UpdateCitizen(ctx *fiber.Ctx) error
}

type recordController struct {
	service service.IRecordService
}

func NewRecordController(service service.IRecordService) IRecordController {
	return &recordController{service: service}
}

func (c *recordController) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	arrests := r.Group("/arrests")
	arrests.Use(auth)
	arrests.Get("", c.ListArrests)
	arrests.Post("", c.CreateArrest)
	arrests.Patch("/:id", c.UpdateArrest)

	wanted := r.Group("/wanted")
	wanted.Use(auth)
	wanted.Get("", c.ListWanted)
	wanted.Post("", c.CreateWanted)
	wanted.Patch("/:id", c.UpdateWanted)
	wanted.Delete("/:id", c.DeleteWanted)

	citizens := r.Group("/citizens")
	citizens.Use(auth)
	citizens.Patch("/:id", c.UpdateCitizen)
}

func (c *recordController) ListArrests(ctx *fiber.Ctx) error {
	res, err := c.service.ListArrests(ctx.UserContext(), ctx.QueryInt("limit", 0))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success list arrests", res))
}

func (c *recordController) CreateArrest(ctx *fiber.Ctx) error {
	var req dto.CreateArrestRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.CreateArrest(ctx.UserContext(), &req)
	if err != nil {
		return httpError(err)
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success create arrest", res))
}

func (c *recordController) UpdateArrest(ctx *fiber.Ctx) error {
	id, err := paramID(ctx)
	if err != nil {
		return err
	}
	var req dto.UpdateArrestRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	req.Id = id
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.UpdateArrest(ctx.UserContext(), &req)
	if err != nil {
		return httpError(err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success update arrest", res))
}

func (c *recordController) ListWanted(ctx *fiber.Ctx) error {
	res, err := c.service.ListWanted(ctx.UserContext(), ctx.QueryInt("limit", 0))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success list wanted", res))
}

func (c *recordController) CreateWanted(ctx *fiber.Ctx) error {
	var req dto.CreateWantedRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.CreateWanted(ctx.UserContext(), &req)
	if err != nil {
		return httpError(err)
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success create wanted entry", res))
}

func (c *recordController) UpdateWanted(ctx *fiber.Ctx) error {
	id, err := paramID(ctx)
	if err != nil {
		return err
	}
	var req dto.UpdateWantedRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	req.Id = id
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.UpdateWanted(ctx.UserContext(), &req)
	if err != nil {
		return httpError(err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success update wanted entry", res))
}

// DeleteWanted takes its optional event list from ?events=a,b since DELETE
// bodies are unreliable through proxies.
func (c *recordController) DeleteWanted(ctx *fiber.Ctx) error {
	id, err := paramID(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.DeleteWanted(ctx.UserContext(), id, splitEvents(ctx.Query("events")))
	if err != nil {
		return httpError(err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success delete wanted entry", res))
}

func (c *recordController) UpdateCitizen(ctx *fiber.Ctx) error {
	id, err := paramID(ctx)
	if err != nil {
		return err
	}
	var req dto.UpdateCitizenRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	req.Id = id
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.UpdateCitizen(ctx.UserContext(), &req)
	if err != nil {
		return httpError(err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success update citizen", res))
}
