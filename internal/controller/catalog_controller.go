package controller

import (
	"workshop-wizard-be/internal/pkg/serverutils"
	"workshop-wizard-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

// ICatalogController serves packages and industry templates. Both are public.
type ICatalogController interface {
	RegisterRoutes(r fiber.Router)
	GetPackages(ctx *fiber.Ctx) error
	GetTemplates(ctx *fiber.Ctx) error
	GetTemplate(ctx *fiber.Ctx) error
}

type catalogController struct {
	service service.ICatalogService
}

func NewCatalogController(service service.ICatalogService) ICatalogController {
	return &catalogController{service: service}
}

func (c *catalogController) RegisterRoutes(r fiber.Router) {
	r.Get("/packages", c.GetPackages)
	r.Get("/templates", c.GetTemplates)
	r.Get("/templates/:id", c.GetTemplate)
}

func (c *catalogController) GetPackages(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("Success get packages", c.service.GetPackages()))
}

func (c *catalogController) GetTemplates(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("Success get templates", c.service.GetTemplates()))
}

func (c *catalogController) GetTemplate(ctx *fiber.Ctx) error {
	res, err := c.service.GetTemplate(ctx.Params("id"))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get template", res))
}
