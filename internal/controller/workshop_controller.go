package controller

import (
	"fmt"
	"strconv"

	"workshop-wizard-be/internal/dto"
	"workshop-wizard-be/internal/pkg/serverutils"
	"workshop-wizard-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IWorkshopController interface {
	RegisterRoutes(r fiber.Router, jwtMiddleware fiber.Handler)
	GetAll(ctx *fiber.Ctx) error
	Create(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	Dispatch(ctx *fiber.Ctx) error
	Reset(ctx *fiber.Ctx) error
	ApplyTemplate(ctx *fiber.Ctx) error
	Analysis(ctx *fiber.Ctx) error
	Export(ctx *fiber.Ctx) error
	ExportCSV(ctx *fiber.Ctx) error
	Import(ctx *fiber.Ctx) error
}

type workshopController struct {
	service service.IWorkshopService
}

func NewWorkshopController(service service.IWorkshopService) IWorkshopController {
	return &workshopController{service: service}
}

func (c *workshopController) RegisterRoutes(r fiber.Router, jwtMiddleware fiber.Handler) {
	h := r.Group("/workshops", jwtMiddleware)
	h.Get("", c.GetAll)
	h.Post("", c.Create)
	h.Get("/:id", c.Show)
	h.Put("/:id", c.Update)
	h.Delete("/:id", c.Delete)

	h.Post("/:id/actions", c.Dispatch)
	h.Post("/:id/reset", c.Reset)
	h.Post("/:id/template", c.ApplyTemplate)

	h.Get("/:id/analysis", c.Analysis)
	h.Get("/:id/export.csv", c.ExportCSV)
	h.Get("/:id/export", c.Export)
	h.Post("/:id/import", c.Import)
}

func (c *workshopController) GetAll(ctx *fiber.Ctx) error {
	userId, err := userID(ctx)
	if err != nil {
		return err
	}

	query := dto.ListWorkshopsQuery{Query: ctx.Query("q")}
	if raw := ctx.Query("completed"); raw != "" {
		completed, err := strconv.ParseBool(raw)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "completed must be true or false")
		}
		query.Completed = &completed
	}

	res, err := c.service.GetAll(ctx.UserContext(), userId, query)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get all workshop", res))
}

func (c *workshopController) Create(ctx *fiber.Ctx) error {
	userId, err := userID(ctx)
	if err != nil {
		return err
	}

	var req dto.CreateWorkshopRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Create(ctx.UserContext(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success create workshop", res))
}

func (c *workshopController) Show(ctx *fiber.Ctx) error {
	userId, err := userID(ctx)
	if err != nil {
		return err
	}
	id, err := paramID(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.Show(ctx.UserContext(), userId, id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show workshop", res))
}

func (c *workshopController) Update(ctx *fiber.Ctx) error {
	userId, err := userID(ctx)
	if err != nil {
		return err
	}
	id, err := paramID(ctx)
	if err != nil {
		return err
	}

	var req dto.UpdateWorkshopRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Update(ctx.UserContext(), userId, id, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success update workshop", res))
}

func (c *workshopController) Delete(ctx *fiber.Ctx) error {
	userId, err := userID(ctx)
	if err != nil {
		return err
	}
	id, err := paramID(ctx)
	if err != nil {
		return err
	}

	if err := c.service.Delete(ctx.UserContext(), userId, id); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete workshop", nil))
}

// Dispatch applies one wizard action to the live session.
func (c *workshopController) Dispatch(ctx *fiber.Ctx) error {
	userId, err := userID(ctx)
	if err != nil {
		return err
	}
	id, err := paramID(ctx)
	if err != nil {
		return err
	}

	var req dto.ActionRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Dispatch(ctx.UserContext(), userId, id, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Action applied", res))
}

func (c *workshopController) Reset(ctx *fiber.Ctx) error {
	userId, err := userID(ctx)
	if err != nil {
		return err
	}
	id, err := paramID(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.Reset(ctx.UserContext(), userId, id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Workshop reset", res))
}

func (c *workshopController) ApplyTemplate(ctx *fiber.Ctx) error {
	userId, err := userID(ctx)
	if err != nil {
		return err
	}
	id, err := paramID(ctx)
	if err != nil {
		return err
	}

	var req dto.ApplyTemplateRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.ApplyTemplate(ctx.UserContext(), userId, id, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Template applied", res))
}

func (c *workshopController) Analysis(ctx *fiber.Ctx) error {
	userId, err := userID(ctx)
	if err != nil {
		return err
	}
	id, err := paramID(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.Analysis(ctx.UserContext(), userId, id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get analysis", res))
}

// Export downloads the versioned envelope as a JSON file. The body is the bare
// envelope so it can be imported again unchanged.
func (c *workshopController) Export(ctx *fiber.Ctx) error {
	userId, err := userID(ctx)
	if err != nil {
		return err
	}
	id, err := paramID(ctx)
	if err != nil {
		return err
	}

	env, err := c.service.Export(ctx.UserContext(), userId, id)
	if err != nil {
		return err
	}

	ctx.Attachment(fmt.Sprintf("workshop-%s.json", id))
	return ctx.JSON(env)
}

func (c *workshopController) ExportCSV(ctx *fiber.Ctx) error {
	userId, err := userID(ctx)
	if err != nil {
		return err
	}
	id, err := paramID(ctx)
	if err != nil {
		return err
	}

	out, err := c.service.ExportCSV(ctx.UserContext(), userId, id)
	if err != nil {
		return err
	}

	ctx.Attachment(fmt.Sprintf("workshop-%s-processes.csv", id))
	ctx.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	return ctx.Send(out)
}

// Import replaces the session with an uploaded envelope (or bare document).
func (c *workshopController) Import(ctx *fiber.Ctx) error {
	userId, err := userID(ctx)
	if err != nil {
		return err
	}
	id, err := paramID(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.Import(ctx.UserContext(), userId, id, ctx.Body())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Workshop imported", res))
}
