package controller

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"ai-finance-assistant-be/internal/dto"
	"ai-finance-assistant-be/internal/pkg/serverutils"
	"ai-finance-assistant-be/internal/service"
)

type IAdvisorController interface {
	RegisterRoutes(r fiber.Router)
	CreateSession(ctx *fiber.Ctx) error
	Chat(ctx *fiber.Ctx) error
	History(ctx *fiber.Ctx) error
	Summary(ctx *fiber.Ctx) error
	UpdatePortfolio(ctx *fiber.Ctx) error
	SetGoal(ctx *fiber.Ctx) error
	ClearSession(ctx *fiber.Ctx) error
}

type advisorController struct {
	advisorService service.IAdvisorService
}

func NewAdvisorController(advisorService service.IAdvisorService) IAdvisorController {
	return &advisorController{
		advisorService: advisorService,
	}
}

func (c *advisorController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/advisor/v1")
	h.Post("chat", c.Chat)
	h.Post("session/:user_id", c.CreateSession)
	h.Get("session/:user_id/history", c.History)
	h.Get("session/:user_id/summary", c.Summary)
	h.Put("session/:user_id/portfolio", c.UpdatePortfolio)
	h.Post("session/:user_id/goals", c.SetGoal)
	h.Delete("session/:user_id", c.ClearSession)
}

func (c *advisorController) CreateSession(ctx *fiber.Ctx) error {
	userId := ctx.Params("user_id")

	res, err := c.advisorService.CreateSession(ctx.Context(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success create session", res))
}

func (c *advisorController) Chat(ctx *fiber.Ctx) error {
	var req dto.ChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.advisorService.Chat(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success process chat", res))
}

func (c *advisorController) History(ctx *fiber.Ctx) error {
	userId := ctx.Params("user_id")
	limit, _ := strconv.Atoi(ctx.Query("limit", "0"))

	res, err := c.advisorService.GetHistory(ctx.Context(), userId, limit)
	if err != nil {
		return mapSessionError(err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get history", res))
}

func (c *advisorController) Summary(ctx *fiber.Ctx) error {
	userId := ctx.Params("user_id")

	res, err := c.advisorService.GetSessionSummary(ctx.Context(), userId)
	if err != nil {
		return mapSessionError(err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get session summary", res))
}

func (c *advisorController) UpdatePortfolio(ctx *fiber.Ctx) error {
	userId := ctx.Params("user_id")

	var req dto.UpdatePortfolioRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.advisorService.UpdatePortfolio(ctx.Context(), userId, &req); err != nil {
		return mapSessionError(err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Success update portfolio", nil))
}

func (c *advisorController) SetGoal(ctx *fiber.Ctx) error {
	userId := ctx.Params("user_id")

	var req dto.SetGoalRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.advisorService.SetGoal(ctx.Context(), userId, &req); err != nil {
		return mapSessionError(err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Success add goal", nil))
}

func (c *advisorController) ClearSession(ctx *fiber.Ctx) error {
	userId := ctx.Params("user_id")

	if err := c.advisorService.ClearSession(ctx.Context(), userId); err != nil {
		return mapSessionError(err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Success clear session", nil))
}

func mapSessionError(err error) error {
	if errors.Is(err, service.ErrSessionNotFound) {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}
	return err
}
