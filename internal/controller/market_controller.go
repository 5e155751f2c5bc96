package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"ai-finance-assistant-be/internal/pkg/serverutils"
	"ai-finance-assistant-be/internal/service"
	"ai-finance-assistant-be/pkg/market"
)

type IMarketController interface {
	RegisterRoutes(r fiber.Router)
	Quote(ctx *fiber.Ctx) error
	Trends(ctx *fiber.Ctx) error
}

type marketController struct {
	marketService service.IMarketService
}

func NewMarketController(marketService service.IMarketService) IMarketController {
	return &marketController{
		marketService: marketService,
	}
}

func (c *marketController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/market/v1")
	h.Get("quote/:symbol", c.Quote)
	h.Get("trends", c.Trends)
}

func (c *marketController) Quote(ctx *fiber.Ctx) error {
	symbol := ctx.Params("symbol")

	res, err := c.marketService.GetQuote(ctx.Context(), symbol)
	if err != nil {
		if errors.Is(err, market.ErrQuoteNotFound) {
			return fiber.NewError(fiber.StatusNotFound, err.Error())
		}
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get quote", res))
}

func (c *marketController) Trends(ctx *fiber.Ctx) error {
	res, err := c.marketService.GetTrends(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get market trends", res))
}
