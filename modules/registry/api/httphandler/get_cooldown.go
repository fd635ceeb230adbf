package httphandler

import (
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/artifact-registry/common"
	"github.com/gofiber/fiber/v2"
)

type getCooldownRequest struct {
	Address string `params:"address"`
}

type getCooldownResult struct {
	Address         common.Address `json:"address"`
	Height          uint64         `json:"height"`
	BlocksRemaining uint64         `json:"blocksRemaining"`
}

type getCooldownResponse = HttpResponse[getCooldownResult]

func (h *HttpHandler) GetCooldown(ctx *fiber.Ctx) (err error) {
	var req getCooldownRequest
	if err := ctx.ParamsParser(&req); err != nil {
		return errors.WithStack(err)
	}
	address, err := parseAddress("address", req.Address)
	if err != nil {
		return errors.WithStack(err)
	}

	info := h.usecase.GetInfo(ctx.UserContext())
	remaining := h.usecase.GetCooldown(ctx.UserContext(), address)

	resp := getCooldownResponse{
		Result: &getCooldownResult{
			Address:         address,
			Height:          info.Height,
			BlocksRemaining: remaining,
		},
	}
	return errors.WithStack(ctx.JSON(resp))
}
