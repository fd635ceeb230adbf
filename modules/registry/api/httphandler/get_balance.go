package httphandler

import (
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/artifact-registry/common"
	"github.com/gaze-network/artifact-registry/common/errs"
	"github.com/gofiber/fiber/v2"
)

type getBalanceRequest struct {
	Address string `params:"address"`
}

type getBalanceResult struct {
	Address common.Address `json:"address"`
	Balance uint64         `json:"balance"`
}

type getBalanceResponse = HttpResponse[getBalanceResult]

func (h *HttpHandler) GetBalance(ctx *fiber.Ctx) (err error) {
	var req getBalanceRequest
	if err := ctx.ParamsParser(&req); err != nil {
		return errors.WithStack(err)
	}
	address, err := parseAddress("address", req.Address)
	if err != nil {
		return errors.WithStack(err)
	}

	balance, err := h.usecase.BalanceOf(ctx.UserContext(), address)
	if err != nil {
		if errors.Is(err, errs.ZeroAddress) {
			return errs.NewPublicError("cannot query balance of the zero address")
		}
		return errors.Wrap(err, "error during BalanceOf")
	}

	resp := getBalanceResponse{
		Result: &getBalanceResult{
			Address: address,
			Balance: balance,
		},
	}
	return errors.WithStack(ctx.JSON(resp))
}
