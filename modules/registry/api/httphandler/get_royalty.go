package httphandler

import (
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/artifact-registry/common"
	"github.com/gaze-network/artifact-registry/common/errs"
	"github.com/gaze-network/uint128"
	"github.com/gofiber/fiber/v2"
)

type getRoyaltyRequest struct {
	SalePrice string `query:"salePrice"`
}

type getRoyaltyResult struct {
	Payee  common.Address  `json:"payee"`
	Amount uint128.Uint128 `json:"amount"`
}

type getRoyaltyResponse = HttpResponse[getRoyaltyResult]

func (h *HttpHandler) GetRoyalty(ctx *fiber.Ctx) (err error) {
	var req getRoyaltyRequest
	if err := ctx.QueryParser(&req); err != nil {
		return errors.WithStack(err)
	}
	if req.SalePrice == "" {
		return errs.NewPublicError("'salePrice' is required")
	}
	salePrice, err := uint128.FromString(req.SalePrice)
	if err != nil {
		return errs.NewPublicError("unable to parse 'salePrice' as unsigned integer")
	}

	payee, amount, err := h.usecase.RoyaltyInfo(ctx.UserContext(), salePrice)
	if err != nil {
		return mapDomainError(err)
	}

	resp := getRoyaltyResponse{
		Result: &getRoyaltyResult{
			Payee:  payee,
			Amount: amount,
		},
	}
	return errors.WithStack(ctx.JSON(resp))
}
