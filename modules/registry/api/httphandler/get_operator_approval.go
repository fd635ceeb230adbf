package httphandler

import (
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/artifact-registry/common"
	"github.com/gofiber/fiber/v2"
)

type getOperatorApprovalRequest struct {
	Holder   string `query:"holder"`
	Operator string `query:"operator"`
}

type getOperatorApprovalResult struct {
	Holder   common.Address `json:"holder"`
	Operator common.Address `json:"operator"`
	Approved bool           `json:"approved"`
}

type getOperatorApprovalResponse = HttpResponse[getOperatorApprovalResult]

func (h *HttpHandler) GetOperatorApproval(ctx *fiber.Ctx) (err error) {
	var req getOperatorApprovalRequest
	if err := ctx.QueryParser(&req); err != nil {
		return errors.WithStack(err)
	}
	holder, err := parseAddress("holder", req.Holder)
	if err != nil {
		return errors.WithStack(err)
	}
	operator, err := parseAddress("operator", req.Operator)
	if err != nil {
		return errors.WithStack(err)
	}

	approved := h.usecase.IsApprovedForAll(ctx.UserContext(), holder, operator)

	resp := getOperatorApprovalResponse{
		Result: &getOperatorApprovalResult{
			Holder:   holder,
			Operator: operator,
			Approved: approved,
		},
	}
	return errors.WithStack(ctx.JSON(resp))
}
