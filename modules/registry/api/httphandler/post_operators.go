package httphandler

import (
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/artifact-registry/common"
	"github.com/gaze-network/artifact-registry/common/errs"
	"github.com/gofiber/fiber/v2"
)

type setOperatorRequest struct {
	Caller   string `json:"caller"`
	Operator string `json:"operator"`
	Approved bool   `json:"approved"`
}

func (r setOperatorRequest) Validate() error {
	var errList []error
	if r.Caller == "" {
		errList = append(errList, errors.New("'caller' is required"))
	}
	if r.Operator == "" {
		errList = append(errList, errors.New("'operator' is required"))
	}
	return errs.WithPublicMessage(errors.Join(errList...), "validation error")
}

type setOperatorResult struct {
	Holder   common.Address `json:"holder"`
	Operator common.Address `json:"operator"`
	Approved bool           `json:"approved"`
}

type setOperatorResponse = HttpResponse[setOperatorResult]

func (h *HttpHandler) SetOperator(ctx *fiber.Ctx) (err error) {
	var req setOperatorRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errs.NewPublicError("unable to parse request body")
	}
	if err := req.Validate(); err != nil {
		return errors.WithStack(err)
	}

	caller, err := parseAddress("caller", req.Caller)
	if err != nil {
		return errors.WithStack(err)
	}
	operator, err := parseAddress("operator", req.Operator)
	if err != nil {
		return errors.WithStack(err)
	}

	event, err := h.usecase.SetApprovalForAll(ctx.UserContext(), caller, operator, req.Approved)
	if err != nil {
		return mapDomainError(err)
	}

	resp := setOperatorResponse{
		Result: &setOperatorResult{
			Holder:   event.Holder,
			Operator: event.Operator,
			Approved: event.Approved,
		},
	}
	return errors.WithStack(ctx.JSON(resp))
}
