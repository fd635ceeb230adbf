package httphandler

import (
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/artifact-registry/common"
	"github.com/gaze-network/artifact-registry/common/errs"
	"github.com/gofiber/fiber/v2"
)

type approveRequest struct {
	Caller  string `json:"caller"`
	Id      uint64 `json:"id"`
	Spender string `json:"spender"`
}

func (r approveRequest) Validate() error {
	var errList []error
	if r.Caller == "" {
		errList = append(errList, errors.New("'caller' is required"))
	}
	if r.Id == 0 {
		errList = append(errList, errors.New("'id' must be a positive integer"))
	}
	if r.Spender == "" {
		errList = append(errList, errors.New("'spender' is required"))
	}
	return errs.WithPublicMessage(errors.Join(errList...), "validation error")
}

type approveResult struct {
	Id      uint64         `json:"id"`
	Holder  common.Address `json:"holder"`
	Spender common.Address `json:"spender"`
}

type approveResponse = HttpResponse[approveResult]

func (h *HttpHandler) Approve(ctx *fiber.Ctx) (err error) {
	var req approveRequest
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
	// the zero spender clears an existing approval
	spender, err := parseAddress("spender", req.Spender)
	if err != nil {
		return errors.WithStack(err)
	}

	event, err := h.usecase.Approve(ctx.UserContext(), caller, req.Id, spender)
	if err != nil {
		return mapDomainError(err)
	}

	resp := approveResponse{
		Result: &approveResult{
			Id:      event.ArtifactId,
			Holder:  event.Holder,
			Spender: event.Spender,
		},
	}
	return errors.WithStack(ctx.JSON(resp))
}
