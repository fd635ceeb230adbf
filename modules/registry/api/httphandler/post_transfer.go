package httphandler

import (
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/artifact-registry/common"
	"github.com/gaze-network/artifact-registry/common/errs"
	"github.com/gofiber/fiber/v2"
)

type transferRequest struct {
	Caller string `json:"caller"`
	From   string `json:"from"`
	To     string `json:"to"`
	Id     uint64 `json:"id"`
	Safe   bool   `json:"safe"`
}

func (r transferRequest) Validate() error {
	var errList []error
	if r.Caller == "" {
		errList = append(errList, errors.New("'caller' is required"))
	}
	if r.From == "" {
		errList = append(errList, errors.New("'from' is required"))
	}
	if r.To == "" {
		errList = append(errList, errors.New("'to' is required"))
	}
	if r.Id == 0 {
		errList = append(errList, errors.New("'id' must be a positive integer"))
	}
	return errs.WithPublicMessage(errors.Join(errList...), "validation error")
}

type transferResult struct {
	Id     uint64         `json:"id"`
	From   common.Address `json:"from"`
	To     common.Address `json:"to"`
	Height uint64         `json:"height"`
}

type transferResponse = HttpResponse[transferResult]

func (h *HttpHandler) Transfer(ctx *fiber.Ctx) (err error) {
	var req transferRequest
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
	from, err := parseAddress("from", req.From)
	if err != nil {
		return errors.WithStack(err)
	}
	to, err := parseAddress("to", req.To)
	if err != nil {
		return errors.WithStack(err)
	}

	transfer := h.usecase.Transfer
	if req.Safe {
		transfer = h.usecase.SafeTransfer
	}
	event, err := transfer(ctx.UserContext(), caller, from, to, req.Id)
	if err != nil {
		return mapDomainError(err)
	}

	resp := transferResponse{
		Result: &transferResult{
			Id:     event.ArtifactId,
			From:   event.From,
			To:     event.To,
			Height: event.Height,
		},
	}
	return errors.WithStack(ctx.JSON(resp))
}
