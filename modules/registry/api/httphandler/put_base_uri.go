package httphandler

import (
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/artifact-registry/common/errs"
	"github.com/gofiber/fiber/v2"
)

type setBaseURIRequest struct {
	Caller  string `json:"caller"`
	BaseURI string `json:"baseURI"`
}

func (r setBaseURIRequest) Validate() error {
	if r.Caller == "" {
		return errs.WithPublicMessage(errors.New("'caller' is required"), "validation error")
	}
	return nil
}

type setBaseURIResult struct {
	PreviousBaseURI string `json:"previousBaseURI"`
	NewBaseURI      string `json:"newBaseURI"`
}

type setBaseURIResponse = HttpResponse[setBaseURIResult]

func (h *HttpHandler) SetBaseURI(ctx *fiber.Ctx) (err error) {
	var req setBaseURIRequest
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

	event, err := h.usecase.SetBaseURI(ctx.UserContext(), caller, req.BaseURI)
	if err != nil {
		return mapDomainError(err)
	}

	resp := setBaseURIResponse{
		Result: &setBaseURIResult{
			PreviousBaseURI: event.PreviousBaseURI,
			NewBaseURI:      event.NewBaseURI,
		},
	}
	return errors.WithStack(ctx.JSON(resp))
}
