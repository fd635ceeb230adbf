package httphandler

import (
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/artifact-registry/common"
	"github.com/gaze-network/artifact-registry/common/errs"
	"github.com/gaze-network/artifact-registry/modules/registry/constants"
	"github.com/gofiber/fiber/v2"
)

type configureRoyaltyRequest struct {
	Caller      string `json:"caller"`
	Payee       string `json:"payee"`
	BasisPoints uint16 `json:"basisPoints"`
}

func (r configureRoyaltyRequest) Validate() error {
	var errList []error
	if r.Caller == "" {
		errList = append(errList, errors.New("'caller' is required"))
	}
	if r.Payee == "" {
		errList = append(errList, errors.New("'payee' is required"))
	}
	if r.BasisPoints > constants.MaxRoyaltyBps {
		errList = append(errList, errors.Errorf("'basisPoints' cannot exceed %d", constants.MaxRoyaltyBps))
	}
	return errs.WithPublicMessage(errors.Join(errList...), "validation error")
}

type configureRoyaltyResult struct {
	Payee       common.Address `json:"payee"`
	BasisPoints uint16         `json:"basisPoints"`
}

type configureRoyaltyResponse = HttpResponse[configureRoyaltyResult]

func (h *HttpHandler) ConfigureRoyalty(ctx *fiber.Ctx) (err error) {
	var req configureRoyaltyRequest
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
	payee, err := parseAddress("payee", req.Payee)
	if err != nil {
		return errors.WithStack(err)
	}

	event, err := h.usecase.ConfigureRoyalty(ctx.UserContext(), caller, payee, req.BasisPoints)
	if err != nil {
		return mapDomainError(err)
	}

	resp := configureRoyaltyResponse{
		Result: &configureRoyaltyResult{
			Payee:       event.RoyaltyPayee,
			BasisPoints: event.RoyaltyBps,
		},
	}
	return errors.WithStack(ctx.JSON(resp))
}
