package httphandler

import (
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/artifact-registry/common"
	"github.com/gaze-network/artifact-registry/common/errs"
	"github.com/gaze-network/artifact-registry/modules/registry/constants"
	"github.com/gaze-network/uint128"
	"github.com/gofiber/fiber/v2"
)

type mintRequest struct {
	Caller          string `json:"caller"`
	To              string `json:"to"`
	Payment         string `json:"payment"`
	TraitCommitment string `json:"traitCommitment"`
	LayerCount      uint8  `json:"layerCount"`
}

func (r mintRequest) Validate() error {
	var errList []error
	if r.Caller == "" {
		errList = append(errList, errors.New("'caller' is required"))
	}
	if r.To == "" {
		errList = append(errList, errors.New("'to' is required"))
	}
	if r.Payment == "" {
		errList = append(errList, errors.New("'payment' is required"))
	}
	if r.TraitCommitment == "" {
		errList = append(errList, errors.New("'traitCommitment' is required"))
	}
	if r.LayerCount > constants.MaxLayers {
		errList = append(errList, errors.Errorf("'layerCount' cannot exceed %d", constants.MaxLayers))
	}
	return errs.WithPublicMessage(errors.Join(errList...), "validation error")
}

type mintResult struct {
	Id              uint64         `json:"id"`
	Owner           common.Address `json:"owner"`
	TraitCommitment common.Hash    `json:"traitCommitment"`
	LayerCount      uint8          `json:"layerCount"`
	IssuedAtHeight  uint64         `json:"issuedAtHeight"`
	IssuedAt        time.Time      `json:"issuedAt"`
}

type mintResponse = HttpResponse[mintResult]

func (h *HttpHandler) Mint(ctx *fiber.Ctx) (err error) {
	var req mintRequest
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
	to, err := parseAddress("to", req.To)
	if err != nil {
		return errors.WithStack(err)
	}
	payment, err := uint128.FromString(req.Payment)
	if err != nil {
		return errs.NewPublicError("unable to parse 'payment' as unsigned integer")
	}
	traitCommitment, err := parseHash("traitCommitment", req.TraitCommitment)
	if err != nil {
		return errors.WithStack(err)
	}

	artifact, err := h.usecase.Mint(ctx.UserContext(), caller, payment, to, traitCommitment, req.LayerCount)
	if err != nil {
		return mapDomainError(err)
	}

	resp := mintResponse{
		Result: &mintResult{
			Id:              artifact.Id,
			Owner:           artifact.Owner,
			TraitCommitment: artifact.TraitCommitment,
			LayerCount:      artifact.LayerCount,
			IssuedAtHeight:  artifact.IssuedAtHeight,
			IssuedAt:        artifact.IssuedAt,
		},
	}
	return errors.WithStack(ctx.Status(fiber.StatusCreated).JSON(resp))
}
