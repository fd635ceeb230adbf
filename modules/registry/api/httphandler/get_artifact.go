package httphandler

import (
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/artifact-registry/common"
	"github.com/gaze-network/artifact-registry/common/errs"
	"github.com/gofiber/fiber/v2"
)

type getArtifactRequest struct {
	Id uint64 `params:"id"`
}

func (r getArtifactRequest) Validate() error {
	if r.Id == 0 {
		return errs.NewPublicError("'id' must be a positive integer")
	}
	return nil
}

type artifactResult struct {
	Id              uint64         `json:"id"`
	Owner           common.Address `json:"owner"`
	ApprovedSpender common.Address `json:"approvedSpender"`
	TraitCommitment common.Hash    `json:"traitCommitment"`
	LayerCount      uint8          `json:"layerCount"`
	IssuedAtHeight  uint64         `json:"issuedAtHeight"`
	IssuedAt        time.Time      `json:"issuedAt"`
}

type getArtifactResponse = HttpResponse[artifactResult]

func (h *HttpHandler) GetArtifact(ctx *fiber.Ctx) (err error) {
	var req getArtifactRequest
	if err := ctx.ParamsParser(&req); err != nil {
		return errs.NewPublicError("unable to parse 'id' from path")
	}
	if err := req.Validate(); err != nil {
		return errors.WithStack(err)
	}

	detail, err := h.usecase.GetArtifact(ctx.UserContext(), req.Id)
	if err != nil {
		if errors.Is(err, errs.InvalidToken) || errors.Is(err, errs.NotFound) {
			return errs.NewPublicError("artifact not found")
		}
		return errors.Wrap(err, "error during GetArtifact")
	}

	resp := getArtifactResponse{
		Result: &artifactResult{
			Id:              detail.Artifact.Id,
			Owner:           detail.Artifact.Owner,
			ApprovedSpender: detail.ApprovedSpender,
			TraitCommitment: detail.Artifact.TraitCommitment,
			LayerCount:      detail.Artifact.LayerCount,
			IssuedAtHeight:  detail.Artifact.IssuedAtHeight,
			IssuedAt:        detail.Artifact.IssuedAt,
		},
	}
	return errors.WithStack(ctx.JSON(resp))
}
