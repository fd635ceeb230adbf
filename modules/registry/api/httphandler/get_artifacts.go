package httphandler

import (
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/artifact-registry/common"
	"github.com/gaze-network/artifact-registry/modules/registry/internal/entity"
	"github.com/gofiber/fiber/v2"
	"github.com/samber/lo"
)

type getArtifactsRequest struct {
	paginationRequest
	Owner string `query:"owner"`
}

func (r getArtifactsRequest) Validate() error {
	return r.paginationRequest.Validate()
}

type artifactListItem struct {
	Id              uint64         `json:"id"`
	Owner           common.Address `json:"owner"`
	TraitCommitment common.Hash    `json:"traitCommitment"`
	LayerCount      uint8          `json:"layerCount"`
	IssuedAtHeight  uint64         `json:"issuedAtHeight"`
}

type getArtifactsResult struct {
	List []artifactListItem `json:"list"`
}

type getArtifactsResponse = HttpResponse[getArtifactsResult]

func (h *HttpHandler) GetArtifacts(ctx *fiber.Ctx) (err error) {
	var req getArtifactsRequest
	if err := ctx.QueryParser(&req); err != nil {
		return errors.WithStack(err)
	}
	if err := req.Validate(); err != nil {
		return errors.WithStack(err)
	}
	if err := req.ParseDefault(); err != nil {
		return errors.WithStack(err)
	}

	owner := common.ZeroAddress
	if req.Owner != "" {
		owner, err = parseAddress("owner", req.Owner)
		if err != nil {
			return errors.WithStack(err)
		}
	}

	artifacts, err := h.usecase.GetArtifacts(ctx.UserContext(), owner, req.Limit, req.Offset)
	if err != nil {
		return errors.Wrap(err, "error during GetArtifacts")
	}

	resp := getArtifactsResponse{
		Result: &getArtifactsResult{
			List: lo.Map(artifacts, func(artifact *entity.Artifact, _ int) artifactListItem {
				return artifactListItem{
					Id:              artifact.Id,
					Owner:           artifact.Owner,
					TraitCommitment: artifact.TraitCommitment,
					LayerCount:      artifact.LayerCount,
					IssuedAtHeight:  artifact.IssuedAtHeight,
				}
			}),
		},
	}
	return errors.WithStack(ctx.JSON(resp))
}
