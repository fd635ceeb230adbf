package httphandler

import (
	"encoding/hex"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/artifact-registry/common/errs"
	"github.com/gofiber/fiber/v2"
)

type getCapabilityRequest struct {
	Id string `params:"id"`
}

type getCapabilityResult struct {
	Id        string `json:"id"`
	Supported bool   `json:"supported"`
}

type getCapabilityResponse = HttpResponse[getCapabilityResult]

func (h *HttpHandler) GetCapability(ctx *fiber.Ctx) (err error) {
	var req getCapabilityRequest
	if err := ctx.ParamsParser(&req); err != nil {
		return errors.WithStack(err)
	}
	raw, err := hex.DecodeString(strings.TrimPrefix(strings.ToLower(req.Id), "0x"))
	if err != nil || len(raw) != 4 {
		return errs.NewPublicError("'id' must be a 4-byte hex capability identifier")
	}
	var id [4]byte
	copy(id[:], raw)

	supported := h.usecase.SupportsCapability(ctx.UserContext(), id)

	resp := getCapabilityResponse{
		Result: &getCapabilityResult{
			Id:        "0x" + hex.EncodeToString(id[:]),
			Supported: supported,
		},
	}
	return errors.WithStack(ctx.JSON(resp))
}
