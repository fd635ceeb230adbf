package httphandler

import (
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/artifact-registry/common"
	"github.com/gaze-network/artifact-registry/modules/registry/datagateway"
	"github.com/gaze-network/artifact-registry/modules/registry/internal/entity"
	"github.com/gaze-network/uint128"
	"github.com/gofiber/fiber/v2"
	"github.com/samber/lo"
)

type getEventsRequest struct {
	paginationRequest
	Type       string `query:"type"`
	ArtifactId uint64 `query:"artifactId"`
	Address    string `query:"address"`
	FromHeight uint64 `query:"fromHeight"`
	ToHeight   uint64 `query:"toHeight"`
}

func (r getEventsRequest) Validate() error {
	return r.paginationRequest.Validate()
}

// eventResult is the public journal fact. Fields are populated per event type.
type eventResult struct {
	Sequence  uint64    `json:"sequence"`
	Type      string    `json:"type"`
	Height    uint64    `json:"height"`
	Timestamp time.Time `json:"timestamp"`

	From            *common.Address  `json:"from,omitempty"`
	To              *common.Address  `json:"to,omitempty"`
	ArtifactId      *uint64          `json:"artifactId,omitempty"`
	TraitCommitment *common.Hash     `json:"traitCommitment,omitempty"`
	LayerCount      *uint8           `json:"layerCount,omitempty"`
	Payment         *uint128.Uint128 `json:"payment,omitempty"`
	Holder          *common.Address  `json:"holder,omitempty"`
	Spender         *common.Address  `json:"spender,omitempty"`
	Operator        *common.Address  `json:"operator,omitempty"`
	Approved        *bool            `json:"approved,omitempty"`
	RoyaltyPayee    *common.Address  `json:"royaltyPayee,omitempty"`
	RoyaltyBps      *uint16          `json:"royaltyBps,omitempty"`
	PreviousBaseURI *string          `json:"previousBaseURI,omitempty"`
	NewBaseURI      *string          `json:"newBaseURI,omitempty"`
}

type getEventsResult struct {
	List []eventResult `json:"list"`
}

type getEventsResponse = HttpResponse[getEventsResult]

func (h *HttpHandler) GetEvents(ctx *fiber.Ctx) (err error) {
	var req getEventsRequest
	if err := ctx.QueryParser(&req); err != nil {
		return errors.WithStack(err)
	}
	if err := req.Validate(); err != nil {
		return errors.WithStack(err)
	}
	if err := req.ParseDefault(); err != nil {
		return errors.WithStack(err)
	}

	filter := datagateway.EventFilter{
		Type:       entity.EventType(req.Type),
		ArtifactId: req.ArtifactId,
		FromHeight: req.FromHeight,
		ToHeight:   req.ToHeight,
	}
	if req.Address != "" {
		filter.Address, err = parseAddress("address", req.Address)
		if err != nil {
			return errors.WithStack(err)
		}
	}

	events, err := h.usecase.GetEvents(ctx.UserContext(), filter, req.Limit, req.Offset)
	if err != nil {
		return errors.Wrap(err, "error during GetEvents")
	}

	resp := getEventsResponse{
		Result: &getEventsResult{
			List: lo.Map(events, func(event *entity.Event, _ int) eventResult {
				return mapEventToResult(event)
			}),
		},
	}
	return errors.WithStack(ctx.JSON(resp))
}

func mapEventToResult(event *entity.Event) eventResult {
	result := eventResult{
		Sequence:  event.Sequence,
		Type:      string(event.Type),
		Height:    event.Height,
		Timestamp: event.Timestamp,
	}
	switch event.Type {
	case entity.EventTypeTransfer:
		result.From = lo.ToPtr(event.From)
		result.To = lo.ToPtr(event.To)
		result.ArtifactId = lo.ToPtr(event.ArtifactId)
	case entity.EventTypeIssued:
		result.To = lo.ToPtr(event.To)
		result.ArtifactId = lo.ToPtr(event.ArtifactId)
		result.TraitCommitment = lo.ToPtr(event.TraitCommitment)
		result.LayerCount = lo.ToPtr(event.LayerCount)
		result.Payment = lo.ToPtr(event.Payment)
	case entity.EventTypeApproval:
		result.Holder = lo.ToPtr(event.Holder)
		result.Spender = lo.ToPtr(event.Spender)
		result.ArtifactId = lo.ToPtr(event.ArtifactId)
	case entity.EventTypeOperatorApproval:
		result.Holder = lo.ToPtr(event.Holder)
		result.Operator = lo.ToPtr(event.Operator)
		result.Approved = lo.ToPtr(event.Approved)
	case entity.EventTypeRoyaltyConfigured:
		result.RoyaltyPayee = lo.ToPtr(event.RoyaltyPayee)
		result.RoyaltyBps = lo.ToPtr(event.RoyaltyBps)
	case entity.EventTypeBaseURIChanged:
		result.PreviousBaseURI = lo.ToPtr(event.PreviousBaseURI)
		result.NewBaseURI = lo.ToPtr(event.NewBaseURI)
	}
	return result
}
