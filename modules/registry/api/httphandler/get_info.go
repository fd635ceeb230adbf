package httphandler

import (
	"encoding/hex"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/artifact-registry/common"
	"github.com/gaze-network/uint128"
	"github.com/gofiber/fiber/v2"
)

type royaltyPolicy struct {
	Payee       common.Address `json:"payee"`
	BasisPoints uint16         `json:"basisPoints"`
}

type getInfoResult struct {
	Name            string          `json:"name"`
	Symbol          string          `json:"symbol"`
	BaseURI         string          `json:"baseURI"`
	Controller      common.Address  `json:"controller"`
	MintPrice       uint128.Uint128 `json:"mintPrice"`
	Height          uint64          `json:"height"`
	TotalMinted     uint64          `json:"totalMinted"`
	RemainingSupply uint64          `json:"remainingSupply"`
	NextId          uint64          `json:"nextId"`
	Royalty         *royaltyPolicy  `json:"royalty,omitempty"`
	Capabilities    []string        `json:"capabilities"`
}

type getInfoResponse = HttpResponse[getInfoResult]

func (h *HttpHandler) GetInfo(ctx *fiber.Ctx) (err error) {
	info := h.usecase.GetInfo(ctx.UserContext())

	capabilities := make([]string, 0, len(info.Capabilities))
	for _, id := range info.Capabilities {
		capabilities = append(capabilities, "0x"+hex.EncodeToString(id[:]))
	}
	var royalty *royaltyPolicy
	if !info.RoyaltyPayee.IsZero() {
		royalty = &royaltyPolicy{
			Payee:       info.RoyaltyPayee,
			BasisPoints: info.RoyaltyBps,
		}
	}

	resp := getInfoResponse{
		Result: &getInfoResult{
			Name:            info.Name,
			Symbol:          info.Symbol,
			BaseURI:         info.BaseURI,
			Controller:      info.Controller,
			MintPrice:       info.MintPrice,
			Height:          info.Height,
			TotalMinted:     info.TotalMinted,
			RemainingSupply: info.RemainingSupply,
			NextId:          info.NextId,
			Royalty:         royalty,
			Capabilities:    capabilities,
		},
	}
	return errors.WithStack(ctx.JSON(resp))
}
