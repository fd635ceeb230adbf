package httphandler

import (
	"slices"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/artifact-registry/common"
	"github.com/gofiber/fiber/v2"
)

type holderBalance struct {
	Address common.Address `json:"address"`
	Balance uint64         `json:"balance"`
	Percent float64        `json:"percent"`
}

type getHoldersResult struct {
	TotalMinted uint64          `json:"totalMinted"`
	List        []holderBalance `json:"list"`
}

type getHoldersResponse = HttpResponse[getHoldersResult]

func (h *HttpHandler) GetHolders(ctx *fiber.Ctx) (err error) {
	holdings := h.usecase.GetHoldings(ctx.UserContext())
	info := h.usecase.GetInfo(ctx.UserContext())

	list := make([]holderBalance, 0, len(holdings))
	for address, balance := range holdings {
		percent := float64(0)
		if info.TotalMinted > 0 {
			percent = float64(balance) / float64(info.TotalMinted)
		}
		list = append(list, holderBalance{
			Address: address,
			Balance: balance,
			Percent: percent,
		})
	}

	// sort by balance descending, then address ascending
	slices.SortFunc(list, func(h1, h2 holderBalance) int {
		if h1.Balance == h2.Balance {
			return strings.Compare(h1.Address.String(), h2.Address.String())
		}
		return int(h2.Balance) - int(h1.Balance)
	})

	resp := getHoldersResponse{
		Result: &getHoldersResult{
			TotalMinted: info.TotalMinted,
			List:        list,
		},
	}
	return errors.WithStack(ctx.JSON(resp))
}
