package httphandler

import (
	"github.com/gofiber/fiber/v2"
)

func (h *HttpHandler) Mount(router fiber.Router) error {
	r := router.Group("/v1/registry")

	r.Get("/info", h.GetInfo)
	r.Get("/artifacts", h.GetArtifacts)
	r.Get("/artifacts/:id", h.GetArtifact)
	r.Get("/balances/:address", h.GetBalance)
	r.Get("/holders", h.GetHolders)
	r.Get("/cooldown/:address", h.GetCooldown)
	r.Get("/approvals/operator", h.GetOperatorApproval)
	r.Get("/royalty", h.GetRoyalty)
	r.Get("/capabilities/:id", h.GetCapability)
	r.Get("/events", h.GetEvents)

	r.Post("/mint", h.Mint)
	r.Post("/transfer", h.Transfer)
	r.Post("/approve", h.Approve)
	r.Post("/operators", h.SetOperator)
	r.Put("/royalty", h.ConfigureRoyalty)
	r.Put("/base-uri", h.SetBaseURI)
	return nil
}
