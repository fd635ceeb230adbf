package usecase

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/artifact-registry/common"
	"github.com/gaze-network/artifact-registry/modules/registry/constants"
	"github.com/gaze-network/artifact-registry/modules/registry/datagateway"
	"github.com/gaze-network/artifact-registry/modules/registry/internal/entity"
	"github.com/gaze-network/uint128"
)

// Info is a snapshot of the registry configuration and counters.
type Info struct {
	Name            string
	Symbol          string
	BaseURI         string
	Controller      common.Address
	MintPrice       uint128.Uint128
	Height          uint64
	TotalMinted     uint64
	RemainingSupply uint64
	NextId          uint64
	RoyaltyPayee    common.Address
	RoyaltyBps      uint16
	Capabilities    [][4]byte
}

func (u *Usecase) GetInfo(ctx context.Context) Info {
	payee, bps := u.registry.RoyaltyRate()
	return Info{
		Name:            u.registry.Name(),
		Symbol:          u.registry.Symbol(),
		BaseURI:         u.registry.BaseURI(),
		Controller:      u.registry.Controller(),
		MintPrice:       u.registry.MintPrice(),
		Height:          u.registry.Height(),
		TotalMinted:     u.registry.TotalMinted(),
		RemainingSupply: u.registry.RemainingSupply(),
		NextId:          u.registry.NextId(),
		RoyaltyPayee:    payee,
		RoyaltyBps:      bps,
		Capabilities: [][4]byte{
			constants.CapabilityArtifact,
			constants.CapabilityMetadata,
			constants.CapabilityRoyalty,
		},
	}
}

// ArtifactDetail joins the immutable record with its live delegation state.
type ArtifactDetail struct {
	Artifact        *entity.Artifact
	ApprovedSpender common.Address
}

func (u *Usecase) GetArtifact(ctx context.Context, id uint64) (ArtifactDetail, error) {
	artifact, err := u.registry.Artifact(id)
	if err != nil {
		return ArtifactDetail{}, errors.Wrap(err, "failed to get artifact")
	}
	approved, err := u.registry.GetApproved(id)
	if err != nil {
		return ArtifactDetail{}, errors.Wrap(err, "failed to get approved spender")
	}
	return ArtifactDetail{
		Artifact:        artifact,
		ApprovedSpender: approved,
	}, nil
}

func (u *Usecase) GetArtifacts(ctx context.Context, owner common.Address, limit int32, offset int32) ([]*entity.Artifact, error) {
	artifacts, err := u.registryDg.GetArtifacts(ctx, owner, limit, offset)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list artifacts")
	}
	return artifacts, nil
}

func (u *Usecase) GetEvents(ctx context.Context, filter datagateway.EventFilter, limit int32, offset int32) ([]*entity.Event, error) {
	events, err := u.registryDg.GetEvents(ctx, filter, limit, offset)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list events")
	}
	return events, nil
}

func (u *Usecase) OwnerOf(ctx context.Context, id uint64) (common.Address, error) {
	owner, err := u.registry.OwnerOf(id)
	if err != nil {
		return common.ZeroAddress, errors.Wrap(err, "failed to get owner")
	}
	return owner, nil
}

func (u *Usecase) BalanceOf(ctx context.Context, holder common.Address) (uint64, error) {
	balance, err := u.registry.BalanceOf(holder)
	if err != nil {
		return 0, errors.Wrap(err, "failed to get balance")
	}
	return balance, nil
}

func (u *Usecase) GetApproved(ctx context.Context, id uint64) (common.Address, error) {
	spender, err := u.registry.GetApproved(id)
	if err != nil {
		return common.ZeroAddress, errors.Wrap(err, "failed to get approved spender")
	}
	return spender, nil
}

func (u *Usecase) IsApprovedForAll(ctx context.Context, holder common.Address, operator common.Address) bool {
	return u.registry.IsApprovedForAll(holder, operator)
}

func (u *Usecase) GetHoldings(ctx context.Context) map[common.Address]uint64 {
	return u.registry.Holdings()
}

func (u *Usecase) GetCooldown(ctx context.Context, caller common.Address) uint64 {
	return u.registry.CooldownBlocksRemaining(caller)
}

func (u *Usecase) SupportsCapability(ctx context.Context, id [4]byte) bool {
	return u.registry.SupportsCapability(id)
}
