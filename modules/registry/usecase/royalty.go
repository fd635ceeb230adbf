package usecase

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/artifact-registry/common"
	"github.com/gaze-network/artifact-registry/modules/registry/internal/entity"
	"github.com/gaze-network/uint128"
)

func (u *Usecase) ConfigureRoyalty(ctx context.Context, caller common.Address, payee common.Address, basisPoints uint16) (*entity.Event, error) {
	event, err := u.registry.ConfigureRoyalty(caller, payee, basisPoints)
	if err != nil {
		return nil, errors.Wrap(err, "royalty configuration rejected")
	}
	if err := u.journal(ctx, []*entity.Event{event}, nil); err != nil {
		return nil, errors.WithStack(err)
	}
	return event, nil
}

func (u *Usecase) RoyaltyInfo(ctx context.Context, salePrice uint128.Uint128) (common.Address, uint128.Uint128, error) {
	payee, amount, err := u.registry.RoyaltyInfo(salePrice)
	if err != nil {
		return common.ZeroAddress, uint128.Zero, errors.Wrap(err, "failed to compute royalty")
	}
	return payee, amount, nil
}

func (u *Usecase) SetBaseURI(ctx context.Context, caller common.Address, newURI string) (*entity.Event, error) {
	event, err := u.registry.SetBaseURI(caller, newURI)
	if err != nil {
		return nil, errors.Wrap(err, "base URI change rejected")
	}
	if err := u.journal(ctx, []*entity.Event{event}, nil); err != nil {
		return nil, errors.WithStack(err)
	}
	return event, nil
}
