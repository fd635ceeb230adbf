package registry

import (
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/artifact-registry/common"
	"github.com/gaze-network/artifact-registry/common/errs"
	"github.com/gaze-network/artifact-registry/modules/registry/constants"
	"github.com/gaze-network/artifact-registry/modules/registry/internal/entity"
	"github.com/gaze-network/uint128"
)

// ConfigureRoyalty overwrites the royalty payee and basis-point rate.
// Controller-only; basisPoints is capped at constants.MaxRoyaltyBps.
func (r *Registry) ConfigureRoyalty(caller common.Address, payee common.Address, basisPoints uint16) (*entity.Event, error) {
	release, err := r.enter()
	if err != nil {
		return nil, err
	}
	defer release()

	r.mu.Lock()
	defer r.mu.Unlock()

	if caller != r.controller {
		return nil, errors.Wrapf(errs.NotController, "caller %s", caller)
	}
	if basisPoints > constants.MaxRoyaltyBps {
		return nil, errors.Wrapf(errs.RoyaltyBpsTooHigh, "max is %d, got %d", constants.MaxRoyaltyBps, basisPoints)
	}

	r.royaltyPayee = payee
	r.royaltyBps = basisPoints

	event := r.newEvent(entity.EventTypeRoyaltyConfigured, caller)
	event.RoyaltyPayee = payee
	event.RoyaltyBps = basisPoints
	return event, nil
}

// RoyaltyRate returns the current royalty payee and basis-point rate.
func (r *Registry) RoyaltyRate() (common.Address, uint16) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.royaltyPayee, r.royaltyBps
}

// RoyaltyInfo returns the royalty payee and amount due for a sale at
// salePrice. The amount rounds down: salePrice * basisPoints / 10000.
func (r *Registry) RoyaltyInfo(salePrice uint128.Uint128) (common.Address, uint128.Uint128, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	amount, overflow := salePrice.MulOverflow(uint128.From64(uint64(r.royaltyBps)))
	if overflow {
		return common.Address{}, uint128.Zero, errors.Wrapf(errs.InvalidArgument, "sale price %s overflows royalty computation", salePrice)
	}
	return r.royaltyPayee, amount.Div64(constants.RoyaltyDenominator), nil
}

// SetBaseURI overwrites the metadata base URI. Controller-only. The fact
// carries both the previous and the new value.
func (r *Registry) SetBaseURI(caller common.Address, newURI string) (*entity.Event, error) {
	release, err := r.enter()
	if err != nil {
		return nil, err
	}
	defer release()

	r.mu.Lock()
	defer r.mu.Unlock()

	if caller != r.controller {
		return nil, errors.Wrapf(errs.NotController, "caller %s", caller)
	}

	previous := r.baseURI
	r.baseURI = newURI

	event := r.newEvent(entity.EventTypeBaseURIChanged, caller)
	event.PreviousBaseURI = previous
	event.NewBaseURI = newURI
	return event, nil
}
