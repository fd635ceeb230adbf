package registry

import (
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/artifact-registry/common"
	"github.com/gaze-network/artifact-registry/common/errs"
	"github.com/gaze-network/artifact-registry/modules/registry/constants"
	"github.com/gaze-network/artifact-registry/modules/registry/internal/entity"
	"github.com/gaze-network/uint128"
)

// Mint issues the next artifact id to `to` against payment. Admission checks
// run in a fixed order, first failure wins: recipient non-zero, supply cap,
// payment floor, layer bound, per-caller cooldown. Payment in excess of the
// fixed price is accepted and retained; no change is made.
//
// On success the caller's cooldown window restarts, the immutable artifact
// record is written, ownership is issued to the recipient, and both the
// ownership-transfer fact (from the zero address) and the issuance fact are
// returned in emission order.
func (r *Registry) Mint(caller common.Address, payment uint128.Uint128, to common.Address, traitCommitment common.Hash, layerCount uint8) ([]*entity.Event, *entity.Artifact, error) {
	release, err := r.enter()
	if err != nil {
		return nil, nil, err
	}
	defer release()

	r.mu.Lock()
	defer r.mu.Unlock()

	if to.IsZero() {
		return nil, nil, errors.WithStack(errs.MintToZero)
	}
	if r.totalMinted >= constants.MaxSupply {
		return nil, nil, errors.Wrapf(errs.SupplyCapExceeded, "supply cap is %d", constants.MaxSupply)
	}
	if payment.Cmp(r.mintPrice) < 0 {
		return nil, nil, errors.Wrapf(errs.PaymentTooLow, "mint price is %s, got %s", r.mintPrice, payment)
	}
	if layerCount > constants.MaxLayers {
		return nil, nil, errors.Wrapf(errs.LayerIndexOutOfRange, "max layers is %d, got %d", constants.MaxLayers, layerCount)
	}

	height := r.clock.Height()
	if last, ok := r.lastMintHeight[caller]; ok && last != 0 && height < last+constants.CooldownBlocks {
		return nil, nil, errors.Wrapf(errs.CooldownActive, "%d blocks remaining", last+constants.CooldownBlocks-height)
	}

	r.lastMintHeight[caller] = height
	id := r.nextId
	r.nextId++
	r.totalMinted++

	now := time.Now()
	r.records[id] = artifactRecord{
		traitCommitment: traitCommitment,
		layerCount:      layerCount,
		issuedAtHeight:  height,
		issuedAt:        now,
	}

	transferEvent := r.issueLocked(caller, to, id)

	issuedEvent := r.newEvent(entity.EventTypeIssued, caller)
	issuedEvent.To = to
	issuedEvent.ArtifactId = id
	issuedEvent.TraitCommitment = traitCommitment
	issuedEvent.LayerCount = layerCount
	issuedEvent.Payment = payment

	artifact := &entity.Artifact{
		Id:              id,
		Owner:           to,
		TraitCommitment: traitCommitment,
		LayerCount:      layerCount,
		IssuedAtHeight:  height,
		IssuedAt:        now,
	}
	return []*entity.Event{transferEvent, issuedEvent}, artifact, nil
}
