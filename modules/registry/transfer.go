package registry

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/artifact-registry/common"
	"github.com/gaze-network/artifact-registry/common/errs"
	"github.com/gaze-network/artifact-registry/modules/registry/internal/entity"
)

// Transfer moves artifact id from `from` to `to` on behalf of caller. The
// caller is authorized iff it is the current owner, the approved spender for
// id, or a blanket-approved operator of the owner. Authorization is re-derived
// on every call; there is no cached capability. On success the single-spender
// approval for id is cleared and the transfer fact is returned.
func (r *Registry) Transfer(caller, from, to common.Address, id uint64) (*entity.Event, error) {
	release, err := r.enter()
	if err != nil {
		return nil, err
	}
	defer release()

	r.mu.Lock()
	defer r.mu.Unlock()
	event, _, err := r.transferLocked(caller, from, to, id)
	if err != nil {
		return nil, err
	}
	return event, nil
}

// SafeTransfer is Transfer plus a recipient acceptance check. The checker runs
// with the reentrancy guard held and the state lock released; if the recipient
// rejects, the ownership mutation is rolled back before returning, so a failed
// safe transfer leaves no observable state change.
func (r *Registry) SafeTransfer(ctx context.Context, caller, from, to common.Address, id uint64) (*entity.Event, error) {
	release, err := r.enter()
	if err != nil {
		return nil, err
	}
	defer release()

	r.mu.Lock()
	event, undo, err := r.transferLocked(caller, from, to, id)
	r.mu.Unlock()
	if err != nil {
		return nil, err
	}

	if err := r.receiver.CanReceive(ctx, to, id); err != nil {
		r.mu.Lock()
		undo()
		r.mu.Unlock()
		return nil, errors.Wrapf(err, "recipient %s rejected artifact %d", to, id)
	}
	return event, nil
}

// transferLocked performs the authorization checks and the ownership mutation.
// Callers hold r.mu. The returned undo restores the prior owner and approval.
func (r *Registry) transferLocked(caller, from, to common.Address, id uint64) (*entity.Event, func(), error) {
	owner, ok := r.ledger.owners[id]
	if !ok || owner.IsZero() {
		return nil, nil, errors.Wrapf(errs.InvalidToken, "artifact %d", id)
	}
	if owner != from {
		return nil, nil, errors.Wrapf(errs.TransferFromWrongOwner, "artifact %d is owned by %s, not %s", id, owner, from)
	}
	if to.IsZero() {
		return nil, nil, errors.WithStack(errs.TransferToZero)
	}

	approved := r.delegations.tokenApprovals[id]
	authorized := caller == from ||
		(!caller.IsZero() && caller == approved) ||
		r.delegations.IsApprovedForAll(from, caller)
	if !authorized {
		return nil, nil, errors.Wrapf(errs.CallerNotOwnerNorApproved, "caller %s, artifact %d", caller, id)
	}

	r.delegations.clearApproval(id)
	r.ledger.setOwner(id, to)

	event := r.newEvent(entity.EventTypeTransfer, caller)
	event.From = from
	event.To = to
	event.ArtifactId = id

	undo := func() {
		r.ledger.setOwner(id, from)
		if !approved.IsZero() {
			r.delegations.tokenApprovals[id] = approved
		}
	}
	return event, undo, nil
}

// issueLocked assigns first ownership of a freshly allocated id. Mint-only
// path: no prior owner exists and no authorization applies. Callers hold r.mu
// and have validated the recipient.
func (r *Registry) issueLocked(caller, to common.Address, id uint64) *entity.Event {
	r.ledger.setOwner(id, to)

	event := r.newEvent(entity.EventTypeTransfer, caller)
	event.From = common.ZeroAddress
	event.To = to
	event.ArtifactId = id
	return event
}
