package registry

import (
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/artifact-registry/common"
	"github.com/gaze-network/artifact-registry/modules/registry/internal/entity"
)

// Approve records spender as the single approved spender for artifact id. The
// caller must be the owner or a blanket-approved operator of the owner. A zero
// spender clears the approval. Returns the approval fact.
func (r *Registry) Approve(caller common.Address, id uint64, spender common.Address) (*entity.Event, error) {
	release, err := r.enter()
	if err != nil {
		return nil, err
	}
	defer release()

	r.mu.Lock()
	defer r.mu.Unlock()

	owner, err := r.delegations.approve(caller, id, spender)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	event := r.newEvent(entity.EventTypeApproval, caller)
	event.Holder = owner
	event.Spender = spender
	event.ArtifactId = id
	return event, nil
}

// SetApprovalForAll records or clears a blanket operator approval from caller.
// Idempotent; the operator-approval fact is emitted even when nothing changed.
func (r *Registry) SetApprovalForAll(caller common.Address, operator common.Address, approved bool) (*entity.Event, error) {
	release, err := r.enter()
	if err != nil {
		return nil, err
	}
	defer release()

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.delegations.setApprovalForAll(caller, operator, approved); err != nil {
		return nil, err
	}

	event := r.newEvent(entity.EventTypeOperatorApproval, caller)
	event.Holder = caller
	event.Operator = operator
	event.Approved = approved
	return event, nil
}
