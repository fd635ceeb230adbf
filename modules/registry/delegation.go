package registry

import (
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/artifact-registry/common"
	"github.com/gaze-network/artifact-registry/common/errs"
)

// DelegationTable owns the per-artifact single-spender approvals and the
// per-holder blanket operator approvals. It consults the ledger only to
// validate that an artifact has an owner before recording a delegation.
type DelegationTable struct {
	ledger            *Ledger
	tokenApprovals    map[uint64]common.Address
	operatorApprovals map[common.Address]map[common.Address]bool
}

func NewDelegationTable(ledger *Ledger) *DelegationTable {
	return &DelegationTable{
		ledger:            ledger,
		tokenApprovals:    make(map[uint64]common.Address),
		operatorApprovals: make(map[common.Address]map[common.Address]bool),
	}
}

// approve records spender as the single approved spender for id. The caller
// must be the current owner or an approved operator of the owner. A zero
// spender clears the approval. Returns the current owner for the emitted fact.
func (d *DelegationTable) approve(caller common.Address, id uint64, spender common.Address) (common.Address, error) {
	owner, err := d.ledger.OwnerOf(id)
	if err != nil {
		return common.Address{}, errors.WithStack(err)
	}
	if caller != owner && !d.IsApprovedForAll(owner, caller) {
		return common.Address{}, errors.Wrapf(errs.CallerNotOwnerNorApproved, "caller %s, artifact %d", caller, id)
	}
	d.setApproval(id, spender)
	return owner, nil
}

// setApprovalForAll records or clears a blanket operator approval for caller.
// Idempotent: re-recording an identical approval is not an error.
func (d *DelegationTable) setApprovalForAll(caller common.Address, operator common.Address, approved bool) error {
	if operator == caller {
		return errors.WithStack(errs.ApproveToCaller)
	}
	d.setOperator(caller, operator, approved)
	return nil
}

// GetApproved returns the approved spender for id, zero if none. Returns
// errs.InvalidToken if id has no recorded owner.
func (d *DelegationTable) GetApproved(id uint64) (common.Address, error) {
	if _, err := d.ledger.OwnerOf(id); err != nil {
		return common.Address{}, errors.WithStack(err)
	}
	return d.tokenApprovals[id], nil
}

// IsApprovedForAll reports whether operator holds a blanket approval from holder.
func (d *DelegationTable) IsApprovedForAll(holder common.Address, operator common.Address) bool {
	return d.operatorApprovals[holder][operator]
}

// clearApproval removes the single-spender approval for id. Invoked after
// every successful transfer; operator approvals are unaffected.
func (d *DelegationTable) clearApproval(id uint64) {
	delete(d.tokenApprovals, id)
}

func (d *DelegationTable) setApproval(id uint64, spender common.Address) {
	if spender.IsZero() {
		delete(d.tokenApprovals, id)
		return
	}
	d.tokenApprovals[id] = spender
}

func (d *DelegationTable) setOperator(holder common.Address, operator common.Address, approved bool) {
	if !approved {
		delete(d.operatorApprovals[holder], operator)
		if len(d.operatorApprovals[holder]) == 0 {
			delete(d.operatorApprovals, holder)
		}
		return
	}
	if d.operatorApprovals[holder] == nil {
		d.operatorApprovals[holder] = make(map[common.Address]bool)
	}
	d.operatorApprovals[holder][operator] = true
}
