package registry

import (
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/artifact-registry/common"
	"github.com/gaze-network/artifact-registry/common/errs"
)

// Ledger owns the id -> owner mapping and the per-holder artifact count.
// It performs no eligibility validation; callers validate before mutating.
type Ledger struct {
	owners   map[uint64]common.Address
	balances map[common.Address]uint64
}

func NewLedger() *Ledger {
	return &Ledger{
		owners:   make(map[uint64]common.Address),
		balances: make(map[common.Address]uint64),
	}
}

// OwnerOf returns the current holder of id. Returns errs.InvalidToken if id
// has no recorded owner.
func (l *Ledger) OwnerOf(id uint64) (common.Address, error) {
	owner, ok := l.owners[id]
	if !ok || owner.IsZero() {
		return common.Address{}, errors.Wrapf(errs.InvalidToken, "artifact %d", id)
	}
	return owner, nil
}

// BalanceOf returns the number of artifacts held by holder. Returns
// errs.ZeroAddress for the null identity.
func (l *Ledger) BalanceOf(holder common.Address) (uint64, error) {
	if holder.IsZero() {
		return 0, errors.WithStack(errs.ZeroAddress)
	}
	return l.balances[holder], nil
}

// setOwner overwrites the owner of id, adjusting both holders' counts. The
// decrement is skipped on first issuance (no previous owner).
func (l *Ledger) setOwner(id uint64, newOwner common.Address) {
	if prev, ok := l.owners[id]; ok && !prev.IsZero() {
		l.balances[prev]--
		if l.balances[prev] == 0 {
			delete(l.balances, prev)
		}
	}
	l.owners[id] = newOwner
	l.balances[newOwner]++
}

// holdings returns a copy of the holder -> count map.
func (l *Ledger) holdings() map[common.Address]uint64 {
	out := make(map[common.Address]uint64, len(l.balances))
	for holder, count := range l.balances {
		out[holder] = count
	}
	return out
}
