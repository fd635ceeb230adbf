package registry

import (
	"context"

	"github.com/gaze-network/artifact-registry/common"
)

// ReceiverChecker verifies that a recipient can accept an artifact during a
// safe transfer. The check is a callback into the recipient's side, which is
// exactly the reentrancy surface the registry guard covers: the checker runs
// while the guard is held, so any call back into a mutating entry point fails
// with errs.Reentrancy.
type ReceiverChecker interface {
	CanReceive(ctx context.Context, to common.Address, id uint64) error
}

// AcceptAllReceiver accepts every recipient. Default checker.
type AcceptAllReceiver struct{}

func (AcceptAllReceiver) CanReceive(context.Context, common.Address, uint64) error {
	return nil
}
