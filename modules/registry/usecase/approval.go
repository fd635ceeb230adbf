package usecase

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/artifact-registry/common"
	"github.com/gaze-network/artifact-registry/modules/registry/internal/entity"
)

func (u *Usecase) Approve(ctx context.Context, caller common.Address, id uint64, spender common.Address) (*entity.Event, error) {
	event, err := u.registry.Approve(caller, id, spender)
	if err != nil {
		return nil, errors.Wrap(err, "approval rejected")
	}
	if err := u.journal(ctx, []*entity.Event{event}, nil); err != nil {
		return nil, errors.WithStack(err)
	}
	return event, nil
}

func (u *Usecase) SetApprovalForAll(ctx context.Context, caller common.Address, operator common.Address, approved bool) (*entity.Event, error) {
	event, err := u.registry.SetApprovalForAll(caller, operator, approved)
	if err != nil {
		return nil, errors.Wrap(err, "operator approval rejected")
	}
	if err := u.journal(ctx, []*entity.Event{event}, nil); err != nil {
		return nil, errors.WithStack(err)
	}
	return event, nil
}
