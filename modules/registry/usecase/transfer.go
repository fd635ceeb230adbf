package usecase

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/artifact-registry/common"
	"github.com/gaze-network/artifact-registry/modules/registry/datagateway"
	"github.com/gaze-network/artifact-registry/modules/registry/internal/entity"
)

func (u *Usecase) Transfer(ctx context.Context, caller, from, to common.Address, id uint64) (*entity.Event, error) {
	event, err := u.registry.Transfer(caller, from, to, id)
	if err != nil {
		return nil, errors.Wrap(err, "transfer rejected")
	}
	if err := u.journalTransfer(ctx, event); err != nil {
		return nil, errors.WithStack(err)
	}
	return event, nil
}

// SafeTransfer additionally consults the receiver hook before accepting the
// transfer.
func (u *Usecase) SafeTransfer(ctx context.Context, caller, from, to common.Address, id uint64) (*entity.Event, error) {
	event, err := u.registry.SafeTransfer(ctx, caller, from, to, id)
	if err != nil {
		return nil, errors.Wrap(err, "transfer rejected")
	}
	if err := u.journalTransfer(ctx, event); err != nil {
		return nil, errors.WithStack(err)
	}
	return event, nil
}

func (u *Usecase) journalTransfer(ctx context.Context, event *entity.Event) error {
	return u.journal(ctx, []*entity.Event{event}, func(dg datagateway.RegistryDataGatewayWithTx) error {
		if err := dg.UpdateArtifactOwner(ctx, event.ArtifactId, event.To); err != nil {
			return errors.Wrap(err, "failed to update artifact owner")
		}
		return nil
	})
}
