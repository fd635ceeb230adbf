package usecase

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/artifact-registry/common"
	"github.com/gaze-network/artifact-registry/modules/registry/datagateway"
	"github.com/gaze-network/artifact-registry/modules/registry/internal/entity"
	"github.com/gaze-network/artifact-registry/pkg/logger"
	"github.com/gaze-network/artifact-registry/pkg/logger/slogx"
	"github.com/gaze-network/uint128"
)

func (u *Usecase) Mint(ctx context.Context, caller common.Address, payment uint128.Uint128, to common.Address, traitCommitment common.Hash, layerCount uint8) (*entity.Artifact, error) {
	events, artifact, err := u.registry.Mint(caller, payment, to, traitCommitment, layerCount)
	if err != nil {
		return nil, errors.Wrap(err, "mint rejected")
	}
	err = u.journal(ctx, events, func(dg datagateway.RegistryDataGatewayWithTx) error {
		if err := dg.CreateArtifact(ctx, artifact); err != nil {
			return errors.Wrap(err, "failed to persist artifact")
		}
		return nil
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}
	logger.InfoContext(ctx, "minted artifact",
		slogx.Uint64("id", artifact.Id),
		slogx.Stringer("owner", artifact.Owner),
		slogx.Uint64("height", artifact.IssuedAtHeight),
	)
	return artifact, nil
}
