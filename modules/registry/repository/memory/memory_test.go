package memory

import (
	"context"
	"testing"

	"github.com/gaze-network/artifact-registry/common"
	"github.com/gaze-network/artifact-registry/common/errs"
	"github.com/gaze-network/artifact-registry/modules/registry/datagateway"
	"github.com/gaze-network/artifact-registry/modules/registry/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func addr(b byte) common.Address {
	var a common.Address
	a[19] = b
	return a
}

func TestCreateEventsAssignsSequence(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository()

	err := repo.CreateEvents(ctx, []*entity.Event{
		{Type: entity.EventTypeIssued, ArtifactId: 1},
		{Type: entity.EventTypeTransfer, ArtifactId: 1},
	})
	require.NoError(t, err)

	events, err := repo.GetEvents(ctx, datagateway.EventFilter{}, -1, 0)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, uint64(1), events[0].Sequence)
	assert.Equal(t, uint64(2), events[1].Sequence)
}

func TestGetEventsFilter(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository()

	require.NoError(t, repo.CreateEvents(ctx, []*entity.Event{
		{Type: entity.EventTypeIssued, ArtifactId: 1, To: addr(1), Height: 10},
		{Type: entity.EventTypeTransfer, ArtifactId: 1, From: addr(1), To: addr(2), Height: 20},
		{Type: entity.EventTypeTransfer, ArtifactId: 2, From: addr(3), To: addr(1), Height: 30},
	}))

	events, err := repo.GetEvents(ctx, datagateway.EventFilter{Type: entity.EventTypeTransfer}, -1, 0)
	require.NoError(t, err)
	assert.Len(t, events, 2)

	events, err = repo.GetEvents(ctx, datagateway.EventFilter{ArtifactId: 2}, -1, 0)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, uint64(2), events[0].ArtifactId)

	events, err = repo.GetEvents(ctx, datagateway.EventFilter{Address: addr(1)}, -1, 0)
	require.NoError(t, err)
	assert.Len(t, events, 3)

	events, err = repo.GetEvents(ctx, datagateway.EventFilter{FromHeight: 15, ToHeight: 25}, -1, 0)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, uint64(20), events[0].Height)

	events, err = repo.GetEvents(ctx, datagateway.EventFilter{}, 2, 1)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, uint64(2), events[0].Sequence)
}

func TestArtifacts(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository()

	_, err := repo.GetArtifact(ctx, 1)
	assert.ErrorIs(t, err, errs.NotFound)

	require.NoError(t, repo.CreateArtifact(ctx, &entity.Artifact{Id: 1, Owner: addr(1)}))
	require.NoError(t, repo.CreateArtifact(ctx, &entity.Artifact{Id: 2, Owner: addr(2)}))

	artifact, err := repo.GetArtifact(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, addr(1), artifact.Owner)

	require.NoError(t, repo.UpdateArtifactOwner(ctx, 1, addr(2)))

	artifacts, err := repo.GetArtifacts(ctx, addr(2), -1, 0)
	require.NoError(t, err)
	assert.Len(t, artifacts, 2)

	artifacts, err = repo.GetArtifacts(ctx, common.ZeroAddress, -1, 0)
	require.NoError(t, err)
	assert.Len(t, artifacts, 2)

	count, err := repo.CountArtifacts(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), count)
}

func TestTxCommit(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository()

	tx, err := repo.BeginRegistryTx(ctx)
	require.NoError(t, err)
	require.NoError(t, tx.CreateEvents(ctx, []*entity.Event{{Type: entity.EventTypeIssued, ArtifactId: 1}}))
	require.NoError(t, tx.CreateArtifact(ctx, &entity.Artifact{Id: 1, Owner: addr(1)}))

	// not visible outside the tx until commit
	count, err := repo.CountEvents(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)

	// visible inside the tx
	artifact, err := tx.GetArtifact(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, addr(1), artifact.Owner)

	require.NoError(t, tx.Commit(ctx))

	count, err = repo.CountEvents(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), count)
	artifact, err = repo.GetArtifact(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, addr(1), artifact.Owner)
}

func TestTxRollback(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository()
	require.NoError(t, repo.CreateArtifact(ctx, &entity.Artifact{Id: 1, Owner: addr(1)}))

	tx, err := repo.BeginRegistryTx(ctx)
	require.NoError(t, err)
	require.NoError(t, tx.CreateEvents(ctx, []*entity.Event{{Type: entity.EventTypeTransfer, ArtifactId: 1}}))
	require.NoError(t, tx.UpdateArtifactOwner(ctx, 1, addr(2)))
	require.NoError(t, tx.Rollback(ctx))

	count, err := repo.CountEvents(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
	artifact, err := repo.GetArtifact(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, addr(1), artifact.Owner)
}
