package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/artifact-registry/common"
	"github.com/gaze-network/artifact-registry/modules/registry"
	"github.com/gaze-network/artifact-registry/modules/registry/constants"
	"github.com/gaze-network/artifact-registry/modules/registry/datagateway"
	"github.com/gaze-network/artifact-registry/modules/registry/internal/entity"
	"github.com/gaze-network/artifact-registry/modules/registry/repository/memory"
	"github.com/gaze-network/uint128"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testController = addrOf(0xaa)
	testMintPrice  = uint128.From64(1000)
)

func addrOf(b byte) common.Address {
	var a common.Address
	a[19] = b
	return a
}

func hashOf(b byte) common.Hash {
	var h common.Hash
	h[0] = b
	return h
}

func newTestUsecase(t *testing.T) (*Usecase, *memory.Repository, *registry.ManualClock) {
	t.Helper()
	clock := registry.NewManualClock(100)
	reg := registry.New(registry.Config{
		Name:       "Test Artifacts",
		Symbol:     "TEST",
		BaseURI:    "https://example.com/artifacts/",
		Controller: testController,
		MintPrice:  testMintPrice,
	}, registry.WithClock(clock))
	repo := memory.NewRepository()
	u := New(reg, repo)
	require.NoError(t, u.Bootstrap(context.Background()))
	return u, repo, clock
}

func TestMintPersistsJournalAndArtifact(t *testing.T) {
	ctx := context.Background()
	u, repo, _ := newTestUsecase(t)

	artifact, err := u.Mint(ctx, addrOf(1), testMintPrice, addrOf(1), hashOf(0xde), 8)
	require.NoError(t, err)
	require.NotNil(t, artifact)
	assert.Equal(t, uint64(1), artifact.Id)

	events, err := repo.GetEvents(ctx, datagateway.EventFilter{}, -1, 0)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, entity.EventTypeTransfer, events[0].Type)
	assert.Equal(t, entity.EventTypeIssued, events[1].Type)

	stored, err := repo.GetArtifact(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, addrOf(1), stored.Owner)
}

func TestMintRejectedLeavesJournalEmpty(t *testing.T) {
	ctx := context.Background()
	u, repo, _ := newTestUsecase(t)

	_, err := u.Mint(ctx, addrOf(1), uint128.From64(1), addrOf(1), hashOf(0xde), 8)
	require.Error(t, err)

	count, err := repo.CountEvents(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestTransferUpdatesStoredOwner(t *testing.T) {
	ctx := context.Background()
	u, repo, _ := newTestUsecase(t)

	_, err := u.Mint(ctx, addrOf(1), testMintPrice, addrOf(1), hashOf(0xde), 8)
	require.NoError(t, err)

	event, err := u.Transfer(ctx, addrOf(1), addrOf(1), addrOf(2), 1)
	require.NoError(t, err)
	assert.Equal(t, addrOf(2), event.To)

	stored, err := repo.GetArtifact(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, addrOf(2), stored.Owner)
}

func TestBootstrapRebuildsState(t *testing.T) {
	ctx := context.Background()
	u, repo, clock := newTestUsecase(t)

	_, err := u.Mint(ctx, addrOf(1), testMintPrice, addrOf(1), hashOf(0xde), 8)
	require.NoError(t, err)
	clock.Advance(constants.CooldownBlocks)
	_, err = u.Mint(ctx, addrOf(2), testMintPrice, addrOf(2), hashOf(0xad), 4)
	require.NoError(t, err)
	_, err = u.Transfer(ctx, addrOf(1), addrOf(1), addrOf(3), 1)
	require.NoError(t, err)
	_, err = u.Approve(ctx, addrOf(2), 2, addrOf(4))
	require.NoError(t, err)
	_, err = u.ConfigureRoyalty(ctx, testController, addrOf(9), 250)
	require.NoError(t, err)

	rebuilt := registry.New(registry.Config{
		Name:       "Test Artifacts",
		Symbol:     "TEST",
		BaseURI:    "https://example.com/artifacts/",
		Controller: testController,
		MintPrice:  testMintPrice,
	}, registry.WithClock(clock))
	u2 := New(rebuilt, repo)
	require.NoError(t, u2.Bootstrap(ctx))

	owner, err := u2.OwnerOf(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, addrOf(3), owner)
	spender, err := u2.GetApproved(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, addrOf(4), spender)
	info := u2.GetInfo(ctx)
	assert.Equal(t, uint64(2), info.TotalMinted)
	assert.Equal(t, addrOf(9), info.RoyaltyPayee)
	assert.Equal(t, uint16(250), info.RoyaltyBps)
}

func TestGetInfo(t *testing.T) {
	ctx := context.Background()
	u, _, _ := newTestUsecase(t)

	info := u.GetInfo(ctx)
	assert.Equal(t, "Test Artifacts", info.Name)
	assert.Equal(t, "TEST", info.Symbol)
	assert.Equal(t, testController, info.Controller)
	assert.Equal(t, uint64(constants.MaxSupply), info.RemainingSupply)
	assert.Len(t, info.Capabilities, 3)
}

func TestGetCheckpoint(t *testing.T) {
	ctx := context.Background()
	u, _, clock := newTestUsecase(t)

	checkpoint, err := u.GetCheckpoint(ctx)
	require.NoError(t, err)
	assert.Zero(t, checkpoint.LatestSequence)
	assert.Equal(t, common.Hash{}, checkpoint.CumulativeEventHash)

	_, err = u.Mint(ctx, addrOf(1), testMintPrice, addrOf(1), hashOf(0xde), 8)
	require.NoError(t, err)

	first, err := u.GetCheckpoint(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), first.LatestSequence)
	assert.NotEqual(t, common.Hash{}, first.CumulativeEventHash)

	// deterministic over the same journal
	again, err := u.GetCheckpoint(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, again)

	clock.Advance(constants.CooldownBlocks)
	_, err = u.Mint(ctx, addrOf(1), testMintPrice, addrOf(1), hashOf(0xad), 8)
	require.NoError(t, err)

	second, err := u.GetCheckpoint(ctx)
	require.NoError(t, err)
	assert.NotEqual(t, first.CumulativeEventHash, second.CumulativeEventHash)
}

func TestGetArtifactDetail(t *testing.T) {
	ctx := context.Background()
	u, _, _ := newTestUsecase(t)

	_, err := u.Mint(ctx, addrOf(1), testMintPrice, addrOf(1), hashOf(0xde), 8)
	require.NoError(t, err)
	_, err = u.Approve(ctx, addrOf(1), 1, addrOf(5))
	require.NoError(t, err)

	detail, err := u.GetArtifact(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, hashOf(0xde), detail.Artifact.TraitCommitment)
	assert.Equal(t, addrOf(5), detail.ApprovedSpender)
}

func TestSubscribeJournal(t *testing.T) {
	ctx := context.Background()
	u, _, _ := newTestUsecase(t)

	journalCh := make(chan JournalNotification, 1)
	sub := u.SubscribeJournal(journalCh)
	defer sub.Unsubscribe()

	_, err := u.Mint(ctx, addrOf(1), testMintPrice, addrOf(1), hashOf(0xde), 8)
	require.NoError(t, err)

	select {
	case notification := <-journalCh:
		assert.Equal(t, uint64(100), notification.Height)
		assert.Equal(t, 2, notification.Events)
	case <-time.After(5 * time.Second):
		t.Fatal("expected journal notification after mint")
	}
}

func TestSubscribeJournalUnsubscribed(t *testing.T) {
	ctx := context.Background()
	u, _, _ := newTestUsecase(t)

	journalCh := make(chan JournalNotification, 1)
	sub := u.SubscribeJournal(journalCh)
	sub.Unsubscribe()

	// A closed subscription must not block or fail subsequent mutations.
	_, err := u.Mint(ctx, addrOf(1), testMintPrice, addrOf(1), hashOf(0xde), 8)
	require.NoError(t, err)
}

// failingJournal refuses to open journal transactions, simulating unavailable
// storage underneath an otherwise working gateway.
type failingJournal struct {
	*memory.Repository
}

func (f *failingJournal) BeginRegistryTx(ctx context.Context) (datagateway.RegistryDataGatewayWithTx, error) {
	return nil, errors.New("journal unavailable")
}

func TestMintJournalAppendFailure(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewRepository()
	newRegistry := func() *registry.Registry {
		return registry.New(registry.Config{
			Name:       "Test Artifacts",
			Symbol:     "TEST",
			BaseURI:    "https://example.com/artifacts/",
			Controller: testController,
			MintPrice:  testMintPrice,
		}, registry.WithClock(registry.NewManualClock(100)))
	}

	u := New(newRegistry(), &failingJournal{repo})
	require.NoError(t, u.Bootstrap(ctx))

	_, err := u.Mint(ctx, addrOf(1), testMintPrice, addrOf(1), hashOf(0xde), 8)
	require.Error(t, err)

	// The append never reached the journal, so a restart over the same
	// storage rebuilds a registry without the mint: the journal, not the
	// in-memory aggregate, is authoritative.
	restarted := New(newRegistry(), repo)
	require.NoError(t, restarted.Bootstrap(ctx))
	assert.Equal(t, uint64(0), restarted.GetInfo(ctx).TotalMinted)
	_, err = restarted.GetArtifact(ctx, 1)
	require.Error(t, err)
}

func TestHashEventFieldBoundaries(t *testing.T) {
	base := func() *entity.Event {
		return &entity.Event{
			Sequence: 1,
			Type:     entity.EventTypeBaseURIChanged,
			Height:   100,
		}
	}

	// Moving content across a field boundary must change the hash, even when
	// the concatenated bytes are identical.
	a := base()
	a.PreviousBaseURI, a.NewBaseURI = "ab", "c"
	b := base()
	b.PreviousBaseURI, b.NewBaseURI = "a", "bc"
	assert.NotEqual(t, hashEvent(a), hashEvent(b))

	c := base()
	c.PreviousBaseURI, c.NewBaseURI = "a|b", "c"
	d := base()
	d.PreviousBaseURI, d.NewBaseURI = "a", "b|c"
	assert.NotEqual(t, hashEvent(c), hashEvent(d))

	assert.Equal(t, hashEvent(a), hashEvent(a))
}
