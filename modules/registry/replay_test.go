package registry

import (
	"testing"

	"github.com/gaze-network/artifact-registry/modules/registry/constants"
	"github.com/gaze-network/artifact-registry/modules/registry/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReplay(t *testing.T) {
	alice := testAddress(0x01)
	bob := testAddress(0x02)
	carol := testAddress(0x03)

	r, clock := newTestRegistry(t)
	var journal []*entity.Event

	record := func(events ...*entity.Event) {
		journal = append(journal, events...)
	}

	events, _, err := r.Mint(alice, testMintPrice, alice, testHash(0x11), 3)
	require.NoError(t, err)
	record(events...)

	clock.Advance(constants.CooldownBlocks)
	events, _, err = r.Mint(bob, testMintPrice, bob, testHash(0x22), 8)
	require.NoError(t, err)
	record(events...)

	event, err := r.Transfer(alice, alice, carol, 1)
	require.NoError(t, err)
	record(event)

	event, err = r.Approve(bob, 2, carol)
	require.NoError(t, err)
	record(event)

	event, err = r.SetApprovalForAll(carol, alice, true)
	require.NoError(t, err)
	record(event)

	event, err = r.ConfigureRoyalty(testController, testAddress(0x0f), 250)
	require.NoError(t, err)
	record(event)

	event, err = r.SetBaseURI(testController, "https://cdn.example.com/v2/")
	require.NoError(t, err)
	record(event)

	// rebuild a fresh registry from the journal and compare observable state
	replayed, _ := newTestRegistry(t)
	require.NoError(t, replayed.Replay(journal))

	assert.Equal(t, r.TotalMinted(), replayed.TotalMinted())
	assert.Equal(t, r.NextId(), replayed.NextId())
	assert.Equal(t, r.BaseURI(), replayed.BaseURI())
	assert.Equal(t, r.Holdings(), replayed.Holdings())

	for id := uint64(1); id < r.NextId(); id++ {
		wantOwner, err := r.OwnerOf(id)
		require.NoError(t, err)
		gotOwner, err := replayed.OwnerOf(id)
		require.NoError(t, err)
		assert.Equal(t, wantOwner, gotOwner, "artifact %d", id)

		want, err := r.Artifact(id)
		require.NoError(t, err)
		got, err := replayed.Artifact(id)
		require.NoError(t, err)
		assert.Equal(t, want.TraitCommitment, got.TraitCommitment, "artifact %d", id)
		assert.Equal(t, want.LayerCount, got.LayerCount, "artifact %d", id)

		wantApproved, err := r.GetApproved(id)
		require.NoError(t, err)
		gotApproved, err := replayed.GetApproved(id)
		require.NoError(t, err)
		assert.Equal(t, wantApproved, gotApproved, "artifact %d", id)
	}

	assert.True(t, replayed.IsApprovedForAll(carol, alice))

	wantPayee, wantBps := r.RoyaltyRate()
	gotPayee, gotBps := replayed.RoyaltyRate()
	assert.Equal(t, wantPayee, gotPayee)
	assert.Equal(t, wantBps, gotBps)
}

func TestReplayCooldownRestored(t *testing.T) {
	alice := testAddress(0x01)

	r, _ := newTestRegistry(t)
	events, _, err := r.Mint(alice, testMintPrice, alice, testHash(0x11), 1)
	require.NoError(t, err)

	replayed, _ := newTestRegistry(t)
	require.NoError(t, replayed.Replay(events))

	// the caller's cooldown window survives a restart
	assert.Equal(t, uint64(constants.CooldownBlocks), replayed.CooldownBlocksRemaining(alice))
}

func TestReplayOutOfOrderJournal(t *testing.T) {
	r, _ := newTestRegistry(t)

	err := r.Replay([]*entity.Event{{
		Type:       entity.EventTypeIssued,
		ArtifactId: 5,
		To:         testAddress(0x01),
		Caller:     testAddress(0x01),
	}})
	assert.Error(t, err)
}

func TestReplayEmptyJournal(t *testing.T) {
	r, _ := newTestRegistry(t)
	require.NoError(t, r.Replay(nil))
	assert.Equal(t, uint64(0), r.TotalMinted())
	assert.Equal(t, uint64(1), r.NextId())

	_, err := r.OwnerOf(1)
	assert.Error(t, err)
}
