package registry

import (
	"testing"

	"github.com/gaze-network/artifact-registry/common"
	"github.com/gaze-network/artifact-registry/common/errs"
	"github.com/gaze-network/artifact-registry/modules/registry/constants"
	"github.com/gaze-network/artifact-registry/modules/registry/internal/entity"
	"github.com/gaze-network/uint128"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMint(t *testing.T) {
	r, _ := newTestRegistry(t)
	alice := testAddress(0x01)
	commitment := testHash(0x42)

	events, artifact, err := r.Mint(alice, testMintPrice, alice, commitment, 7)
	require.NoError(t, err)

	assert.Equal(t, uint64(1), artifact.Id)
	assert.Equal(t, alice, artifact.Owner)
	assert.Equal(t, commitment, artifact.TraitCommitment)
	assert.Equal(t, uint8(7), artifact.LayerCount)

	owner, err := r.OwnerOf(1)
	require.NoError(t, err)
	assert.Equal(t, alice, owner)

	balance, err := r.BalanceOf(alice)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), balance)

	assert.Equal(t, uint64(1), r.TotalMinted())
	assert.Equal(t, uint64(2), r.NextId())

	// transfer fact from the zero address, then the issuance fact
	require.Len(t, events, 2)
	assert.Equal(t, entity.EventTypeTransfer, events[0].Type)
	assert.Equal(t, common.ZeroAddress, events[0].From)
	assert.Equal(t, alice, events[0].To)
	assert.Equal(t, uint64(1), events[0].ArtifactId)
	assert.Equal(t, entity.EventTypeIssued, events[1].Type)
	assert.Equal(t, commitment, events[1].TraitCommitment)
	assert.Equal(t, uint8(7), events[1].LayerCount)
	assert.Equal(t, testMintPrice, events[1].Payment)
}

func TestMintIdsAreSequential(t *testing.T) {
	r, clock := newTestRegistry(t)
	alice := testAddress(0x01)

	for want := uint64(1); want <= 5; want++ {
		id := mintOne(t, r, clock, alice, alice)
		assert.Equal(t, want, id)
	}
}

func TestMintToZero(t *testing.T) {
	r, _ := newTestRegistry(t)

	_, _, err := r.Mint(testAddress(0x01), testMintPrice, common.ZeroAddress, testHash(0x01), 1)
	assert.ErrorIs(t, err, errs.MintToZero)
	assert.Equal(t, uint64(0), r.TotalMinted())
}

func TestMintPaymentTooLow(t *testing.T) {
	r, _ := newTestRegistry(t)
	alice := testAddress(0x01)

	_, _, err := r.Mint(alice, testMintPrice.Sub64(1), alice, testHash(0x01), 1)
	assert.ErrorIs(t, err, errs.PaymentTooLow)

	// exact price is accepted
	_, _, err = r.Mint(alice, testMintPrice, alice, testHash(0x01), 1)
	assert.NoError(t, err)
}

func TestMintExcessPaymentRetained(t *testing.T) {
	r, _ := newTestRegistry(t)
	alice := testAddress(0x01)
	excess := testMintPrice.Add64(12345)

	events, _, err := r.Mint(alice, excess, alice, testHash(0x01), 1)
	require.NoError(t, err)

	// excess over the fixed price is accepted and recorded, no change is made
	assert.Equal(t, excess, events[1].Payment)
}

func TestMintLayerCountBounds(t *testing.T) {
	r, clock := newTestRegistry(t)
	alice := testAddress(0x01)

	_, _, err := r.Mint(alice, testMintPrice, alice, testHash(0x01), constants.MaxLayers+1)
	assert.ErrorIs(t, err, errs.LayerIndexOutOfRange)

	clock.Advance(constants.CooldownBlocks)
	_, _, err = r.Mint(alice, testMintPrice, alice, testHash(0x01), constants.MaxLayers)
	assert.NoError(t, err)
}

func TestMintCooldown(t *testing.T) {
	r, clock := newTestRegistry(t)
	alice := testAddress(0x01)
	bob := testAddress(0x02)

	_, _, err := r.Mint(alice, testMintPrice, alice, testHash(0x01), 1)
	require.NoError(t, err)

	// within the window, every attempt fails
	_, _, err = r.Mint(alice, testMintPrice, alice, testHash(0x02), 1)
	assert.ErrorIs(t, err, errs.CooldownActive)

	clock.Advance(constants.CooldownBlocks - 1)
	_, _, err = r.Mint(alice, testMintPrice, alice, testHash(0x02), 1)
	assert.ErrorIs(t, err, errs.CooldownActive)

	// the cooldown is per caller, not global
	_, _, err = r.Mint(bob, testMintPrice, bob, testHash(0x03), 1)
	assert.NoError(t, err)

	clock.Advance(1)
	_, _, err = r.Mint(alice, testMintPrice, alice, testHash(0x02), 1)
	assert.NoError(t, err)
}

func TestMintCooldownBlocksRemaining(t *testing.T) {
	r, clock := newTestRegistry(t)
	alice := testAddress(0x01)

	assert.Equal(t, uint64(0), r.CooldownBlocksRemaining(alice))

	_, _, err := r.Mint(alice, testMintPrice, alice, testHash(0x01), 1)
	require.NoError(t, err)
	assert.Equal(t, uint64(constants.CooldownBlocks), r.CooldownBlocksRemaining(alice))

	clock.Advance(5)
	assert.Equal(t, uint64(constants.CooldownBlocks-5), r.CooldownBlocksRemaining(alice))

	clock.Advance(constants.CooldownBlocks)
	assert.Equal(t, uint64(0), r.CooldownBlocksRemaining(alice))
}

func TestMintSupplyCap(t *testing.T) {
	if testing.Short() {
		t.Skip("mints the full supply")
	}

	r, clock := newTestRegistry(t)
	alice := testAddress(0x01)

	for i := 0; i < constants.MaxSupply; i++ {
		clock.Advance(constants.CooldownBlocks)
		_, _, err := r.Mint(alice, testMintPrice, alice, testHash(0x01), 1)
		require.NoError(t, err)
	}
	assert.Equal(t, uint64(constants.MaxSupply), r.TotalMinted())
	assert.Equal(t, uint64(0), r.RemainingSupply())

	clock.Advance(constants.CooldownBlocks)
	_, _, err := r.Mint(alice, testMintPrice, alice, testHash(0x01), 1)
	assert.ErrorIs(t, err, errs.SupplyCapExceeded)
	assert.Equal(t, uint64(constants.MaxSupply), r.TotalMinted())
}

func TestMintArtifactDataImmutable(t *testing.T) {
	r, clock := newTestRegistry(t)
	alice := testAddress(0x01)
	bob := testAddress(0x02)
	commitment := testHash(0x42)

	clock.Advance(constants.CooldownBlocks)
	_, minted, err := r.Mint(alice, testMintPrice, alice, commitment, 9)
	require.NoError(t, err)

	// a transfer must not touch the immutable record
	_, err = r.Transfer(alice, alice, bob, minted.Id)
	require.NoError(t, err)

	artifact, err := r.Artifact(minted.Id)
	require.NoError(t, err)
	assert.Equal(t, bob, artifact.Owner)
	assert.Equal(t, commitment, artifact.TraitCommitment)
	assert.Equal(t, uint8(9), artifact.LayerCount)
	assert.Equal(t, minted.IssuedAtHeight, artifact.IssuedAtHeight)
	assert.Equal(t, minted.IssuedAt, artifact.IssuedAt)
}

func TestMintPaymentUint128(t *testing.T) {
	r, _ := newTestRegistry(t)
	alice := testAddress(0x01)

	// payments beyond uint64 range are representable
	payment := uint128.Max
	events, _, err := r.Mint(alice, payment, alice, testHash(0x01), 1)
	require.NoError(t, err)
	assert.Equal(t, payment, events[1].Payment)
}
