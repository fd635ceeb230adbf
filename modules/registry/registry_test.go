package registry

import (
	"testing"

	"github.com/gaze-network/artifact-registry/common"
	"github.com/gaze-network/artifact-registry/common/errs"
	"github.com/gaze-network/artifact-registry/modules/registry/constants"
	"github.com/gaze-network/uint128"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testController = testAddress(0xaa)
	testMintPrice  = uint128.From64(1000)
)

func testAddress(b byte) common.Address {
	var addr common.Address
	for i := range addr {
		addr[i] = b
	}
	return addr
}

func testHash(b byte) common.Hash {
	var h common.Hash
	for i := range h {
		h[i] = b
	}
	return h
}

func newTestRegistry(t *testing.T, opts ...Option) (*Registry, *ManualClock) {
	t.Helper()
	clock := NewManualClock(100)
	opts = append([]Option{WithClock(clock)}, opts...)
	r := New(Config{
		Name:       "Test Artifacts",
		Symbol:     "TEST",
		BaseURI:    "https://example.com/artifacts/",
		Controller: testController,
		MintPrice:  testMintPrice,
	}, opts...)
	return r, clock
}

// mintOne mints a single artifact to `to`, advancing past the cooldown first.
func mintOne(t *testing.T, r *Registry, clock *ManualClock, caller, to common.Address) uint64 {
	t.Helper()
	clock.Advance(constants.CooldownBlocks)
	_, artifact, err := r.Mint(caller, testMintPrice, to, testHash(0x01), 5)
	require.NoError(t, err)
	return artifact.Id
}

func TestOwnerOfUnminted(t *testing.T) {
	r, _ := newTestRegistry(t)

	for _, id := range []uint64{0, 1, 42, constants.MaxSupply, constants.MaxSupply + 1} {
		_, err := r.OwnerOf(id)
		assert.ErrorIs(t, err, errs.InvalidToken, "id %d", id)
	}
}

func TestBalanceOfZeroAddress(t *testing.T) {
	r, _ := newTestRegistry(t)

	_, err := r.BalanceOf(common.ZeroAddress)
	assert.ErrorIs(t, err, errs.ZeroAddress)
}

func TestBalancesSumEqualsTotalMinted(t *testing.T) {
	r, clock := newTestRegistry(t)
	alice := testAddress(0x01)
	bob := testAddress(0x02)
	carol := testAddress(0x03)

	ids := make([]uint64, 0, 6)
	for i := 0; i < 3; i++ {
		ids = append(ids, mintOne(t, r, clock, alice, alice))
		ids = append(ids, mintOne(t, r, clock, bob, bob))
	}

	sumBalances := func() uint64 {
		var sum uint64
		for _, count := range r.Holdings() {
			sum += count
		}
		return sum
	}
	assert.Equal(t, r.TotalMinted(), sumBalances())

	// ownership churn must keep the invariant
	_, err := r.Transfer(alice, alice, carol, ids[0])
	require.NoError(t, err)
	_, err = r.Transfer(bob, bob, carol, ids[1])
	require.NoError(t, err)
	assert.Equal(t, r.TotalMinted(), sumBalances())
	assert.Equal(t, uint64(6), r.TotalMinted())
}

func TestRemainingSupply(t *testing.T) {
	r, clock := newTestRegistry(t)
	alice := testAddress(0x01)

	assert.Equal(t, uint64(constants.MaxSupply), r.RemainingSupply())
	mintOne(t, r, clock, alice, alice)
	assert.Equal(t, uint64(constants.MaxSupply-1), r.RemainingSupply())
}

func TestSupportsCapability(t *testing.T) {
	r, _ := newTestRegistry(t)

	assert.True(t, r.SupportsCapability(constants.CapabilityRoyalty))
	assert.True(t, r.SupportsCapability(constants.CapabilityArtifact))
	assert.True(t, r.SupportsCapability(constants.CapabilityMetadata))
	assert.False(t, r.SupportsCapability([4]byte{0xde, 0xad, 0xbe, 0xef}))
}

func TestSetBaseURI(t *testing.T) {
	r, _ := newTestRegistry(t)

	_, err := r.SetBaseURI(testAddress(0x01), "https://malicious.example.com/")
	assert.ErrorIs(t, err, errs.NotController)
	assert.Equal(t, "https://example.com/artifacts/", r.BaseURI())

	event, err := r.SetBaseURI(testController, "https://cdn.example.com/v2/")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/artifacts/", event.PreviousBaseURI)
	assert.Equal(t, "https://cdn.example.com/v2/", event.NewBaseURI)
	assert.Equal(t, "https://cdn.example.com/v2/", r.BaseURI())
}
