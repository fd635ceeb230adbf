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

func TestConfigureRoyalty(t *testing.T) {
	r, _ := newTestRegistry(t)
	payee := testAddress(0x0f)

	event, err := r.ConfigureRoyalty(testController, payee, 500)
	require.NoError(t, err)
	assert.Equal(t, entity.EventTypeRoyaltyConfigured, event.Type)
	assert.Equal(t, payee, event.RoyaltyPayee)
	assert.Equal(t, uint16(500), event.RoyaltyBps)

	gotPayee, gotBps := r.RoyaltyRate()
	assert.Equal(t, payee, gotPayee)
	assert.Equal(t, uint16(500), gotBps)
}

func TestConfigureRoyaltyNotController(t *testing.T) {
	r, _ := newTestRegistry(t)

	_, err := r.ConfigureRoyalty(testAddress(0x01), testAddress(0x0f), 500)
	assert.ErrorIs(t, err, errs.NotController)
}

func TestConfigureRoyaltyBpsCap(t *testing.T) {
	r, _ := newTestRegistry(t)
	payee := testAddress(0x0f)

	_, err := r.ConfigureRoyalty(testController, payee, constants.MaxRoyaltyBps+1)
	assert.ErrorIs(t, err, errs.RoyaltyBpsTooHigh)

	_, err = r.ConfigureRoyalty(testController, payee, constants.MaxRoyaltyBps)
	assert.NoError(t, err)
}

func TestRoyaltyInfo(t *testing.T) {
	r, _ := newTestRegistry(t)
	payee := testAddress(0x0f)

	_, err := r.ConfigureRoyalty(testController, payee, 500)
	require.NoError(t, err)

	tests := []struct {
		salePrice uint64
		amount    uint64
	}{
		{salePrice: 100000, amount: 5000},
		{salePrice: 3, amount: 0}, // rounds down
		{salePrice: 10000, amount: 500},
		{salePrice: 19, amount: 0},
		{salePrice: 20, amount: 1},
		{salePrice: 0, amount: 0},
	}
	for _, tt := range tests {
		gotPayee, amount, err := r.RoyaltyInfo(uint128.From64(tt.salePrice))
		require.NoError(t, err)
		assert.Equal(t, payee, gotPayee, "salePrice %d", tt.salePrice)
		assert.Equal(t, uint128.From64(tt.amount), amount, "salePrice %d", tt.salePrice)
	}
}

func TestRoyaltyInfoUnconfigured(t *testing.T) {
	r, _ := newTestRegistry(t)

	payee, amount, err := r.RoyaltyInfo(uint128.From64(100000))
	require.NoError(t, err)
	assert.Equal(t, common.ZeroAddress, payee)
	assert.True(t, amount.IsZero())
}
