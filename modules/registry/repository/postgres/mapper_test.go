package postgres

import (
	"testing"
	"time"

	"github.com/gaze-network/artifact-registry/common"
	"github.com/gaze-network/artifact-registry/modules/registry/datagateway"
	"github.com/gaze-network/artifact-registry/modules/registry/internal/entity"
	"github.com/gaze-network/uint128"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func addr(b byte) common.Address {
	var a common.Address
	a[19] = b
	return a
}

func TestMapEventRoundTrip(t *testing.T) {
	var commitment common.Hash
	commitment[0] = 0xde
	commitment[31] = 0xad

	src := &entity.Event{
		Sequence:        7,
		Type:            entity.EventTypeIssued,
		Height:          118,
		Timestamp:       time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
		Caller:          addr(1),
		From:            common.ZeroAddress,
		To:              addr(1),
		ArtifactId:      42,
		TraitCommitment: commitment,
		LayerCount:      16,
		Payment:         uint128.Max,
	}

	model, err := mapEventTypeToModel(src)
	require.NoError(t, err)
	roundTripped, err := mapEventModelToType(model)
	require.NoError(t, err)
	assert.Equal(t, src, roundTripped)
}

func TestMapArtifactRoundTrip(t *testing.T) {
	var commitment common.Hash
	commitment[5] = 0x42

	src := &entity.Artifact{
		Id:              3,
		Owner:           addr(9),
		TraitCommitment: commitment,
		LayerCount:      32,
		IssuedAtHeight:  200,
		IssuedAt:        time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	}

	roundTripped, err := mapArtifactModelToType(mapArtifactTypeToModel(src))
	require.NoError(t, err)
	assert.Equal(t, src, roundTripped)
}

func TestNumericFromUint128(t *testing.T) {
	for _, value := range []uint128.Uint128{uint128.Zero, uint128.From64(80_000_000), uint128.Max} {
		numeric, err := numericFromUint128(value)
		require.NoError(t, err)
		roundTripped, err := uint128FromNumeric(numeric)
		require.NoError(t, err)
		assert.Equal(t, value, roundTripped)
	}
}

func TestBuildEventsQuery(t *testing.T) {
	query, args := buildEventsQuery(datagateway.EventFilter{}, -1, 0)
	assert.Equal(t, selectEvents+" ORDER BY sequence", query)
	assert.Empty(t, args)

	query, args = buildEventsQuery(datagateway.EventFilter{
		Type:       entity.EventTypeTransfer,
		ArtifactId: 42,
		FromHeight: 100,
		ToHeight:   200,
	}, 50, 10)
	assert.Contains(t, query, "type = $1")
	assert.Contains(t, query, "artifact_id = $2")
	assert.Contains(t, query, "height >= $3")
	assert.Contains(t, query, "height <= $4")
	assert.Contains(t, query, "LIMIT $5")
	assert.Contains(t, query, "OFFSET $6")
	assert.Equal(t, []any{"transfer", int64(42), int64(100), int64(200), int32(50), int32(10)}, args)

	query, args = buildEventsQuery(datagateway.EventFilter{Address: addr(1)}, -1, 0)
	assert.Contains(t, query, "caller = $1 OR from_address = $1")
	require.Len(t, args, 1)
	assert.Equal(t, addr(1).String(), args[0])
}
