package registry

import (
	"testing"

	"github.com/gaze-network/artifact-registry/common"
	"github.com/gaze-network/artifact-registry/common/errs"
	"github.com/gaze-network/artifact-registry/modules/registry/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApprove(t *testing.T) {
	r, clock := newTestRegistry(t)
	alice := testAddress(0x01)
	bob := testAddress(0x02)
	id := mintOne(t, r, clock, alice, alice)

	event, err := r.Approve(alice, id, bob)
	require.NoError(t, err)
	assert.Equal(t, entity.EventTypeApproval, event.Type)
	assert.Equal(t, alice, event.Holder)
	assert.Equal(t, bob, event.Spender)
	assert.Equal(t, id, event.ArtifactId)

	approved, err := r.GetApproved(id)
	require.NoError(t, err)
	assert.Equal(t, bob, approved)
}

func TestApproveClear(t *testing.T) {
	r, clock := newTestRegistry(t)
	alice := testAddress(0x01)
	bob := testAddress(0x02)
	id := mintOne(t, r, clock, alice, alice)

	_, err := r.Approve(alice, id, bob)
	require.NoError(t, err)

	// a zero spender clears the approval
	_, err = r.Approve(alice, id, common.ZeroAddress)
	require.NoError(t, err)

	approved, err := r.GetApproved(id)
	require.NoError(t, err)
	assert.Equal(t, common.ZeroAddress, approved)
}

func TestApproveByOperator(t *testing.T) {
	r, clock := newTestRegistry(t)
	alice := testAddress(0x01)
	bob := testAddress(0x02)
	carol := testAddress(0x03)
	id := mintOne(t, r, clock, alice, alice)

	_, err := r.SetApprovalForAll(alice, bob, true)
	require.NoError(t, err)

	// the fact names the owner as holder, not the operator who called
	event, err := r.Approve(bob, id, carol)
	require.NoError(t, err)
	assert.Equal(t, alice, event.Holder)

	approved, err := r.GetApproved(id)
	require.NoError(t, err)
	assert.Equal(t, carol, approved)
}

func TestApproveUnauthorized(t *testing.T) {
	r, clock := newTestRegistry(t)
	alice := testAddress(0x01)
	bob := testAddress(0x02)
	id := mintOne(t, r, clock, alice, alice)

	_, err := r.Approve(bob, id, bob)
	assert.ErrorIs(t, err, errs.CallerNotOwnerNorApproved)
}

func TestApproveUnmintedToken(t *testing.T) {
	r, _ := newTestRegistry(t)
	alice := testAddress(0x01)

	_, err := r.Approve(alice, 1, alice)
	assert.ErrorIs(t, err, errs.InvalidToken)

	_, err = r.GetApproved(1)
	assert.ErrorIs(t, err, errs.InvalidToken)
}

func TestSetApprovalForAll(t *testing.T) {
	r, _ := newTestRegistry(t)
	alice := testAddress(0x01)
	bob := testAddress(0x02)

	assert.False(t, r.IsApprovedForAll(alice, bob))

	event, err := r.SetApprovalForAll(alice, bob, true)
	require.NoError(t, err)
	assert.Equal(t, entity.EventTypeOperatorApproval, event.Type)
	assert.Equal(t, alice, event.Holder)
	assert.Equal(t, bob, event.Operator)
	assert.True(t, event.Approved)
	assert.True(t, r.IsApprovedForAll(alice, bob))

	// approvals are directional
	assert.False(t, r.IsApprovedForAll(bob, alice))

	_, err = r.SetApprovalForAll(alice, bob, false)
	require.NoError(t, err)
	assert.False(t, r.IsApprovedForAll(alice, bob))
}

func TestSetApprovalForAllIdempotent(t *testing.T) {
	r, _ := newTestRegistry(t)
	alice := testAddress(0x01)
	bob := testAddress(0x02)

	// repeated identical grants succeed and each still emits its fact
	for i := 0; i < 2; i++ {
		event, err := r.SetApprovalForAll(alice, bob, true)
		require.NoError(t, err)
		assert.True(t, event.Approved)
	}
	assert.True(t, r.IsApprovedForAll(alice, bob))
}

func TestSetApprovalForAllSelf(t *testing.T) {
	r, _ := newTestRegistry(t)
	alice := testAddress(0x01)

	_, err := r.SetApprovalForAll(alice, alice, true)
	assert.ErrorIs(t, err, errs.ApproveToCaller)
}

func TestOperatorApprovalSurvivesTransfer(t *testing.T) {
	r, clock := newTestRegistry(t)
	alice := testAddress(0x01)
	bob := testAddress(0x02)
	carol := testAddress(0x03)
	id := mintOne(t, r, clock, alice, alice)

	_, err := r.SetApprovalForAll(alice, bob, true)
	require.NoError(t, err)

	_, err = r.Transfer(alice, alice, carol, id)
	require.NoError(t, err)

	// transfers clear single-spender approvals but not operator approvals
	assert.True(t, r.IsApprovedForAll(alice, bob))
}
