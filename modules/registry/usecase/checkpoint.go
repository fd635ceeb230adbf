package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/artifact-registry/common"
	"github.com/gaze-network/artifact-registry/modules/registry/datagateway"
	"github.com/gaze-network/artifact-registry/modules/registry/internal/entity"
)

// Checkpoint is a verifiable digest of the journal, used for cross-node
// integrity reporting.
type Checkpoint struct {
	Height              uint64
	LatestSequence      uint64
	EventHash           common.Hash
	CumulativeEventHash common.Hash
}

// GetCheckpoint computes the hash chain over the full journal. The cumulative
// hash commits to every event up to the latest sequence, so two nodes with the
// same cumulative hash hold identical journals.
func (u *Usecase) GetCheckpoint(ctx context.Context) (Checkpoint, error) {
	events, err := u.registryDg.GetEvents(ctx, datagateway.EventFilter{}, -1, 0)
	if err != nil {
		return Checkpoint{}, errors.Wrap(err, "failed to load journal")
	}

	var checkpoint Checkpoint
	for _, event := range events {
		checkpoint.EventHash = hashEvent(event)
		checkpoint.CumulativeEventHash = sha256.Sum256(append(checkpoint.CumulativeEventHash[:], checkpoint.EventHash[:]...))
		checkpoint.LatestSequence = event.Sequence
		checkpoint.Height = event.Height
	}
	return checkpoint, nil
}

func hashEvent(event *entity.Event) common.Hash {
	fields := []string{
		fmt.Sprint(event.Sequence),
		string(event.Type),
		fmt.Sprint(event.Height),
		event.From.String(),
		event.To.String(),
		fmt.Sprint(event.ArtifactId),
		event.TraitCommitment.String(),
		fmt.Sprint(event.LayerCount),
		event.Payment.String(),
		event.Holder.String(),
		event.Spender.String(),
		event.Operator.String(),
		fmt.Sprint(event.Approved),
		event.RoyaltyPayee.String(),
		fmt.Sprint(event.RoyaltyBps),
		event.PreviousBaseURI,
		event.NewBaseURI,
	}
	// Length-prefix each field so values can't bleed into their neighbors and
	// collide across distinct events.
	h := sha256.New()
	var lenBuf [8]byte
	for _, field := range fields {
		binary.BigEndian.PutUint64(lenBuf[:], uint64(len(field)))
		h.Write(lenBuf[:])
		h.Write([]byte(field))
	}
	var hash common.Hash
	copy(hash[:], h.Sum(nil))
	return hash
}
