package registry

import (
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/artifact-registry/modules/registry/internal/entity"
)

// Replay rebuilds registry state from a journal, in sequence order. It applies
// recorded facts directly, without admission checks: the journal only contains
// facts that passed them when first recorded. Must run before the registry
// serves any call.
func (r *Registry) Replay(events []*entity.Event) error {
	release, err := r.enter()
	if err != nil {
		return err
	}
	defer release()

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, event := range events {
		switch event.Type {
		case entity.EventTypeIssued:
			if event.ArtifactId != r.nextId {
				return errors.Errorf("journal out of order: issued artifact %d, expected %d", event.ArtifactId, r.nextId)
			}
			r.records[event.ArtifactId] = artifactRecord{
				traitCommitment: event.TraitCommitment,
				layerCount:      event.LayerCount,
				issuedAtHeight:  event.Height,
				issuedAt:        event.Timestamp,
			}
			r.ledger.setOwner(event.ArtifactId, event.To)
			r.lastMintHeight[event.Caller] = event.Height
			r.nextId++
			r.totalMinted++
		case entity.EventTypeTransfer:
			// Issuance transfers (zero from) are covered by the issued fact.
			if event.From.IsZero() {
				continue
			}
			r.delegations.clearApproval(event.ArtifactId)
			r.ledger.setOwner(event.ArtifactId, event.To)
		case entity.EventTypeApproval:
			r.delegations.setApproval(event.ArtifactId, event.Spender)
		case entity.EventTypeOperatorApproval:
			r.delegations.setOperator(event.Holder, event.Operator, event.Approved)
		case entity.EventTypeRoyaltyConfigured:
			r.royaltyPayee = event.RoyaltyPayee
			r.royaltyBps = event.RoyaltyBps
		case entity.EventTypeBaseURIChanged:
			r.baseURI = event.NewBaseURI
		default:
			return errors.Errorf("unknown event type %q in journal", event.Type)
		}
	}
	return nil
}
