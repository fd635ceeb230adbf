package entity

import (
	"time"

	"github.com/gaze-network/artifact-registry/common"
)

// Artifact is a single issued artifact. TraitCommitment, LayerCount and the
// issuance fields are written once at mint and never change.
type Artifact struct {
	Id              uint64
	Owner           common.Address
	TraitCommitment common.Hash
	LayerCount      uint8
	IssuedAtHeight  uint64
	IssuedAt        time.Time
}
