package entity

import (
	"time"

	"github.com/gaze-network/artifact-registry/common"
	"github.com/gaze-network/uint128"
)

type EventType string

const (
	EventTypeTransfer          EventType = "transfer"
	EventTypeIssued            EventType = "issued"
	EventTypeApproval          EventType = "approval"
	EventTypeOperatorApproval  EventType = "operator_approval"
	EventTypeRoyaltyConfigured EventType = "royalty_configured"
	EventTypeBaseURIChanged    EventType = "base_uri_changed"
)

// Event is one journaled registry fact. Exactly one event is appended per state
// transition, never on failure. Fields are populated per Type; unused fields
// stay zero.
type Event struct {
	// Sequence is assigned by the journal on append, starting at 1.
	Sequence  uint64
	Type      EventType
	Height    uint64
	Timestamp time.Time
	// Caller is the principal that performed the call. Journal-internal, not
	// part of the public fact payload.
	Caller common.Address

	// transfer / issued
	From       common.Address
	To         common.Address
	ArtifactId uint64

	// issued
	TraitCommitment common.Hash
	LayerCount      uint8
	Payment         uint128.Uint128

	// approval / operator_approval
	Holder   common.Address
	Spender  common.Address
	Operator common.Address
	Approved bool

	// royalty_configured
	RoyaltyPayee common.Address
	RoyaltyBps   uint16

	// base_uri_changed
	PreviousBaseURI string
	NewBaseURI      string
}
