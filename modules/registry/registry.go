package registry

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/Cleverse/go-utilities/utils"
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/artifact-registry/common"
	"github.com/gaze-network/artifact-registry/common/errs"
	"github.com/gaze-network/artifact-registry/modules/registry/constants"
	"github.com/gaze-network/artifact-registry/modules/registry/internal/entity"
	"github.com/gaze-network/uint128"
)

// artifactRecord is the immutable per-artifact data, written once at mint.
type artifactRecord struct {
	traitCommitment common.Hash
	layerCount      uint8
	issuedAtHeight  uint64
	issuedAt        time.Time
}

type Config struct {
	Name       string
	Symbol     string
	BaseURI    string
	Controller common.Address
	// MintPrice is the fixed mint price. Zero means constants.DefaultMintPrice.
	MintPrice uint128.Uint128
}

// Registry is the owning aggregate for all registry state: the ownership
// ledger, the delegation table, the immutable artifact records, the mint
// counters and the royalty policy. All mutating entry points hold the
// single-flight guard for their full duration; a second mutating call while
// one is in flight fails with errs.Reentrancy instead of observing partial
// state. Mutations are all-or-nothing: on any failure no state change
// survives.
type Registry struct {
	mu       sync.RWMutex
	inFlight atomic.Bool

	name       string
	symbol     string
	baseURI    string
	controller common.Address
	mintPrice  uint128.Uint128
	clock      Clock
	receiver   ReceiverChecker

	ledger         *Ledger
	delegations    *DelegationTable
	records        map[uint64]artifactRecord
	lastMintHeight map[common.Address]uint64
	nextId         uint64
	totalMinted    uint64
	royaltyPayee   common.Address
	royaltyBps     uint16
}

type Option func(*Registry)

// WithClock overrides the logical block clock.
func WithClock(clock Clock) Option {
	return func(r *Registry) { r.clock = clock }
}

// WithReceiverChecker overrides the safe-transfer recipient check.
func WithReceiverChecker(receiver ReceiverChecker) Option {
	return func(r *Registry) { r.receiver = receiver }
}

func New(cfg Config, opts ...Option) *Registry {
	ledger := NewLedger()
	r := &Registry{
		name:       cfg.Name,
		symbol:     cfg.Symbol,
		baseURI:    cfg.BaseURI,
		controller: cfg.Controller,
		mintPrice:  utils.Default(cfg.MintPrice, constants.DefaultMintPrice),
		clock: IntervalClock{
			Genesis:  time.Unix(0, 0).UTC(),
			Interval: 12 * time.Second,
		},
		receiver:       AcceptAllReceiver{},
		ledger:         ledger,
		delegations:    NewDelegationTable(ledger),
		records:        make(map[uint64]artifactRecord),
		lastMintHeight: make(map[common.Address]uint64),
		nextId:         1,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// enter acquires the single-flight mutation guard. The returned release must
// run on every exit path; callers defer it immediately.
func (r *Registry) enter() (release func(), err error) {
	if !r.inFlight.CompareAndSwap(false, true) {
		return nil, errors.WithStack(errs.Reentrancy)
	}
	return func() { r.inFlight.Store(false) }, nil
}

func (r *Registry) newEvent(eventType entity.EventType, caller common.Address) *entity.Event {
	return &entity.Event{
		Type:      eventType,
		Height:    r.clock.Height(),
		Timestamp: time.Now(),
		Caller:    caller,
	}
}

// Read surface. Reads never mutate and are safe concurrently with mutations.

func (r *Registry) Name() string {
	return r.name
}

func (r *Registry) Symbol() string {
	return r.symbol
}

func (r *Registry) BaseURI() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.baseURI
}

func (r *Registry) Controller() common.Address {
	return r.controller
}

func (r *Registry) MintPrice() uint128.Uint128 {
	return r.mintPrice
}

func (r *Registry) Height() uint64 {
	return r.clock.Height()
}

func (r *Registry) TotalMinted() uint64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.totalMinted
}

// RemainingSupply returns the number of artifacts still mintable.
func (r *Registry) RemainingSupply() uint64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.totalMinted >= constants.MaxSupply {
		return 0
	}
	return constants.MaxSupply - r.totalMinted
}

func (r *Registry) NextId() uint64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.nextId
}

func (r *Registry) OwnerOf(id uint64) (common.Address, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.ledger.OwnerOf(id)
}

func (r *Registry) BalanceOf(holder common.Address) (uint64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.ledger.BalanceOf(holder)
}

func (r *Registry) GetApproved(id uint64) (common.Address, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.delegations.GetApproved(id)
}

func (r *Registry) IsApprovedForAll(holder common.Address, operator common.Address) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.delegations.IsApprovedForAll(holder, operator)
}

// Artifact returns the full live view of an artifact: its immutable record
// plus the current owner. Returns errs.InvalidToken for unminted ids.
func (r *Registry) Artifact(id uint64) (*entity.Artifact, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	record, ok := r.records[id]
	if !ok {
		return nil, errors.Wrapf(errs.InvalidToken, "artifact %d", id)
	}
	owner, err := r.ledger.OwnerOf(id)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return &entity.Artifact{
		Id:              id,
		Owner:           owner,
		TraitCommitment: record.traitCommitment,
		LayerCount:      record.layerCount,
		IssuedAtHeight:  record.issuedAtHeight,
		IssuedAt:        record.issuedAt,
	}, nil
}

// Holdings returns a snapshot of holder -> artifact count.
func (r *Registry) Holdings() map[common.Address]uint64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.ledger.holdings()
}

// CooldownBlocksRemaining returns how many blocks remain before caller may
// mint again, 0 if the caller never minted or the window has passed.
func (r *Registry) CooldownBlocksRemaining(caller common.Address) uint64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	last, ok := r.lastMintHeight[caller]
	if !ok || last == 0 {
		return 0
	}
	height := r.clock.Height()
	if height >= last+constants.CooldownBlocks {
		return 0
	}
	return last + constants.CooldownBlocks - height
}

// SupportsCapability reports whether the registry implements the capability
// identified by the given 4-byte id.
func (r *Registry) SupportsCapability(id [4]byte) bool {
	switch id {
	case constants.CapabilityArtifact, constants.CapabilityMetadata, constants.CapabilityRoyalty:
		return true
	}
	return false
}
