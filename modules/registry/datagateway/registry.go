package datagateway

import (
	"context"

	"github.com/gaze-network/artifact-registry/common"
	"github.com/gaze-network/artifact-registry/modules/registry/internal/entity"
)

type RegistryDataGateway interface {
	RegistryReaderDataGateway
	RegistryWriterDataGateway

	// BeginRegistryTx returns a new RegistryDataGateway with transaction enabled. All write operations performed in this datagateway must be committed to persist changes.
	BeginRegistryTx(ctx context.Context) (RegistryDataGatewayWithTx, error)
}

type RegistryDataGatewayWithTx interface {
	RegistryDataGateway
	Tx
}

// EventFilter narrows a journal query. Zero-value fields are ignored.
type EventFilter struct {
	Type       entity.EventType
	ArtifactId uint64
	// Address matches events whose caller, from, to, holder, spender or
	// operator equals the given address.
	Address    common.Address
	FromHeight uint64
	ToHeight   uint64
}

type RegistryReaderDataGateway interface {
	// GetEvents returns journal events in sequence order, filterable by type,
	// artifact id, address and height range. Use limit = -1 as no limit.
	GetEvents(ctx context.Context, filter EventFilter, limit int32, offset int32) ([]*entity.Event, error)
	// CountEvents returns the number of journaled events.
	CountEvents(ctx context.Context) (uint64, error)

	// GetArtifact returns the indexed artifact row. Returns errs.NotFound if
	// the artifact was never issued.
	GetArtifact(ctx context.Context, id uint64) (*entity.Artifact, error)
	// GetArtifacts returns indexed artifact rows sorted by id. If owner is
	// non-zero, only that holder's artifacts are returned. Use limit = -1 as
	// no limit.
	GetArtifacts(ctx context.Context, owner common.Address, limit int32, offset int32) ([]*entity.Artifact, error)
	// CountArtifacts returns the number of indexed artifacts.
	CountArtifacts(ctx context.Context) (uint64, error)
}

type RegistryWriterDataGateway interface {
	// CreateEvents appends events to the journal in the given order and
	// assigns their sequence numbers.
	CreateEvents(ctx context.Context, events []*entity.Event) error
	// CreateArtifact records a freshly issued artifact for indexed reads.
	CreateArtifact(ctx context.Context, artifact *entity.Artifact) error
	// UpdateArtifactOwner keeps the indexed artifact row in sync after a
	// transfer.
	UpdateArtifactOwner(ctx context.Context, id uint64, owner common.Address) error
}
