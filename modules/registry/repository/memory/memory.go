// Package memory provides an in-memory RegistryDataGateway, used for tests
// and single-binary runs without Postgres. The journal does not survive a
// process restart.
package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/artifact-registry/common"
	"github.com/gaze-network/artifact-registry/common/errs"
	"github.com/gaze-network/artifact-registry/modules/registry/datagateway"
	"github.com/gaze-network/artifact-registry/modules/registry/internal/entity"
	"github.com/samber/lo"
)

type Repository struct {
	mu        sync.RWMutex
	events    []*entity.Event
	artifacts map[uint64]*entity.Artifact
}

var (
	_ datagateway.RegistryDataGateway       = (*Repository)(nil)
	_ datagateway.RegistryDataGatewayWithTx = (*txRepository)(nil)
)

func NewRepository() *Repository {
	return &Repository{
		artifacts: make(map[uint64]*entity.Artifact),
	}
}

func (r *Repository) GetEvents(ctx context.Context, filter datagateway.EventFilter, limit int32, offset int32) ([]*entity.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return paginate(filterEvents(r.events, filter), limit, offset), nil
}

func (r *Repository) CountEvents(ctx context.Context) (uint64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return uint64(len(r.events)), nil
}

func (r *Repository) GetArtifact(ctx context.Context, id uint64) (*entity.Artifact, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	artifact, ok := r.artifacts[id]
	if !ok {
		return nil, errors.Wrapf(errs.NotFound, "artifact %d", id)
	}
	copied := *artifact
	return &copied, nil
}

func (r *Repository) GetArtifacts(ctx context.Context, owner common.Address, limit int32, offset int32) ([]*entity.Artifact, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	artifacts := lo.Values(r.artifacts)
	if !owner.IsZero() {
		artifacts = lo.Filter(artifacts, func(a *entity.Artifact, _ int) bool {
			return a.Owner == owner
		})
	}
	slices.SortFunc(artifacts, func(a, b *entity.Artifact) int {
		return int(a.Id) - int(b.Id)
	})
	artifacts = paginate(artifacts, limit, offset)
	return lo.Map(artifacts, func(a *entity.Artifact, _ int) *entity.Artifact {
		copied := *a
		return &copied
	}), nil
}

func (r *Repository) CountArtifacts(ctx context.Context) (uint64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return uint64(len(r.artifacts)), nil
}

func (r *Repository) CreateEvents(ctx context.Context, events []*entity.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.appendEvents(events)
	return nil
}

func (r *Repository) CreateArtifact(ctx context.Context, artifact *entity.Artifact) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *artifact
	r.artifacts[artifact.Id] = &copied
	return nil
}

func (r *Repository) UpdateArtifactOwner(ctx context.Context, id uint64, owner common.Address) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	artifact, ok := r.artifacts[id]
	if !ok {
		return errors.Wrapf(errs.NotFound, "artifact %d", id)
	}
	artifact.Owner = owner
	return nil
}

// appendEvents assigns sequence numbers. Callers hold r.mu.
func (r *Repository) appendEvents(events []*entity.Event) {
	for _, event := range events {
		copied := *event
		copied.Sequence = uint64(len(r.events)) + 1
		r.events = append(r.events, &copied)
	}
}

func (r *Repository) BeginRegistryTx(ctx context.Context) (datagateway.RegistryDataGatewayWithTx, error) {
	return &txRepository{parent: r}, nil
}

// txRepository buffers writes until Commit. Reads see the parent state plus
// buffered writes.
type txRepository struct {
	parent           *Repository
	pendingEvents    []*entity.Event
	pendingArtifacts []*entity.Artifact
	pendingOwners    map[uint64]common.Address
	done             bool
}

func (t *txRepository) Commit(ctx context.Context) error {
	if t.done {
		return nil
	}
	t.done = true

	t.parent.mu.Lock()
	defer t.parent.mu.Unlock()
	t.parent.appendEvents(t.pendingEvents)
	for _, artifact := range t.pendingArtifacts {
		copied := *artifact
		t.parent.artifacts[artifact.Id] = &copied
	}
	for id, owner := range t.pendingOwners {
		if artifact, ok := t.parent.artifacts[id]; ok {
			artifact.Owner = owner
		}
	}
	return nil
}

func (t *txRepository) Rollback(ctx context.Context) error {
	if t.done {
		return nil
	}
	t.done = true
	t.pendingEvents = nil
	t.pendingArtifacts = nil
	t.pendingOwners = nil
	return nil
}

func (t *txRepository) CreateEvents(ctx context.Context, events []*entity.Event) error {
	t.pendingEvents = append(t.pendingEvents, events...)
	return nil
}

func (t *txRepository) CreateArtifact(ctx context.Context, artifact *entity.Artifact) error {
	t.pendingArtifacts = append(t.pendingArtifacts, artifact)
	return nil
}

func (t *txRepository) UpdateArtifactOwner(ctx context.Context, id uint64, owner common.Address) error {
	if t.pendingOwners == nil {
		t.pendingOwners = make(map[uint64]common.Address)
	}
	t.pendingOwners[id] = owner
	for _, artifact := range t.pendingArtifacts {
		if artifact.Id == id {
			artifact.Owner = owner
		}
	}
	return nil
}

func (t *txRepository) GetEvents(ctx context.Context, filter datagateway.EventFilter, limit int32, offset int32) ([]*entity.Event, error) {
	t.parent.mu.RLock()
	combined := append(slices.Clone(t.parent.events), t.pendingEvents...)
	t.parent.mu.RUnlock()
	return paginate(filterEvents(combined, filter), limit, offset), nil
}

func (t *txRepository) CountEvents(ctx context.Context) (uint64, error) {
	count, err := t.parent.CountEvents(ctx)
	if err != nil {
		return 0, err
	}
	return count + uint64(len(t.pendingEvents)), nil
}

func (t *txRepository) GetArtifact(ctx context.Context, id uint64) (*entity.Artifact, error) {
	for _, artifact := range t.pendingArtifacts {
		if artifact.Id == id {
			copied := *artifact
			return &copied, nil
		}
	}
	return t.parent.GetArtifact(ctx, id)
}

func (t *txRepository) GetArtifacts(ctx context.Context, owner common.Address, limit int32, offset int32) ([]*entity.Artifact, error) {
	return t.parent.GetArtifacts(ctx, owner, limit, offset)
}

func (t *txRepository) CountArtifacts(ctx context.Context) (uint64, error) {
	count, err := t.parent.CountArtifacts(ctx)
	if err != nil {
		return 0, err
	}
	return count + uint64(len(t.pendingArtifacts)), nil
}

func (t *txRepository) BeginRegistryTx(ctx context.Context) (datagateway.RegistryDataGatewayWithTx, error) {
	return t, nil
}

func filterEvents(events []*entity.Event, filter datagateway.EventFilter) []*entity.Event {
	return lo.Filter(events, func(event *entity.Event, _ int) bool {
		return matchEvent(event, filter)
	})
}

func matchEvent(event *entity.Event, filter datagateway.EventFilter) bool {
	if filter.Type != "" && event.Type != filter.Type {
		return false
	}
	if filter.ArtifactId != 0 && event.ArtifactId != filter.ArtifactId {
		return false
	}
	if !filter.Address.IsZero() {
		addr := filter.Address
		if event.Caller != addr && event.From != addr && event.To != addr &&
			event.Holder != addr && event.Spender != addr && event.Operator != addr {
			return false
		}
	}
	if filter.FromHeight != 0 && event.Height < filter.FromHeight {
		return false
	}
	if filter.ToHeight != 0 && event.Height > filter.ToHeight {
		return false
	}
	return true
}

func paginate[T any](items []T, limit int32, offset int32) []T {
	if offset > 0 {
		if int(offset) >= len(items) {
			return nil
		}
		items = items[offset:]
	}
	if limit >= 0 && int(limit) < len(items) {
		items = items[:limit]
	}
	return slices.Clone(items)
}
