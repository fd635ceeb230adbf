package usecase

import (
	"context"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/artifact-registry/internal/subscription"
	"github.com/gaze-network/artifact-registry/modules/registry"
	"github.com/gaze-network/artifact-registry/modules/registry/datagateway"
	"github.com/gaze-network/artifact-registry/modules/registry/internal/entity"
	"github.com/gaze-network/artifact-registry/pkg/logger"
	"github.com/gaze-network/artifact-registry/pkg/logger/slogx"
	"github.com/samber/lo"
)

type Usecase struct {
	registry   *registry.Registry
	registryDg datagateway.RegistryDataGateway

	subscribersMu sync.Mutex
	subscribers   []*subscription.Subscription[JournalNotification]
}

// JournalNotification announces a committed journal batch to subscribers.
type JournalNotification struct {
	Height uint64
	Events int
}

func New(registry *registry.Registry, registryDg datagateway.RegistryDataGateway) *Usecase {
	return &Usecase{
		registry:   registry,
		registryDg: registryDg,
	}
}

// Bootstrap replays the persisted journal into the registry. Must be called
// once, before the usecase serves any call.
func (u *Usecase) Bootstrap(ctx context.Context) error {
	events, err := u.registryDg.GetEvents(ctx, datagateway.EventFilter{}, -1, 0)
	if err != nil {
		return errors.Wrap(err, "failed to load journal")
	}
	if err := u.registry.Replay(events); err != nil {
		return errors.Wrap(err, "failed to replay journal")
	}
	logger.InfoContext(ctx, "replayed registry journal",
		slogx.Int("events", len(events)),
		slogx.Uint64("totalMinted", u.registry.TotalMinted()),
	)
	return nil
}

// journal appends events atomically, along with any artifact table writes
// queued by extra. The registry state is already mutated by the time this
// runs; on failure the error is surfaced and the journal stays authoritative
// for the next restart. Until that restart, reads may observe the unjournaled
// mutation.
func (u *Usecase) journal(ctx context.Context, events []*entity.Event, extra func(dg datagateway.RegistryDataGatewayWithTx) error) error {
	tx, err := u.registryDg.BeginRegistryTx(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to begin transaction")
	}
	defer func() {
		if rollbackErr := tx.Rollback(ctx); rollbackErr != nil {
			logger.WarnContext(ctx, "failed to rollback transaction", slogx.Error(rollbackErr))
		}
	}()

	if err := tx.CreateEvents(ctx, events); err != nil {
		return errors.Wrap(err, "failed to append events")
	}
	if extra != nil {
		if err := extra(tx); err != nil {
			return errors.WithStack(err)
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return errors.Wrap(err, "failed to commit transaction")
	}

	u.publishEvents(ctx, events)
	return nil
}

// SubscribeJournal announces each committed journal batch to the given channel
// until the client unsubscribes.
func (u *Usecase) SubscribeJournal(channel chan<- JournalNotification) *subscription.ClientSubscription[JournalNotification] {
	sub := subscription.NewSubscription(channel)
	u.subscribersMu.Lock()
	u.subscribers = append(u.subscribers, sub)
	u.subscribersMu.Unlock()
	return sub.Client()
}

func (u *Usecase) publishEvents(ctx context.Context, events []*entity.Event) {
	if len(events) == 0 {
		return
	}
	notification := JournalNotification{
		Height: events[len(events)-1].Height,
		Events: len(events),
	}

	u.subscribersMu.Lock()
	u.subscribers = lo.Filter(u.subscribers, func(sub *subscription.Subscription[JournalNotification], _ int) bool {
		return !sub.IsClosed()
	})
	subscribers := make([]*subscription.Subscription[JournalNotification], len(u.subscribers))
	copy(subscribers, u.subscribers)
	u.subscribersMu.Unlock()

	for _, sub := range subscribers {
		if err := sub.Send(ctx, notification); err != nil {
			logger.WarnContext(ctx, "failed to notify journal subscriber", slogx.Error(err))
		}
	}
}
