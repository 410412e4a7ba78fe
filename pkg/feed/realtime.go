package feed

import (
	"context"
	"errors"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/inspo/pkg/domain"
	"github.com/umputun/inspo/pkg/store"
)

// ChangeSource provides a change-event subscription over the raw items
// relation plus the single-item read used to re-resolve events
type ChangeSource interface {
	Subscribe() (id string, events <-chan store.ChangeEvent)
	Unsubscribe(id string)
	GetFeedItem(ctx context.Context, id string) (*domain.FeedItem, error)
}

// Handlers are the optional callbacks invoked with fully reconciled rows
type Handlers struct {
	OnInsert func(*domain.FeedItem)
	OnUpdate func(*domain.FeedItem)
}

// Reconciler consumes item change events and re-resolves each bare event id
// into a fully denormalized feed row before invoking the matching handler.
// This channel is best-effort: malformed events, failed fetches and missing
// rows are dropped without surfacing an error.
type Reconciler struct {
	store ChangeSource
}

// NewReconciler creates a reconciler over the given change source
func NewReconciler(store ChangeSource) *Reconciler {
	return &Reconciler{store: store}
}

// Subscribe opens one change subscription and dispatches reconciled rows to
// the handlers until the returned teardown function is called. Multiple
// calls create independent subscriptions. If the event channel closes while
// the subscription is still wanted, the reconciler re-subscribes with
// backoff rather than going silently dead.
func (r *Reconciler) Subscribe(handlers Handlers) (teardown func()) {
	ctx, cancel := context.WithCancel(context.Background())
	// open the subscription before returning so events published right
	// after Subscribe returns are not lost to goroutine startup
	subID, events := r.store.Subscribe()
	lgr.Printf("[DEBUG] feed change subscription %s opened", subID)
	go r.run(ctx, subID, events, handlers)
	return cancel
}

func (r *Reconciler) run(ctx context.Context, subID string, events <-chan store.ChangeEvent, handlers Handlers) {
	delay := 100 * time.Millisecond
	const maxDelay = 30 * time.Second

	for {
		clean := r.consume(ctx, events, handlers)
		r.store.Unsubscribe(subID)

		if ctx.Err() != nil {
			return
		}
		if clean {
			delay = 100 * time.Millisecond
		}

		// channel dropped by the source, back off before re-subscribing
		lgr.Printf("[WARN] feed change subscription %s lost, re-subscribing in %v", subID, delay)
		select {
		case <-ctx.Done():
			return
		case <-time.After(delay):
		}
		if delay *= 2; delay > maxDelay {
			delay = maxDelay
		}

		subID, events = r.store.Subscribe()
		lgr.Printf("[DEBUG] feed change subscription %s opened", subID)
	}
}

// consume handles events until the channel closes or ctx is canceled;
// reports whether any event was delivered since subscribing
func (r *Reconciler) consume(ctx context.Context, events <-chan store.ChangeEvent, handlers Handlers) (sawEvents bool) {
	for {
		select {
		case <-ctx.Done():
			return sawEvents
		case ev, ok := <-events:
			if !ok {
				return sawEvents
			}
			sawEvents = true
			r.dispatch(ctx, ev, handlers)
		}
	}
}

// dispatch re-resolves one event into a denormalized row and invokes the
// matching handler. Every failure path drops the event silently; only
// freshness is affected, never correctness of the already-fetched feed.
func (r *Reconciler) dispatch(ctx context.Context, ev store.ChangeEvent, handlers Handlers) {
	if ev.ItemID == "" {
		return
	}

	var handler func(*domain.FeedItem)
	switch ev.Op {
	case store.OpInsert:
		handler = handlers.OnInsert
	case store.OpUpdate:
		handler = handlers.OnUpdate
	}
	if handler == nil {
		return
	}

	// the event payload lacks joined provider and engagement fields,
	// re-fetch the full row independently
	item, err := r.store.GetFeedItem(ctx, ev.ItemID)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			lgr.Printf("[DEBUG] dropped %s event for %s: %v", ev.Op, ev.ItemID, err)
		}
		return
	}
	if item == nil {
		return
	}

	handler(item)
}
