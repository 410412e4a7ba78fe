package store

import (
	"sync"

	"github.com/go-pkgz/lgr"
	"github.com/google/uuid"
)

// ChangeOp is the kind of structural mutation on the items relation
type ChangeOp string

// change operations emitted to subscribers
const (
	OpInsert ChangeOp = "insert"
	OpUpdate ChangeOp = "update"
)

// ChangeEvent describes one item mutation. It carries the bare row id only;
// consumers re-resolve the full denormalized row themselves.
type ChangeEvent struct {
	Op     ChangeOp
	ItemID string
}

const subscriberBuffer = 64

// notifier fans item change events out to subscribers. Sends never block
// writers; a subscriber with a full buffer loses events.
type notifier struct {
	mu   sync.RWMutex
	subs map[string]chan ChangeEvent
}

func newNotifier() *notifier {
	return &notifier{subs: make(map[string]chan ChangeEvent)}
}

func (n *notifier) subscribe() (id string, events <-chan ChangeEvent) {
	ch := make(chan ChangeEvent, subscriberBuffer)
	id = uuid.New().String()

	n.mu.Lock()
	n.subs[id] = ch
	n.mu.Unlock()

	return id, ch
}

func (n *notifier) unsubscribe(id string) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if ch, ok := n.subs[id]; ok {
		delete(n.subs, id)
		close(ch)
	}
}

func (n *notifier) publish(ev ChangeEvent) {
	n.mu.RLock()
	defer n.mu.RUnlock()

	for id, ch := range n.subs {
		select {
		case ch <- ev:
		default:
			lgr.Printf("[WARN] change subscriber %s full, dropping %s event for %s", id, ev.Op, ev.ItemID)
		}
	}
}

func (n *notifier) closeAll() {
	n.mu.Lock()
	defer n.mu.Unlock()

	for id, ch := range n.subs {
		delete(n.subs, id)
		close(ch)
	}
}

// Subscribe opens a change-event subscription on the items relation and
// returns its id and receive channel. Each call creates an independent
// subscription; release it with Unsubscribe.
func (s *Store) Subscribe() (id string, events <-chan ChangeEvent) {
	return s.notifier.subscribe()
}

// Unsubscribe releases a change-event subscription and closes its channel
func (s *Store) Unsubscribe(id string) {
	s.notifier.unsubscribe(id)
}
