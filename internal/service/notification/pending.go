package notification

import (
	"sync"
	"time"

	"github.com/clockwise-org/planning-service-go/internal/domain/event"
)

type pendingEntry struct {
	evt     event.SchedulePublished
	addedAt time.Time
}

// PendingNotifications correlates a schedule-publish event with the
// asynchronous users-by-business-unit response that answers it. Publish
// events and responses race, so access is mutex guarded.
//
// Entries have no expiry: if the user service never answers, the entry
// stays until process restart. A TTL sweep would need agreement on how long
// a response can lag, which the user service does not document yet.
type PendingNotifications struct {
	mu      sync.Mutex
	entries map[string]pendingEntry
}

func NewPendingNotifications() *PendingNotifications {
	return &PendingNotifications{entries: make(map[string]pendingEntry)}
}

// Put registers evt under correlationID, replacing any previous entry.
func (p *PendingNotifications) Put(correlationID string, evt event.SchedulePublished) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.entries[correlationID] = pendingEntry{evt: evt, addedAt: time.Now()}
}

// Remove claims and deletes the entry for correlationID. The second return
// is false when no entry exists, which happens for duplicate or unsolicited
// responses.
func (p *PendingNotifications) Remove(correlationID string) (event.SchedulePublished, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	entry, ok := p.entries[correlationID]
	if ok {
		delete(p.entries, correlationID)
	}
	return entry.evt, ok
}

// Len reports the number of unclaimed entries.
func (p *PendingNotifications) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.entries)
}
