package providers

import (
	"sync"

	"zhiyu/internal/models"
)

// Event payloads. Delivery is synchronous and best-effort: subscribers run
// on the publisher's goroutine, missed events are not replayed.

type RecordAddedEvent struct {
	Record models.FishRecord
}

type AnnouncementPostedEvent struct {
	Message models.SystemMessage
}

type AuthChangedEvent struct {
	// Account is nil after a logout.
	Account *models.Account
}

type BusProviderInterface interface {
	PublishRecordAdded(e RecordAddedEvent)
	SubscribeRecordAdded(fn func(RecordAddedEvent)) func()
	PublishAnnouncementPosted(e AnnouncementPostedEvent)
	SubscribeAnnouncementPosted(fn func(AnnouncementPostedEvent)) func()
	PublishAuthChanged(e AuthChangedEvent)
	SubscribeAuthChanged(fn func(AuthChangedEvent)) func()
}

type BusProvider struct {
	mu           sync.RWMutex
	nextID       int
	recordAdded  map[int]func(RecordAddedEvent)
	announcement map[int]func(AnnouncementPostedEvent)
	authChanged  map[int]func(AuthChangedEvent)
}

func NewBusProvider() BusProviderInterface {
	return &BusProvider{
		recordAdded:  make(map[int]func(RecordAddedEvent)),
		announcement: make(map[int]func(AnnouncementPostedEvent)),
		authChanged:  make(map[int]func(AuthChangedEvent)),
	}
}

func subscribe[T any](b *BusProvider, handlers map[int]func(T), fn func(T)) func() {
	b.mu.Lock()
	id := b.nextID
	b.nextID++
	handlers[id] = fn
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		delete(handlers, id)
		b.mu.Unlock()
	}
}

func publish[T any](b *BusProvider, handlers map[int]func(T), e T) {
	b.mu.RLock()
	snapshot := make([]func(T), 0, len(handlers))
	for _, fn := range handlers {
		snapshot = append(snapshot, fn)
	}
	b.mu.RUnlock()

	for _, fn := range snapshot {
		fn(e)
	}
}

func (b *BusProvider) PublishRecordAdded(e RecordAddedEvent) {
	publish(b, b.recordAdded, e)
}

func (b *BusProvider) SubscribeRecordAdded(fn func(RecordAddedEvent)) func() {
	return subscribe(b, b.recordAdded, fn)
}

func (b *BusProvider) PublishAnnouncementPosted(e AnnouncementPostedEvent) {
	publish(b, b.announcement, e)
}

func (b *BusProvider) SubscribeAnnouncementPosted(fn func(AnnouncementPostedEvent)) func() {
	return subscribe(b, b.announcement, fn)
}

func (b *BusProvider) PublishAuthChanged(e AuthChangedEvent) {
	publish(b, b.authChanged, e)
}

func (b *BusProvider) SubscribeAuthChanged(fn func(AuthChangedEvent)) func() {
	return subscribe(b, b.authChanged, fn)
}
