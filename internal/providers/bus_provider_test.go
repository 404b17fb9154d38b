package providers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zhiyu/internal/models"
)

func TestBus_RecordAddedDelivery(t *testing.T) {
	bus := NewBusProvider()

	var got []RecordAddedEvent
	bus.SubscribeRecordAdded(func(e RecordAddedEvent) { got = append(got, e) })

	bus.PublishRecordAdded(RecordAddedEvent{Record: models.FishRecord{ID: "r_1"}})

	require.Len(t, got, 1)
	assert.Equal(t, "r_1", got[0].Record.ID)
}

func TestBus_MultipleSubscribers(t *testing.T) {
	bus := NewBusProvider()

	a, b := 0, 0
	bus.SubscribeAnnouncementPosted(func(AnnouncementPostedEvent) { a++ })
	bus.SubscribeAnnouncementPosted(func(AnnouncementPostedEvent) { b++ })

	bus.PublishAnnouncementPosted(AnnouncementPostedEvent{Message: models.SystemMessage{ID: "m_1"}})

	assert.Equal(t, 1, a)
	assert.Equal(t, 1, b)
}

func TestBus_Unsubscribe(t *testing.T) {
	bus := NewBusProvider()

	calls := 0
	unsub := bus.SubscribeRecordAdded(func(RecordAddedEvent) { calls++ })

	bus.PublishRecordAdded(RecordAddedEvent{})
	unsub()
	bus.PublishRecordAdded(RecordAddedEvent{})

	assert.Equal(t, 1, calls)
}

func TestBus_AuthChangedCarriesNilOnLogout(t *testing.T) {
	bus := NewBusProvider()

	var got []*models.Account
	bus.SubscribeAuthChanged(func(e AuthChangedEvent) { got = append(got, e.Account) })

	bus.PublishAuthChanged(AuthChangedEvent{Account: &models.Account{ID: "u_2"}})
	bus.PublishAuthChanged(AuthChangedEvent{Account: nil})

	require.Len(t, got, 2)
	require.NotNil(t, got[0])
	assert.Equal(t, "u_2", got[0].ID)
	assert.Nil(t, got[1])
}

func TestBus_PublishWithoutSubscribersIsSafe(t *testing.T) {
	bus := NewBusProvider()
	bus.PublishRecordAdded(RecordAddedEvent{})
	bus.PublishAnnouncementPosted(AnnouncementPostedEvent{})
	bus.PublishAuthChanged(AuthChangedEvent{})
}
