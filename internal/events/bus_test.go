package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPublishDeliversInSubscriptionOrder(t *testing.T) {
	bus := NewBus(nil)

	var order []string
	bus.Subscribe("settings-changed", func() { order = append(order, "first") })
	bus.Subscribe("settings-changed", func() { order = append(order, "second") })
	bus.Subscribe("settings-changed", func() { order = append(order, "third") })

	bus.Publish("settings-changed")

	assert.Equal(t, []string{"first", "second", "third"}, order)
}

func TestPublishIsSynchronous(t *testing.T) {
	bus := NewBus(nil)

	delivered := false
	bus.Subscribe("settings-changed", func() { delivered = true })

	bus.Publish("settings-changed")
	assert.True(t, delivered, "handler must run before Publish returns")
}

func TestPublishOnlyMatchingName(t *testing.T) {
	bus := NewBus(nil)

	var hits int
	bus.Subscribe("settings-changed", func() { hits++ })
	bus.Subscribe("document-reloaded", func() { hits += 100 })

	bus.Publish("settings-changed")
	assert.Equal(t, 1, hits)
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	bus := NewBus(nil)

	var hits int
	sub := bus.Subscribe("settings-changed", func() { hits++ })

	bus.Publish("settings-changed")
	sub.Unsubscribe()
	bus.Publish("settings-changed")

	assert.Equal(t, 1, hits)
}

func TestUnsubscribeDuringPublishDoesNotSkip(t *testing.T) {
	bus := NewBus(nil)

	var hits int
	var sub Subscription
	sub = bus.Subscribe("settings-changed", func() {
		hits++
		sub.Unsubscribe()
	})
	bus.Subscribe("settings-changed", func() { hits++ })

	// The snapshot at publish time still includes both handlers.
	bus.Publish("settings-changed")
	assert.Equal(t, 2, hits)

	bus.Publish("settings-changed")
	assert.Equal(t, 3, hits)
}

func TestNilBusAndHandlerAreSafe(t *testing.T) {
	var bus *Bus
	bus.Publish("settings-changed")

	real := NewBus(nil)
	sub := real.Subscribe("settings-changed", nil)
	sub.Unsubscribe()
	real.Publish("settings-changed")
}
