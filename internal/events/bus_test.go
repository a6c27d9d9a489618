package events

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBus_SubscribePublish(t *testing.T) {
	bus := NewBus()
	sub := bus.Subscribe(8)
	defer bus.Unsubscribe(sub)

	bus.Publish(New(ConferenceJoined, "s1", "room"))

	select {
	case got := <-sub.C:
		assert.Equal(t, ConferenceJoined, got.Kind)
		assert.Equal(t, "s1", string(got.SessionID))
		assert.NotEmpty(t, got.ID)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
	}
}

func TestBus_FanOut(t *testing.T) {
	bus := NewBus()
	sub1 := bus.Subscribe(4)
	sub2 := bus.Subscribe(4)
	defer bus.Unsubscribe(sub1)
	defer bus.Unsubscribe(sub2)

	bus.Publish(New(MediaStateChanged, "", nil))

	for i, sub := range []*Subscription{sub1, sub2} {
		select {
		case <-sub.C:
		case <-time.After(time.Second):
			t.Fatalf("sub%d did not receive event", i+1)
		}
	}
}

func TestBus_NonBlockingDrop(t *testing.T) {
	bus := NewBus()
	sub := bus.Subscribe(1)
	defer bus.Unsubscribe(sub)

	bus.Publish(New(ConferenceWillJoin, "", nil))
	// Buffer is full, this one is dropped.
	bus.Publish(New(ConferenceJoined, "", nil))

	got := <-sub.C
	assert.Equal(t, ConferenceWillJoin, got.Kind)

	select {
	case <-sub.C:
		t.Fatal("expected channel to be empty after drop")
	default:
	}
}

func TestBus_Unsubscribe(t *testing.T) {
	bus := NewBus()
	sub := bus.Subscribe(4)

	bus.Unsubscribe(sub)

	_, ok := <-sub.C
	assert.False(t, ok, "channel should be closed after unsubscribe")

	// Double unsubscribe should not panic.
	bus.Unsubscribe(sub)
}

func TestBus_NilPublish(t *testing.T) {
	var bus *Bus
	bus.Publish(New(ConferenceLeft, "", nil))
}

func TestEvent_MarshalJSON(t *testing.T) {
	e := New(DevicesListUpdated, "s1", []string{}).WithErr(errors.New("no devices"))

	raw, err := json.Marshal(e)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, "devices_list_updated", got["type"])
	assert.Equal(t, "s1", got["sessionId"])
	assert.Equal(t, "no devices", got["error"])
	assert.Equal(t, e.ID, got["id"])
}
