package bridge

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func zapNop() *zap.Logger { return zap.NewNop() }

func newTestClient(id string, buf int) *Client {
	return newClient(nil, id, buf, zapNop())
}

func TestHub_RegisterUnregister(t *testing.T) {
	hub := NewHub(nil)
	c := newTestClient("a", 1)

	hub.Register(c)
	assert.Equal(t, 1, hub.ClientCount())

	hub.Unregister(c)
	assert.Equal(t, 0, hub.ClientCount())

	_, open := <-c.send
	assert.False(t, open)

	// A second unregister is a no-op.
	assert.NotPanics(t, func() { hub.Unregister(c) })
}

func TestHub_BroadcastDropsWhenFull(t *testing.T) {
	hub := NewHub(nil)
	fast := newTestClient("fast", 4)
	slow := newTestClient("slow", 1)
	hub.Register(fast)
	hub.Register(slow)

	hub.Broadcast(NewEvent(EventCatalogChanged, CatalogChangedData{Command: "add_app"}))
	hub.Broadcast(NewEvent(EventCatalogChanged, CatalogChangedData{Command: "remove_app"}))

	assert.Len(t, fast.send, 2)
	assert.Len(t, slow.send, 1)

	e := (<-slow.send).(Event)
	assert.Equal(t, "add_app", e.Data.(CatalogChangedData).Command)
}

func TestHub_Show(t *testing.T) {
	hub := NewHub(nil)
	assert.ErrorIs(t, hub.Show(), ErrNoClients)

	c := newTestClient("a", 1)
	hub.Register(c)
	assert.NoError(t, hub.Show())

	e := (<-c.send).(Event)
	assert.Equal(t, EventWindowShow, e.Type)
}

func TestClient_DeliverStopsWhenWriterGone(t *testing.T) {
	c := newTestClient("a", 1)
	c.send <- "queued"

	close(c.done)

	result := make(chan bool, 1)
	go func() { result <- c.deliver(context.Background(), "response") }()

	select {
	case ok := <-result:
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("deliver blocked on a full buffer after the writer exited")
	}
}

func TestClient_DeliverQueues(t *testing.T) {
	c := newTestClient("a", 1)

	assert.True(t, c.deliver(context.Background(), "response"))
	assert.Equal(t, "response", <-c.send)
}
