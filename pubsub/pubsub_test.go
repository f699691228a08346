package pubsub_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"gregoryjjb/ive/pubsub"
)

func TestPubsub(t *testing.T) {
	ps := pubsub.New[string]()

	_, ch1 := ps.Subscribe()
	id2, ch2 := ps.Subscribe()
	assert.Equal(t, 2, ps.Len())

	ps.Publish("a")
	assert.Equal(t, "a", <-ch1)
	assert.Equal(t, "a", <-ch2)

	ps.Unsubscribe(id2)
	_, open := <-ch2
	assert.False(t, open)

	ps.Publish("b")
	assert.Equal(t, "b", <-ch1)
	assert.Equal(t, 1, ps.Len())

	ps.Close()
	_, open = <-ch1
	assert.False(t, open)

	_, ch3 := ps.Subscribe()
	_, open = <-ch3
	assert.False(t, open)
}

func TestPubsub_DropsWhenFull(t *testing.T) {
	ps := pubsub.NewBuffered[int](1)
	_, ch := ps.Subscribe()

	ps.Publish(1)
	ps.Publish(2)

	assert.Equal(t, 1, <-ch)
	select {
	case v := <-ch:
		t.Fatalf("expected dropped message, got %d", v)
	default:
	}
}
