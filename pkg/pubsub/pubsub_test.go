package pubsub

import (
	"testing"
	"time"
)

func TestPublishSubscribe(t *testing.T) {
	ps := New()
	defer ps.Close()

	sub := ps.Subscribe(TopicTopologyChanged)
	if sub == nil {
		t.Fatal("Subscribe returned nil")
	}

	ps.Publish(TopicTopologyChanged, "force-1")

	select {
	case evt := <-sub.Channel():
		if evt.Topic != TopicTopologyChanged || evt.Payload != "force-1" {
			t.Errorf("unexpected event: %+v", evt)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
	}
}

func TestPublish_OtherTopicNotDelivered(t *testing.T) {
	ps := New()
	defer ps.Close()

	sub := ps.Subscribe(TopicForceSaved)
	ps.Publish(TopicTopologyChanged, nil)

	select {
	case evt := <-sub.Channel():
		t.Errorf("unexpected event delivered: %+v", evt)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestUnsubscribe_ClosesChannel(t *testing.T) {
	ps := New()
	defer ps.Close()

	sub := ps.Subscribe(TopicTopologyChanged)
	sub.Unsubscribe()

	if _, ok := <-sub.Channel(); ok {
		t.Error("expected closed channel after unsubscribe")
	}

	// Publishing after unsubscribe must not panic
	ps.Publish(TopicTopologyChanged, nil)
}

func TestClose_SubscribeAfterCloseReturnsNil(t *testing.T) {
	ps := New()
	ps.Close()
	if sub := ps.Subscribe(TopicTopologyChanged); sub != nil {
		t.Error("expected nil subscription after close")
	}
	// Double close must be safe
	ps.Close()
}

func TestPublish_FullBufferDoesNotBlock(t *testing.T) {
	ps := New()
	defer ps.Close()

	sub := ps.Subscribe(TopicTopologyChanged)
	done := make(chan struct{})
	go func() {
		for i := 0; i < 200; i++ {
			ps.Publish(TopicTopologyChanged, i)
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("publisher blocked on slow subscriber")
	}
	_ = sub
}
