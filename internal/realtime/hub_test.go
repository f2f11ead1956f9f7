package realtime

import (
	"testing"

	"github.com/google/uuid"

	"github.com/raagrecording/raagrecording-backend/internal/pkg/logger"
)

func newTestHub(t *testing.T) *SSEHub {
	t.Helper()
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return NewSSEHub(log)
}

func TestHubBroadcastReachesSubscribedChannelOnly(t *testing.T) {
	hub := newTestHub(t)

	subscriber := hub.NewSSEClient(uuid.New())
	bystander := hub.NewSSEClient(uuid.New())
	hub.AddChannel(subscriber, RoleChannel("approver"))
	hub.AddChannel(bystander, RoleChannel("mixer"))

	msg := SSEMessage{
		Channel: RoleChannel("approver"),
		Event:   SSEEventNewTrackForApproval,
		Data:    map[string]any{"item_id": uuid.New()},
	}
	hub.Broadcast(msg)

	select {
	case got := <-subscriber.Outbound:
		if got.Event != SSEEventNewTrackForApproval {
			t.Fatalf("event = %q", got.Event)
		}
	default:
		t.Fatal("subscriber did not receive broadcast")
	}

	select {
	case got := <-bystander.Outbound:
		t.Fatalf("bystander received %+v", got)
	default:
	}
}

func TestHubDropsWhenOutboundFull(t *testing.T) {
	hub := newTestHub(t)

	client := hub.NewSSEClient(uuid.New())
	hub.AddChannel(client, BroadcastChannel)

	// Fill the buffer and then some; the overflow must not block.
	for i := 0; i < cap(client.Outbound)+5; i++ {
		hub.Broadcast(SSEMessage{Channel: BroadcastChannel, Event: SSEEventApprovalDecisionMade})
	}

	if len(client.Outbound) != cap(client.Outbound) {
		t.Fatalf("outbound len = %d, want full buffer %d", len(client.Outbound), cap(client.Outbound))
	}
}

func TestHubRemoveChannelStopsDelivery(t *testing.T) {
	hub := newTestHub(t)

	client := hub.NewSSEClient(uuid.New())
	shabadID := uuid.New()
	hub.AddChannel(client, ShabadChannel(shabadID))
	hub.RemoveChannel(client, ShabadChannel(shabadID))

	hub.Broadcast(SSEMessage{Channel: ShabadChannel(shabadID), Event: SSEEventNewCommunication})

	select {
	case got := <-client.Outbound:
		t.Fatalf("received after unsubscribe: %+v", got)
	default:
	}
}

func TestHubCloseClientTwiceIsSafe(t *testing.T) {
	hub := newTestHub(t)

	client := hub.NewSSEClient(uuid.New())
	hub.AddChannel(client, BroadcastChannel)

	// A user reconnecting mid-stream makes both the replacing request and
	// the old stream's teardown close the same client.
	hub.CloseClient(client)
	hub.CloseClient(client)

	if _, open := <-client.Outbound; open {
		t.Fatal("outbound still open after close")
	}
	// No subscriptions should survive either; a broadcast must not reach it.
	hub.Broadcast(SSEMessage{Channel: BroadcastChannel, Event: SSEEventApprovalDecisionMade})
}

func TestHubRemoveClientClearsAllSubscriptions(t *testing.T) {
	hub := newTestHub(t)

	client := hub.NewSSEClient(uuid.New())
	hub.AddChannel(client, RoleChannel("approver"))
	hub.AddChannel(client, BroadcastChannel)

	hub.RemoveClient(client)

	hub.Broadcast(SSEMessage{Channel: RoleChannel("approver"), Event: SSEEventNewTrackForApproval})
	hub.Broadcast(SSEMessage{Channel: BroadcastChannel, Event: SSEEventApprovalDecisionMade})

	select {
	case got := <-client.Outbound:
		t.Fatalf("received after removal: %+v", got)
	default:
	}
	if len(client.Channels) != 0 {
		t.Fatalf("channels not cleared: %v", client.Channels)
	}
}
