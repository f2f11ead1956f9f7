package bus

import (
	"context"

	"github.com/raagrecording/raagrecording-backend/internal/realtime"
)

// Bus fans SSE messages out across process instances. Publish pushes a
// message onto the shared channel; StartForwarder delivers every message
// published by any instance (including this one) to onMsg.
type Bus interface {
	Publish(ctx context.Context, msg realtime.SSEMessage) error
	StartForwarder(ctx context.Context, onMsg func(m realtime.SSEMessage)) error
	Close() error
}
