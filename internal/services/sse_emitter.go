package services

import (
	"context"

	"github.com/raagrecording/raagrecording-backend/internal/realtime"
	"github.com/raagrecording/raagrecording-backend/internal/realtime/bus"
)

// SSEEmitter is the notification sink the engine publishes through. Emit is
// fire-and-forget; callers never act on its outcome.
type SSEEmitter interface {
	Emit(ctx context.Context, msg realtime.SSEMessage)
}

// HubEmitter delivers directly to the in-process hub (single instance).
type HubEmitter struct{ Hub *realtime.SSEHub }

func (e *HubEmitter) Emit(ctx context.Context, msg realtime.SSEMessage) {
	e.Hub.Broadcast(msg)
}

// RedisEmitter publishes onto the shared bus so every instance's hub
// forwards the message. Publish errors are deliberately discarded.
type RedisEmitter struct{ Bus bus.Bus }

func (e *RedisEmitter) Emit(ctx context.Context, msg realtime.SSEMessage) {
	_ = e.Bus.Publish(ctx, msg)
}

// NopEmitter is the default sink; it lets the engine emit unconditionally
// without a nil check when no transport is wired.
type NopEmitter struct{}

func (NopEmitter) Emit(ctx context.Context, msg realtime.SSEMessage) {}
