package ctxutil

import (
	"context"

	"github.com/google/uuid"
)

// RequestData carries the authenticated caller's identity through the
// request context.
type RequestData struct {
	UserID   uuid.UUID
	Username string
	Role     string
}

type requestDataKey struct{}

// Default returns context.Background() when ctx is nil.
func Default(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}

func WithRequestData(ctx context.Context, rd *RequestData) context.Context {
	return context.WithValue(Default(ctx), requestDataKey{}, rd)
}

func GetRequestData(ctx context.Context) *RequestData {
	if ctx == nil {
		return nil
	}
	rd, _ := ctx.Value(requestDataKey{}).(*RequestData)
	return rd
}
