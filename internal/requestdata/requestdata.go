package requestdata

import (
	"context"

	"github.com/google/uuid"

	types "github.com/voxscribe/transcription-backend/internal/domain"
)

type requestDataKey struct{}

// RequestData carries the verified actor identity for one request.
type RequestData struct {
	UserID      uuid.UUID
	Role        types.Role
	IsActive    bool
	TokenString string
}

func WithRequestData(ctx context.Context, rd *RequestData) context.Context {
	return context.WithValue(ctx, requestDataKey{}, rd)
}

func GetRequestData(ctx context.Context) *RequestData {
	if rd, ok := ctx.Value(requestDataKey{}).(*RequestData); ok {
		return rd
	}
	return nil
}
