package context

import (
	"context"
)

// KeyClientInfo is the key for storing the caller's network details in context.
const KeyClientInfo ContextKey = "client_info"

// ClientInfo identifies where a request came from. It is recorded on audit logs.
type ClientInfo struct {
	IPAddress string
	UserAgent string
}

// WithClientInfo returns a new context carrying the caller's network details.
func WithClientInfo(ctx context.Context, info ClientInfo) context.Context {
	return context.WithValue(ctx, KeyClientInfo, info)
}

// GetClientInfo extracts the caller's network details. The zero value is returned when absent.
func GetClientInfo(ctx context.Context) ClientInfo {
	if info, ok := ctx.Value(KeyClientInfo).(ClientInfo); ok {
		return info
	}

	return ClientInfo{}
}
