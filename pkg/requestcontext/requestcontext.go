// Package requestcontext carries per-request values through context without
// leaking context keys across packages.
package requestcontext

import (
	"context"

	id "lingo/pkg/domain"
)

type contextKey string

const (
	requestIDKey     contextKey = "request_id"
	userAgentKey     contextKey = "user_agent"
	deviceKey        contextKey = "device"
	interpreterIDKey contextKey = "interpreter_id"
)

// Device summarizes the client platform parsed from the User-Agent header.
// Captured for session audit attributes only; no decision logic reads it.
type Device struct {
	Browser string
	OS      string
	Mobile  bool
}

func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestID returns the request ID or "" when the middleware did not run.
func RequestID(ctx context.Context) string {
	v, _ := ctx.Value(requestIDKey).(string)
	return v
}

func WithUserAgent(ctx context.Context, ua string) context.Context {
	return context.WithValue(ctx, userAgentKey, ua)
}

func UserAgent(ctx context.Context) string {
	v, _ := ctx.Value(userAgentKey).(string)
	return v
}

func WithDevice(ctx context.Context, d Device) context.Context {
	return context.WithValue(ctx, deviceKey, d)
}

func DeviceInfo(ctx context.Context) (Device, bool) {
	d, ok := ctx.Value(deviceKey).(Device)
	return d, ok
}

func WithInterpreterID(ctx context.Context, iid id.InterpreterID) context.Context {
	return context.WithValue(ctx, interpreterIDKey, iid)
}

// InterpreterID returns the authenticated interpreter or the zero ID when
// the auth middleware did not run.
func InterpreterID(ctx context.Context) id.InterpreterID {
	v, _ := ctx.Value(interpreterIDKey).(id.InterpreterID)
	return v
}
