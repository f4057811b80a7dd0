// Package middleware holds the gin middleware chain of the HTTP API.
package middleware

import "context"

type contextKey struct{ name string }

var clientIPKey = contextKey{"client_ip"}

// WithClientIP returns a context carrying the caller's IP.
func WithClientIP(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, clientIPKey, ip)
}

// ClientIP returns the IP set by WithClientIP, or "" if none. It matches audit.IPExtractor.
func ClientIP(ctx context.Context) string {
	v, _ := ctx.Value(clientIPKey).(string)
	return v
}
