package core

import "context"

type clientIPKey struct{}

// WithClientIP stores the requester's address on the context so audit entries
// written anywhere below the transport can carry it.
func WithClientIP(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, clientIPKey{}, ip)
}

// ClientIPFromContext returns the stored address, or "" when none was set.
func ClientIPFromContext(ctx context.Context) string {
	ip, _ := ctx.Value(clientIPKey{}).(string)
	return ip
}
