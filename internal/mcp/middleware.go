package mcp

import (
	"context"
	"fmt"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/limfang/btoflow/internal/domain/identity"
)

type contextKey int

const personKey contextKey = iota

// personFromContext extracts the acting person from context.
func personFromContext(ctx context.Context) (identity.Person, bool) {
	p, ok := ctx.Value(personKey).(identity.Person)
	return p, ok
}

// IdentityResolver resolves an acting person from a bearer token.
type IdentityResolver interface {
	ResolveIdentity(ctx context.Context, token string) (*identity.Person, error)
}

// PersonGetter loads a person by NRIC. Used when auth is disabled.
type PersonGetter interface {
	Get(ctx context.Context, nric string) (*identity.Person, error)
}

// authMiddleware implements bearer token authentication as MCP middleware.
func authMiddleware(resolver IdentityResolver) sdkmcp.Middleware {
	return func(next sdkmcp.MethodHandler) sdkmcp.MethodHandler {
		return func(ctx context.Context, method string, req sdkmcp.Request) (sdkmcp.Result, error) {
			// Skip auth for protocol methods
			if method == "initialize" || method == "notifications/initialized" || method == "ping" {
				return next(ctx, method, req)
			}

			extra := req.GetExtra()
			if extra == nil || extra.Header == nil {
				return nil, fmt.Errorf("unauthorized: missing headers")
			}

			auth := extra.Header.Get("Authorization")
			token := strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
			if token == "" {
				return nil, fmt.Errorf("unauthorized: missing bearer token")
			}

			person, err := resolver.ResolveIdentity(ctx, token)
			if err != nil {
				return nil, fmt.Errorf("unauthorized: %w", err)
			}

			ctx = context.WithValue(ctx, personKey, *person)
			return next(ctx, method, req)
		}
	}
}

// localIdentityMiddleware injects a configured local person when auth is
// disabled. The person is loaded per request, so it works even when the
// people table is populated after startup.
func localIdentityMiddleware(people PersonGetter, nric string) sdkmcp.Middleware {
	return func(next sdkmcp.MethodHandler) sdkmcp.MethodHandler {
		return func(ctx context.Context, method string, req sdkmcp.Request) (sdkmcp.Result, error) {
			if nric != "" {
				if person, err := people.Get(ctx, nric); err == nil {
					ctx = context.WithValue(ctx, personKey, *person)
				}
			}
			return next(ctx, method, req)
		}
	}
}
