package api

import (
	"context"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/pagegate/pagegate/internal/api/presenter"
	"github.com/pagegate/pagegate/internal/core"
	"github.com/pagegate/pagegate/internal/session"
)

type principalKeyType struct{}

var principalKey principalKeyType

// PrincipalCtx retrieves the request principal from the context. A request
// that never went through the principal middleware is anonymous.
func PrincipalCtx(ctx context.Context) core.Principal {
	p, ok := ctx.Value(principalKey).(core.Principal)
	if !ok {
		return core.Anonymous()
	}
	return p
}

// Principal resolves the request credential into a core.Principal and stores
// it in the context. Requests without a credential proceed anonymously;
// requests with a bad credential are rejected here, so handlers never see a
// silently-downgraded caller.
func Principal(verifier *session.Verifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, err := verifier.PrincipalFromRequest(r)
			if err != nil {
				log.Ctx(r.Context()).Warn().Err(err).Msg("rejecting request credential")
				presenter.Error(w, r, "invalid credential", http.StatusUnauthorized)
				return
			}

			if principal.IsAuthenticated() {
				log.Ctx(r.Context()).UpdateContext(func(c zerolog.Context) zerolog.Context {
					return c.Str("login", principal.Login())
				})
			}

			ctx := context.WithValue(r.Context(), principalKey, principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
