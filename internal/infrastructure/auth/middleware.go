package auth

import (
	"context"
	"log"
	"net/http"
	"strings"

	"github.com/Hyperion302/swish/internal/domain/entity"
)

type contextKey string

const identityContextKey contextKey = "identity"

// Authenticator resolves caller identities from bearer tokens.
type Authenticator struct {
	verifier TokenVerifier
}

func NewAuthenticator(verifier TokenVerifier) *Authenticator {
	return &Authenticator{verifier}
}

// Middleware decodes the Authorization header and adds the caller identity
// to the request context. A missing or invalid token leaves the request
// anonymous; handlers that need a caller reject those themselves, so every
// error reaches the client in the same envelope.
func (a *Authenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r)
		if !ok {
			next.ServeHTTP(w, r)
			return
		}
		identity, err := a.verifier.VerifyToken(r.Context(), token)
		if err != nil {
			log.Printf("failed to verify ID token: %v", err)
			next.ServeHTTP(w, r)
			return
		}
		next.ServeHTTP(w, r.WithContext(ContextWithIdentity(r.Context(), identity)))
	})
}

// ContextWithIdentity returns a context carrying the caller identity.
func ContextWithIdentity(ctx context.Context, identity *entity.Identity) context.Context {
	return context.WithValue(ctx, identityContextKey, identity)
}

// IdentityFromContext retrieves the caller identity from the request context.
func IdentityFromContext(ctx context.Context) *entity.Identity {
	identity, ok := ctx.Value(identityContextKey).(*entity.Identity)
	if !ok {
		return nil
	}
	return identity
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return "", false
	}
	token := strings.TrimSpace(header[len(prefix):])
	return token, token != ""
}
