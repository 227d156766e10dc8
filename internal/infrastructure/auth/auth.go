package auth

import (
	"context"

	fbauth "firebase.google.com/go/v4/auth"

	"github.com/Hyperion302/swish/internal/domain/entity"
)

// TokenVerifier checks an ID token issued by the authentication service and
// resolves the caller identity.
type TokenVerifier interface {
	VerifyToken(ctx context.Context, token string) (*entity.Identity, error)
}

// FirebaseVerifier verifies ID tokens against Firebase Auth.
type FirebaseVerifier struct {
	client *fbauth.Client
}

func NewFirebaseVerifier(client *fbauth.Client) *FirebaseVerifier {
	return &FirebaseVerifier{client}
}

func (v *FirebaseVerifier) VerifyToken(ctx context.Context, token string) (*entity.Identity, error) {
	decoded, err := v.client.VerifyIDToken(ctx, token)
	if err != nil {
		return nil, err
	}
	identity := &entity.Identity{UID: decoded.UID}
	if email, ok := decoded.Claims["email"].(string); ok {
		identity.Email = email
	}
	if name, ok := decoded.Claims["name"].(string); ok {
		identity.Name = name
	}
	if picture, ok := decoded.Claims["picture"].(string); ok {
		identity.Picture = picture
	}
	return identity, nil
}
