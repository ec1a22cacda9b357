package firebase

import (
	"context"
	"fmt"
	"strings"

	"firebase.google.com/go/v4/auth"

	"github.com/jhoicas/elikia-api/internal/domain"
	"github.com/jhoicas/elikia-api/internal/domain/entity"
	"github.com/jhoicas/elikia-api/internal/domain/repository"
)

var _ repository.Authenticator = (*Authenticator)(nil)

// TokenVerifier lo implementa *auth.Client.
type TokenVerifier interface {
	VerifyIDTokenAndCheckRevoked(ctx context.Context, idToken string) (*auth.Token, error)
}

// Authenticator verifica el ID token de Firebase Auth. El rol es el custom claim "role".
type Authenticator struct {
	verifier TokenVerifier
}

func NewAuthenticator(verifier TokenVerifier) *Authenticator {
	return &Authenticator{verifier: verifier}
}

func (a *Authenticator) Authenticate(ctx context.Context, creds repository.Credentials) (*entity.User, error) {
	if creds.IDToken == "" {
		return nil, fmt.Errorf("firebase: %w: falta idToken", domain.ErrUnauthorized)
	}
	token, err := a.verifier.VerifyIDTokenAndCheckRevoked(ctx, creds.IDToken)
	if err != nil {
		return nil, fmt.Errorf("firebase: %w: %w", domain.ErrUnauthorized, err)
	}
	return userFromToken(token), nil
}

func userFromToken(token *auth.Token) *entity.User {
	email, _ := token.Claims["email"].(string)
	name, _ := token.Claims["name"].(string)
	role, _ := token.Claims["role"].(string)
	if name == "" {
		name = strings.SplitN(email, "@", 2)[0]
	}
	return &entity.User{
		ID:    token.UID,
		Email: email,
		Name:  name,
		Role:  entity.Role(strings.ToUpper(strings.TrimSpace(role))),
	}
}
