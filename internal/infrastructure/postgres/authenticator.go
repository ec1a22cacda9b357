package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/jhoicas/elikia-api/internal/domain"
	"github.com/jhoicas/elikia-api/internal/domain/entity"
	"github.com/jhoicas/elikia-api/internal/domain/repository"
)

var _ repository.Authenticator = (*Authenticator)(nil)

// supabaseAudience audiencia de los access tokens de usuarios logueados.
const supabaseAudience = "authenticated"

type supabaseClaims struct {
	jwt.RegisteredClaims
	Email        string         `json:"email"`
	AppMetadata  map[string]any `json:"app_metadata"`
	UserMetadata map[string]any `json:"user_metadata"`
}

// Authenticator verifica el access token emitido por Supabase Auth (HS256 con el JWT secret
// del proyecto). El rol sale de app_metadata.role, que solo el servidor puede escribir; si no
// está se usa user_metadata.role.
type Authenticator struct {
	secret []byte
}

func NewAuthenticator(jwtSecret string) *Authenticator {
	return &Authenticator{secret: []byte(jwtSecret)}
}

func (a *Authenticator) Authenticate(_ context.Context, creds repository.Credentials) (*entity.User, error) {
	if creds.IDToken == "" {
		return nil, fmt.Errorf("supabase: %w: falta idToken", domain.ErrUnauthorized)
	}
	claims := &supabaseClaims{}
	_, err := jwt.ParseWithClaims(creds.IDToken, claims,
		func(*jwt.Token) (interface{}, error) { return a.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithAudience(supabaseAudience),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("supabase: %w: %w", domain.ErrUnauthorized, err)
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("supabase: %w: token sin sub", domain.ErrUnauthorized)
	}

	role := metadataString(claims.AppMetadata, "role")
	if role == "" {
		role = metadataString(claims.UserMetadata, "role")
	}
	name := metadataString(claims.UserMetadata, "full_name")
	if name == "" {
		name = metadataString(claims.UserMetadata, "name")
	}
	if name == "" {
		name = strings.SplitN(claims.Email, "@", 2)[0]
	}
	return &entity.User{
		ID:    claims.Subject,
		Email: claims.Email,
		Name:  name,
		Role:  entity.Role(strings.ToUpper(role)),
	}, nil
}

func metadataString(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return strings.TrimSpace(s)
}
