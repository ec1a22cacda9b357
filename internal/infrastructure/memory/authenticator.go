package memory

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/elikia-api/internal/domain"
	"github.com/jhoicas/elikia-api/internal/domain/entity"
	"github.com/jhoicas/elikia-api/internal/domain/repository"
)

var _ repository.Authenticator = (*LocalAuthenticator)(nil)

// Account cuenta local con la contraseña hasheada con bcrypt.
type Account struct {
	User         entity.User
	PasswordHash string
}

// ParseAccounts lee "email:ROL:hash-bcrypt,email:ROL:hash-bcrypt". El id del usuario es el email.
func ParseAccounts(raw string) ([]Account, error) {
	var out []Account
	for _, entry := range strings.Split(raw, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, ":", 3)
		if len(parts) != 3 || parts[0] == "" || parts[2] == "" {
			return nil, fmt.Errorf("cuenta local %q: %w: formato email:ROL:hash", entry, domain.ErrInvalidInput)
		}
		email := strings.ToLower(parts[0])
		out = append(out, Account{
			User: entity.User{
				ID:    email,
				Email: email,
				Name:  strings.SplitN(email, "@", 2)[0],
				Role:  entity.Role(strings.ToUpper(parts[1])),
			},
			PasswordHash: parts[2],
		})
	}
	return out, nil
}

// DemoAccounts una cuenta por rol con contraseña "elikia" (solo APP_ENV=development).
func DemoAccounts() ([]Account, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte("elikia"), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	demo := []struct {
		email string
		name  string
		role  entity.Role
	}{
		{"admin@elikia.local", "Admin", entity.RoleAdmin},
		{"caisse@elikia.local", "Caisse", entity.RoleCaisse},
		{"stock@elikia.local", "Gestock", entity.RoleGestock},
	}
	out := make([]Account, 0, len(demo))
	for _, d := range demo {
		out = append(out, Account{
			User:         entity.User{ID: d.email, Email: d.email, Name: d.name, Role: d.role},
			PasswordHash: string(hash),
		})
	}
	return out, nil
}

// LocalAuthenticator verifica email y contraseña contra cuentas configuradas.
type LocalAuthenticator struct {
	accounts map[string]Account
}

func NewLocalAuthenticator(accounts []Account) *LocalAuthenticator {
	m := make(map[string]Account, len(accounts))
	for _, a := range accounts {
		m[strings.ToLower(a.User.Email)] = a
	}
	return &LocalAuthenticator{accounts: m}
}

func (a *LocalAuthenticator) Authenticate(_ context.Context, creds repository.Credentials) (*entity.User, error) {
	acc, ok := a.accounts[strings.ToLower(strings.TrimSpace(creds.Email))]
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(acc.PasswordHash), []byte(creds.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	u := acc.User
	return &u, nil
}
