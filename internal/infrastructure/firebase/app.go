// Package firebase implementa el backend sobre Cloud Firestore y la verificación de identidad
// con Firebase Auth, ambos a partir de la misma App del Admin SDK.
package firebase

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"google.golang.org/api/option"

	"github.com/jhoicas/elikia-api/internal/domain"
	"github.com/jhoicas/elikia-api/pkg/config"
)

// NewApp inicializa el Admin SDK con el JSON de la cuenta de servicio (o la ruta al archivo).
func NewApp(ctx context.Context, cfg config.FirebaseConfig) (*firebase.App, error) {
	var opts []option.ClientOption
	switch {
	case cfg.CredentialsJSON != "":
		opts = append(opts, option.WithCredentialsJSON([]byte(cfg.CredentialsJSON)))
	case cfg.CredentialsFile != "":
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}
	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.ProjectID}, opts...)
	if err != nil {
		return nil, fmt.Errorf("firebase app: %w: %w", domain.ErrConfigurationMissing, err)
	}
	return app, nil
}
