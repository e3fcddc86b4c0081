package middleware

import (
	"context"

	firebase "firebase.google.com/go/v4"
	fbauth "firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"
)

type FirebaseAuthConfig struct {
	ProjectID       string
	CredentialsJSON string
}

// NewFirebaseAuthClient builds an auth client. Without CredentialsJSON it
// falls back to Application Default Credentials.
func NewFirebaseAuthClient(ctx context.Context, cfg FirebaseAuthConfig) (*fbauth.Client, error) {
	var opts []option.ClientOption
	if cfg.CredentialsJSON != "" {
		opts = append(opts, option.WithCredentialsJSON([]byte(cfg.CredentialsJSON)))
	}

	var appCfg *firebase.Config
	if cfg.ProjectID != "" {
		appCfg = &firebase.Config{ProjectID: cfg.ProjectID}
	}

	app, err := firebase.NewApp(ctx, appCfg, opts...)
	if err != nil {
		return nil, err
	}
	return app.Auth(ctx)
}
