package firebase

import (
	"context"
	"errors"
	"fmt"
	"os"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

// ErrMissingEmail is returned for ID tokens that carry no email claim
var ErrMissingEmail = errors.New("firebase token has no email claim")

// Identity is the subset of a verified Firebase ID token the service uses
type Identity struct {
	UID           string
	Email         string
	Name          string
	Picture       string
	EmailVerified bool
}

// App holds the initialized Firebase app and auth client
type App struct {
	FirebaseApp *firebase.App
	AuthClient  *auth.Client
}

// InitFirebase initializes the Firebase application and authentication client
func InitFirebase(ctx context.Context, credentialsPath string, log *zap.Logger) (*App, error) {
	if credentialsPath == "" {
		return nil, fmt.Errorf("firebase credentials path not provided")
	}

	if _, err := os.Stat(credentialsPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("firebase credentials file not found at %s", credentialsPath)
	}

	firebaseApp, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(credentialsPath))
	if err != nil {
		return nil, fmt.Errorf("error initializing firebase app: %w", err)
	}

	authClient, err := firebaseApp.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("error getting firebase auth client: %w", err)
	}

	log.Info("Firebase app and auth client initialized")
	return &App{FirebaseApp: firebaseApp, AuthClient: authClient}, nil
}

// VerifyIDToken checks the token signature with Firebase and extracts the identity claims
func (a *App) VerifyIDToken(ctx context.Context, idToken string) (*Identity, error) {
	token, err := a.AuthClient.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, fmt.Errorf("verify firebase id token: %w", err)
	}
	return identityFromClaims(token.UID, token.Claims)
}

func identityFromClaims(uid string, claims map[string]interface{}) (*Identity, error) {
	email, _ := claims["email"].(string)
	if email == "" {
		return nil, ErrMissingEmail
	}
	id := &Identity{UID: uid, Email: email}
	id.Name, _ = claims["name"].(string)
	id.Picture, _ = claims["picture"].(string)
	id.EmailVerified, _ = claims["email_verified"].(bool)
	return id, nil
}
