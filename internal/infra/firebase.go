// README: Firebase Admin SDK setup and the bearer-token verifier.
package infra

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"
)

// FirebaseToken is the verified caller identity handed to the auth middleware.
type FirebaseToken struct {
	UID    string
	Claims map[string]interface{}
}

// Role returns the caller's role claim, or "" when absent. Customers carry
// no role; store admins carry "admin".
func (t *FirebaseToken) Role() string {
	role, _ := t.Claims["role"].(string)
	return role
}

// Email returns the caller's email claim, or "" when absent.
func (t *FirebaseToken) Email() string {
	email, _ := t.Claims["email"].(string)
	return email
}

// TokenVerifier verifies a raw Firebase ID token string and returns the
// caller's identity. Handlers see only this interface; tests stub it.
type TokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*FirebaseToken, error)
}

type firebaseVerifier struct {
	client *auth.Client
}

// NewFirebaseVerifier builds the production TokenVerifier from the Firebase
// Admin SDK. credentialsFile, when set, points at a service-account JSON;
// otherwise application-default credentials apply. The project ID pins token
// verification to this project's user pool.
func NewFirebaseVerifier(ctx context.Context, projectID, credentialsFile string) (TokenVerifier, error) {
	opts := []option.ClientOption{}
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: projectID}, opts...)
	if err != nil {
		return nil, fmt.Errorf("init firebase app for project %s: %w", projectID, err)
	}
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("init firebase auth client: %w", err)
	}
	return &firebaseVerifier{client: client}, nil
}

func (v *firebaseVerifier) VerifyIDToken(ctx context.Context, idToken string) (*FirebaseToken, error) {
	token, err := v.client.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, fmt.Errorf("verify id token: %w", err)
	}
	return &FirebaseToken{UID: token.UID, Claims: token.Claims}, nil
}
