package services

import (
	"context"

	"github.com/descope/go-sdk/descope/client"
)

// DescopeVerifier validates Descope session tokens through the SDK.
type DescopeVerifier struct {
	client *client.DescopeClient
}

func NewDescopeVerifier(projectID string) (*DescopeVerifier, error) {
	descopeClient, err := client.NewWithConfig(&client.Config{ProjectID: projectID})
	if err != nil {
		return nil, err
	}
	return &DescopeVerifier{client: descopeClient}, nil
}

func (v *DescopeVerifier) Verify(ctx context.Context, token string) (string, error) {
	authorized, sessionToken, err := v.client.Auth.ValidateSessionWithToken(ctx, token)
	if err != nil || !authorized || sessionToken == nil || sessionToken.ID == "" {
		return "", ErrInvalidToken
	}
	return sessionToken.ID, nil
}
