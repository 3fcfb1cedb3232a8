package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/devshowcase/backend/config"
)

// ErrInvalidToken is the single failure signal a verifier may return. Any
// upstream detail (network error, expired token, unknown user) collapses into
// it so callers never branch on provider internals.
var ErrInvalidToken = errors.New("invalid auth token")

// TokenVerifier resolves a bearer token to the identity provider's user id.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (string, error)
}

// NewVerifier selects a verifier implementation from config.
// AUTH_PROVIDER picks between:
//   - "gotrue" (default): the identity service's HTTP get-user-for-token endpoint
//   - "descope": Descope session validation via the SDK
//   - "jwt": locally issued HS256 tokens, for development and tests
func NewVerifier(cfg map[string]string) (TokenVerifier, error) {
	provider := config.GetString(cfg, "AUTH_PROVIDER", "gotrue")

	switch provider {
	case "gotrue":
		baseURL := config.GetString(cfg, "GOTRUE_URL", "")
		if baseURL == "" {
			return nil, errors.New("GOTRUE_URL is required for the gotrue auth provider")
		}
		apiKey := config.GetString(cfg, "GOTRUE_API_KEY", "")
		return NewGoTrueVerifier(baseURL, apiKey), nil
	case "descope":
		projectID := config.GetString(cfg, "DESCOPE_PROJECT_ID", "")
		if projectID == "" {
			return nil, errors.New("DESCOPE_PROJECT_ID is required for the descope auth provider")
		}
		return NewDescopeVerifier(projectID)
	case "jwt":
		secret := config.GetString(cfg, "AUTH_JWT_SECRET", "")
		if secret == "" {
			return nil, errors.New("AUTH_JWT_SECRET is required for the jwt auth provider")
		}
		return NewJWTVerifier([]byte(secret)), nil
	default:
		return nil, fmt.Errorf("unknown AUTH_PROVIDER %q", provider)
	}
}
