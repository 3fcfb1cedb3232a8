package services

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// goTrueUserResponse is the subset of the identity service's get-user
// response we care about.
type goTrueUserResponse struct {
	ID string `json:"id"`
}

// GoTrueVerifier validates bearer tokens against a GoTrue-compatible
// identity service by fetching the user the token belongs to.
type GoTrueVerifier struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewGoTrueVerifier(baseURL, apiKey string) *GoTrueVerifier {
	return &GoTrueVerifier{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (v *GoTrueVerifier) Verify(ctx context.Context, token string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.baseURL+"/auth/v1/user", nil)
	if err != nil {
		return "", ErrInvalidToken
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if v.apiKey != "" {
		req.Header.Set("apikey", v.apiKey)
	}

	resp, err := v.client.Do(req)
	if err != nil {
		log.Debug().Err(err).Msg("identity service unreachable")
		return "", ErrInvalidToken
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", ErrInvalidToken
	}

	var user goTrueUserResponse
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil || user.ID == "" {
		return "", ErrInvalidToken
	}

	return user.ID, nil
}
