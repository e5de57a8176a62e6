package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const googleTokenInfoURL = "https://oauth2.googleapis.com/tokeninfo"

// GoogleVerifier validates Google ID tokens against the tokeninfo endpoint
// and checks the audience matches our client id.
type GoogleVerifier struct {
	ClientID   string
	HTTPClient *http.Client
	Endpoint   string
}

func NewGoogleVerifier(clientID string) *GoogleVerifier {
	return &GoogleVerifier{
		ClientID:   clientID,
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
		Endpoint:   googleTokenInfoURL,
	}
}

func (g *GoogleVerifier) VerifyIDToken(ctx context.Context, idToken string) (*ExternalIdentity, error) {
	if strings.TrimSpace(idToken) == "" {
		return nil, errors.New("google: empty id token")
	}

	endpoint := g.Endpoint
	if endpoint == "" {
		endpoint = googleTokenInfoURL
	}
	query := url.Values{"id_token": {idToken}}
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("google: create tokeninfo request: %w", err)
	}

	client := g.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	response, err := client.Do(request)
	if err != nil {
		return nil, fmt.Errorf("google: tokeninfo: %w", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("google: tokeninfo failed with status %d", response.StatusCode)
	}

	var info struct {
		Sub           string `json:"sub"`
		Aud           string `json:"aud"`
		Email         string `json:"email"`
		EmailVerified string `json:"email_verified"`
		Name          string `json:"name"`
		Picture       string `json:"picture"`
	}
	if err := json.NewDecoder(response.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("google: decode tokeninfo: %w", err)
	}

	if g.ClientID != "" && info.Aud != g.ClientID {
		return nil, errors.New("google: audience mismatch")
	}
	if info.Sub == "" || info.Email == "" {
		return nil, errors.New("google: incomplete identity")
	}
	if info.EmailVerified != "true" {
		return nil, errors.New("google: email not verified by provider")
	}

	return &ExternalIdentity{
		UID:      info.Sub,
		Email:    info.Email,
		Name:     info.Name,
		PhotoURL: info.Picture,
	}, nil
}
