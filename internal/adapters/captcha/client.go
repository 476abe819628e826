package captcha

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"eventforms/internal/domain"
)

const defaultVerifyURL = "https://www.google.com/recaptcha/api/siteverify"

type httpVerifier struct {
	client    *http.Client
	secret    string
	verifyURL string
}

// NewHTTPVerifier returns a verifier that checks tokens against the
// reCAPTCHA siteverify endpoint.
func NewHTTPVerifier(client *http.Client, secret string) domain.CaptchaVerifier {
	if client == nil {
		client = http.DefaultClient
	}
	return &httpVerifier{
		client:    client,
		secret:    secret,
		verifyURL: defaultVerifyURL,
	}
}

type verifyResponse struct {
	Success    bool     `json:"success"`
	ErrorCodes []string `json:"error-codes"`
}

func (v *httpVerifier) Verify(ctx context.Context, token string) (bool, error) {
	// An expired or errored widget clears the token to empty.
	if token == "" {
		return false, nil
	}

	form := url.Values{}
	form.Set("secret", v.secret)
	form.Set("response", token)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.verifyURL, strings.NewReader(form.Encode()))
	if err != nil {
		return false, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := v.client.Do(req)
	if err != nil {
		return false, fmt.Errorf("failed to reach verification service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("verification service returned status: %d", resp.StatusCode)
	}

	var data verifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return false, fmt.Errorf("failed to decode verification response: %w", err)
	}
	return data.Success, nil
}
