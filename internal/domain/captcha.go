package domain

import "context"

// CaptchaVerifier checks an anti-automation token with its issuing service.
// The form only ever sees the token as an opaque string.
type CaptchaVerifier interface {
	Verify(ctx context.Context, token string) (bool, error)
}
