// Package captcha verifies hCaptcha tokens submitted with the contact form.
package captcha

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const siteverifyURL = "https://hcaptcha.com/siteverify"

// Verifier checks a client-supplied captcha token.
type Verifier interface {
	Verify(ctx context.Context, token, remoteIP string) error
}

// VerificationError carries the provider error codes. Codes are logged in
// development mode only, never returned to clients.
type VerificationError struct {
	Codes []string
}

func (e *VerificationError) Error() string {
	if len(e.Codes) == 0 {
		return "captcha verification failed"
	}
	return "captcha verification failed: " + strings.Join(e.Codes, ", ")
}

type hcaptchaVerifier struct {
	secret string
	url    string
	client *http.Client
}

// NewHCaptchaVerifier returns a Verifier backed by the hCaptcha siteverify
// endpoint. The timeout bounds the upstream call.
func NewHCaptchaVerifier(secret string, timeout time.Duration) Verifier {
	return &hcaptchaVerifier{
		secret: secret,
		url:    siteverifyURL,
		client: &http.Client{Timeout: timeout},
	}
}

type siteverifyResponse struct {
	Success    bool     `json:"success"`
	ErrorCodes []string `json:"error-codes"`
}

func (v *hcaptchaVerifier) Verify(ctx context.Context, token, remoteIP string) error {
	form := url.Values{}
	form.Set("secret", v.secret)
	form.Set("response", token)
	if remoteIP != "" {
		form.Set("remoteip", remoteIP)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.url, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("failed to build siteverify request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := v.client.Do(req)
	if err != nil {
		return fmt.Errorf("siteverify request failed: %w", err)
	}
	defer resp.Body.Close()

	var result siteverifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("failed to decode siteverify response: %w", err)
	}

	if !result.Success {
		return &VerificationError{Codes: result.ErrorCodes}
	}
	return nil
}
