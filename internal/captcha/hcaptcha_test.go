package captcha

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testVerifier(serverURL string) *hcaptchaVerifier {
	return &hcaptchaVerifier{
		secret: "secret",
		url:    serverURL,
		client: &http.Client{Timeout: time.Second},
	}
}

func TestVerify(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "secret", r.PostFormValue("secret"))
		assert.Equal(t, "token", r.PostFormValue("response"))
		assert.Equal(t, "1.2.3.4", r.PostFormValue("remoteip"))
		w.Write([]byte(`{"success": true}`))
	}))
	defer srv.Close()

	err := testVerifier(srv.URL).Verify(context.Background(), "token", "1.2.3.4")
	assert.NoError(t, err)
}

func TestVerifyRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success": false, "error-codes": ["invalid-input-response"]}`))
	}))
	defer srv.Close()

	err := testVerifier(srv.URL).Verify(context.Background(), "bad-token", "")

	var verr *VerificationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"invalid-input-response"}, verr.Codes)
}

func TestVerifyUnreachable(t *testing.T) {
	srv := httptest.NewServer(nil)
	srv.Close()

	err := testVerifier(srv.URL).Verify(context.Background(), "token", "")
	require.Error(t, err)

	// Transport failures are not verification rejections.
	var verr *VerificationError
	assert.False(t, errors.As(err, &verr))
}

func TestVerificationErrorMessage(t *testing.T) {
	err := &VerificationError{Codes: []string{"invalid-input-response", "timeout-or-duplicate"}}
	assert.Equal(t, "captcha verification failed: invalid-input-response, timeout-or-duplicate", err.Error())

	assert.Equal(t, "captcha verification failed", (&VerificationError{}).Error())
}
