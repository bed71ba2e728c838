package emailjs

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"research-atlas/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func configured() *config.Config {
	return &config.Config{EmailServiceID: "svc", EmailTemplateID: "tpl", EmailPublicKey: "pub"}
}

func TestSendNotConfiguredMakesNoCall(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	}))
	defer srv.Close()

	s := NewSender(&config.Config{EmailTemplateID: "tpl", EmailPublicKey: "pub"}, zaptest.NewLogger(t))
	s.endpoint = srv.URL

	err := s.Send(context.Background(), map[string]string{"city": "Lagos"})
	assert.True(t, errors.Is(err, ErrNotConfigured))
	assert.Equal(t, int32(0), atomic.LoadInt32(&calls))
}

func TestSendPostsPayload(t *testing.T) {
	var got Request
	var origin string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		origin = r.Header.Get("Origin")
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte("OK"))
	}))
	defer srv.Close()

	cfg := configured()
	cfg.EmailPrivateKey = "secret"
	cfg.EmailOrigin = "https://atlas.example.org"
	s := NewSender(cfg, zaptest.NewLogger(t))
	s.endpoint = srv.URL

	require.NoError(t, s.Send(context.Background(), map[string]string{"city": "Lagos"}))

	assert.Equal(t, "svc", got.ServiceID)
	assert.Equal(t, "tpl", got.TemplateID)
	assert.Equal(t, "pub", got.UserID)
	assert.Equal(t, "secret", got.AccessToken)
	assert.Equal(t, map[string]string{"city": "Lagos"}, got.TemplateParams)
	assert.Equal(t, "https://atlas.example.org", origin)
}

func TestSendOmitsOptionalFields(t *testing.T) {
	var raw map[string]any
	var origin string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin = r.Header.Get("Origin")
		_ = json.NewDecoder(r.Body).Decode(&raw)
	}))
	defer srv.Close()

	s := NewSender(configured(), zaptest.NewLogger(t))
	s.endpoint = srv.URL

	require.NoError(t, s.Send(context.Background(), nil))
	_, hasToken := raw["accessToken"]
	assert.False(t, hasToken)
	assert.Empty(t, origin)
}

func TestSendNon200IsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte("API calls are disabled for non-browser applications"))
	}))
	defer srv.Close()

	s := NewSender(configured(), zaptest.NewLogger(t))
	s.endpoint = srv.URL

	err := s.Send(context.Background(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
	assert.Contains(t, err.Error(), "non-browser")
}

func TestTimeoutIsTwelveSeconds(t *testing.T) {
	assert.Equal(t, Timeout, NewSender(configured(), zaptest.NewLogger(t)).client.Timeout)
	assert.Equal(t, "12s", Timeout.String())
}
