package emailjs

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"research-atlas/config"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Endpoint ist die REST-Schnittstelle von EmailJS.
const Endpoint = "https://api.emailjs.com/api/v1.0/email/send"

// Timeout für den einen Sendeversuch.
const Timeout = 12 * time.Second

// ErrNotConfigured: Service-ID, Template-ID oder Public Key fehlen.
var ErrNotConfigured = errors.New("not configured")

var httpClient = &http.Client{Timeout: Timeout}

// Request repräsentiert den JSON-Body für EmailJS.
type Request struct {
	ServiceID      string            `json:"service_id"`
	TemplateID     string            `json:"template_id"`
	UserID         string            `json:"user_id"`
	TemplateParams map[string]string `json:"template_params"`
	AccessToken    string            `json:"accessToken,omitempty"`
}

// Sender kapselt die Logik für EmailJS.
type Sender struct {
	Config *config.Config
	Logger *zap.Logger

	endpoint string
	client   *http.Client
}

// NewSender erstellt einen neuen EmailJS-Sender.
func NewSender(cfg *config.Config, logger *zap.Logger) *Sender {
	return &Sender{Config: cfg, Logger: logger, endpoint: Endpoint, client: httpClient}
}

// Send verschickt genau eine Mail mit den Template-Parametern. Kein Retry.
func (s *Sender) Send(ctx context.Context, params map[string]string) error {
	if !s.Config.EmailConfigured() {
		return ErrNotConfigured
	}

	body, err := json.Marshal(Request{
		ServiceID:      s.Config.EmailServiceID,
		TemplateID:     s.Config.EmailTemplateID,
		UserID:         s.Config.EmailPublicKey,
		TemplateParams: params,
		AccessToken:    s.Config.EmailPrivateKey,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if s.Config.EmailOrigin != "" {
		req.Header.Set("Origin", s.Config.EmailOrigin)
	}

	log := s.Logger.With(zap.String("template_id", s.Config.EmailTemplateID))
	log.Debug("Rufe EmailJS API auf.")

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("emailjs request failed with status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	log.Info("Benachrichtigung über EmailJS versendet.")
	return nil
}
