package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"research-atlas/config"
	"research-atlas/providers"
	"research-atlas/providers/gsheets"
	"research-atlas/providers/xlsx"
	"research-atlas/storage"

	"go.uber.org/zap"
	"google.golang.org/api/option"
)

// ConnectReason klassifiziert, warum kein Worksheet verfügbar ist.
type ConnectReason int

const (
	ReasonNotConfigured ConnectReason = iota + 1
	ReasonNoCredentials
	ReasonUnavailable
)

// ConnectError trägt eine lesbare Meldung für die Oberfläche.
type ConnectError struct {
	Reason ConnectReason
	Msg    string
}

func (e *ConnectError) Error() string { return e.Msg }

// Soft meldet, ob nur Konfiguration fehlt (erwartete Degradierung).
func (e *ConnectError) Soft() bool {
	return e.Reason == ReasonNotConfigured || e.Reason == ReasonNoCredentials
}

// OpenFunc öffnet das konfigurierte Worksheet.
type OpenFunc func(ctx context.Context) (providers.Worksheet, error)

// Connector öffnet das Worksheet einmal pro Prozess und merkt sich das Ergebnis,
// auch einen Fehler.
type Connector struct {
	Config *config.Config
	Logger *zap.Logger

	open OpenFunc

	mu    sync.Mutex
	done  bool
	sheet providers.Worksheet
	err   *ConnectError
}

// NewConnector wählt das Backend nach STORE_BACKEND. objects wird nur für das
// XLSX-Backend gebraucht und darf nil sein.
func NewConnector(cfg *config.Config, logger *zap.Logger, objects storage.ObjectStore) *Connector {
	c := &Connector{Config: cfg, Logger: logger.With(zap.String("store_backend", cfg.StoreBackend))}
	switch cfg.StoreBackend {
	case config.BackendXLSX:
		c.open = func(ctx context.Context) (providers.Worksheet, error) {
			if objects == nil {
				return nil, &ConnectError{Reason: ReasonNoCredentials, Msg: "Missing S3 credentials for the xlsx store."}
			}
			return xlsx.Open(ctx, objects, cfg.StoreID, cfg.StoreWorksheet, logger)
		}
	case config.BackendSheets, "":
		c.open = func(ctx context.Context) (providers.Worksheet, error) {
			opts, cerr := googleCredentials(cfg)
			if cerr != nil {
				return nil, cerr
			}
			return gsheets.Open(ctx, cfg.StoreID, cfg.StoreWorksheet, logger, opts...)
		}
	default:
		c.open = func(context.Context) (providers.Worksheet, error) {
			return nil, &ConnectError{Reason: ReasonNotConfigured, Msg: fmt.Sprintf("Unknown STORE_BACKEND %q.", cfg.StoreBackend)}
		}
	}
	return c
}

// NewConnectorWith ist für eigene Backends, z.B. in Tests.
func NewConnectorWith(cfg *config.Config, logger *zap.Logger, open OpenFunc) *Connector {
	return &Connector{Config: cfg, Logger: logger, open: open}
}

// Open liefert das Worksheet oder einen *ConnectError. Nach dem ersten Aufruf
// wird nie wieder verbunden.
func (c *Connector) Open(ctx context.Context) (providers.Worksheet, *ConnectError) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.done {
		return c.sheet, c.err
	}
	// Das Ergebnis gilt prozessweit, der Abbruch eines einzelnen Requests darf es nicht bestimmen.
	c.sheet, c.err = c.connect(context.WithoutCancel(ctx))
	c.done = true
	if c.err != nil {
		c.Logger.Warn("Store nicht verfügbar.", zap.String("reason", c.err.Msg))
	} else {
		c.Logger.Info("Store verbunden.", zap.String("worksheet", c.sheet.Name()))
	}
	return c.sheet, c.err
}

// Invalidate verwirft das gemerkte Ergebnis. Der Server ruft es nicht auf.
func (c *Connector) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.done, c.sheet, c.err = false, nil, nil
}

func (c *Connector) connect(ctx context.Context) (ws providers.Worksheet, cerr *ConnectError) {
	if !c.Config.StoreConfigured() {
		return nil, &ConnectError{Reason: ReasonNotConfigured, Msg: "Missing store config: set STORE_ID and STORE_WORKSHEET."}
	}
	defer func() {
		if r := recover(); r != nil {
			ws, cerr = nil, &ConnectError{Reason: ReasonUnavailable, Msg: fmt.Sprintf("Store connection failed: %v", r)}
		}
	}()
	sheet, err := c.open(ctx)
	if err != nil {
		var ce *ConnectError
		if errors.As(err, &ce) {
			return nil, ce
		}
		return nil, &ConnectError{Reason: ReasonUnavailable, Msg: fmt.Sprintf("Store connection failed: %v", err)}
	}
	return sheet, nil
}

func googleCredentials(cfg *config.Config) ([]option.ClientOption, *ConnectError) {
	if !cfg.HasGoogleCredentials() {
		return nil, &ConnectError{Reason: ReasonNoCredentials, Msg: "Missing Google service account credentials (GOOGLE_CREDENTIALS_JSON or GOOGLE_CREDENTIALS_FILE)."}
	}
	opts := []option.ClientOption{option.WithScopes(gsheets.Scopes...)}
	if cfg.GoogleCredentialsJSON != "" {
		opts = append(opts, option.WithCredentialsJSON([]byte(cfg.GoogleCredentialsJSON)))
	} else {
		opts = append(opts, option.WithCredentialsFile(cfg.GoogleCredentialsFile))
	}
	return opts, nil
}
