package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"research-atlas/config"
	"research-atlas/providers"

	"go.uber.org/zap/zaptest"
)

// memSheet ist ein Worksheet im Speicher.
type memSheet struct {
	mu       sync.Mutex
	header   []string
	rows     []map[string]string
	appended [][]string

	rowsErr   error
	headerErr error
	appendErr error
}

func (m *memSheet) Name() string { return "Projects" }

func (m *memSheet) Rows(context.Context) ([]map[string]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rows, m.rowsErr
}

func (m *memSheet) Header(context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.header, m.headerErr
}

func (m *memSheet) AppendRow(_ context.Context, values []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.appendErr != nil {
		return m.appendErr
	}
	m.appended = append(m.appended, values)
	return nil
}

func storeConfig() *config.Config {
	return &config.Config{StoreBackend: config.BackendSheets, StoreID: "sheet-1", StoreWorksheet: "Projects"}
}

// connectorFor liefert einen Connector, der immer sheet öffnet, und zählt die Verbindungen.
func connectorFor(t *testing.T, sheet providers.Worksheet) (*Connector, *int) {
	t.Helper()
	opens := 0
	conn := NewConnectorWith(storeConfig(), zaptest.NewLogger(t), func(context.Context) (providers.Worksheet, error) {
		opens++
		return sheet, nil
	})
	return conn, &opens
}

func brokenConnector(t *testing.T, msg string) *Connector {
	t.Helper()
	return NewConnectorWith(storeConfig(), zaptest.NewLogger(t), func(context.Context) (providers.Worksheet, error) {
		return nil, errors.New(msg)
	})
}
