package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Store-Backends für die Projekttabelle.
const (
	BackendSheets = "sheets"
	BackendXLSX   = "xlsx"
)

// Config enthält alle Konfigurationsparameter aus Umgebungsvariablen.
// Kein Feld ist Pflicht: fehlende Werte schalten die jeweilige Komponente
// auf ihren Fallback bzw. No-Op.
type Config struct {
	HTTPPort string `envconfig:"HTTP_PORT" default:"4242"`

	// Tabellen-Store (Google Sheets oder XLSX-Workbook im S3)
	StoreBackend          string `envconfig:"STORE_BACKEND" default:"sheets"`
	StoreID               string `envconfig:"STORE_ID"`
	StoreWorksheet        string `envconfig:"STORE_WORKSHEET"`
	GoogleCredentialsJSON string `envconfig:"GOOGLE_CREDENTIALS_JSON"`
	GoogleCredentialsFile string `envconfig:"GOOGLE_CREDENTIALS_FILE"`

	S3URL    string `envconfig:"S3_URL"`
	S3Region string `envconfig:"S3_REGION" default:"us-east-1"`
	S3Key    string `envconfig:"S3_KEY"`
	S3Secret string `envconfig:"S3_SECRET"`
	S3Bucket string `envconfig:"S3_BUCKET"`

	// EmailJS-Benachrichtigung bei neuen Einreichungen
	EmailServiceID  string `envconfig:"EMAILJS_SERVICE_ID"`
	EmailTemplateID string `envconfig:"EMAILJS_TEMPLATE_ID"`
	EmailPublicKey  string `envconfig:"EMAILJS_PUBLIC_KEY"`
	EmailPrivateKey string `envconfig:"EMAILJS_PRIVATE_KEY"`
	EmailOrigin     string `envconfig:"EMAILJS_ORIGIN"`

	// Audit-Log der Einreichungen (optional)
	DBHost     string `envconfig:"DB_HOST"`
	DBPort     int    `envconfig:"DB_PORT" default:"5432"`
	DBUser     string `envconfig:"DB_USER"`
	DBPassword string `envconfig:"DB_PASSWORD"`
	DBName     string `envconfig:"DB_NAME"`

	SnapshotCron   string `envconfig:"SNAPSHOT_CRON"`
	SnapshotPrefix string `envconfig:"SNAPSHOT_PREFIX" default:"snapshots"`
	KeepSnapshots  int    `envconfig:"KEEP_SNAPSHOTS" default:"4"`
}

// StoreConfigured meldet, ob Store-ID und Worksheet gesetzt sind.
func (c *Config) StoreConfigured() bool {
	return strings.TrimSpace(c.StoreID) != "" && strings.TrimSpace(c.StoreWorksheet) != ""
}

// HasGoogleCredentials meldet, ob ein Service-Account-Block vorhanden ist.
func (c *Config) HasGoogleCredentials() bool {
	return strings.TrimSpace(c.GoogleCredentialsJSON) != "" || strings.TrimSpace(c.GoogleCredentialsFile) != ""
}

// HasS3 meldet, ob Endpoint, Bucket und Zugangsdaten für S3 vorhanden sind.
func (c *Config) HasS3() bool {
	return c.S3URL != "" && c.S3Bucket != "" && c.S3Key != "" && c.S3Secret != ""
}

// EmailConfigured verlangt Service-, Template-ID und Public Key gemeinsam.
func (c *Config) EmailConfigured() bool {
	return c.EmailServiceID != "" && c.EmailTemplateID != "" && c.EmailPublicKey != ""
}

func (c *Config) AuditConfigured() bool {
	return c.DBHost != ""
}

func (c *Config) SnapshotConfigured() bool {
	return c.SnapshotCron != "" && c.HasS3()
}

// DSN gibt den Data Source Name für die PostgreSQL-Verbindung zurück.
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=disable",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort)
}

// Load lädt die Konfiguration aus den Umgebungsvariablen.
func Load() (*Config, error) {
	_ = godotenv.Load()
	var c Config
	err := envconfig.Process("", &c)
	return &c, err
}
