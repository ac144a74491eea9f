package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const Production = "production"

// Order sources
const (
	SourcePostgres = "postgres"
	SourceRemote   = "remote"
)

// Document stores
const (
	StoreMemory = "memory"
	StoreRedis  = "redis"
)

type DatabaseOptions struct {
	URL      string `env:"DATABASE_URL"`
	Host     string `env:"DB_HOST"`
	Port     string `env:"DB_PORT" envDefault:"5432"`
	User     string `env:"DB_USER"`
	Password string `env:"DB_PASSWORD"`
	Name     string `env:"DB_NAME"`
	SSLMode  string `env:"DB_SSLMODE" envDefault:"disable"`
}

// ConnectionString returns DATABASE_URL, or builds a DSN from the DB_* variables
func (d *DatabaseOptions) ConnectionString() (string, error) {
	if d.URL != "" {
		return d.URL, nil
	}
	if d.Host == "" || d.User == "" || d.Name == "" {
		return "", fmt.Errorf("database connection variables not set. Set DATABASE_URL or DB_HOST, DB_USER, DB_NAME")
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode), nil
}

type SalesAPIOptions struct {
	URL   string `env:"SALES_API_URL"`
	Token string `env:"SALES_API_TOKEN"`
}

// CompanyOptions is printed at the top of every order form page
type CompanyOptions struct {
	Name    string `env:"COMPANY_NAME" envDefault:"ESSA GARMENTS PRIVATE LIMITED"`
	Address string `env:"COMPANY_ADDRESS"`
	GSTIN   string `env:"COMPANY_GSTIN"`
}

type OrderFormOptions struct {
	PageSize   int           `env:"ORDER_FORM_PAGE_SIZE" envDefault:"10"`
	ChromePath string        `env:"CHROME_PATH"`
	PDFTimeout time.Duration `env:"PDF_TIMEOUT" envDefault:"30s"`
}

type DocumentStoreOptions struct {
	Kind     string        `env:"DOCUMENT_STORE" envDefault:"memory"`
	RedisURL string        `env:"REDIS_URL"`
	TTL      time.Duration `env:"DOCUMENT_TTL" envDefault:"10m"`
}

type MailOptions struct {
	SendGridAPIKey string `env:"SENDGRID_API_KEY"`
	From           string `env:"MAIL_FROM"`
	To             string `env:"MAIL_TO"`
}

type DriveOptions struct {
	CredentialsPath string `env:"GOOGLE_APPLICATION_CREDENTIALS"`
	ArchiveFolderID string `env:"DRIVE_ARCHIVE_FOLDER_ID"`
}

type AuthzOptions struct {
	Enabled    bool   `env:"AUTHZ_ENABLED" envDefault:"true"`
	PolicyPath string `env:"AUTHZ_POLICY_PATH"`
}

type Configuration struct {
	Env         string `env:"ENV" envDefault:"development"`
	Port        string `env:"PORT" envDefault:"8080"`
	BaseURL     string `env:"BASE_URL"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	OrderSource string `env:"ORDER_SOURCE" envDefault:"postgres"`

	Database      DatabaseOptions
	SalesAPI      SalesAPIOptions
	Company       CompanyOptions
	OrderForm     OrderFormOptions
	DocumentStore DocumentStoreOptions
	Mail          MailOptions
	Drive         DriveOptions
	Authz         AuthzOptions
}

// LoadEnv loads .env files outside production. Values in the files override
// the process environment. Missing files are not an error.
func LoadEnv(envFiles ...string) (int, error) {
	if os.Getenv("ENV") == Production {
		return 0, nil
	}
	existing := make([]string, 0, len(envFiles))
	for _, file := range envFiles {
		if _, err := os.Stat(file); err == nil {
			existing = append(existing, file)
		}
	}
	if len(existing) == 0 {
		return 0, nil
	}
	return len(existing), godotenv.Overload(existing...)
}

// Load parses the environment into a Configuration and validates it
func Load() (*Configuration, error) {
	c := &Configuration{}
	if err := env.Parse(c); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	// PORT from some hosts comes with a leading colon
	c.Port = strings.TrimPrefix(c.Port, ":")
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks option combinations that would only fail later at request time
func (c *Configuration) Validate() error {
	var errs []error
	if c.OrderForm.PageSize <= 0 {
		errs = append(errs, fmt.Errorf("ORDER_FORM_PAGE_SIZE must be positive, got %d", c.OrderForm.PageSize))
	}
	switch c.OrderSource {
	case SourcePostgres:
	case SourceRemote:
		if c.SalesAPI.URL == "" {
			errs = append(errs, errors.New("SALES_API_URL is required when ORDER_SOURCE is 'remote'"))
		}
		// rights live in Postgres; without it the policy must come from a file
		if c.Authz.Enabled && c.Authz.PolicyPath == "" {
			errs = append(errs, errors.New("AUTHZ_POLICY_PATH is required when ORDER_SOURCE is 'remote' and AUTHZ_ENABLED is true"))
		}
	default:
		errs = append(errs, fmt.Errorf("ORDER_SOURCE must be 'postgres' or 'remote', got '%s'", c.OrderSource))
	}
	switch c.DocumentStore.Kind {
	case StoreMemory:
	case StoreRedis:
		if c.DocumentStore.RedisURL == "" {
			errs = append(errs, errors.New("REDIS_URL is required when DOCUMENT_STORE is 'redis'"))
		}
	default:
		errs = append(errs, fmt.Errorf("DOCUMENT_STORE must be 'memory' or 'redis', got '%s'", c.DocumentStore.Kind))
	}
	if c.DocumentStore.TTL <= 0 {
		errs = append(errs, fmt.Errorf("DOCUMENT_TTL must be positive, got %s", c.DocumentStore.TTL))
	}
	return errors.Join(errs...)
}

// Address is the listen address for the HTTP server
func (c *Configuration) Address() string {
	return "0.0.0.0:" + c.Port
}

// PublicURL is the base URL used in links handed back to clients
func (c *Configuration) PublicURL() string {
	if c.BaseURL != "" {
		return strings.TrimRight(c.BaseURL, "/")
	}
	return "http://localhost:" + c.Port
}

func (c *Configuration) MailEnabled() bool {
	return c.Mail.SendGridAPIKey != "" && c.Mail.From != ""
}

func (c *Configuration) ArchiveEnabled() bool {
	return c.Drive.CredentialsPath != "" && c.Drive.ArchiveFolderID != ""
}
