package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port          string
	DbHost        string
	DbPort        string
	DbUser        string
	DbPass        string
	DbName        string
	DbSSLMode     string
	DbAutoMigrate bool

	RedisAddr        string
	RedisPassword    string
	RateLimitBackend string // memory|redis
	RateLimitRPM     int

	JWTSecret         string
	AccessTokenTTL    string
	AdminEmail        string
	AdminPasswordHash string

	Log      string
	LogLevel string
	Env      string // dev|prod

	SMTPHost     string
	SMTPPort     string
	SMTPUser     string
	SMTPPassword string
	MailFrom     string
	NotifyEmail  string
	MailWorkers  int

	SiteURL     string
	CORSOrigins []string
}

// LoadConfig loads .env, reads the environment and applies defaults.
// It does not log anything so that it stays independent of the logger.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load(".env")

	def := func(v, d string) string {
		v = strings.TrimSpace(v)
		if v == "" {
			return d
		}
		return v
	}

	rpm, err := strconv.Atoi(def(os.Getenv("RATE_LIMIT_RPM"), "600"))
	if err != nil {
		return nil, fmt.Errorf("RATE_LIMIT_RPM: %w", err)
	}
	workers, err := strconv.Atoi(def(os.Getenv("MAIL_WORKERS"), "3"))
	if err != nil {
		return nil, fmt.Errorf("MAIL_WORKERS: %w", err)
	}
	autoMigrate, err := strconv.ParseBool(def(os.Getenv("DB_AUTO_MIGRATE"), "false"))
	if err != nil {
		return nil, fmt.Errorf("DB_AUTO_MIGRATE: %w", err)
	}

	cfg := &Config{
		Port:          def(os.Getenv("PORT"), "8080"),
		DbHost:        os.Getenv("DB_HOST"),
		DbPort:        def(os.Getenv("DB_PORT"), "5432"),
		DbUser:        os.Getenv("DB_USER"),
		DbPass:        os.Getenv("DB_PASSWORD"),
		DbName:        os.Getenv("DB_NAME"),
		DbSSLMode:     def(os.Getenv("DB_SSLMODE"), "disable"),
		DbAutoMigrate: autoMigrate,

		RedisAddr:        os.Getenv("REDIS_ADDR"),
		RedisPassword:    os.Getenv("REDIS_PASSWORD"),
		RateLimitBackend: strings.ToLower(def(os.Getenv("RATE_LIMIT_BACKEND"), "memory")),
		RateLimitRPM:     rpm,

		JWTSecret:         os.Getenv("JWT_SECRET"),
		AccessTokenTTL:    def(os.Getenv("ACCESS_TOKEN_EXPIRY"), "12h"),
		AdminEmail:        strings.ToLower(strings.TrimSpace(os.Getenv("ADMIN_EMAIL"))),
		AdminPasswordHash: strings.TrimSpace(os.Getenv("ADMIN_PASSWORD_HASH")),

		Log:      os.Getenv("LOG"),
		LogLevel: strings.ToLower(def(os.Getenv("LOGLEVEL"), "info")),
		Env:      strings.ToLower(def(os.Getenv("ENV"), "prod")),

		SMTPHost:     os.Getenv("SMTP_HOST"),
		SMTPPort:     def(os.Getenv("SMTP_PORT"), "587"),
		SMTPUser:     os.Getenv("SMTP_USER"),
		SMTPPassword: os.Getenv("SMTP_PASSWORD"),
		MailFrom:     def(os.Getenv("MAIL_FROM"), os.Getenv("SMTP_USER")),
		NotifyEmail:  os.Getenv("NOTIFY_EMAIL"),
		MailWorkers:  workers,

		SiteURL:     strings.TrimRight(def(os.Getenv("SITEURL"), "http://localhost:3000"), "/"),
		CORSOrigins: splitList(def(os.Getenv("CORS_ALLOWED_ORIGINS"), "*")),
	}

	return cfg, nil
}

// Validate returns warnings and a fatal error when the config is unusable.
func (c *Config) Validate() (warnings []string, err error) {
	if c.DbHost == "" || c.DbUser == "" || c.DbName == "" {
		return nil, fmt.Errorf("incomplete DB config (DB_HOST/DB_USER/DB_NAME)")
	}

	switch c.RateLimitBackend {
	case "memory":
	case "redis":
		if c.RedisAddr == "" {
			return nil, fmt.Errorf("RATE_LIMIT_BACKEND=redis requires REDIS_ADDR")
		}
	default:
		return nil, fmt.Errorf("unknown RATE_LIMIT_BACKEND %q", c.RateLimitBackend)
	}

	if strings.TrimSpace(c.JWTSecret) == "" {
		warnings = append(warnings, "JWT_SECRET is empty, admin endpoints are disabled")
	}
	if c.AdminEmail == "" || c.AdminPasswordHash == "" {
		warnings = append(warnings, "ADMIN_EMAIL/ADMIN_PASSWORD_HASH are not set, admin login is disabled")
	}
	if c.SMTPHost == "" || c.SMTPUser == "" {
		warnings = append(warnings, "SMTP is not fully configured, notifications are skipped")
	}
	if c.NotifyEmail == "" {
		warnings = append(warnings, "NOTIFY_EMAIL is empty, team notifications are skipped")
	}
	if _, perr := time.ParseDuration(c.AccessTokenTTL); perr != nil {
		warnings = append(warnings, "ACCESS_TOKEN_EXPIRY is invalid, using 12h")
	}
	if c.RateLimitRPM <= 0 {
		warnings = append(warnings, "RATE_LIMIT_RPM <= 0, global rate limit is off")
	}

	return warnings, nil
}

// AccessTTL falls back to 12h on a malformed ACCESS_TOKEN_EXPIRY.
func (c *Config) AccessTTL() time.Duration {
	d, err := time.ParseDuration(c.AccessTokenTTL)
	if err != nil || d <= 0 {
		return 12 * time.Hour
	}
	return d
}

func (c *Config) SMTPEnabled() bool {
	return c.SMTPHost != "" && c.SMTPUser != ""
}

// GetDSN returns the full DSN including the password.
func (c *Config) GetDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DbUser, c.DbPass, c.DbHost, c.DbPort, c.DbName, c.DbSSLMode,
	)
}

// GetDSNSafe returns the DSN without the password, for logs.
func (c *Config) GetDSNSafe() string {
	return fmt.Sprintf(
		"postgres://%s:***@%s:%s/%s?sslmode=%s",
		c.DbUser, c.DbHost, c.DbPort, c.DbName, c.DbSSLMode,
	)
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
