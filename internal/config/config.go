package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all runtime configuration loaded from environment variables.
type Config struct {
	AppPort        string
	AppEnv         string
	LogLevel       string
	LogFormat      string
	AWSRegion      string
	AWSEndpointURL string // empty in prod, set to LocalStack URL in dev
	AWSAccessKeyID string
	AWSSecretKey   string
	DynamoTables   DynamoTables
	S3BucketName   string
	S3PublicURL    string // base URL used to build public image links; derived from bucket/region when empty
	SMTPHost       string
	SMTPPort       int
	SMTPFrom       string
	SMTPUsername   string
	SMTPPassword   string
	SNSRegion      string
	AllowedOrigins []string // CORS allowed origins
	BcryptCost     int
	OTP            OTPConfig

	// TrustProxyHeaders keys rate limits on X-Forwarded-For / X-Real-Ip.
	// Enable only behind a proxy that overwrites them.
	TrustProxyHeaders bool
}

// OTPConfig tunes the verification flow.
type OTPConfig struct {
	TTL         time.Duration // validity of a freshly issued code
	GrantTTL    time.Duration // how long a verified password reset may be completed
	MaxAttempts int
	SweepSpec   string // cron spec for evicting dead challenges
	// TestMode issues TestCode instead of a random code and echoes it in
	// responses. Never enable in production.
	TestMode bool
	TestCode string
}

// DynamoTables holds the DynamoDB table name for each entity.
type DynamoTables struct {
	Users          string
	UserIdentities string
	Notifications  string
	Categories     string
	Logos          string
	Banners        string
	Containers     string
	DueDates       string
	Jobs           string
}

// Load reads all configuration from environment variables.
func Load() *Config {
	return &Config{
		AppPort:        getEnv("APP_PORT", "5001"),
		AppEnv:         getEnv("APP_ENV", "development"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFormat:      getEnv("LOG_FORMAT", "json"),
		AWSRegion:      getEnv("AWS_REGION", "us-east-1"),
		AWSEndpointURL: getEnv("AWS_ENDPOINT_URL", ""),
		AWSAccessKeyID: getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretKey:   getEnv("AWS_SECRET_ACCESS_KEY", ""),
		DynamoTables: DynamoTables{
			Users:          getEnv("DYNAMO_TABLE_USERS", "users"),
			UserIdentities: getEnv("DYNAMO_TABLE_USER_IDENTITIES", "user_identities"),
			Notifications:  getEnv("DYNAMO_TABLE_NOTIFICATIONS", "notifications"),
			Categories:     getEnv("DYNAMO_TABLE_CATEGORIES", "categories"),
			Logos:          getEnv("DYNAMO_TABLE_LOGOS", "logos"),
			Banners:        getEnv("DYNAMO_TABLE_BANNERS", "banners"),
			Containers:     getEnv("DYNAMO_TABLE_CONTAINERS", "containers"),
			DueDates:       getEnv("DYNAMO_TABLE_DUE_DATES", "due_dates"),
			Jobs:           getEnv("DYNAMO_TABLE_JOBS", "jobs"),
		},
		S3BucketName:   getEnv("S3_BUCKET_NAME", "catalog-images"),
		S3PublicURL:    getEnv("S3_PUBLIC_URL", ""),
		SMTPHost:       getEnv("SMTP_HOST", "localhost"),
		SMTPPort:       getEnvInt("SMTP_PORT", 1025),
		SMTPFrom:       getEnv("SMTP_FROM", "noreply@example.com"),
		SMTPUsername:   getEnv("SMTP_USERNAME", ""),
		SMTPPassword:   getEnv("SMTP_PASSWORD", ""),
		SNSRegion:      getEnv("SNS_REGION", "us-east-1"),
		AllowedOrigins: strings.Split(getEnv("ALLOWED_ORIGINS", "*"), ","),
		BcryptCost:     getEnvInt("BCRYPT_COST", 10),
		OTP: OTPConfig{
			TTL:         getEnvDuration("OTP_TTL", 5*time.Minute),
			GrantTTL:    getEnvDuration("OTP_GRANT_TTL", 10*time.Minute),
			MaxAttempts: getEnvInt("OTP_MAX_ATTEMPTS", 5),
			SweepSpec:   getEnv("OTP_SWEEP_SPEC", "@every 1m"),
			TestMode:    getEnvBool("OTP_TEST_MODE", false),
			TestCode:    getEnv("OTP_TEST_CODE", "1234"),
		},
		TrustProxyHeaders: getEnvBool("TRUST_PROXY_HEADERS", false),
	}
}

// IsProduction reports whether the service runs with APP_ENV=production.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
