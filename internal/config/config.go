package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// FirebaseConfig holds identity-provider and Firestore project settings.
type FirebaseConfig struct {
	ProjectID string
	// JWKSURL is the key set used to verify ID-token signatures. The default
	// is Google's securetoken key endpoint; overridable for the emulator.
	JWKSURL string
}

// StorageConfig holds object-storage settings. Provider selects the backend:
// "gcs" (default) or "s3" for self-hosted S3-compatible deployments.
type StorageConfig struct {
	Provider string
	// DefaultBucket is used when a document record resolves no bucket of its
	// own. Defaults to the Firebase project's appspot bucket.
	DefaultBucket string

	// S3/MinIO settings, only read when Provider is "s3".
	S3Endpoint  string
	S3AccessKey string
	S3SecretKey string
	S3UseSSL    bool
}

// AccessConfig holds the tunables of the access decision and delivery.
//
// GuardianQueryLimit and ScopeScanLimit cap the two-tier guardian lookup.
// They are a known approximation inherited from the portal: a guardian with
// more matching children than the caps may be denied scoped access.
type AccessConfig struct {
	SignedURLTTL       time.Duration
	AdminRoles         []string
	GuardianQueryLimit int
	ScopeScanLimit     int
}

// AppConfig is the centralized configuration struct for the gateway.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	Port           string
	AllowedOrigins []string
	Firebase       FirebaseConfig
	Storage        StorageConfig
	Access         AccessConfig
}

const securetokenJWKS = "https://www.googleapis.com/service_accounts/v1/jwk/securetoken@system.gserviceaccount.com"

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// This function does not require a .env file; real environment variables take precedence.
func Load() *AppConfig {
	projectID := getEnv("FIREBASE_PROJECT_ID", "")

	defaultBucket := getEnv("STORAGE_BUCKET", "")
	if defaultBucket == "" && projectID != "" {
		defaultBucket = projectID + ".appspot.com"
	}

	return &AppConfig{
		Port: getEnv("PORT", "8080"),
		AllowedOrigins: getEnvList("ALLOWED_ORIGINS", []string{
			"https://portal.casadelosninos.edu",
			"https://casadelosninos-portal.web.app",
			"https://casadelosninos-portal.firebaseapp.com",
		}),
		Firebase: FirebaseConfig{
			ProjectID: projectID,
			JWKSURL:   getEnv("FIREBASE_JWKS_URL", securetokenJWKS),
		},
		Storage: StorageConfig{
			Provider:      getEnv("STORAGE_PROVIDER", "gcs"),
			DefaultBucket: defaultBucket,
			S3Endpoint:    getEnv("MINIO_ENDPOINT", ""),
			S3AccessKey:   getEnv("MINIO_ACCESS_KEY", ""),
			S3SecretKey:   getEnv("MINIO_SECRET_KEY", ""),
			S3UseSSL:      getEnvBool("MINIO_USE_SSL", false),
		},
		Access: AccessConfig{
			SignedURLTTL:       time.Duration(getEnvInt("SIGNED_URL_TTL_SEC", 600)) * time.Second,
			AdminRoles:         getEnvList("ADMIN_ROLES", []string{"superadmin", "coordinacion"}),
			GuardianQueryLimit: getEnvInt("GUARDIAN_QUERY_LIMIT", 120),
			ScopeScanLimit:     getEnvInt("SCOPE_SCAN_LIMIT", 300),
		},
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}

// getEnvList reads a comma-separated list, trimming whitespace and dropping
// empty entries.
func getEnvList(key string, def []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
