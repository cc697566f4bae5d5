package config // package config loads application configuration from environment variables

import (
	"log" // log is used to report configuration errors and halt execution
	"os"  // os provides access to environment variables
)

// Config holds all runtime configuration values. Each field corresponds to
// an environment variable. Required values are enforced by must(); a missing
// JWT secret or database setting is a fatal startup error so the process
// never runs in an insecure or half-configured state.
type Config struct {
	Env            string // application environment (e.g. "dev", "prod")
	Port           string // HTTP port to listen on
	DBUser         string // database username
	DBPass         string // database password (optional)
	DBHost         string // database host address
	DBPort         string // database port number
	DBName         string // database name
	JWTSecret      string // secret used to sign session tokens
	SessionTTLDays int    // session token time-to-live in days
	CookieMaxAge   int    // session cookie max-age in seconds
	BcryptCost     int    // bcrypt cost for password hashing

	AdminEmail    string // seeded admin account email
	AdminPassword string // seeded admin account password
	AdminPagesDir string // directory of static admin panel pages

	S3Region     string // media bucket region
	S3Bucket     string // media bucket name
	S3AccessKey  string // media host access key
	S3SecretKey  string // media host secret key
	S3Endpoint   string // custom S3 endpoint (empty for AWS)
	MediaBaseURL string // public URL prefix for uploaded objects
	MediaFolder  string // storage folder for uploads
}

// Load reads configuration values from environment variables and returns a
// Config. Required variables are enforced by must() and missing values
// cause the program to exit with a fatal log message.
func Load() Config {
	return Config{
		Env:            must("APP_ENV"),
		Port:           must("APP_PORT"),
		DBUser:         must("DB_USER"),
		DBPass:         os.Getenv("DB_PASS"), // empty allowed
		DBHost:         must("DB_HOST"),
		DBPort:         must("DB_PORT"),
		DBName:         must("DB_NAME"),
		JWTSecret:      must("JWT_SECRET"),
		SessionTTLDays: envInt("SESSION_TTL_DAYS", 7),
		CookieMaxAge:   envInt("COOKIE_MAX_AGE", 86400), // 1 day
		BcryptCost:     envInt("BCRYPT_COST", 10),

		AdminEmail:    envStr("ADMIN_EMAIL", "admin@admin.com"),
		AdminPassword: envStr("ADMIN_PASSWORD", "admin123"),
		AdminPagesDir: envStr("ADMIN_PAGES_DIR", "web/admin"),

		S3Region:     envStr("S3_REGION", "us-east-1"),
		S3Bucket:     envStr("S3_BUCKET", "soulful-media"),
		S3AccessKey:  os.Getenv("S3_ACCESS_KEY"),
		S3SecretKey:  os.Getenv("S3_SECRET_KEY"),
		S3Endpoint:   os.Getenv("S3_ENDPOINT"),
		MediaBaseURL: os.Getenv("MEDIA_BASE_URL"),
		MediaFolder:  envStr("MEDIA_FOLDER", "blogs"),
	}
}

// must retrieves the value of a required environment variable. If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}
