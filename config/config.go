package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
)

var loadOnce sync.Once

// LoadEnvFile loads variables from the given .env files. Variables already
// present in the environment win. Missing files are not an error.
func LoadEnvFile(files ...string) {
	loadOnce.Do(func() {
		if err := godotenv.Load(files...); err != nil {
			log.Printf("no env file loaded: %v", err)
		}
	})
}

// Config func to get env value
func Config(key string) string {
	LoadEnvFile()
	return os.Getenv(key)
}

type Settings struct {
	Addr        string
	BodyLimit   int
	CorsOrigins string

	DBDriver   string
	DBHost     string
	DBPort     int
	DBUser     string
	DBPassword string
	DBName     string
	DBPath     string

	JWTSecret          string
	AccessTokenTTL     time.Duration
	RefreshTokenTTL    time.Duration
	RotateRefreshToken bool

	RedisAddr     string
	RedisPassword string

	CloudinaryCloudName string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string
	MediaRoot           string
	MediaURL            string

	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string

	AdminEmail    string
	AdminPassword string
}

func Load() Settings {
	return Settings{
		Addr:        withDefault("HTTP_ADDR", ":8000"),
		BodyLimit:   intOr("BODY_LIMIT_MB", 20) * 1024 * 1024,
		CorsOrigins: withDefault("CORS_ORIGINS", "*"),

		DBDriver:   strings.ToLower(withDefault("DB_DRIVER", "postgres")),
		DBHost:     withDefault("DB_HOST", "localhost"),
		DBPort:     intOr("DB_PORT", 5432),
		DBUser:     withDefault("DB_USER", "postgres"),
		DBPassword: Config("DB_PASSWORD"),
		DBName:     withDefault("DB_NAME", "train_station"),
		DBPath:     withDefault("DB_PATH", "train_station.db"),

		JWTSecret:          withDefault("JWT_SECRET", "change-me"),
		AccessTokenTTL:     durationOr("JWT_ACCESS_TTL", 60*time.Minute),
		RefreshTokenTTL:    durationOr("JWT_REFRESH_TTL", 24*time.Hour),
		RotateRefreshToken: boolOr("JWT_ROTATE_REFRESH", false),

		RedisAddr:     Config("REDIS_ADDR"),
		RedisPassword: Config("REDIS_PASSWORD"),

		CloudinaryCloudName: Config("CLOUDINARY_CLOUD_NAME"),
		CloudinaryAPIKey:    Config("CLOUDINARY_API_KEY"),
		CloudinaryAPISecret: Config("CLOUDINARY_API_SECRET"),
		MediaRoot:           withDefault("MEDIA_ROOT", "media"),
		MediaURL:            withDefault("MEDIA_URL", "/media/"),

		SMTPHost:     Config("SMTP_HOST"),
		SMTPPort:     intOr("SMTP_PORT", 587),
		SMTPUsername: Config("SMTP_USERNAME"),
		SMTPPassword: Config("SMTP_PASSWORD"),
		SMTPFrom:     Config("SMTP_FROM"),

		AdminEmail:    Config("ADMIN_EMAIL"),
		AdminPassword: Config("ADMIN_PASSWORD"),
	}
}

// DSN builds the connection string for the configured driver.
func (s Settings) DSN() string {
	switch s.DBDriver {
	case "mysql":
		return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
			s.DBUser, s.DBPassword, s.DBHost, s.DBPort, s.DBName)
	case "sqlite":
		return s.DBPath + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	default:
		return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable TimeZone=UTC",
			s.DBHost, s.DBPort, s.DBUser, s.DBPassword, s.DBName)
	}
}

func (s Settings) CloudinaryEnabled() bool {
	return s.CloudinaryCloudName != "" && s.CloudinaryAPIKey != "" && s.CloudinaryAPISecret != ""
}

func withDefault(key, def string) string {
	if v := Config(key); v != "" {
		return v
	}
	return def
}

func intOr(key string, def int) int {
	v := Config(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("invalid %s=%q, using %d", key, v, def)
		return def
	}
	return n
}

func boolOr(key string, def bool) bool {
	v := Config(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		log.Printf("invalid %s=%q, using %v", key, v, def)
		return def
	}
	return b
}

func durationOr(key string, def time.Duration) time.Duration {
	v := Config(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("invalid %s=%q, using %s", key, v, def)
		return def
	}
	return d
}
