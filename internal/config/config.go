package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config is populated once at startup. Handlers and services receive the
// values they need explicitly instead of reading the environment ad hoc.
type Config struct {
	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string

	AppPort string
	AppEnv  string

	// SiteURL is the public base URL of the merchant site; the bePaid
	// callback and redirect URLs are built from it.
	SiteURL string

	// JWTSecret signs the storefront-to-service bearer tokens.
	JWTSecret string

	// bePaid merchant settings. Shop credentials are deliberately not
	// required here: their absence is a merchant-visible configuration
	// error at checkout time, not a startup failure.
	ShopID      string
	SecretKey   string
	TestMode    bool
	DebugMode   bool
	Description string
}

func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		DBHost:     os.Getenv("DB_HOST"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
		DBPort:     os.Getenv("DB_PORT"),

		AppPort: os.Getenv("APP_PORT"),
		AppEnv:  os.Getenv("APP_ENV"),

		SiteURL:   os.Getenv("SITE_URL"),
		JWTSecret: os.Getenv("JWT_SECRET"),

		ShopID:      os.Getenv("BEPAID_SHOP_ID"),
		SecretKey:   os.Getenv("BEPAID_SECRET_KEY"),
		TestMode:    boolSetting("BEPAID_TEST"),
		DebugMode:   boolSetting("BEPAID_DEBUG"),
		Description: os.Getenv("BEPAID_DESCRIPTION"),
	}

	if cfg.Description == "" {
		cfg.Description = "Order payment"
	}

	required := map[string]string{
		"DB_HOST":    cfg.DBHost,
		"DB_USER":    cfg.DBUser,
		"DB_NAME":    cfg.DBName,
		"DB_PORT":    cfg.DBPort,
		"APP_PORT":   cfg.AppPort,
		"SITE_URL":   cfg.SiteURL,
		"JWT_SECRET": cfg.JWTSecret,
	}
	for key, val := range required {
		if val == "" {
			return nil, fmt.Errorf("missing required environment variable %s", key)
		}
	}

	return cfg, nil
}

// boolSetting reads a "1"-style flag, following the merchant panel
// convention where enabled flags are stored as the string "1".
func boolSetting(key string) bool {
	return os.Getenv(key) == "1"
}
