package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/fx"
)

// Config holds application configuration.
type Config struct {
	AppName     string
	AppVersion  string
	Environment string
	Port        string

	DBType     string
	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string

	DBMaxOpenConns int
	DBMaxIdleConns int

	// NOWPayments gateway integration.
	NowPaymentsAPIKey    string
	NowPaymentsIPNSecret string
	NowPaymentsAPIURL    string
	DonationWallet       string

	// Offline mode fabricates payment details locally instead of calling
	// the gateway. The gateway cannot deliver callbacks to a host without
	// public reachability, so this defaults on outside production.
	DonationOfflineMode bool

	// SeedDir, when set, points at tournament fixture JSON files loaded on
	// startup.
	SeedDir string
}

// Load loads configuration from environment variables and .env file.
func Load() Config {
	_ = godotenv.Load()

	environment := getenv("ENVIRONMENT", "development")

	return Config{
		AppName:     getenv("APP_SERVICE", "wc26"),
		AppVersion:  getenv("APP_VERSION", "0.1.0"),
		Environment: environment,
		Port:        getenv("PORT", "3050"),

		DBType:     getenv("DATABASE_TYPE", "postgres"),
		DBHost:     getenv("DATABASE_HOST", "localhost"),
		DBPort:     getenv("DATABASE_PORT", "5432"),
		DBName:     getenv("DATABASE_NAME", "worldcup2026"),
		DBUser:     getenv("DATABASE_USER", "postgres"),
		DBPassword: getenv("DATABASE_PASSWORD", ""),
		DBSSLMode:  getenv("DATABASE_SSLMODE", "disable"),

		DBMaxOpenConns: getenvInt("DATABASE_MAX_OPEN_CONNS", 25),
		DBMaxIdleConns: getenvInt("DATABASE_MAX_IDLE_CONNS", 5),

		NowPaymentsAPIKey:    strings.TrimSpace(getenv("NOWPAYMENTS_API_KEY", "")),
		NowPaymentsIPNSecret: strings.TrimSpace(getenv("NOWPAYMENTS_IPN_SECRET", "")),
		NowPaymentsAPIURL:    strings.TrimSpace(getenv("NOWPAYMENTS_API_URL", "https://api.nowpayments.io/v1")),
		DonationWallet:       strings.TrimSpace(getenv("DONATION_WALLET_ADDRESS", "")),
		DonationOfflineMode:  getenvBool("DONATION_OFFLINE_MODE", environment != "production"),

		SeedDir: strings.TrimSpace(getenv("SEED_DIR", "")),
	}
}

var Module = fx.Module("config",
	fx.Provide(Load),
)

func (c Config) IsProduction() bool {
	return c.Environment == "production"
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvBool(key string, def bool) bool {
	value := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	if value == "" {
		return def
	}
	switch value {
	case "1", "true", "yes", "y", "on":
		return true
	case "0", "false", "no", "n", "off":
		return false
	default:
		return def
	}
}

func getenvInt(key string, def int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return def
	}
	return parsed
}
