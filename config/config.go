package config

import (
	"encoding/json"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"magnetar/models"
)

// defaultProviders is the built-in search provider table. Each entry points
// at a deployment of the common /api/search JSON contract; swapping entries
// never requires a pipeline change.
var defaultProviders = []models.ProviderSource{
	{Key: "bitmagnet", URL: "https://bitmagnet-search.fly.dev", DisplayName: "Bitmagnet"},
	{Key: "knaben", URL: "https://knaben-search.fly.dev", DisplayName: "Knaben"},
	{Key: "solid", URL: "https://solid-search.fly.dev", DisplayName: "SolidTorrents"},
	{Key: "tpb", URL: "https://tpb-search.fly.dev", DisplayName: "PirateBay"},
	{Key: "nyaa", URL: "https://nyaa-search.fly.dev", DisplayName: "Nyaa"},
	{Key: "eztv", URL: "https://eztv-search.fly.dev", DisplayName: "EZTV"},
}

var (
	listenAddr      = ":7010"
	providerTimeout = 10 * time.Second
	maxResults      = 50
	userAgent       = "magnetar/1.0"
	providers       []models.ProviderSource

	// logging
	logFilePath   = ""
	logMaxSizeMB  = 20
	logMaxBackups = 3
)

// Load reads configuration from the environment. A .env file in the working
// directory is honored when present.
func Load() {
	_ = godotenv.Load()

	listenAddr = getenv("MAGNETAR_LISTEN", listenAddr)
	providerTimeout = getenvDuration("MAGNETAR_PROVIDER_TIMEOUT", providerTimeout)
	maxResults = getenvInt("MAGNETAR_MAX_RESULTS", maxResults)
	userAgent = getenv("MAGNETAR_USER_AGENT", userAgent)

	logFilePath = getenv("MAGNETAR_LOG_FILE", logFilePath)
	logMaxSizeMB = getenvInt("MAGNETAR_LOG_MAX_SIZE_MB", logMaxSizeMB)
	logMaxBackups = getenvInt("MAGNETAR_LOG_MAX_BACKUPS", logMaxBackups)

	providers = loadProviders(os.Getenv("MAGNETAR_PROVIDERS"))
}

// loadProviders parses a JSON provider table override, falling back to the
// built-in table when the override is absent or unusable.
func loadProviders(raw string) []models.ProviderSource {
	if raw == "" {
		return defaultProviders
	}
	var parsed []models.ProviderSource
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		log.Printf("[config] MAGNETAR_PROVIDERS is not valid JSON, using defaults: %v", err)
		return defaultProviders
	}
	valid := parsed[:0]
	for _, p := range parsed {
		if p.Key == "" || p.URL == "" {
			log.Printf("[config] skipping provider entry missing key or url: %+v", p)
			continue
		}
		if p.DisplayName == "" {
			p.DisplayName = p.Key
		}
		valid = append(valid, p)
	}
	if len(valid) == 0 {
		log.Printf("[config] MAGNETAR_PROVIDERS contained no usable entries, using defaults")
		return defaultProviders
	}
	return valid
}

// getters
func ListenAddr() string             { return listenAddr }
func ProviderTimeout() time.Duration { return providerTimeout }
func MaxResults() int                { return maxResults }
func UserAgent() string              { return userAgent }
func LogFilePath() string            { return logFilePath }
func LogMaxSizeMB() int              { return logMaxSizeMB }
func LogMaxBackups() int             { return logMaxBackups }

// Providers returns the configured provider table. The slice is shared and
// must be treated as read-only.
func Providers() []models.ProviderSource { return providers }

// helpers
func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getenvInt(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return def
}

func getenvDuration(k string, def time.Duration) time.Duration {
	if v := os.Getenv(k); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}
	return def
}
