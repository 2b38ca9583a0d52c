package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port      string
	DBPath    string
	JWTSecret string

	// GeoFnURL is the base URL of the remote covering/distance service.
	// Empty means the remote query path is not deployed.
	GeoFnURL string

	// GeoFnPort is the listen port for the geofn server itself.
	GeoFnPort string
}

// Load reads configuration from the environment, with a .env file as an
// optional source for local development.
func Load() *Config {
	// A missing .env is fine; real deployments set the environment.
	_ = godotenv.Load()

	return &Config{
		Port:      getEnv("PORT", ":8080"),
		DBPath:    getEnv("DB_PATH", "./data/poi.db"),
		JWTSecret: getEnv("JWT_SECRET", "your-secret-key-change-in-production"),
		GeoFnURL:  os.Getenv("GEOFN_URL"),
		GeoFnPort: getEnv("GEOFN_PORT", ":8081"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
