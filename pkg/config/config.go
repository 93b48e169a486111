package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort  string
	Environment string
	JWTSecret   string
	JWTExpiry   int64

	// Path of the SQLite file backing the blob store.
	BlobStorePath string

	// Fraction of the listing price required as a deposit.
	DepositRate float64

	// Fallback position reported by the static geolocation provider.
	GeoCity      string
	GeoCountry   string
	GeoLatitude  float64
	GeoLongitude float64
}

func Load() (*Config, error) {
	godotenv.Load()

	config := &Config{
		ServerPort:    getEnv("SERVER_PORT", "8080"),
		Environment:   getEnv("ENVIRONMENT", "development"),
		JWTSecret:     getEnv("JWT_SECRET", "your-secret-key"),
		JWTExpiry:     getEnvAsInt64("JWT_EXPIRY", 24*60*60), // 24 hours
		BlobStorePath: getEnv("BLOB_STORE_PATH", "trailtrade.db"),
		DepositRate:   getEnvAsFloat("DEPOSIT_RATE", 0.10),
		GeoCity:       getEnv("GEO_CITY", "Bangkok"),
		GeoCountry:    getEnv("GEO_COUNTRY", "Thailand"),
		GeoLatitude:   getEnvAsFloat("GEO_LATITUDE", 13.7563),
		GeoLongitude:  getEnvAsFloat("GEO_LONGITUDE", 100.5018),
	}

	return config, nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value, exists := os.LookupEnv(key); exists {
		intValue, err := strconv.ParseInt(value, 10, 64)
		if err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		floatValue, err := strconv.ParseFloat(value, 64)
		if err == nil {
			return floatValue
		}
	}
	return defaultValue
}
