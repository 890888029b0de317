package config

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type Config struct {
	MongoURI         string
	MongoDB          string
	Port             string
	AuthSecret       string
	OperatorName     string
	OperatorUsername string
	OperatorPassword string
	CORSOrigins      string
	SecureCookies    bool
}

// LoadConfig reads configuration from the environment, loading a local
// .env file first when one is present.
func LoadConfig() *Config {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			logrus.WithError(err).Warn("could not load .env file")
		}
	}

	cfg := &Config{
		MongoURI:         getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:          getEnv("MONGO_DB", "plasco"),
		Port:             getEnv("PORT", "8080"),
		AuthSecret:       getEnv("AUTH_SECRET", ""),
		OperatorName:     getEnv("OPERATOR_DISPLAY_NAME", ""),
		OperatorUsername: getEnv("DEFAULT_USER_NAME", ""),
		OperatorPassword: getEnv("DEFAULT_USER_PASSWORD", ""),
		CORSOrigins:      getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000"),
		SecureCookies:    getEnv("SECURE_COOKIES", "false") == "true",
	}

	if cfg.OperatorName == "" {
		cfg.OperatorName = cfg.OperatorUsername
	}
	if cfg.AuthSecret == "" {
		logrus.Fatal("AUTH_SECRET is not set")
	}
	if cfg.OperatorUsername == "" || cfg.OperatorPassword == "" {
		logrus.Fatal("DEFAULT_USER_NAME / DEFAULT_USER_PASSWORD are not set")
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
