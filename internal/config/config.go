package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPAddr      string
	RedisAddr     string
	PGDSN         string
	MongoURI      string
	RabbitURL     string
	CatalogDir    string
	DraftDebounce time.Duration
	OTLPEndpoint  string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	debounce, _ := time.ParseDuration(os.Getenv("DRAFT_DEBOUNCE"))
	if debounce == 0 {
		debounce = time.Second
	}

	addr := os.Getenv("HTTP_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	return &Config{
		HTTPAddr:      addr,
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		PGDSN:         os.Getenv("PG_DSN"),
		MongoURI:      os.Getenv("MONGO_URI"),
		RabbitURL:     os.Getenv("RABBIT_URL"),
		CatalogDir:    os.Getenv("CATALOG_DIR"),
		DraftDebounce: debounce,
		OTLPEndpoint:  os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
	}, nil
}
